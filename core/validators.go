package core

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	validatorInit sync.Once

	// custom validation texts
	requiredTag     = "required"
	requiredWithTag = "required_without"
	requiredText    = "this field is required"
)

func init() {
	InitValidators()
}

// InitValidators instantiates the shared validator and its translator.
func InitValidators() {
	validatorInit.Do(func() {
		_en := en.New()
		uni := ut.New(_en, _en)
		Translator, _ = uni.GetTranslator("en")

		Validate = validator.New()
		_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

		// Use JSON tag names for errors instead of Go struct names.
		Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		RegisterCustomTranslation(Validate, Translator, requiredTag, requiredText, true)
		RegisterCustomTranslation(Validate, Translator, requiredWithTag, requiredText, true)
	})
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}
