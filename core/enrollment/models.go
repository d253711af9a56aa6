package enrollment

import (
	"time"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// Enrollment types
const (
	TypeClass   = "Class"
	TypeSubject = "Subject"
)

type Enrollment struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ClassID        int       `json:"class_id" db:"class_id"`
	SubjectID      *int      `json:"subject_id" db:"subject_id"` // nil = class-level enrollment
	EnrollmentType string    `json:"enrollment_type" db:"enrollment_type"`
	EnrollmentDate time.Time `json:"enrollment_date" db:"enrollment_date"`
}

// Info is an Enrollment enriched with catalog names for listings.
type Info struct {
	Enrollment
	ClassName   string  `json:"class_name" db:"class_name"`
	Board       string  `json:"board" db:"board"`
	SubjectName *string `json:"subject_name" db:"subject_name"`
}

// ClassSelector references a class either by persisted id or by a
// virtual (number, board) pair that may not have a row yet.
type ClassSelector struct {
	ID     int    `json:"class_id"`
	Number int    `json:"class_number"`
	Board  string `json:"board"`
}

func (s ClassSelector) IsPersisted() bool { return s.ID != 0 }
func (s ClassSelector) IsVirtual() bool   { return s.Number != 0 && s.Board != "" }

// NewEnrollment binds the flat request body; the embedded ClassSelector
// keeps class_id/class_number/board at the top level.
type NewEnrollment struct {
	ClassSelector
	SubjectID      *int   `json:"subject_id"`
	SubjectName    string `json:"subject_name"`
	EnrollmentType string `json:"enrollment_type" validate:"required,oneof=Class Subject"`
}

func (ne *NewEnrollment) Validate() error {
	ne.SubjectName = core.CleanString(ne.SubjectName)
	ne.Board = core.CleanString(ne.Board)

	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	if !ne.IsPersisted() && !ne.IsVirtual() {
		return core.NewValidationError(nil, core.FieldError{
			Field: "class_id", Error: "class_id or (class_number + board) is required",
		})
	}
	if ne.EnrollmentType == TypeSubject && ne.SubjectID == nil && ne.SubjectName == "" {
		return core.NewValidationError(nil, core.FieldError{
			Field: "subject_id", Error: "subject_id or subject_name is required for subject enrollment",
		})
	}
	return nil
}
