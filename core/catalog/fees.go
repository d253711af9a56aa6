package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// ComputeFee resolves the fee for a (class, subject?, mode) selection
// against the persisted fee table. Lookup priority, first match wins:
//
//  1. exact (class, subject, mode)
//  2. (class, subject, "Subject-wise")
//  3. class-level (class, nil, mode)
//  4. class-level (class, nil, "Class-wise")
//
// A selection no rule covers is not an error: ok is false and the
// caller presents "contact admin".
func (svc *Service) ComputeFee(ctx context.Context, classID int, subjectID *int, mode string) (Fee, bool, error) {
	type lookup struct {
		subjectID *int
		feeType   string
	}

	lookups := make([]lookup, 0, 4)
	if subjectID != nil {
		lookups = append(lookups, lookup{subjectID, mode}, lookup{subjectID, FeeTypeSubjectWise})
	}
	lookups = append(lookups, lookup{nil, mode}, lookup{nil, FeeTypeClassWise})

	for _, l := range lookups {
		fee, err := svc.repo.FindFee(ctx, classID, l.subjectID, l.feeType)
		if err == nil {
			return fee, true, nil
		}
		if !core.IsNotFound(err) {
			return Fee{}, false, errors.Wrap(err, "finding fee")
		}
	}
	return Fee{}, false, nil
}

// Fee estimator. This mirrors the public fee calculator widget: a
// demo-grade estimate that is deliberately independent of the persisted
// fee table and must not be conflated with ComputeFee.

type Estimate struct {
	ClassLevel int      `json:"class_level" query:"class_level" validate:"required,min=1,max=12"`
	Board      string   `json:"board" query:"board" validate:"required,oneof=CBSE ICSE State"`
	Subjects   []string `json:"subjects" query:"subject"`
	Individual bool     `json:"individual" query:"individual"`
}

func (e Estimate) Validate() error { return core.Validate.Struct(e) }

// Amount computes the estimate: base fee bracket by class level, board
// multiplier, 500 per subject, 500 off at 3+ subjects, 1.5x for
// individual mode.
func (e Estimate) Amount() float64 {
	var baseFee float64
	switch {
	case e.ClassLevel >= 1 && e.ClassLevel <= 5:
		baseFee = 1500
	case e.ClassLevel >= 6 && e.ClassLevel <= 8:
		baseFee = 2000
	case e.ClassLevel >= 9 && e.ClassLevel <= 10:
		baseFee = 3000
	case e.ClassLevel >= 11 && e.ClassLevel <= 12:
		baseFee = 4000
	}

	boardMultiplier := 1.0
	switch e.Board {
	case BoardICSE:
		boardMultiplier = 1.1
	case BoardState:
		boardMultiplier = 0.9
	}

	subjectFee := float64(len(e.Subjects)) * 500

	modeMultiplier := 1.0
	if e.Individual {
		modeMultiplier = 1.5
	}

	var discount float64
	if len(e.Subjects) >= 3 {
		discount = 500
	}

	return (baseFee+subjectFee)*boardMultiplier*modeMultiplier - discount
}
