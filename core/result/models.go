package result

import (
	"time"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

type Result struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	TestID        int       `json:"test_id" db:"test_id"`
	MarksObtained int       `json:"marks_obtained" db:"marks_obtained"`
	Percentage    string    `json:"percentage" db:"percentage"` // 2 decimal places, e.g. "85.00"
	SubmittedAt   time.Time `json:"submitted_at" db:"submitted_at"`
}

// Info is a Result enriched with the test's type and total marks.
type Info struct {
	Result
	TestType   string `json:"test_type" db:"test_type"`
	TotalMarks int    `json:"total_marks" db:"total_marks"`
}

// NewResult uses a pointer so that 0 marks still satisfies "required".
type NewResult struct {
	TestID        int  `json:"test_id" validate:"required"`
	MarksObtained *int `json:"marks_obtained" validate:"required,min=0"`
}

func (nr NewResult) Validate() error { return core.Validate.Struct(nr) }
