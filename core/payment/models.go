package payment

import (
	"time"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// StatusCompleted is the only modeled payment state: no partial
// payments, no refunds.
const StatusCompleted = "Completed"

type Payment struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	EnrollmentID  int       `json:"enrollment_id" db:"enrollment_id"`
	AmountPaid    float64   `json:"amount_paid" db:"amount_paid"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	Reference     string    `json:"reference" db:"reference"`
	PaymentDate   time.Time `json:"payment_date" db:"payment_date"`
}

// Info is a Payment enriched with the enrollment's class/subject for
// listings.
type Info struct {
	Payment
	ClassID   int  `json:"class_id" db:"class_id"`
	SubjectID *int `json:"subject_id" db:"subject_id"`
}

type NewPayment struct {
	EnrollmentID int     `json:"enrollment_id" validate:"required"`
	AmountPaid   float64 `json:"amount_paid" validate:"required,gt=0"`
}

func (np NewPayment) Validate() error { return core.Validate.Struct(np) }
