package catalog

import (
	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// Boards
const (
	BoardCBSE  = "CBSE"
	BoardICSE  = "ICSE"
	BoardState = "State"
)

// Fee types. Individual/Group are per-mode rates; Class-wise and
// Subject-wise are mode-agnostic fallbacks.
const (
	FeeTypeClassWise   = "Class-wise"
	FeeTypeSubjectWise = "Subject-wise"
	FeeTypeIndividual  = "Individual"
	FeeTypeGroup       = "Group"
)

type Class struct {
	ID        int    `json:"id" db:"id"`
	ClassName string `json:"class_name" db:"class_name"`
	Board     string `json:"board" db:"board"`
}

type Subject struct {
	ID          int    `json:"id" db:"id"`
	ClassID     int    `json:"class_id" db:"class_id"`
	SubjectName string `json:"subject_name" db:"subject_name"`
}

type Test struct {
	ID         int    `json:"id" db:"id"`
	SubjectID  int    `json:"subject_id" db:"subject_id"`
	TestType   string `json:"test_type" db:"test_type"`
	TotalMarks int    `json:"total_marks" db:"total_marks"`
}

type Fee struct {
	ID        int     `json:"id" db:"id"`
	ClassID   int     `json:"class_id" db:"class_id"`
	SubjectID *int    `json:"subject_id" db:"subject_id"` // nil = class-level fee
	FeeType   string  `json:"fee_type" db:"fee_type"`
	FeeAmount float64 `json:"fee_amount" db:"fee_amount"`
}

// FeeInfo is a Fee enriched with catalog names for listings.
type FeeInfo struct {
	Fee
	ClassName   string  `json:"class_name" db:"class_name"`
	SubjectName *string `json:"subject_name" db:"subject_name"`
}

type NewClass struct {
	ClassName string `json:"class_name" validate:"required"`
	Board     string `json:"board" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.ClassName = core.CleanString(nc.ClassName)
	nc.Board = core.CleanString(nc.Board)
	return core.Validate.Struct(nc)
}

type NewSubject struct {
	ClassID     int    `json:"class_id" validate:"required"`
	SubjectName string `json:"subject_name" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.SubjectName = core.CleanString(ns.SubjectName)
	return core.Validate.Struct(ns)
}

type NewTest struct {
	SubjectID  int    `json:"subject_id" validate:"required"`
	TestType   string `json:"test_type" validate:"required"`
	TotalMarks int    `json:"total_marks" validate:"required,gt=0"`
}

func (nt *NewTest) Validate() error {
	nt.TestType = core.CleanString(nt.TestType)
	return core.Validate.Struct(nt)
}

type NewFee struct {
	ClassID   int     `json:"class_id" validate:"required"`
	SubjectID *int    `json:"subject_id"`
	FeeType   string  `json:"fee_type" validate:"required"`
	FeeAmount float64 `json:"fee_amount" validate:"required,gt=0"`
}

func (nf *NewFee) Validate() error {
	nf.FeeType = core.CleanString(nf.FeeType)
	return core.Validate.Struct(nf)
}

// ClassFilter carries the classes listing query params.
type ClassFilter struct {
	Search string `query:"search"`
	Sort   string `query:"sort"`
	Order  string `query:"order"`
}

func (cf *ClassFilter) Clean() {
	cf.Search = core.CleanString(cf.Search)
	cf.Sort = core.CleanString(cf.Sort, true /* lower */)
	cf.Order = core.CleanString(cf.Order, true /* lower */)
}

// classSortFields guards the ORDER BY field against injection; unknown
// fields fall back to the id/ASC default.
var classSortFields = map[string]bool{
	"id":         true,
	"class_name": true,
	"board":      true,
}

func (cf ClassFilter) Ordering() core.DBOrdering {
	field := cf.Sort
	if !classSortFields[field] {
		field = "id"
	}
	return core.DBOrdering{Field: field, Ascending: cf.Order != "desc"}
}
