package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateClass(t *testing.T, repo catalog.Repository, name, board string) catalog.Class {
	t.Helper()

	cls, err := repo.CreateClass(context.Background(), catalog.Class{ClassName: name, Board: board})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateSubject(t *testing.T, repo catalog.Repository, classID int, name string) catalog.Subject {
	t.Helper()

	sub, err := repo.CreateSubject(context.Background(), catalog.Subject{ClassID: classID, SubjectName: name})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateTest(t *testing.T, repo catalog.Repository, subjectID int, testType string, totalMarks int) catalog.Test {
	t.Helper()

	tst, err := repo.CreateTest(context.Background(), catalog.Test{SubjectID: subjectID, TestType: testType, TotalMarks: totalMarks})
	if err != nil {
		t.Fatalf("CreateTest() failed: %v", err)
	}
	return tst
}

func CreateFee(t *testing.T, repo catalog.Repository, classID int, subjectID *int, feeType string, amount float64) catalog.Fee {
	t.Helper()

	fee, err := repo.CreateFee(context.Background(), catalog.Fee{
		ClassID:   classID,
		SubjectID: subjectID,
		FeeType:   feeType,
		FeeAmount: amount,
	})
	if err != nil {
		t.Fatalf("CreateFee() failed: %v", err)
	}
	return fee
}

func CreateEnrollment(t *testing.T, repo enrollment.Repository, userID, classID int, subjectID *int) enrollment.Enrollment {
	t.Helper()

	typ := enrollment.TypeClass
	if subjectID != nil {
		typ = enrollment.TypeSubject
	}
	enr, err := repo.CreateEnrollment(context.Background(), enrollment.Enrollment{
		UserID:         userID,
		ClassID:        classID,
		SubjectID:      subjectID,
		EnrollmentType: typ,
		EnrollmentDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}

// IntPtr is a convenience for nullable subject references in tests.
func IntPtr(i int) *int { return &i }
