package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	testutil "github.com/Sagar-Ghorade/SmartEdu/tests"
)

func Test_paymentApi(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cm", "", user.RoleStudent)
	other := testutil.CreateUser(t, usrRepo, "Other", "other@test.cm", "", user.RoleStudent)
	cls := testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)
	enr := testutil.CreateEnrollment(t, enrRepo, student.ID, cls.ID, nil)

	studentToken := getToken(t, student)

	type extraTest struct {
		paid bool
	}
	tests := []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/api/payments", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", method: http.MethodPost, path: "/api/payments", token: studentToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"enrollment_id": "this field is required",
				"amount_paid":   "this field is required",
			}),
		},
		{
			name: "unknown enrollment", method: http.MethodPost, path: "/api/payments", token: studentToken,
			body:     marchallObj(t, payment.NewPayment{EnrollmentID: 99, AmountPaid: 2000}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Enrollment not found"}),
		},
		{
			name: "foreign enrollment", method: http.MethodPost, path: "/api/payments", token: getToken(t, other),
			body:     marchallObj(t, payment.NewPayment{EnrollmentID: enr.ID, AmountPaid: 2000}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Enrollment not found"}),
		},
		{
			name: "paid", method: http.MethodPost, path: "/api/payments", token: studentToken,
			body:     marchallObj(t, payment.NewPayment{EnrollmentID: enr.ID, AmountPaid: 2000}),
			wantCode: http.StatusCreated, extra: extraTest{paid: true},
		},
		{
			name: "already paid", method: http.MethodPost, path: "/api/payments", token: studentToken,
			body:     marchallObj(t, payment.NewPayment{EnrollmentID: enr.ID, AmountPaid: 2000}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "Payment already completed"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if extra, ok := tt.extra.(extraTest); ok && extra.paid {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var pay payment.Payment
				if err := json.Unmarshal(rec.Body.Bytes(), &pay); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if pay.PaymentStatus != payment.StatusCompleted {
					t.Errorf("failed! status = %q; want %q", pay.PaymentStatus, payment.StatusCompleted)
				}
				if pay.Reference == "" {
					t.Error("failed! empty payment reference")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("mine", func(t *testing.T) {
		tt := httpTest{token: studentToken, wantCode: http.StatusOK}
		req, rec := newAuthRequest(http.MethodGet, "/api/payments/my", tt.token)
		app.ServeHTTP(rec, req)

		if rec.Code != tt.wantCode {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
		}
		var mine []payment.Info
		if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if len(mine) != 1 {
			t.Fatalf("failed! len = %d; want 1", len(mine))
		}
		if mine[0].ClassID != cls.ID {
			t.Errorf("failed! class id = %d; want %d", mine[0].ClassID, cls.ID)
		}
	})

	t.Run("none", func(t *testing.T) {
		tt := httpTest{token: getToken(t, other), wantCode: http.StatusOK, wantData: marchallList(t)}
		req, rec := newAuthRequest(http.MethodGet, "/api/payments/my", tt.token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
