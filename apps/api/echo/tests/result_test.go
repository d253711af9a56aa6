package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	testutil "github.com/Sagar-Ghorade/SmartEdu/tests"
)

func Test_resultApi(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cm", "", user.RoleStudent)
	other := testutil.CreateUser(t, usrRepo, "Other", "other@test.cm", "", user.RoleStudent)
	cls := testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)
	maths := testutil.CreateSubject(t, catRepo, cls.ID, "Maths")
	tst := testutil.CreateTest(t, catRepo, maths.ID, "Unit Test", 80)

	studentToken := getToken(t, student)

	submission := func(testID, marks int) []byte {
		return marchallObj(t, result.NewResult{TestID: testID, MarksObtained: testutil.IntPtr(marks)})
	}

	type extraTest struct {
		wantPercentage string
	}
	tests := []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/api/results", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", method: http.MethodPost, path: "/api/results", token: studentToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"test_id":        "this field is required",
				"marks_obtained": "this field is required",
			}),
		},
		{
			name: "unknown test", method: http.MethodPost, path: "/api/results", token: studentToken,
			body:     submission(99, 50),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Test not found"}),
		},
		{
			name: "marks exceed total", method: http.MethodPost, path: "/api/results", token: studentToken,
			body:     submission(tst.ID, 81),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"marks_obtained": "Marks exceed total marks"}),
		},
		{
			name: "submitted", method: http.MethodPost, path: "/api/results", token: studentToken,
			body:     submission(tst.ID, 68),
			wantCode: http.StatusCreated, extra: extraTest{wantPercentage: "85.00"},
		},
		{
			name: "already submitted", method: http.MethodPost, path: "/api/results", token: studentToken,
			body:     submission(tst.ID, 70),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "Result already submitted"}),
		},
		{
			name: "zero marks allowed", method: http.MethodPost, path: "/api/results", token: getToken(t, other),
			body:     submission(tst.ID, 0),
			wantCode: http.StatusCreated, extra: extraTest{wantPercentage: "0.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if extra, ok := tt.extra.(extraTest); ok {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var res result.Result
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if res.Percentage != extra.wantPercentage {
					t.Errorf("failed! percentage = %q; want %q", res.Percentage, extra.wantPercentage)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("mine", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/results/my", studentToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var mine []result.Info
		if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if len(mine) != 1 {
			t.Fatalf("failed! len = %d; want 1", len(mine))
		}
		if mine[0].TestType != tst.TestType || mine[0].TotalMarks != tst.TotalMarks {
			t.Errorf("failed! test info = %s/%d; want %s/%d", mine[0].TestType, mine[0].TotalMarks, tst.TestType, tst.TotalMarks)
		}
	})
}
