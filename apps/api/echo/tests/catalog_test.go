package tests

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	echoapi "github.com/Sagar-Ghorade/SmartEdu/apps/api/echo"
	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	testutil "github.com/Sagar-Ghorade/SmartEdu/tests"
)

func Test_catalogApi_queryClasses(t *testing.T) {
	app := setup(t)

	path := func(search, sort, order string, page, limit int) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if sort != "" {
			v.Add("sort", sort)
		}
		if order != "" {
			v.Add("order", order)
		}
		if page > 0 {
			v.Add("page", strconv.Itoa(page))
		}
		if limit > 0 {
			v.Add("limit", strconv.Itoa(limit))
		}
		if len(v) == 0 {
			return "/api/classes"
		}
		return "/api/classes?" + v.Encode()
	}

	cls6 := testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)
	cls7 := testutil.CreateClass(t, catRepo, "7th", catalog.BoardCBSE)
	cls8 := testutil.CreateClass(t, catRepo, "8th", catalog.BoardICSE)
	cls9 := testutil.CreateClass(t, catRepo, "9th", catalog.BoardState)
	cls10 := testutil.CreateClass(t, catRepo, "10th", catalog.BoardCBSE)
	cls11 := testutil.CreateClass(t, catRepo, "11th", catalog.BoardCBSE)

	paginated := func(page, limit, total int, classes ...catalog.Class) []byte {
		pages := total / limit
		if total%limit > 0 {
			pages++
		}
		return marchallObj(t, core.Paginated{Page: page, Limit: limit, Total: total, TotalPages: pages, Data: classes})
	}

	tests := []httpTest{
		{
			name: "defaults to page 1 limit 5", path: path("", "", "", 0, 0),
			wantCode: http.StatusOK, wantData: paginated(1, 5, 6, cls6, cls7, cls8, cls9, cls10),
		},
		{
			name: "second page", path: path("", "", "", 2, 5),
			wantCode: http.StatusOK, wantData: paginated(2, 5, 6, cls11),
		},
		{
			name: "search by name", path: path("1", "", "", 0, 0),
			wantCode: http.StatusOK, wantData: paginated(1, 5, 2, cls10, cls11),
		},
		{
			name: "search by board", path: path("ICSE", "", "", 0, 0),
			wantCode: http.StatusOK, wantData: paginated(1, 5, 1, cls8),
		},
		{
			name: "search (unknown)", path: path("lol", "", "", 0, 0),
			wantCode: http.StatusOK, wantData: paginated(1, 5, 0),
		},
		{
			name: "sort by name desc", path: path("", "class_name", "desc", 1, 2),
			wantCode: http.StatusOK, wantData: paginated(1, 2, 6, cls9, cls8),
		},
		{
			name: "unknown sort field falls back to id", path: path("", "lol;drop", "", 1, 2),
			wantCode: http.StatusOK, wantData: paginated(1, 2, 6, cls6, cls7),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_createClass(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cm", "", user.RoleStudent)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cm", "", user.RoleAdmin)
	testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, student), wantCode: http.StatusForbidden,
			body:     marchallObj(t, catalog.NewClass{ClassName: "7th", Board: catalog.BoardCBSE}),
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "required fields", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"class_name": "this field is required",
				"board":      "this field is required",
			}),
		},
		{
			name: "duplicate class", token: getToken(t, admin), wantCode: http.StatusConflict,
			body:     marchallObj(t, catalog.NewClass{ClassName: "6th", Board: catalog.BoardCBSE}),
			wantData: marchallObj(t, httpErr{Error: "Class already exists"}),
		},
		{
			name: "same name other board", token: getToken(t, admin), wantCode: http.StatusCreated,
			body:     marchallObj(t, catalog.NewClass{ClassName: "6th", Board: catalog.BoardICSE}),
			wantData: marchallObj(t, catalog.Class{ID: 2, ClassName: "6th", Board: catalog.BoardICSE}),
		},
		{
			name: "created", token: getToken(t, admin), wantCode: http.StatusCreated,
			body:     marchallObj(t, catalog.NewClass{ClassName: "7th", Board: catalog.BoardCBSE}),
			wantData: marchallObj(t, catalog.Class{ID: 3, ClassName: "7th", Board: catalog.BoardCBSE}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/classes"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_subjectsAndTests(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cm", "", user.RoleAdmin)
	cls := testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)
	maths := testutil.CreateSubject(t, catRepo, cls.ID, "Maths")
	science := testutil.CreateSubject(t, catRepo, cls.ID, "Science")
	unit := testutil.CreateTest(t, catRepo, maths.ID, "Unit Test", 80)

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "list subjects", method: http.MethodGet, path: "/api/subjects/" + strconv.Itoa(cls.ID),
			wantCode: http.StatusOK, wantData: marchallList(t, maths, science),
		},
		{
			name: "list subjects: bad class id", method: http.MethodGet, path: "/api/subjects/lol",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"classId": "must be an integer"}),
		},
		{
			name: "list subjects: unknown class", method: http.MethodGet, path: "/api/subjects/99",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Class not found"}),
		},
		{
			name: "create subject: auth required", method: http.MethodPost, path: "/api/subjects",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "create subject: duplicate", method: http.MethodPost, path: "/api/subjects", token: adminToken,
			body:     marchallObj(t, catalog.NewSubject{ClassID: cls.ID, SubjectName: "Maths"}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "Subject already exists in this class"}),
		},
		{
			name: "create subject", method: http.MethodPost, path: "/api/subjects", token: adminToken,
			body:     marchallObj(t, catalog.NewSubject{ClassID: cls.ID, SubjectName: "English"}),
			wantCode: http.StatusCreated, wantData: marchallObj(t, catalog.Subject{ID: 3, ClassID: cls.ID, SubjectName: "English"}),
		},
		{
			name: "list tests", method: http.MethodGet, path: "/api/tests/" + strconv.Itoa(maths.ID),
			wantCode: http.StatusOK, wantData: marchallList(t, unit),
		},
		{
			name: "list tests: unknown subject", method: http.MethodGet, path: "/api/tests/99",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Subject not found"}),
		},
		{
			name: "create test: duplicate", method: http.MethodPost, path: "/api/tests", token: adminToken,
			body:     marchallObj(t, catalog.NewTest{SubjectID: maths.ID, TestType: "Unit Test", TotalMarks: 100}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "Test type already exists for this subject"}),
		},
		{
			name: "create test", method: http.MethodPost, path: "/api/tests", token: adminToken,
			body:     marchallObj(t, catalog.NewTest{SubjectID: maths.ID, TestType: "Final", TotalMarks: 100}),
			wantCode: http.StatusCreated, wantData: marchallObj(t, catalog.Test{ID: 2, SubjectID: maths.ID, TestType: "Final", TotalMarks: 100}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_fees(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cm", "", user.RoleStudent)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cm", "", user.RoleAdmin)
	cls := testutil.CreateClass(t, catRepo, "6th", catalog.BoardCBSE)
	maths := testutil.CreateSubject(t, catRepo, cls.ID, "Maths")
	subjFee := testutil.CreateFee(t, catRepo, cls.ID, testutil.IntPtr(maths.ID), catalog.FeeTypeIndividual, 1200)
	classFee := testutil.CreateFee(t, catRepo, cls.ID, nil, catalog.FeeTypeClassWise, 2000)

	studentToken := getToken(t, student)
	adminToken := getToken(t, admin)

	computePath := func(classID int, subjectID *int, mode string) string {
		v := make(url.Values)
		v.Add("class_id", strconv.Itoa(classID))
		if subjectID != nil {
			v.Add("subject_id", strconv.Itoa(*subjectID))
		}
		v.Add("mode", mode)
		return "/api/fees/compute?" + v.Encode()
	}

	mathsName := maths.SubjectName
	tests := []httpTest{
		{
			name: "list fees: admin required", method: http.MethodGet, path: "/api/fees", token: studentToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "list fees", method: http.MethodGet, path: "/api/fees", token: adminToken,
			wantCode: http.StatusOK,
			wantData: marchallList(
				t,
				catalog.FeeInfo{Fee: subjFee, ClassName: cls.ClassName, SubjectName: &mathsName},
				catalog.FeeInfo{Fee: classFee, ClassName: cls.ClassName},
			),
		},
		{
			name: "create fee: duplicate", method: http.MethodPost, path: "/api/fees", token: adminToken,
			body:     marchallObj(t, catalog.NewFee{ClassID: cls.ID, SubjectID: testutil.IntPtr(maths.ID), FeeType: catalog.FeeTypeIndividual, FeeAmount: 999}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "Fee already defined for this configuration"}),
		},
		{
			name: "create fee", method: http.MethodPost, path: "/api/fees", token: adminToken,
			body:     marchallObj(t, catalog.NewFee{ClassID: cls.ID, FeeType: catalog.FeeTypeGroup, FeeAmount: 2500}),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, catalog.Fee{ID: 3, ClassID: cls.ID, FeeType: catalog.FeeTypeGroup, FeeAmount: 2500}),
		},
		{
			name: "compute: auth required", method: http.MethodGet, path: computePath(cls.ID, nil, "Individual"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "compute: exact match", method: http.MethodGet, path: computePath(cls.ID, testutil.IntPtr(maths.ID), "Individual"),
			token:    studentToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.ComputeFeeResponse{Resolved: true, Fee: &subjFee}),
		},
		{
			name: "compute: class-wise fallback", method: http.MethodGet, path: computePath(cls.ID, nil, "Individual"),
			token:    studentToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.ComputeFeeResponse{Resolved: true, Fee: &classFee}),
		},
		{
			name: "compute: unresolved", method: http.MethodGet, path: computePath(99, nil, "Group"),
			token:    studentToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, echoapi.ComputeFeeResponse{
				Resolved: false,
				Message:  "No fee configured for this selection. Please contact the admin.",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_estimateFee(t *testing.T) {
	app := setup(t)

	path := func(level int, board string, individual bool, subjects ...string) string {
		v := make(url.Values)
		v.Add("class_level", strconv.Itoa(level))
		v.Add("board", board)
		if individual {
			v.Add("individual", "true")
		}
		for _, s := range subjects {
			v.Add("subject", s)
		}
		return "/api/fees/estimate?" + v.Encode()
	}

	type extraTest struct {
		amount float64
	}
	tests := []httpTest{
		{name: "base bracket", path: path(3, catalog.BoardCBSE, false), wantCode: http.StatusOK, extra: extraTest{amount: 1500}},
		{
			name: "subjects and discount", path: path(9, catalog.BoardCBSE, false, "Maths", "Science", "English"),
			wantCode: http.StatusOK, extra: extraTest{amount: 4000},
		},
		{name: "ICSE markup", path: path(9, catalog.BoardICSE, false, "Maths"), wantCode: http.StatusOK, extra: extraTest{amount: 3850}},
		{name: "individual mode", path: path(11, catalog.BoardState, true), wantCode: http.StatusOK, extra: extraTest{amount: 5400}},
		{name: "level out of range", path: path(13, catalog.BoardCBSE, false), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if extra, ok := tt.extra.(extraTest); ok {
				var respData echoapi.EstimateFeeResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if math.Abs(respData.EstimatedAmount-extra.amount) > 0.01 {
					t.Errorf("failed! estimated amount = %v; want %v", respData.EstimatedAmount, extra.amount)
				}
			}
		})
	}
}
