package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/Sagar-Ghorade/SmartEdu/apps/api/echo"
	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	emailsvc "github.com/Sagar-Ghorade/SmartEdu/services/email"
	inmemdb "github.com/Sagar-Ghorade/SmartEdu/storage/database/inmem"
)

var (
	usrRepo user.Repository
	catRepo catalog.Repository
	enrRepo enrollment.Repository
	payRepo payment.Repository
	resRepo result.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) *Server {
	t.Helper()

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	catRepo = inmemdb.NewCatalogRepository(db)
	enrRepo = inmemdb.NewEnrollmentRepository(db)
	payRepo = inmemdb.NewPaymentRepository(db)
	resRepo = inmemdb.NewResultRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	catalogSvc := catalog.NewService(catRepo)

	core.Conf.TestMode = true

	// set up server
	return NewServer(
		"", /* addr */
		ServerDeps{
			Conf:           core.Conf,
			DisableReqLogs: true,

			UserSvc:    user.NewService(usrRepo, mailSvc, core.Conf),
			CatalogSvc: catalogSvc,
			EnrollSvc:  enrollment.NewService(nil, enrRepo, catRepo),
			PaymentSvc: payment.NewService(nil, payRepo, enrRepo),
			ResultSvc:  result.NewService(nil, resRepo, catRepo),
			ReportSvc:  report.NewService(inmemdb.NewReportRepository(db), nil, nil),
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
