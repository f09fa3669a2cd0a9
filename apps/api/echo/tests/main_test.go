package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/rubiescode/shule/apps/api/echo"
	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/assessment"
	"github.com/rubiescode/shule/core/attendance"
	"github.com/rubiescode/shule/core/schedule"
	"github.com/rubiescode/shule/core/user"
	"github.com/rubiescode/shule/services/email"
	"github.com/rubiescode/shule/storage/document"
	"github.com/rubiescode/shule/tests"
)

var (
	acctRepo user.Repository
	usrSvc   user.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) Server {
	t.Helper()

	// deterministic error payloads
	core.Conf.Debug = false

	// set up document store & repos
	db := testutil.PrepareDB(t)
	acctRepo = document.NewAccountRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc = user.NewService(acctRepo, mailSvc)
	attSvc := attendance.NewService(document.NewAttendanceRepository(db), usrSvc)
	assSvc := assessment.NewService(document.NewAssessmentRepository(db), usrSvc)
	schSvc := schedule.NewService(document.NewScheduleRepository(db), usrSvc)

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         core.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
			AccountSvc:     usrSvc,
			AttendanceSvc:  attSvc,
			AssessmentSvc:  assSvc,
			ScheduleSvc:    schSvc,
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

func getToken(t *testing.T, ident user.Identity) string {
	t.Helper()
	token, err := GenerateToken(GetIdentityClaims(ident))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
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
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
