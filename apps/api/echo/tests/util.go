package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/fluidlab/apps/api/echo"
	"github.com/trezcool/fluidlab/services/metrics"
	"github.com/trezcool/fluidlab/tests"
)

func setup(t *testing.T) (*Server, *testutil.Services) {
	svcs := testutil.NewServices(t, testutil.NewConfig())

	app := NewServer(ServerDeps{
		Conf:           svcs.Conf,
		Logger:         svcs.Logger,
		Metrics:        metricsvc.NewPrometheusMetrics("fluidlab_test"),
		Validate:       svcs.Validate,
		Translator:     svcs.Translator,
		Catalog:        svcs.Catalog,
		LabSvc:         svcs.Lab,
		FlowSvc:        svcs.Flow,
		QuizSvc:        svcs.Quiz,
		AssistantSvc:   svcs.Assistant,
		CertificateSvc: svcs.Certificate,
		DashboardSvc:   svcs.Dashboard,
	})
	t.Cleanup(func() { _ = app.Close() })
	return app, svcs
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do sends a request and decodes the JSON response into out, if given.
func do(t *testing.T, app *Server, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		data = marshallObj(t, body)
	}
	req, rec := newRequest(method, path, data)
	app.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
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

func runHTTPTests(t *testing.T, app *Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
