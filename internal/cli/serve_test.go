package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/pickwise/internal/model"
)

type stubRecommender struct {
	result *model.Result
	err    error
	got    model.Request
}

func (s *stubRecommender) Recommend(ctx context.Context, req model.Request) (*model.Result, error) {
	s.got = req
	return s.result, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, handler http.Handler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearch_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", "", "No data provided"},
		{"malformed json", "{", "No data provided"},
		{"missing product", `{"attributes": ["cordless"]}`, "Product name is required"},
		{"blank product", `{"product": "   "}`, "Product name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRecommender{result: &model.Result{}}
			rec := doRequest(t, newRouter(stub, time.Second), http.MethodPost, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			if payload["error"] != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, payload["error"])
			}
		})
	}
}

func TestSearch_Success(t *testing.T) {
	stub := &stubRecommender{result: &model.Result{
		Forum: &model.Recommendation{
			Product:       "Dyson V15 Detect",
			Sources:       []string{"https://reddit.com/r/VacuumCleaners/comments/1"},
			ValidityScore: 4,
		},
	}}

	rec := doRequest(t, newRouter(stub, time.Second), http.MethodPost,
		`{"product": " vacuum cleaner ", "attributes": ["cordless", ""]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.got.Product != "vacuum cleaner" {
		t.Errorf("expected trimmed product, got %q", stub.got.Product)
	}
	if len(stub.got.Attributes) != 1 || stub.got.Attributes[0] != "cordless" {
		t.Errorf("expected blank attributes dropped, got %v", stub.got.Attributes)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !strings.Contains(string(payload["reddit"]), "Dyson V15 Detect") {
		t.Errorf("expected reddit pick in response, got %s", rec.Body.String())
	}
	if string(payload["youtube"]) != "null" {
		t.Errorf("expected null youtube pick, got %s", payload["youtube"])
	}
}

func TestSearch_RecommenderError(t *testing.T) {
	stub := &stubRecommender{err: errors.New("boom")}
	rec := doRequest(t, newRouter(stub, time.Second), http.MethodPost, `{"product": "laptop"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "boom") {
		t.Errorf("expected error message in body, got %s", rec.Body.String())
	}
}

func TestSearch_CORS(t *testing.T) {
	router := newRouter(&stubRecommender{result: &model.Result{}}, time.Second)

	rec := doRequest(t, router, http.MethodOptions, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	router := newRouter(&stubRecommender{}, time.Second)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
