package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopgraph-backend/internal/data/graph"
	"github.com/yungbote/shopgraph-backend/internal/domain"
	pkgerrors "github.com/yungbote/shopgraph-backend/internal/pkg/errors"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
)

type fakeRecommender struct {
	lastCustomerID int64
	lastProductID  int64
	lastLimit      int
	result         []domain.Recommendation
	err            error
}

func (f *fakeRecommender) RecommendForCustomer(_ context.Context, customerID int64, limit int) ([]domain.Recommendation, error) {
	f.lastCustomerID = customerID
	f.lastLimit = limit
	if err := graph.ValidateLimit(limit); err != nil {
		return nil, err
	}
	return f.result, f.err
}

func (f *fakeRecommender) SimilarProducts(_ context.Context, productID int64, limit int) ([]domain.Recommendation, error) {
	f.lastProductID = productID
	f.lastLimit = limit
	if err := graph.ValidateLimit(limit); err != nil {
		return nil, err
	}
	return f.result, f.err
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func newTestRouter(t *testing.T, reco *fakeRecommender, pinger *fakePinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	router := gin.New()
	health := NewHealthHandler(pinger)
	recoHandler := NewRecommendationHandler(reco, log)
	router.GET("/", health.Root)
	router.GET("/health", health.HealthCheck)
	router.GET("/recommendations/:customerId", recoHandler.Recommendations)
	router.GET("/similar/:productId", recoHandler.Similar)
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthOK(t *testing.T) {
	router := newTestRouter(t, &fakeRecommender{}, &fakePinger{})
	w := doGet(router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", body)
	}
}

func TestHealthReportsErrorStructurally(t *testing.T) {
	router := newTestRouter(t, &fakeRecommender{}, &fakePinger{err: errors.New("store down")})
	w := doGet(router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health must not surface backend failure as a status code, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "error" || body["detail"] == "" {
		t.Fatalf("expected structural error report, got %v", body)
	}
}

func TestRecommendationsDefaultLimit(t *testing.T) {
	reco := &fakeRecommender{}
	router := newTestRouter(t, reco, &fakePinger{})
	w := doGet(router, "/recommendations/42")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if reco.lastCustomerID != 42 || reco.lastLimit != graph.DefaultLimit {
		t.Fatalf("expected id=42 limit=%d, got id=%d limit=%d",
			graph.DefaultLimit, reco.lastCustomerID, reco.lastLimit)
	}
}

func TestRecommendationsLimitOutOfRangeIsClientError(t *testing.T) {
	router := newTestRouter(t, &fakeRecommender{}, &fakePinger{})
	for _, path := range []string{
		"/recommendations/1?limit=0",
		"/recommendations/1?limit=51",
		"/similar/1?limit=0",
		"/similar/1?limit=51",
	} {
		w := doGet(router, path)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestRecommendationsLimitEdgesAccepted(t *testing.T) {
	reco := &fakeRecommender{}
	router := newTestRouter(t, reco, &fakePinger{})
	for _, path := range []string{"/recommendations/1?limit=1", "/recommendations/1?limit=50"} {
		w := doGet(router, path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRecommendationsBadInputs(t *testing.T) {
	router := newTestRouter(t, &fakeRecommender{}, &fakePinger{})
	for _, path := range []string{
		"/recommendations/abc",
		"/similar/abc",
		"/recommendations/1?limit=abc",
	} {
		w := doGet(router, path)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestUnknownIDReturnsEmptyArrayNotNull(t *testing.T) {
	reco := &fakeRecommender{result: nil}
	router := newTestRouter(t, reco, &fakePinger{})
	w := doGet(router, "/recommendations/999999")
	if w.Code != http.StatusOK {
		t.Fatalf("unknown id must not be an error, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestBackendFailureIsIsolatedPerRequest(t *testing.T) {
	reco := &fakeRecommender{err: pkgerrors.ErrBackend}
	router := newTestRouter(t, reco, &fakePinger{})
	w := doGet(router, "/similar/1")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var envelope map[string]map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope["error"]["code"] != "backend_unavailable" {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestSimilarResultsPassThrough(t *testing.T) {
	reco := &fakeRecommender{result: []domain.Recommendation{
		{ProductID: 7, ProductName: "Widget", Score: 3},
	}}
	router := newTestRouter(t, reco, &fakePinger{})
	w := doGet(router, "/similar/1?limit=10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out []domain.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].ProductID != 7 || out[0].ProductName != "Widget" || out[0].Score != 3 {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if reco.lastProductID != 1 || reco.lastLimit != 10 {
		t.Fatalf("params not forwarded: id=%d limit=%d", reco.lastProductID, reco.lastLimit)
	}
}
