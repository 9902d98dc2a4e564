package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizzacost/internal/db/mock"
	"pizzacost/internal/handlers"
	"pizzacost/internal/metrics"
	"pizzacost/internal/pricing"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	db, err := mock.Open(context.Background(), "file:server-"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open mock database: %v", err)
	}
	srv, err := New(Config{Addr: ":0", Database: db})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil, pricing.Settings{}, nil)
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return srv.Handler()
}

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter(metrics.New())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestRouterServesRoutes(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/costs", http.StatusOK},
		{http.MethodGet, "/api/cost-types", http.StatusOK},
		{http.MethodGet, "/api/units", http.StatusOK},
		{http.MethodGet, "/api/doughs", http.StatusOK},
		{http.MethodGet, "/api/doughs/" + mock.DoughNapolitana, http.StatusOK},
		{http.MethodGet, "/api/doughs/" + mock.DoughNapolitana + "/percentages", http.StatusOK},
		{http.MethodGet, "/api/doughs/" + mock.DoughNapolitana + "/batch?count=3", http.StatusOK},
		{http.MethodGet, "/api/recipes", http.StatusOK},
		{http.MethodGet, "/api/recipe-types", http.StatusOK},
		{http.MethodGet, "/api/margins", http.StatusOK},
		{http.MethodGet, "/api/deliveries", http.StatusOK},
		{http.MethodGet, "/api/consumptions", http.StatusOK},
		{http.MethodGet, "/api/units/missing", http.StatusNotFound},
		{http.MethodGet, "/api/prices?recipe_id=" + mock.RecipeMuzzarella, http.StatusOK},
		{http.MethodGet, "/api/prices/margins", http.StatusOK},
		{http.MethodDelete, "/api/prices/margins", http.StatusNoContent},
		{http.MethodGet, "/prices", http.StatusOK},
		{http.MethodGet, "/doughs", http.StatusOK},
		{http.MethodGet, "/doughs/" + mock.DoughNapolitana + "/batch-sheet", http.StatusOK},
		{http.MethodGet, "/", http.StatusSeeOther},
		{http.MethodPost, "/api/costs/" + mock.CostFlour, http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/nothing", http.StatusNotFound},
	}

	for _, tc := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, rr.Code)
		}
	}
}

func TestRouterCopiesDough(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/doughs/"+mock.DoughNapolitana+"/copy", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var copied struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &copied); err != nil {
		t.Fatalf("failed to decode copy: %v", err)
	}
	if copied.Name != "Napolitana (Copy)" {
		t.Fatalf("unexpected copy name %q", copied.Name)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/doughs/"+copied.ID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected the copy to be retrievable, got %d", rr.Code)
	}
}

func TestRouterCalculatesDough(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"weightPerUnit":250,"quantity":4,"ingredients":[{"costId":"cost-flour","bakerPercentage":100}]}`
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/dough-calculator", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"flourWeight":1000`) {
		t.Fatalf("unexpected calculator response %s", rr.Body.String())
	}
}
