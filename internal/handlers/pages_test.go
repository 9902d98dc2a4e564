package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzacost/internal/db/mock"
	"pizzacost/internal/export"
)

func doughRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/doughs", DoughsPage)
	r.Get("/doughs/{id}/batch-sheet", BatchSheetPage)
	r.Get("/doughs/{id}/batch.xlsx", BatchWorkbook)
	return sessionManager.LoadAndSave(r)
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPricingPageRendersSelection(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	target := "/prices?dough_id=" + mock.DoughNapolitana + "&recipe_id=" + mock.RecipeMuzzarella + "&quantity=2"
	w := serve(pricingRouter(), httptest.NewRequest(http.MethodGet, target, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Calculadora de precios",
		`value="` + mock.DoughNapolitana + `" selected`,
		`value="` + mock.RecipeMuzzarella + `" selected`,
		"Harina 0000",
		"Caja de pizza",
		"/api/prices/export?",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestPricingPageRemembersTheme(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)
	router := pricingRouter()

	w := serve(router, httptest.NewRequest(http.MethodGet, "/prices?theme=harina", nil))
	if !strings.Contains(w.Body.String(), "theme-harina") {
		t.Fatal("expected the requested theme to be applied")
	}
	cookies := w.Result().Cookies()

	w = serve(router, httptest.NewRequest(http.MethodGet, "/prices", nil), cookies...)
	if !strings.Contains(w.Body.String(), "theme-harina") {
		t.Fatal("expected the theme to persist in the session")
	}
}

func TestSubmitMarginOverrideRedirects(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)
	router := pricingRouter()

	form := url.Values{
		"cost_id": {mock.CostSauce},
		"margin":  {"100"},
		"return":  {"recipe_id=" + mock.RecipeMuzzarella + "&quantity=1"},
	}
	w := serve(router, formRequest("/prices/margins", form))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/prices?quantity=1&recipe_id="+mock.RecipeMuzzarella {
		t.Fatalf("unexpected redirect %q", loc)
	}
	cookies := w.Result().Cookies()

	quote := decodeQuote(t, serve(router, httptest.NewRequest(http.MethodGet, "/api/prices?recipe_id="+mock.RecipeMuzzarella, nil), cookies...))
	if quote.PricePerUnit != 2200 {
		t.Fatalf("expected the override to apply, got price %v", quote.PricePerUnit)
	}

	w = serve(router, formRequest("/prices/margins/reset", url.Values{}), cookies...)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/prices" {
		t.Fatalf("unexpected reset response %d %q", w.Code, w.Header().Get("Location"))
	}
	quote = decodeQuote(t, serve(router, httptest.NewRequest(http.MethodGet, "/api/prices?recipe_id="+mock.RecipeMuzzarella, nil), cookies...))
	if quote.PricePerUnit != 2000 {
		t.Fatalf("expected overrides to be cleared, got price %v", quote.PricePerUnit)
	}
}

func TestSubmitMarginOverrideRejectsInvalidMargin(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	form := url.Values{"cost_id": {mock.CostSauce}, "margin": {"mucho"}}
	w := serve(pricingRouter(), formRequest("/prices/margins", form))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestDoughsPage(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	w := serve(doughRouter(), httptest.NewRequest(http.MethodGet, "/doughs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Napolitana", "Harina 0000", "/doughs/" + mock.DoughNapolitana + "/batch-sheet"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestBatchSheetPage(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	original := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = original })

	target := "/doughs/" + mock.DoughNapolitana + "/batch-sheet?unit_weight=250&count=4"
	w := serve(doughRouter(), httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Napolitana", "14/03/2026", "588.9", "batch.xlsx"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected batch sheet to contain %q", want)
		}
	}
}

func TestBatchSheetPageUnknownDough(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	w := serve(doughRouter(), httptest.NewRequest(http.MethodGet, "/doughs/missing/batch-sheet", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestBatchWorkbook(t *testing.T) {
	withTestDatabase(t)
	withTestSessionManager(t)

	w := serve(doughRouter(), httptest.NewRequest(http.MethodGet, "/doughs/"+mock.DoughNapolitana+"/batch.xlsx?count=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Fatal("expected a zip-encoded workbook")
	}
}
