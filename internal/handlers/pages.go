package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"pizzacost/internal/catalog"
	"pizzacost/internal/dough"
	"pizzacost/internal/export"
	applog "pizzacost/internal/log"
	"pizzacost/internal/pricing"
	"pizzacost/internal/views/layout"
	"pizzacost/internal/views/pages"
)

var nowFunc = time.Now

func renderPage(w http.ResponseWriter, r *http.Request, status int, title, section string, content templ.Component) {
	th := sessionTheme(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := layout.Layout(title, section, th, content).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err, "title", title)
	}
}

func loadCatalogForPage(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	snapshot, err := loadCatalog(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load catalog for page", "error", err)
		http.Error(w, "The catalog could not be loaded. Please try again.", http.StatusServiceUnavailable)
		return nil, false
	}
	return snapshot, true
}

// PricingPage renders the interactive price calculator.
func PricingPage(w http.ResponseWriter, r *http.Request) {
	req, err := quoteRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snapshot, ok := loadCatalogForPage(w, r)
	if !ok {
		return
	}

	data := pages.PricingPageData{
		Quantity:   req.Quantity,
		BallWeight: req.BallWeight,
		Quote:      compose(r, snapshot, req),
		Overrides:  req.Overrides,
		Return:     selectionQuery(req),
	}
	for _, d := range snapshot.Doughs {
		data.Doughs = append(data.Doughs, pages.Option{Value: d.ID, Label: d.Name, Selected: d.ID == req.DoughID})
	}
	for _, recipe := range snapshot.Recipes {
		data.Recipes = append(data.Recipes, pages.Option{Value: recipe.ID, Label: recipe.Name, Selected: recipe.ID == req.RecipeID})
	}

	renderPage(w, r, http.StatusOK, "Calculadora de precios", "prices", pages.PricingPage(data))
}

// returnTo rebuilds the pricing page URL from the submitted selection.
func returnTo(r *http.Request) string {
	raw := strings.TrimSpace(r.PostFormValue("return"))
	if raw == "" {
		return "/prices"
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "/prices"
	}
	return "/prices?" + values.Encode()
}

// SubmitMarginOverride handles the per-ingredient margin form of the pricing page.
func SubmitMarginOverride(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid submission.", http.StatusBadRequest)
		return
	}
	margin, err := pricing.ParseMargin(r.PostFormValue("margin"))
	if err != nil {
		http.Error(w, "Provide a numeric margin.", http.StatusBadRequest)
		return
	}
	if _, status, err := applyOverride(r, strings.TrimSpace(r.PostFormValue("cost_id")), margin); err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// SubmitMarginReset handles the reset form of the pricing page.
func SubmitMarginReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid submission.", http.StatusBadRequest)
		return
	}
	if err := storeOverrides(r.Context(), pricing.Overrides{}); err != nil {
		applog.Error(r.Context(), "failed to reset margin overrides", "error", err)
		http.Error(w, "The margins could not be reset.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// DoughsPage lists doughs with their baker's percentages.
func DoughsPage(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := loadCatalogForPage(w, r)
	if !ok {
		return
	}

	summaries := make([]pages.DoughSummary, 0, len(snapshot.Doughs))
	for _, d := range snapshot.Doughs {
		summary := pages.DoughSummary{
			ID:         d.ID,
			Name:       d.Name,
			BallWeight: d.EffectiveBallWeight(settings.DefaultBallWeight),
		}
		percentages, err := dough.BakerPercentages(d, snapshot)
		if err != nil {
			applog.Debug(r.Context(), "dough percentages unavailable", "dough", d.ID, "error", err)
		}
		for _, p := range percentages {
			summary.Percentages = append(summary.Percentages, pages.PercentageRow{
				Name:       snapshot.CostName(p.CostID, dough.UnknownName),
				Percentage: p.Percentage,
			})
		}
		summaries = append(summaries, summary)
	}

	renderPage(w, r, http.StatusOK, "Masas", "doughs", pages.DoughsPage(summaries))
}

// BatchSheetPage renders the kitchen batch sheet for a dough.
func BatchSheetPage(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := loadCatalogForPage(w, r)
	if !ok {
		return
	}
	d, ok := snapshot.Dough(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "The selected dough no longer exists.", http.StatusNotFound)
		return
	}
	unitWeight, count, err := batchParameters(r, d)
	if err != nil {
		http.Error(w, "Provide a positive ball weight and count.", http.StatusBadRequest)
		return
	}

	batch := scaleBatch(r, snapshot, d, unitWeight, count)
	data := pages.BatchSheetData{
		DoughID:     d.ID,
		DoughName:   d.Name,
		UnitWeight:  unitWeight,
		UnitCount:   count,
		TotalWeight: batch.TotalWeight,
		RunDate:     nowFunc(),
		Ingredients: batch.Ingredients,
	}
	renderPage(w, r, http.StatusOK, "Hoja de producción: "+d.Name, "doughs", pages.BatchSheet(data))
}

// BatchWorkbook returns a scaled dough batch as an Excel workbook.
func BatchWorkbook(w http.ResponseWriter, r *http.Request) {
	snapshot, d, ok := selectedDough(w, r)
	if !ok {
		return
	}
	unitWeight, count, err := batchParameters(r, d)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	batch := scaleBatch(r, snapshot, d, unitWeight, count)
	data, err := export.Batch(d.Name, batch.Ingredients)
	if err != nil {
		applog.Error(r.Context(), "failed to export batch", "error", err, "dough", d.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to export batch")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="masa.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		applog.Error(r.Context(), "failed to write batch export", "error", err)
	}
}
