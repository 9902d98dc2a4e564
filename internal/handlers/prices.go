package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzacost/internal/catalog"
	"pizzacost/internal/export"
	applog "pizzacost/internal/log"
	"pizzacost/internal/pricing"
	"pizzacost/models"
)

var (
	errNoSession       = errors.New("session storage is not configured")
	errInvalidQuantity = errors.New("quantity must be a positive number")
	errInvalidWeight   = errors.New("ball_weight must be a non-negative number")
)

type marginRequest struct {
	Margin *float64 `json:"margin"`
}

type overridesResponse struct {
	Overrides pricing.Overrides `json:"overrides"`
}

// quoteRequest reads the selection from the query string. Quantity defaults to 1 and a
// zero ball weight selects the dough's own.
func quoteRequest(r *http.Request) (pricing.Request, error) {
	query := r.URL.Query()
	quantity, ok := queryFloat(r, "quantity", 1)
	if !ok || quantity <= 0 {
		return pricing.Request{}, errInvalidQuantity
	}
	ballWeight, ok := queryFloat(r, "ball_weight", 0)
	if !ok {
		return pricing.Request{}, errInvalidWeight
	}
	return pricing.Request{
		DoughID:    strings.TrimSpace(query.Get("dough_id")),
		RecipeID:   strings.TrimSpace(query.Get("recipe_id")),
		Quantity:   quantity,
		BallWeight: ballWeight,
		Overrides:  sessionOverrides(r.Context()),
	}, nil
}

func selectionQuery(req pricing.Request) string {
	values := url.Values{}
	if req.DoughID != "" {
		values.Set("dough_id", req.DoughID)
	}
	if req.RecipeID != "" {
		values.Set("recipe_id", req.RecipeID)
	}
	values.Set("quantity", fmt.Sprint(req.Quantity))
	if req.BallWeight > 0 {
		values.Set("ball_weight", fmt.Sprint(req.BallWeight))
	}
	return values.Encode()
}

func compose(r *http.Request, snapshot *catalog.Catalog, req pricing.Request) pricing.Quote {
	started := time.Now()
	quote := pricing.NewComposer(snapshot, settings).Quote(req)
	recorder.Observe(r.Context(), "quote", len(quote.Warnings) == 0, time.Since(started))
	recorder.QuoteComputed(quote.HasSelection())
	for _, warning := range quote.Warnings {
		applog.Debug(r.Context(), "quote warning", "warning", warning)
	}
	if quote.DoughIncomputable {
		recorder.DoughIncomputable()
	}
	return quote
}

// Prices returns the quote for the selection in the query string.
func Prices(w http.ResponseWriter, r *http.Request) {
	req, err := quoteRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	snapshot, err := loadCatalog(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compose(r, snapshot, req))
}

// ExportPrices returns the quote as an Excel workbook.
func ExportPrices(w http.ResponseWriter, r *http.Request) {
	req, err := quoteRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	snapshot, err := loadCatalog(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	quote := compose(r, snapshot, req)

	title := "Cotización"
	if recipe, ok := snapshot.Recipe(req.RecipeID); ok {
		title = recipe.Name
	}
	data, err := export.Quote(title, quote)
	if err != nil {
		applog.Error(r.Context(), "failed to export quote", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to export quote")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="cotizacion.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		applog.Error(r.Context(), "failed to write quote export", "error", err)
	}
}

// MarginOverrides lists the overrides held in the caller's session.
func MarginOverrides(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, overridesResponse{Overrides: sessionOverrides(r.Context())})
}

// SetMarginOverride stores a hand-set margin for one cost in the caller's session.
func SetMarginOverride(w http.ResponseWriter, r *http.Request) {
	costID := strings.TrimSpace(chi.URLParam(r, "costId"))
	var payload marginRequest
	if err := decodeJSON(r, &payload); err != nil || payload.Margin == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	overrides, status, err := applyOverride(r, costID, *payload.Margin)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, overridesResponse{Overrides: overrides})
}

func applyOverride(r *http.Request, costID string, margin float64) (pricing.Overrides, int, error) {
	if margin < 0 {
		return nil, http.StatusBadRequest, errors.New("margin must not be negative")
	}
	if database == nil {
		return nil, http.StatusServiceUnavailable, errors.New("service unavailable")
	}
	if err := exists(database.WithContext(r.Context()), &models.Cost{}, costID); err != nil {
		if errors.Is(err, errMissingReference) {
			return nil, http.StatusNotFound, errors.New("cost not found")
		}
		applog.Error(r.Context(), "failed to check cost", "error", err, "costId", costID)
		return nil, http.StatusInternalServerError, errors.New("unable to load cost")
	}

	overrides := sessionOverrides(r.Context())
	overrides.Set(costID, margin)
	if err := storeOverrides(r.Context(), overrides); err != nil {
		applog.Error(r.Context(), "failed to store margin override", "error", err)
		return nil, http.StatusInternalServerError, errors.New("unable to store margin")
	}
	applog.Debug(r.Context(), "margin override set", "costId", costID, "margin", margin)
	return overrides, http.StatusOK, nil
}

// ResetMarginOverrides clears every override in the caller's session.
func ResetMarginOverrides(w http.ResponseWriter, r *http.Request) {
	if err := storeOverrides(r.Context(), pricing.Overrides{}); err != nil {
		applog.Error(r.Context(), "failed to reset margin overrides", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to reset margins")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
