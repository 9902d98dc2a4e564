package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"pizzacost/internal/catalog"
	applog "pizzacost/internal/log"
	"pizzacost/internal/metrics"
	"pizzacost/internal/pricing"
	"pizzacost/internal/rounding"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	settings       pricing.Settings
	recorder       *metrics.Recorder
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB, pricingSettings pricing.Settings, rec *metrics.Recorder) {
	sessionManager = sm
	database = db
	settings = pricingSettings
	recorder = rec
}

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}
	return catalog.Load(ctx, database)
}

// writeCatalogError maps a catalog load failure to a JSON response.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, gorm.ErrInvalidDB) {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	applog.Error(r.Context(), "failed to load catalog", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "unable to load data")
}

// queryFloat parses a query parameter. Blank values return def; invalid, negative or
// non-finite values report ok=false.
func queryFloat(r *http.Request, key string, def float64) (float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || !rounding.IsFinite(value) {
		return 0, false
	}
	return value, true
}
