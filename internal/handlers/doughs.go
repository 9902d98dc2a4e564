package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"pizzacost/internal/catalog"
	"pizzacost/internal/dough"
	applog "pizzacost/internal/log"
	"pizzacost/internal/rounding"
	"pizzacost/internal/views/pages"
	"pizzacost/models"
)

const incomputableWarning = "the dough has no flour ingredient with a positive quantity"

var (
	errInvalidBatch    = errors.New("unit_weight and count must be positive numbers")
	errBatchOutOfRange = errors.New("unit_weight times count is out of range")
)

type namedPercentage struct {
	CostID          string  `json:"costId"`
	Name            string  `json:"name"`
	BakerPercentage float64 `json:"bakerPercentage"`
}

type percentagesResponse struct {
	DoughID     string            `json:"doughId"`
	Percentages []namedPercentage `json:"percentages"`
	Warning     string            `json:"warning,omitempty"`
}

type batchResponse struct {
	DoughID     string                       `json:"doughId"`
	UnitWeight  float64                      `json:"unitWeight"`
	Count       float64                      `json:"count"`
	TotalWeight float64                      `json:"totalWeight"`
	Ingredients []dough.CalculatedIngredient `json:"ingredients"`
	Warning     string                       `json:"warning,omitempty"`
}

type calculatorRequest struct {
	WeightPerUnit float64             `json:"weightPerUnit"`
	Quantity      float64             `json:"quantity"`
	Ingredients   []dough.FormulaLine `json:"ingredients"`
}

// CopyDough duplicates a dough and its ingredients under a non-conflicting name.
func CopyDough(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var source models.Dough
	if err := database.WithContext(ctx).Preload("Ingredients", orderByPosition).First(&source, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "dough not found")
			return
		}
		applog.Error(ctx, "failed to load dough for copy", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load dough")
		return
	}

	var names []string
	if err := database.WithContext(ctx).Model(&models.Dough{}).Pluck("name", &names).Error; err != nil {
		applog.Error(ctx, "failed to list dough names", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to copy dough")
		return
	}

	duplicate := models.Dough{
		Name:        pages.NextCopiedName(names, source.Name),
		BallWeight:  source.BallWeight,
		Ingredients: make([]models.DoughIngredient, len(source.Ingredients)),
	}
	for i, ingredient := range source.Ingredients {
		duplicate.Ingredients[i] = models.DoughIngredient{
			Position: i,
			CostID:   ingredient.CostID,
			Quantity: ingredient.Quantity,
		}
	}

	if err := database.WithContext(ctx).Create(&duplicate).Error; err != nil {
		applog.Error(ctx, "failed to create dough copy", "error", err, "source", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to copy dough")
		return
	}

	applog.Info(ctx, "dough copied", "source", id, "id", duplicate.ID, "name", duplicate.Name)
	writeJSON(w, http.StatusCreated, duplicate)
}

func selectedDough(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, models.Dough, bool) {
	snapshot, err := loadCatalog(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return nil, models.Dough{}, false
	}
	d, ok := snapshot.Dough(chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "dough not found")
		return nil, models.Dough{}, false
	}
	return snapshot, d, true
}

// DoughPercentages reports the baker's percentage of every ingredient of a dough.
func DoughPercentages(w http.ResponseWriter, r *http.Request) {
	snapshot, d, ok := selectedDough(w, r)
	if !ok {
		return
	}

	started := time.Now()
	percentages, err := dough.BakerPercentages(d, snapshot)
	recorder.Observe(r.Context(), "dough_percentages", err == nil, time.Since(started))

	resp := percentagesResponse{DoughID: d.ID, Percentages: make([]namedPercentage, 0, len(percentages))}
	for _, p := range percentages {
		resp.Percentages = append(resp.Percentages, namedPercentage{
			CostID:          p.CostID,
			Name:            snapshot.CostName(p.CostID, dough.UnknownName),
			BakerPercentage: p.Percentage,
		})
	}
	if len(percentages) == 0 && len(d.Ingredients) > 0 {
		resp.Warning = incomputableWarning
		recorder.DoughIncomputable()
	}
	writeJSON(w, http.StatusOK, resp)
}

func batchParameters(r *http.Request, d models.Dough) (unitWeight, count float64, err error) {
	unitWeight, okWeight := queryFloat(r, "unit_weight", d.EffectiveBallWeight(settings.DefaultBallWeight))
	count, okCount := queryFloat(r, "count", 1)
	if !okWeight || !okCount || unitWeight <= 0 || count <= 0 {
		return 0, 0, errInvalidBatch
	}
	if !rounding.IsFinite(unitWeight * count) {
		return 0, 0, errBatchOutOfRange
	}
	return unitWeight, count, nil
}

func scaleBatch(r *http.Request, snapshot *catalog.Catalog, d models.Dough, unitWeight, count float64) batchResponse {
	started := time.Now()
	ingredients, err := dough.Scale(d, unitWeight, count, snapshot)
	recorder.Observe(r.Context(), "dough_scale", err == nil, time.Since(started))

	resp := batchResponse{DoughID: d.ID, UnitWeight: unitWeight, Count: count, Ingredients: ingredients}
	total := 0.0
	for _, ingredient := range ingredients {
		total += ingredient.Quantity
	}
	resp.TotalWeight = rounding.Round(total, 1)
	if len(ingredients) == 0 && len(d.Ingredients) > 0 {
		resp.Warning = incomputableWarning
		recorder.DoughIncomputable()
	}
	return resp
}

// DoughBatch scales a dough to count balls of unit_weight grams.
func DoughBatch(w http.ResponseWriter, r *http.Request) {
	snapshot, d, ok := selectedDough(w, r)
	if !ok {
		return
	}
	unitWeight, count, err := batchParameters(r, d)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scaleBatch(r, snapshot, d, unitWeight, count))
}

// DoughCalculator weighs a formula authored in baker's percentages. Without ingredients it
// starts from the first flour cost at 100 %.
func DoughCalculator(w http.ResponseWriter, r *http.Request) {
	var payload calculatorRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.WeightPerUnit <= 0 || payload.Quantity <= 0 {
		writeJSONError(w, http.StatusBadRequest, "weightPerUnit and quantity must be positive")
		return
	}
	if !rounding.IsFinite(payload.WeightPerUnit * payload.Quantity) {
		writeJSONError(w, http.StatusBadRequest, "weightPerUnit times quantity is out of range")
		return
	}
	for i, line := range payload.Ingredients {
		if strings.TrimSpace(line.CostID) == "" || line.BakerPercentage < 0 {
			writeJSONError(w, http.StatusBadRequest, "ingredients require a costId and a non-negative bakerPercentage")
			applog.Debug(r.Context(), "invalid calculator line", "index", i)
			return
		}
	}

	snapshot, err := loadCatalog(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	lines := payload.Ingredients
	if len(lines) == 0 {
		lines = dough.DefaultFormula(snapshot.Costs)
	}
	writeJSON(w, http.StatusOK, dough.FromPercentages(payload.WeightPerUnit, payload.Quantity, lines, snapshot))
}
