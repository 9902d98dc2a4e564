package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	applog "pizzacost/internal/log"
	"pizzacost/models"
)

type entity[T any] interface {
	*T
	Base() *models.Record
}

// Collection serves CRUD for one persisted collection. Child rows (dough and recipe
// ingredients, delivery items) are replaced wholesale on update.
type Collection[T any, PT entity[T]] struct {
	name     string
	order    string
	preload  string
	childFK  string
	child    any
	prepare  func(PT)
	validate func(*gorm.DB, PT) error
}

// Collections served under /api.
var (
	Costs = &Collection[models.Cost, *models.Cost]{
		name: "cost", order: "product asc", validate: validateCost,
	}
	CostTypes = &Collection[models.CostType, *models.CostType]{
		name: "cost type", order: "name asc", validate: validateCostType,
	}
	Units = &Collection[models.Unit, *models.Unit]{
		name: "unit", order: "name asc", validate: validateUnit,
	}
	Doughs = &Collection[models.Dough, *models.Dough]{
		name: "dough", order: "name asc", preload: "Ingredients",
		child: &models.DoughIngredient{}, childFK: "dough_id",
		prepare: prepareDough, validate: validateDough,
	}
	Recipes = &Collection[models.Recipe, *models.Recipe]{
		name: "recipe", order: "name asc", preload: "Ingredients",
		child: &models.RecipeIngredient{}, childFK: "recipe_id",
		prepare: prepareRecipe, validate: validateRecipe,
	}
	RecipeTypes = &Collection[models.RecipeType, *models.RecipeType]{
		name: "recipe type", order: "name asc", validate: validateRecipeType,
	}
	Margins = &Collection[models.Margin, *models.Margin]{
		name: "margin", order: "cost_id asc", validate: validateMargin,
	}
	Deliveries = &Collection[models.Delivery, *models.Delivery]{
		name: "delivery", order: "recipe_type_id asc", preload: "Items",
		child: &models.DeliveryItem{}, childFK: "delivery_id",
		prepare: prepareDelivery, validate: validateDelivery,
	}
	Consumptions = &Collection[models.Consumption, *models.Consumption]{
		name: "consumption", order: "name asc", validate: validateConsumption,
	}
)

// Routes mounts list/create on "/" and show/update/delete on "/{id}".
func (c *Collection[T, PT]) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/{id}", c.Show)
	r.Put("/{id}", c.Update)
	r.Delete("/{id}", c.Delete)
}

func (c *Collection[T, PT]) query(r *http.Request) *gorm.DB {
	tx := database.WithContext(r.Context())
	if c.preload != "" {
		tx = tx.Preload(c.preload, orderByPosition)
	}
	return tx
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func (c *Collection[T, PT]) available(w http.ResponseWriter, r *http.Request) bool {
	if database == nil {
		applog.Debug(r.Context(), c.name+" request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}

func (c *Collection[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	if !c.available(w, r) {
		return
	}
	results := []T{}
	if err := c.query(r).Order(c.order).Find(&results).Error; err != nil {
		applog.Error(r.Context(), "failed to list "+c.name+"s", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load "+c.name+"s")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (c *Collection[T, PT]) find(w http.ResponseWriter, r *http.Request) (PT, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	var record T
	if err := c.query(r).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, c.name+" not found")
			return nil, false
		}
		applog.Error(r.Context(), "failed to load "+c.name, "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "unable to load "+c.name)
		return nil, false
	}
	return PT(&record), true
}

func (c *Collection[T, PT]) Show(w http.ResponseWriter, r *http.Request) {
	if !c.available(w, r) {
		return
	}
	record, ok := c.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (c *Collection[T, PT]) decode(w http.ResponseWriter, r *http.Request) (PT, bool) {
	var payload T
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid "+c.name+" payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	record := PT(&payload)
	if c.prepare != nil {
		c.prepare(record)
	}
	if c.validate != nil {
		if err := c.validate(database.WithContext(r.Context()), record); err != nil {
			applog.Debug(r.Context(), c.name+" validation failed", "error", err)
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
	}
	return record, true
}

func (c *Collection[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	if !c.available(w, r) {
		return
	}
	record, ok := c.decode(w, r)
	if !ok {
		return
	}
	record.Base().ID = ""

	if err := database.WithContext(r.Context()).Create(record).Error; err != nil {
		applog.Error(r.Context(), "failed to create "+c.name, "error", err)
		writeJSONError(w, http.StatusBadRequest, "unable to create "+c.name)
		return
	}

	applog.Info(r.Context(), c.name+" created", "id", record.Base().ID)
	writeJSON(w, http.StatusCreated, record)
}

func (c *Collection[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	if !c.available(w, r) {
		return
	}
	existing, ok := c.find(w, r)
	if !ok {
		return
	}
	record, ok := c.decode(w, r)
	if !ok {
		return
	}
	record.Base().ID = existing.Base().ID
	record.Base().CreatedAt = existing.Base().CreatedAt

	err := database.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if c.child != nil {
			if err := tx.Where(c.childFK+" = ?", existing.Base().ID).Delete(c.child).Error; err != nil {
				return err
			}
		}
		return tx.Save(record).Error
	})
	if err != nil {
		applog.Error(r.Context(), "failed to update "+c.name, "error", err, "id", existing.Base().ID)
		writeJSONError(w, http.StatusBadRequest, "unable to update "+c.name)
		return
	}

	var reloaded T
	if err := c.query(r).First(&reloaded, "id = ?", existing.Base().ID).Error; err != nil {
		applog.Error(r.Context(), "failed to reload "+c.name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load "+c.name)
		return
	}
	applog.Info(r.Context(), c.name+" updated", "id", existing.Base().ID)
	writeJSON(w, http.StatusOK, reloaded)
}

func (c *Collection[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	if !c.available(w, r) {
		return
	}
	existing, ok := c.find(w, r)
	if !ok {
		return
	}

	err := database.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if c.child != nil {
			if err := tx.Where(c.childFK+" = ?", existing.Base().ID).Delete(c.child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(existing).Error
	})
	if err != nil {
		applog.Error(r.Context(), "failed to delete "+c.name, "error", err, "id", existing.Base().ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete "+c.name)
		return
	}

	applog.Info(r.Context(), c.name+" deleted", "id", existing.Base().ID)
	w.WriteHeader(http.StatusNoContent)
}
