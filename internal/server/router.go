package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pizzacost/internal/handlers"
	applog "pizzacost/internal/log"
	"pizzacost/internal/metrics"
)

func newRouter(recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(recorder.Middleware)

	applog.Debug(context.Background(), "registering http routes")
	r.Get("/healthz", handlers.Health)
	r.Method(http.MethodGet, "/metrics", recorder.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/costs", handlers.Costs.Routes)
		r.Route("/cost-types", handlers.CostTypes.Routes)
		r.Route("/units", handlers.Units.Routes)
		r.Route("/doughs", func(r chi.Router) {
			handlers.Doughs.Routes(r)
			r.Post("/{id}/copy", handlers.CopyDough)
			r.Get("/{id}/percentages", handlers.DoughPercentages)
			r.Get("/{id}/batch", handlers.DoughBatch)
		})
		r.Route("/recipes", handlers.Recipes.Routes)
		r.Route("/recipe-types", handlers.RecipeTypes.Routes)
		r.Route("/margins", handlers.Margins.Routes)
		r.Route("/deliveries", handlers.Deliveries.Routes)
		r.Route("/consumptions", handlers.Consumptions.Routes)
		r.Post("/dough-calculator", handlers.DoughCalculator)

		r.Get("/prices", handlers.Prices)
		r.Get("/prices/export", handlers.ExportPrices)
		r.Get("/prices/margins", handlers.MarginOverrides)
		r.Put("/prices/margins/{costId}", handlers.SetMarginOverride)
		r.Delete("/prices/margins", handlers.ResetMarginOverrides)
	})
	applog.Debug(context.Background(), "route registered", "path", "/api")

	r.Get("/prices", handlers.PricingPage)
	r.Post("/prices/margins", handlers.SubmitMarginOverride)
	r.Post("/prices/margins/reset", handlers.SubmitMarginReset)
	r.Get("/doughs", handlers.DoughsPage)
	r.Get("/doughs/{id}/batch-sheet", handlers.BatchSheetPage)
	r.Get("/doughs/{id}/batch.xlsx", handlers.BatchWorkbook)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/prices", http.StatusSeeOther)
	})
	applog.Debug(context.Background(), "route registered", "path", "/", "html", true)
	return r
}
