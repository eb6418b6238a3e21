package server

import (
	"github.com/de-tools/cost-lens/pkg/handlers/catalog"
	"github.com/de-tools/cost-lens/pkg/handlers/costs"
	"github.com/de-tools/cost-lens/pkg/handlers/tags"
	costlensmiddleware "github.com/de-tools/cost-lens/pkg/server/middleware"
	analyticssvc "github.com/de-tools/cost-lens/pkg/services/analytics"
	catalogsvc "github.com/de-tools/cost-lens/pkg/services/catalog"
	tagssvc "github.com/de-tools/cost-lens/pkg/services/tags"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Costs   analyticssvc.CostManager
	Tags    tagssvc.Service
	Catalog catalogsvc.Service
	Logger  zerolog.Logger
}

type Config struct {
	Dependencies Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	costsHandler := costs.NewHandler(config.Dependencies.Costs)
	tagsHandler := tags.NewHandler(config.Dependencies.Tags)
	catalogHandler := catalog.NewHandler(config.Dependencies.Catalog)

	router := chi.NewRouter()

	router.Use(costlensmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/costs/summary", costsHandler.GetCostSummary)
		r.Get("/costs/trends", costsHandler.GetCostTrends)
		r.Get("/costs/contributors", costsHandler.GetTopContributors)
		r.Get("/applications", catalogHandler.ListApplications)
		r.Get("/applications/untagged", costsHandler.GetUntaggedApplications)
		r.Get("/creators", costsHandler.GetCreators)
		r.Get("/tags", tagsHandler.ListTags)
		r.Post("/tags", tagsHandler.CreateTag)
		r.Post("/tags/assign", tagsHandler.AssignTag)
		r.Post("/tags/remove", tagsHandler.RemoveTag)
		r.Get("/recommendations", catalogHandler.ListRecommendations)
	})

	return router
}
