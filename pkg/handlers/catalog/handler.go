package catalog

import (
	"net/http"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/handlers/render"
	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/services/catalog"
)

type Handler struct {
	catalog catalog.Service
}

func NewHandler(catalogService catalog.Service) *Handler {
	return &Handler{catalog: catalogService}
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.catalog.ListApplications(ctx)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.Application, 0, len(apps))
	for _, a := range apps {
		response = append(response, adapters.MapApplicationDomainToApi(a))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recs, err := h.catalog.ListRecommendations(ctx)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		response = append(response, adapters.MapRecommendationDomainToApi(rec))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}
