package tags

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/handlers/render"
	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/tags"
)

type Handler struct {
	tags tags.Service
}

func NewHandler(tagsService tags.Service) *Handler {
	return &Handler{tags: tagsService}
}

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.tags.ListTags(ctx)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.Tag, 0, len(list))
	for _, t := range list {
		response = append(response, adapters.MapTagDomainToApi(t))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(ctx, w, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	tag, err := h.tags.CreateTag(ctx, req.Name, req.Description, req.Color)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	render.JSON(ctx, w, http.StatusCreated, adapters.MapTagDomainToApi(*tag))
}

func (h *Handler) AssignTag(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.tags.Assign)
}

func (h *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.tags.Remove)
}

func (h *Handler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, applicationID, tagID int64) (domain.MutationResult, error),
) {
	ctx := r.Context()

	var req api.TagAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(ctx, w, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	result, err := op(ctx, req.ApplicationID, req.TagID)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	render.JSON(ctx, w, http.StatusOK, adapters.MapMutationResultDomainToApi(result))
}
