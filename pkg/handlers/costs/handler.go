package costs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/handlers/render"
	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/analytics"
)

const defaultContributorLimit = 5

type Handler struct {
	costs analytics.CostManager
}

func NewHandler(costs analytics.CostManager) *Handler {
	return &Handler{costs: costs}
}

func (h *Handler) GetCostSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseCostFilter(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	summary, err := h.costs.GetCostSummary(ctx, filter)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	render.JSON(ctx, w, http.StatusOK, adapters.MapCostSummaryDomainToApi(*summary))
}

func (h *Handler) GetCostTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseCostFilter(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	opts, err := parseAggregationOptions(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	points, err := h.costs.GetCostTrends(ctx, filter, opts)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.TrendDataPoint, 0, len(points))
	for _, p := range points {
		response = append(response, adapters.MapTrendDataPointDomainToApi(p))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetTopContributors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseCostFilter(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	groupBy, err := domain.ParseGroupBy(r.URL.Query().Get("group_by"))
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	contributors, err := h.costs.GetTopContributors(ctx, filter, groupBy, limit)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.TopContributor, 0, len(contributors))
	for _, c := range contributors {
		response = append(response, adapters.MapTopContributorDomainToApi(c))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetUntaggedApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseOptionalCostFilter(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	apps, err := h.costs.GetUntaggedApplications(ctx, filter)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	response := make([]api.UntaggedApplication, 0, len(apps))
	for _, a := range apps {
		response = append(response, adapters.MapUntaggedApplicationDomainToApi(a))
	}
	render.JSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetCreators(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseOptionalCostFilter(r)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}

	creators, err := h.costs.GetCreators(ctx, filter)
	if err != nil {
		render.Error(ctx, w, err)
		return
	}
	if creators == nil {
		creators = []string{}
	}
	render.JSON(ctx, w, http.StatusOK, creators)
}

// parseCostFilter decodes the CostFilter query parameters. Dates accept
// RFC 3339 instants and plain dates.
func parseCostFilter(r *http.Request) (domain.CostFilter, error) {
	q := r.URL.Query()

	timeRange, err := domain.ParseTimeRange(q.Get("time_range"))
	if err != nil {
		return domain.CostFilter{}, err
	}

	start, err := parseDateParam(q.Get("start_date"), "start_date")
	if err != nil {
		return domain.CostFilter{}, err
	}
	end, err := parseDateParam(q.Get("end_date"), "end_date")
	if err != nil {
		return domain.CostFilter{}, err
	}

	tagIDs, err := parseIDList(q.Get("tag_ids"), "tag_ids")
	if err != nil {
		return domain.CostFilter{}, err
	}

	return domain.CostFilter{
		TimeRange:    timeRange,
		StartDate:    start,
		EndDate:      end,
		Creator:      q.Get("creator"),
		TagIDs:       tagIDs,
		WorkspaceIDs: splitList(q.Get("workspace_ids")),
	}, nil
}

// parseOptionalCostFilter returns nil when the request carries no filter
// parameters at all.
func parseOptionalCostFilter(r *http.Request) (*domain.CostFilter, error) {
	q := r.URL.Query()
	hasAny := false
	for _, key := range []string{"time_range", "start_date", "end_date", "creator", "tag_ids", "workspace_ids"} {
		if q.Get(key) != "" {
			hasAny = true
			break
		}
	}
	if !hasAny {
		return nil, nil
	}

	filter, err := parseCostFilter(r)
	if err != nil {
		return nil, err
	}
	return &filter, nil
}

func parseAggregationOptions(r *http.Request) (domain.AggregationOptions, error) {
	q := r.URL.Query()

	period, err := domain.ParsePeriod(q.Get("period"))
	if err != nil {
		return domain.AggregationOptions{}, err
	}
	groupBy, err := domain.ParseGroupBy(q.Get("group_by"))
	if err != nil {
		return domain.AggregationOptions{}, err
	}
	return domain.AggregationOptions{Period: period, GroupBy: groupBy}, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultContributorLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, domain.NewValidationError("limit", "limit must be a positive integer")
	}
	return limit, nil
}

func parseDateParam(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(field, "expected an RFC 3339 instant or YYYY-MM-DD date")
}

func parseIDList(raw, field string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(field, "expected a comma-separated list of integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
