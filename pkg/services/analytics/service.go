package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// SnapshotProvider loads a read-only row snapshot covering a window. A zero
// window means unconstrained. Implementations own the query timeout and the
// single retry the storage boundary is allowed.
type SnapshotProvider interface {
	LoadSnapshot(ctx context.Context, w domain.Window) (*domain.Snapshot, error)
}

type Clock func() time.Time

// CostManager answers the analytical questions over billing usage: spend
// summaries, bucketed trends, ranked top spenders and untagged applications.
type CostManager interface {
	GetCostSummary(ctx context.Context, f domain.CostFilter) (*domain.CostSummary, error)
	GetCostTrends(ctx context.Context, f domain.CostFilter, opts domain.AggregationOptions) ([]domain.TrendDataPoint, error)
	GetTopContributors(ctx context.Context, f domain.CostFilter, by domain.GroupBy, limit int) ([]domain.TopContributor, error)
	GetUntaggedApplications(ctx context.Context, f *domain.CostFilter) ([]domain.UntaggedApplication, error)
	GetCreators(ctx context.Context, f *domain.CostFilter) ([]string, error)
}

type costManager struct {
	snapshots SnapshotProvider
	now       Clock
}

func NewCostManager(snapshots SnapshotProvider, now Clock) CostManager {
	if now == nil {
		now = time.Now
	}
	return &costManager{snapshots: snapshots, now: now}
}

func (m *costManager) GetCostSummary(ctx context.Context, f domain.CostFilter) (*domain.CostSummary, error) {
	rf, js, err := m.load(ctx, f)
	if err != nil {
		return nil, err
	}
	summary := summarize(js, rf)
	return &summary, nil
}

func (m *costManager) GetCostTrends(
	ctx context.Context,
	f domain.CostFilter,
	opts domain.AggregationOptions,
) ([]domain.TrendDataPoint, error) {
	rf, js, err := m.load(ctx, f)
	if err != nil {
		return nil, err
	}
	return aggregateTrends(js, rf, opts), nil
}

func (m *costManager) GetTopContributors(
	ctx context.Context,
	f domain.CostFilter,
	by domain.GroupBy,
	limit int,
) ([]domain.TopContributor, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "limit must be a positive integer")
	}
	rf, js, err := m.load(ctx, f)
	if err != nil {
		return nil, err
	}
	return rankContributors(js, rf, by, limit), nil
}

func (m *costManager) GetUntaggedApplications(
	ctx context.Context,
	f *domain.CostFilter,
) ([]domain.UntaggedApplication, error) {
	if f == nil {
		snap, err := m.snapshots.LoadSnapshot(ctx, domain.Window{})
		if err != nil {
			return nil, err
		}
		return detectUntagged(joinSnapshot(snap), nil), nil
	}

	rf, js, err := m.load(ctx, *f)
	if err != nil {
		return nil, err
	}
	return detectUntagged(js, &rf), nil
}

// GetCreators lists distinct application creators for filter dropdowns,
// narrowed to the filter's workspaces when one is given.
func (m *costManager) GetCreators(ctx context.Context, f *domain.CostFilter) ([]string, error) {
	var workspaces []string
	if f != nil {
		workspaces = f.WorkspaceIDs
	}

	snap, err := m.snapshots.LoadSnapshot(ctx, domain.Window{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var creators []string
	for _, app := range snap.Applications {
		if len(workspaces) > 0 && !containsString(workspaces, app.WorkspaceID) {
			continue
		}
		if _, ok := seen[app.Creator]; ok {
			continue
		}
		seen[app.Creator] = struct{}{}
		creators = append(creators, app.Creator)
	}
	sort.Strings(creators)
	return creators, nil
}

func (m *costManager) load(ctx context.Context, f domain.CostFilter) (domain.ResolvedFilter, *joinedSnapshot, error) {
	rf, err := ResolveFilter(f, m.now())
	if err != nil {
		return domain.ResolvedFilter{}, nil, err
	}
	snap, err := m.snapshots.LoadSnapshot(ctx, rf.Window)
	if err != nil {
		return domain.ResolvedFilter{}, nil, err
	}
	return rf, joinSnapshot(snap), nil
}
