package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSnapshotProvider struct {
	mock.Mock
}

func (m *mockSnapshotProvider) LoadSnapshot(ctx context.Context, w domain.Window) (*domain.Snapshot, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
}

func TestCostManager_GetCostSummary(t *testing.T) {
	provider := new(mockSnapshotProvider)
	provider.On("LoadSnapshot", mock.Anything, domain.Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   fixedClock(),
	}).Return(testSnapshot(), nil)

	manager := NewCostManager(provider, fixedClock)
	summary, err := manager.GetCostSummary(context.Background(), domain.CostFilter{
		TimeRange: domain.TimeRangeYTD,
	})

	require.NoError(t, err)
	assert.Equal(t, 54.0, summary.TotalSpend)
	provider.AssertExpectations(t)
}

func TestCostManager_ValidationErrorSkipsStorage(t *testing.T) {
	provider := new(mockSnapshotProvider)
	manager := NewCostManager(provider, fixedClock)

	_, err := manager.GetCostSummary(context.Background(), domain.CostFilter{
		TimeRange: domain.TimeRangeCustom,
	})

	require.ErrorIs(t, err, domain.ErrMissingCustomBounds)
	provider.AssertNotCalled(t, "LoadSnapshot", mock.Anything, mock.Anything)
}

func TestCostManager_PropagatesTransientErrors(t *testing.T) {
	provider := new(mockSnapshotProvider)
	provider.On("LoadSnapshot", mock.Anything, mock.Anything).
		Return(nil, &domain.TransientError{Op: "load snapshot", Err: errors.New("timeout")})

	manager := NewCostManager(provider, fixedClock)
	_, err := manager.GetCostTrends(context.Background(), domain.CostFilter{}, domain.AggregationOptions{
		Period:  domain.PeriodMonthly,
		GroupBy: domain.GroupByApp,
	})

	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
}

func TestCostManager_GetTopContributors_RejectsNonPositiveLimit(t *testing.T) {
	provider := new(mockSnapshotProvider)
	manager := NewCostManager(provider, fixedClock)

	_, err := manager.GetTopContributors(context.Background(), domain.CostFilter{}, domain.GroupByApp, 0)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	provider.AssertNotCalled(t, "LoadSnapshot", mock.Anything, mock.Anything)
}

func TestCostManager_GetUntaggedApplications_NilFilterLoadsEverything(t *testing.T) {
	provider := new(mockSnapshotProvider)
	provider.On("LoadSnapshot", mock.Anything, domain.Window{}).Return(testSnapshot(), nil)

	manager := NewCostManager(provider, fixedClock)
	untagged, err := manager.GetUntaggedApplications(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, untagged, 1)
	assert.Equal(t, int64(3), untagged[0].ID)
	provider.AssertExpectations(t)
}

func TestCostManager_GetCreators(t *testing.T) {
	provider := new(mockSnapshotProvider)
	provider.On("LoadSnapshot", mock.Anything, domain.Window{}).Return(testSnapshot(), nil)

	manager := NewCostManager(provider, fixedClock)

	t.Run("distinct and sorted", func(t *testing.T) {
		creators, err := manager.GetCreators(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"data-team@company.com", "ml-team@company.com"}, creators)
	})

	t.Run("narrowed by workspace", func(t *testing.T) {
		creators, err := manager.GetCreators(context.Background(), &domain.CostFilter{
			WorkspaceIDs: []string{"ws-2"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"data-team@company.com"}, creators)
	})
}
