package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestResolveFilter_NamedRanges(t *testing.T) {
	// Wednesday, mid-quarter, mid-year.
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		timeRange      domain.TimeRange
		expectedStart  time.Time
		expectedNomEnd time.Time
	}{
		{
			name:           "day starts at midnight",
			timeRange:      domain.TimeRangeDay,
			expectedStart:  time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "week starts on Monday",
			timeRange:      domain.TimeRangeWeek,
			expectedStart:  time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "month starts on the 1st",
			timeRange:      domain.TimeRangeMonth,
			expectedStart:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "quarter starts in April",
			timeRange:      domain.TimeRangeQuarter,
			expectedStart:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "year starts on Jan 1",
			timeRange:      domain.TimeRangeYear,
			expectedStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "ytd starts on Jan 1",
			timeRange:      domain.TimeRangeYTD,
			expectedStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "empty range defaults to ytd",
			timeRange:      "",
			expectedStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedNomEnd: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf, err := ResolveFilter(domain.CostFilter{TimeRange: tt.timeRange}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, rf.Window.Start)
			assert.Equal(t, now, rf.Window.End)
			assert.Equal(t, tt.expectedNomEnd, rf.NominalEnd)
		})
	}
}

func TestResolveFilter_CustomRange(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds present", func(t *testing.T) {
		rf, err := ResolveFilter(domain.CostFilter{
			TimeRange: domain.TimeRangeCustom,
			StartDate: datePtr(start),
			EndDate:   datePtr(end),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, start, rf.Window.Start)
		assert.Equal(t, end, rf.Window.End)
		assert.Equal(t, end, rf.NominalEnd)
	})

	t.Run("missing both bounds fails", func(t *testing.T) {
		_, err := ResolveFilter(domain.CostFilter{TimeRange: domain.TimeRangeCustom}, now)
		require.ErrorIs(t, err, domain.ErrMissingCustomBounds)
	})

	t.Run("missing end bound fails", func(t *testing.T) {
		_, err := ResolveFilter(domain.CostFilter{
			TimeRange: domain.TimeRangeCustom,
			StartDate: datePtr(start),
		}, now)
		require.ErrorIs(t, err, domain.ErrMissingCustomBounds)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("inverted bounds fail", func(t *testing.T) {
		_, err := ResolveFilter(domain.CostFilter{
			TimeRange: domain.TimeRangeCustom,
			StartDate: datePtr(end),
			EndDate:   datePtr(start),
		}, now)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestResolveFilter_ExplicitBoundsOverrideNamedRange(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	start := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds override", func(t *testing.T) {
		rf, err := ResolveFilter(domain.CostFilter{
			TimeRange: domain.TimeRangeMonth,
			StartDate: datePtr(start),
			EndDate:   datePtr(end),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, start, rf.Window.Start)
		assert.Equal(t, end, rf.Window.End)
		assert.Equal(t, end, rf.NominalEnd)
	})

	t.Run("start alone overrides, end stays now", func(t *testing.T) {
		rf, err := ResolveFilter(domain.CostFilter{
			TimeRange: domain.TimeRangeMonth,
			StartDate: datePtr(start),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, start, rf.Window.Start)
		assert.Equal(t, now, rf.Window.End)
		// named range keeps its nominal period end
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), rf.NominalEnd)
	})
}

func TestResolveFilter_PreservesConstraints(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	rf, err := ResolveFilter(domain.CostFilter{
		TimeRange:    domain.TimeRangeYTD,
		Creator:      "data-team@company.com",
		TagIDs:       []int64{1, 3},
		WorkspaceIDs: []string{"ws-1"},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "data-team@company.com", rf.Creator)
	assert.Equal(t, []int64{1, 3}, rf.TagIDs)
	assert.Equal(t, []string{"ws-1"}, rf.WorkspaceIDs)
}
