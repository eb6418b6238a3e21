package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRemoteUsage struct {
	mock.Mock
}

func (m *mockRemoteUsage) GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error) {
	args := m.Called(ctx, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UsageRecord), args.Error(1)
}

type mockLocalUsage struct {
	mock.Mock
}

func (m *mockLocalUsage) Add(ctx context.Context, records []store.UsageRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockLocalUsage) LastUsageDate(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func syncClock() time.Time {
	return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
}

func TestSyncer_Run_EmptyLocalUsesFullWindow(t *testing.T) {
	records := []store.UsageRecord{{ID: "r1"}, {ID: "r2"}}

	remote := new(mockRemoteUsage)
	remote.On("GetUsage", mock.Anything,
		time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC), syncClock()).
		Return(records, nil)

	local := new(mockLocalUsage)
	local.On("LastUsageDate", mock.Anything).Return(nil, nil)
	local.On("Add", mock.Anything, records).Return(nil)

	syncer := NewSyncer(remote, local, 7, syncClock)
	count, err := syncer.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	remote.AssertExpectations(t)
	local.AssertExpectations(t)
}

func TestSyncer_Run_ResumesFromLastUsageDate(t *testing.T) {
	last := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

	remote := new(mockRemoteUsage)
	remote.On("GetUsage", mock.Anything, last, syncClock()).
		Return([]store.UsageRecord{}, nil)

	local := new(mockLocalUsage)
	local.On("LastUsageDate", mock.Anything).Return(&last, nil)
	local.On("Add", mock.Anything, []store.UsageRecord{}).Return(nil)

	syncer := NewSyncer(remote, local, 30, syncClock)
	count, err := syncer.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	remote.AssertExpectations(t)
}

func TestSyncer_Run_RetriesOnceThenSucceeds(t *testing.T) {
	records := []store.UsageRecord{{ID: "r1"}}

	remote := new(mockRemoteUsage)
	remote.On("GetUsage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	remote.On("GetUsage", mock.Anything, mock.Anything, mock.Anything).
		Return(records, nil).Once()

	local := new(mockLocalUsage)
	local.On("LastUsageDate", mock.Anything).Return(nil, nil)
	local.On("Add", mock.Anything, records).Return(nil)

	syncer := NewSyncer(remote, local, 7, syncClock)
	count, err := syncer.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	remote.AssertExpectations(t)
}

func TestSyncer_Run_WrapsRepeatedFailureAsTransient(t *testing.T) {
	remote := new(mockRemoteUsage)
	remote.On("GetUsage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Twice()

	local := new(mockLocalUsage)
	local.On("LastUsageDate", mock.Anything).Return(nil, nil)

	syncer := NewSyncer(remote, local, 7, syncClock)
	_, err := syncer.Run(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
	remote.AssertExpectations(t)
	local.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
