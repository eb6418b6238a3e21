package sync

import (
	"context"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/rs/zerolog"
)

// RemoteUsage is the row-retrieval collaborator. The syncer owns its single
// retry; deeper retry policy belongs to the remote store, not here.
type RemoteUsage interface {
	GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error)
}

type LocalUsage interface {
	Add(ctx context.Context, records []store.UsageRecord) error
	LastUsageDate(ctx context.Context) (*time.Time, error)
}

type Clock func() time.Time

// Syncer copies a window of billing rows from a remote workspace export into
// the local store. Re-running a window is safe: the local store ignores rows
// it already holds.
type Syncer struct {
	remote     RemoteUsage
	local      LocalUsage
	windowDays int
	now        Clock
}

func NewSyncer(remote RemoteUsage, local LocalUsage, windowDays int, now Clock) *Syncer {
	if windowDays <= 0 {
		windowDays = 30
	}
	if now == nil {
		now = time.Now
	}
	return &Syncer{
		remote:     remote,
		local:      local,
		windowDays: windowDays,
		now:        now,
	}
}

// Run performs one sync pass and returns the number of rows fetched. The
// window starts at the last locally known usage date, or windowDays back when
// the local store is empty.
func (s *Syncer) Run(ctx context.Context) (int, error) {
	logger := zerolog.Ctx(ctx)
	end := s.now()

	start := end.AddDate(0, 0, -s.windowDays)
	last, err := s.local.LastUsageDate(ctx)
	if err != nil {
		return 0, err
	}
	if last != nil && last.After(start) {
		start = *last
	}

	records, err := s.fetch(ctx, start, end)
	if err != nil {
		return 0, err
	}

	if err := s.local.Add(ctx, records); err != nil {
		return 0, err
	}

	logger.Info().
		Int("records", len(records)).
		Time("window_start", start).
		Time("window_end", end).
		Msg("usage sync completed")
	return len(records), nil
}

func (s *Syncer) fetch(ctx context.Context, start, end time.Time) ([]store.UsageRecord, error) {
	records, err := s.remote.GetUsage(ctx, start, end)
	if err == nil {
		return records, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Warn().Err(err).Msg("remote usage fetch failed, retrying once")
	records, err = s.remote.GetUsage(ctx, start, end)
	if err != nil {
		return nil, &domain.TransientError{Op: "fetch remote usage", Err: err}
	}
	return records, nil
}
