package snapshot

import (
	"context"
	"time"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/catalog"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/tag"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/usage"
	"github.com/rs/zerolog"
)

const defaultQueryTimeout = 10 * time.Second

// Store assembles read-only snapshots for the analytics layer. Row retrieval
// runs under a bounded timeout and is retried once before the failure surfaces
// as a transient error; no partial snapshot is ever returned.
type Store struct {
	usage        usage.Store
	catalog      catalog.Store
	tags         tag.Store
	queryTimeout time.Duration
}

func NewStore(usageStore usage.Store, catalogStore catalog.Store, tagStore tag.Store) *Store {
	return &Store{
		usage:        usageStore,
		catalog:      catalogStore,
		tags:         tagStore,
		queryTimeout: defaultQueryTimeout,
	}
}

func (s *Store) LoadSnapshot(ctx context.Context, w domain.Window) (*domain.Snapshot, error) {
	snap, err := s.loadOnce(ctx, w)
	if err == nil {
		return snap, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Warn().Err(err).Msg("snapshot load failed, retrying once")
	snap, err = s.loadOnce(ctx, w)
	if err != nil {
		return nil, &domain.TransientError{Op: "load snapshot", Err: err}
	}
	return snap, nil
}

func (s *Store) loadOnce(ctx context.Context, w domain.Window) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	records, err := s.usage.GetUsage(ctx, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	apps, err := s.catalog.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.tags.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Records:      mapRecords(records),
		Applications: mapApplications(apps),
		Tags:         mapTags(tags),
		Links:        mapLinks(links),
	}, nil
}

func mapRecords(rows []store.UsageRecord) []domain.UsageRecord {
	out := make([]domain.UsageRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, adapters.MapStoreUsageRecordToDomain(r))
	}
	return out
}

func mapApplications(rows []store.Application) []domain.Application {
	out := make([]domain.Application, 0, len(rows))
	for _, a := range rows {
		out = append(out, adapters.MapStoreApplicationToDomain(a))
	}
	return out
}

func mapTags(rows []store.Tag) []domain.Tag {
	out := make([]domain.Tag, 0, len(rows))
	for _, t := range rows {
		out = append(out, adapters.MapStoreTagToDomain(t))
	}
	return out
}

func mapLinks(rows []store.ApplicationTag) []domain.ApplicationTagLink {
	out := make([]domain.ApplicationTagLink, 0, len(rows))
	for _, l := range rows {
		out = append(out, adapters.MapStoreApplicationTagToDomain(l))
	}
	return out
}
