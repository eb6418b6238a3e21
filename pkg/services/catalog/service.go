package catalog

import (
	"context"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/catalog"
)

// Service lists the provisioned applications and the stored advisory
// recommendations. Content generation for recommendations lives elsewhere;
// this layer only reads what is persisted.
type Service interface {
	ListApplications(ctx context.Context) ([]domain.Application, error)
	ListRecommendations(ctx context.Context) ([]domain.Recommendation, error)
}

type service struct {
	store catalog.Store
}

func NewService(store catalog.Store) Service {
	return &service{store: store}
}

func (s *service) ListApplications(ctx context.Context) ([]domain.Application, error) {
	rows, err := s.store.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, adapters.MapStoreApplicationToDomain(row))
	}
	return apps, nil
}

func (s *service) ListRecommendations(ctx context.Context) ([]domain.Recommendation, error) {
	rows, err := s.store.ListRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, adapters.MapStoreRecommendationToDomain(row))
	}
	return recs, nil
}
