package tags

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/de-tools/cost-lens/pkg/store/duckdb/tag"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service maintains the application<->tag relation. Assign and Remove are
// idempotent: repeating an assignment or removing a missing link still reports
// success. The one failure path is a non-positive id, which mutates nothing.
type Service interface {
	CreateTag(ctx context.Context, name, description, color string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	Assign(ctx context.Context, applicationID, tagID int64) (domain.MutationResult, error)
	Remove(ctx context.Context, applicationID, tagID int64) (domain.MutationResult, error)
}

type service struct {
	store tag.Store
}

func NewService(store tag.Store) Service {
	return &service{store: store}
}

func (s *service) CreateTag(ctx context.Context, name, description, color string) (*domain.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "tag name must not be empty")
	}
	if color != "" && !colorPattern.MatchString(color) {
		return nil, domain.NewValidationError("color",
			fmt.Sprintf("%q is not a 6-digit hex color", color))
	}

	created, err := s.store.Insert(ctx, store.Tag{
		Name:        name,
		Description: description,
		Color:       color,
	})
	if err != nil {
		return nil, err
	}

	t := adapters.MapStoreTagToDomain(created)
	return &t, nil
}

func (s *service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, adapters.MapStoreTagToDomain(row))
	}
	return tags, nil
}

func (s *service) Assign(ctx context.Context, applicationID, tagID int64) (domain.MutationResult, error) {
	if result, ok := validateIDs(applicationID, tagID); !ok {
		return result, nil
	}

	if err := s.store.AssignLink(ctx, applicationID, tagID); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.MutationResult{
		Success: true,
		Message: fmt.Sprintf("tag %d assigned to application %d", tagID, applicationID),
	}, nil
}

func (s *service) Remove(ctx context.Context, applicationID, tagID int64) (domain.MutationResult, error) {
	if result, ok := validateIDs(applicationID, tagID); !ok {
		return result, nil
	}

	if err := s.store.RemoveLink(ctx, applicationID, tagID); err != nil {
		return domain.MutationResult{}, err
	}
	return domain.MutationResult{
		Success: true,
		Message: fmt.Sprintf("tag %d removed from application %d", tagID, applicationID),
	}, nil
}

func validateIDs(applicationID, tagID int64) (domain.MutationResult, bool) {
	if applicationID <= 0 || tagID <= 0 {
		return domain.MutationResult{
			Success: false,
			Message: "application_id and tag_id must be positive",
		}, false
	}
	return domain.MutationResult{}, true
}
