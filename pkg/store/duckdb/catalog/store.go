package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/cost-lens/pkg/models/store"
)

// Store reads the applications and recommendations tables. Applications are
// provisioned externally; recommendations hold static advisory content.
type Store interface {
	ListApplications(ctx context.Context) ([]store.Application, error)
	AddApplication(ctx context.Context, a store.Application) (store.Application, error)
	ListRecommendations(ctx context.Context) ([]store.Recommendation, error)
	AddRecommendation(ctx context.Context, r store.Recommendation) (store.Recommendation, error)
}

type catalogStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &catalogStore{db: db}, nil
}

func (s *catalogStore) ListApplications(ctx context.Context) ([]store.Application, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), creator, workspace_id, created_at, updated_at
		FROM applications
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := make([]store.Application, 0)
	for rows.Next() {
		var a store.Application
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Creator,
			&a.WorkspaceID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (s *catalogStore) AddApplication(ctx context.Context, a store.Application) (store.Application, error) {
	query := `
		INSERT INTO applications (name, description, creator, workspace_id)
		VALUES (?, NULLIF(?, ''), ?, ?)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query, a.Name, a.Description, a.Creator, a.WorkspaceID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return store.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return a, nil
}

func (s *catalogStore) ListRecommendations(ctx context.Context) ([]store.Recommendation, error) {
	query := `
		SELECT id, title, description, potential_savings, priority, category, is_active, created_at
		FROM recommendations
		WHERE is_active
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]store.Recommendation, 0)
	for rows.Next() {
		var r store.Recommendation
		var savings sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &savings,
			&r.Priority, &r.Category, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		if savings.Valid {
			v := savings.Float64
			r.PotentialSavings = &v
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func (s *catalogStore) AddRecommendation(ctx context.Context, r store.Recommendation) (store.Recommendation, error) {
	query := `
		INSERT INTO recommendations (title, description, potential_savings, priority, category, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	var savings sql.NullFloat64
	if r.PotentialSavings != nil {
		savings = sql.NullFloat64{Float64: *r.PotentialSavings, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query, r.Title, r.Description, savings,
		r.Priority, r.Category, r.IsActive).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return store.Recommendation{}, fmt.Errorf("insert recommendation: %w", err)
	}
	return r, nil
}
