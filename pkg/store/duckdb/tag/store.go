package tag

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/cost-lens/pkg/models/store"
)

// Store maintains the tags table and the application_tags relation. AssignLink
// and RemoveLink are the atomic insert-ignore-conflict / delete-if-exists
// primitives the idempotent membership semantics rest on.
type Store interface {
	Insert(ctx context.Context, t store.Tag) (store.Tag, error)
	List(ctx context.Context) ([]store.Tag, error)
	AssignLink(ctx context.Context, applicationID, tagID int64) error
	RemoveLink(ctx context.Context, applicationID, tagID int64) error
	ListLinks(ctx context.Context) ([]store.ApplicationTag, error)
}

type tagStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &tagStore{db: db}, nil
}

func (s *tagStore) Insert(ctx context.Context, t store.Tag) (store.Tag, error) {
	query := `
		INSERT INTO tags (name, description, color)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''))
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, t.Name, t.Description, t.Color).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return store.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return t, nil
}

func (s *tagStore) List(ctx context.Context) ([]store.Tag, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), COALESCE(color, ''), created_at
		FROM tags
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]store.Tag, 0)
	for rows.Next() {
		var t store.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *tagStore) AssignLink(ctx context.Context, applicationID, tagID int64) error {
	query := `
		INSERT INTO application_tags (application_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, applicationID, tagID); err != nil {
		return fmt.Errorf("assign link: %w", err)
	}
	return nil
}

func (s *tagStore) RemoveLink(ctx context.Context, applicationID, tagID int64) error {
	query := `DELETE FROM application_tags WHERE application_id = ? AND tag_id = ?`

	if _, err := s.db.ExecContext(ctx, query, applicationID, tagID); err != nil {
		return fmt.Errorf("remove link: %w", err)
	}
	return nil
}

func (s *tagStore) ListLinks(ctx context.Context) ([]store.ApplicationTag, error) {
	query := `SELECT application_id, tag_id, assigned_at FROM application_tags`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := make([]store.ApplicationTag, 0)
	for rows.Next() {
		var l store.ApplicationTag
		if err := rows.Scan(&l.ApplicationID, &l.TagID, &l.AssignedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
