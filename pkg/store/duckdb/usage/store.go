package usage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/store"
)

// Store supports ingestion (Add) and windowed reads over the billing_usage
// table. Add ignores rows already present so a re-synced window is a no-op.
type Store interface {
	Add(ctx context.Context, records []store.UsageRecord) error
	GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error)
	LastUsageDate(ctx context.Context) (*time.Time, error)
}

type usageStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &usageStore{db: db}, nil
}

func (u *usageStore) Add(ctx context.Context, records []store.UsageRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO billing_usage (
			id, workspace_id, sku_name, cloud, usage_date,
			usage_unit, usage_quantity, unit_price, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	stmt, err := u.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		metadata, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			record.ID,
			record.WorkspaceID,
			record.SKUName,
			record.Cloud,
			record.UsageDate,
			record.UsageUnit,
			record.UsageQuantity,
			record.UnitPrice,
			metadata,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

// GetUsage returns rows with usage_date in [startTime, endTime). Zero bounds
// drop the corresponding predicate.
func (u *usageStore) GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error) {
	query := `
		SELECT id, workspace_id, sku_name, cloud, usage_date,
			usage_unit, usage_quantity, unit_price, metadata
		FROM billing_usage`
	var args []interface{}
	if !startTime.IsZero() && !endTime.IsZero() {
		query += ` WHERE usage_date >= ? AND usage_date < ?`
		args = append(args, startTime, endTime)
	}
	query += ` ORDER BY usage_date`

	rows, err := u.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()
	return scanUsageRows(rows)
}

func (u *usageStore) LastUsageDate(ctx context.Context) (*time.Time, error) {
	var latest sql.NullTime
	err := u.db.QueryRowContext(ctx, `SELECT MAX(usage_date) FROM billing_usage`).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("get last usage date: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	t := latest.Time
	return &t, nil
}

func scanUsageRows(rows *sql.Rows) ([]store.UsageRecord, error) {
	records := make([]store.UsageRecord, 0)
	for rows.Next() {
		var (
			id, workspaceID, sku, cloud, unit string
			metadataRaw                       []byte
			qty, price                        float64
			usageDate                         time.Time
		)
		if err := rows.Scan(&id, &workspaceID, &sku, &cloud, &usageDate,
			&unit, &qty, &price, &metadataRaw); err != nil {
			return nil, err
		}
		md := map[string]string{}
		if len(metadataRaw) > 0 {
			_ = json.Unmarshal(metadataRaw, &md)
		}
		records = append(records, store.UsageRecord{
			ID:            id,
			WorkspaceID:   workspaceID,
			SKUName:       sku,
			Cloud:         cloud,
			UsageDate:     usageDate,
			UsageUnit:     unit,
			UsageQuantity: qty,
			UnitPrice:     price,
			Metadata:      md,
		})
	}
	return records, rows.Err()
}
