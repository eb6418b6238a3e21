package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/de-tools/cost-lens/pkg/store/databrickssql/pricing"
	"github.com/rs/zerolog"
)

// Store reads billing rows from a Databricks workspace's system.billing.usage
// export. It is the remote side of usage sync; analytics never touches it.
type Store interface {
	GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error)
}

type usageStore struct {
	db           *sql.DB
	pricingStore pricing.Store
}

func NewStore(db *sql.DB, pricingStore pricing.Store) Store {
	return &usageStore{
		db:           db,
		pricingStore: pricingStore,
	}
}

func (u *usageStore) GetUsage(ctx context.Context, startTime, endTime time.Time) ([]store.UsageRecord, error) {
	logger := zerolog.Ctx(ctx)

	query := `
		SELECT
			record_id,
			workspace_id,
			sku_name,
			cloud,
			usage_date,
			usage_unit,
			usage_quantity,
			usage_metadata.app_id AS app_id
		FROM system.billing.usage
		WHERE usage_date >= ?
			AND usage_date < ?
		ORDER BY usage_date`

	rows, err := u.db.QueryContext(ctx, query,
		startTime.Format("2006-01-02"), endTime.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("usage query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close usage query rows")
		}
	}(rows)

	var records []store.UsageRecord
	for rows.Next() {
		var (
			id, workspaceID, sku, cloud, unit string
			appID                             sql.NullString
			usageDate                         time.Time
			qty                               float64
		)
		if err := rows.Scan(&id, &workspaceID, &sku, &cloud, &usageDate,
			&unit, &qty, &appID); err != nil {
			return nil, err
		}

		price := u.pricingStore.GetSkuPrice(ctx, sku)

		metadata := map[string]string{}
		if appID.Valid {
			metadata["app_id"] = appID.String
		}

		records = append(records, store.UsageRecord{
			ID:            id,
			WorkspaceID:   workspaceID,
			SKUName:       sku,
			Cloud:         cloud,
			UsageDate:     usageDate,
			UsageUnit:     unit,
			UsageQuantity: qty,
			UnitPrice:     price.PricePerUnit,
			Metadata:      metadata,
		})
	}

	return records, rows.Err()
}
