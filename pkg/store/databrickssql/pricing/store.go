package pricing

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

type Price struct {
	PricePerUnit float64
	CurrencyCode string
}

type Store interface {
	GetSkuPrice(ctx context.Context, sku string) Price
}

type pricingStore struct {
	db *sql.DB

	mu    sync.Mutex
	cache map[string]Price
}

func NewStore(db *sql.DB) Store {
	return &pricingStore{
		db:    db,
		cache: map[string]Price{},
	}
}

// GetSkuPrice resolves the current list price for a SKU, memoizing results for
// the lifetime of the store. Unknown SKUs price at zero.
func (p *pricingStore) GetSkuPrice(ctx context.Context, sku string) Price {
	p.mu.Lock()
	cached, ok := p.cache[sku]
	p.mu.Unlock()
	if ok {
		return cached
	}

	query := `
		SELECT pricing.default, currency_code
		FROM system.billing.list_prices
		WHERE sku_name = ?
		ORDER BY price_start_time DESC
		LIMIT 1`

	var price Price
	err := p.db.QueryRowContext(ctx, query, sku).Scan(&price.PricePerUnit, &price.CurrencyCode)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("sku", sku).Msg("price lookup failed")
		}
		return Price{CurrencyCode: "USD"}
	}

	p.mu.Lock()
	p.cache[sku] = price
	p.mu.Unlock()
	return price
}
