package pricing

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingStore_GetSkuPrice(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	ctx := context.Background()

	t.Run("memoizes the first lookup", func(t *testing.T) {
		mock.ExpectQuery(`FROM system\.billing\.list_prices`).
			WithArgs("PREMIUM_JOBS_COMPUTE").
			WillReturnRows(sqlmock.NewRows([]string{"default", "currency_code"}).
				AddRow(0.3, "USD"))

		price := s.GetSkuPrice(ctx, "PREMIUM_JOBS_COMPUTE")
		assert.Equal(t, Price{PricePerUnit: 0.3, CurrencyCode: "USD"}, price)

		// Second call must be served from cache, no query expected.
		price = s.GetSkuPrice(ctx, "PREMIUM_JOBS_COMPUTE")
		assert.Equal(t, 0.3, price.PricePerUnit)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sku prices at zero", func(t *testing.T) {
		mock.ExpectQuery(`FROM system\.billing\.list_prices`).
			WithArgs("UNKNOWN_SKU").
			WillReturnRows(sqlmock.NewRows([]string{"default", "currency_code"}))

		price := s.GetSkuPrice(ctx, "UNKNOWN_SKU")
		assert.Equal(t, Price{CurrencyCode: "USD"}, price)
	})
}
