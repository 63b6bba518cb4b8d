package repository

import (
	"context"
	"errors"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/util"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const samplePriceCsv = `date,ticker,open,high,low,close,adj_close,volume,dividends,stock_splits,capital_gains
2021-01-05,SPY,10,11,9,10.5,10.4,1000,,,
2021-01-04,SPY,9,10,8,9.5,9.4,900,,,
2021-01-04,QQQ,20,21,19,20.5,,500,,,
2021-01-06,QQQ,21,22,20,,21.4,600,,,
`

func TestCsvPriceRepository_GetPriceField(t *testing.T) {
	repo, err := NewCsvPriceRepositoryFromReader(strings.NewReader(samplePriceCsv))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("sorts dates ascending", func(t *testing.T) {
		s, err := repo.GetPriceField(ctx, "SPY", domain.FieldClose)
		require.NoError(t, err)
		require.Equal(t, []time.Time{util.NewDate(2021, 1, 4), util.NewDate(2021, 1, 5)}, s.Dates)
		require.Equal(t, []float64{9.5, 10.5}, s.Values)
	})

	t.Run("empty cells are NaN", func(t *testing.T) {
		s, err := repo.GetPriceField(ctx, "QQQ", domain.FieldClose)
		require.NoError(t, err)
		require.Equal(t, 20.5, s.At(0))
		require.True(t, math.IsNaN(s.At(1)))
	})

	t.Run("unknown ticker", func(t *testing.T) {
		_, err := repo.GetPriceField(ctx, "IWM", domain.FieldClose)
		fnf := domain.FieldNotFoundError{}
		require.True(t, errors.As(err, &fnf))
		require.Equal(t, "IWM", fnf.Ticker)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := repo.GetPriceField(ctx, "SPY", "vwap")
		require.ErrorAs(t, err, &domain.FieldNotFoundError{})
	})

	t.Run("field without observations", func(t *testing.T) {
		_, err := repo.GetPriceField(ctx, "SPY", domain.FieldDividends)
		require.ErrorAs(t, err, &domain.FieldNotFoundError{})
	})
}

func TestNewCsvPriceRepositoryFromReader(t *testing.T) {
	t.Run("duplicate rows", func(t *testing.T) {
		csv := "date,ticker,close\n2021-01-04,SPY,1\n2021-01-04,SPY,2\n"
		_, err := NewCsvPriceRepositoryFromReader(strings.NewReader(csv))
		require.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		csv := "date,ticker,close\n2021-01-04,SPY,abc\n"
		_, err := NewCsvPriceRepositoryFromReader(strings.NewReader(csv))
		require.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		csv := "date,ticker,close\n01/04/2021,SPY,1\n"
		_, err := NewCsvPriceRepositoryFromReader(strings.NewReader(csv))
		require.Error(t, err)
	})
}
