package data

import (
	"context"
	"errors"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/indicator"
	mock_repository "ixbacktest/internal/repository/mocks"
	"ixbacktest/internal/util"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func dates(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func newSeries(t *testing.T, name string, start time.Time, values ...float64) *domain.Series {
	t.Helper()
	s, err := domain.NewSeries(name, dates(start, len(values)), values)
	require.NoError(t, err)
	return s
}

func TestAsset_Get(t *testing.T) {
	ctx := context.Background()
	start := util.NewDate(2021, 1, 4)

	t.Run("provider is hit once per field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		closePx := newSeries(t, domain.FieldClose, start, 1, 2, 3)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).Return(closePx, nil).Times(1)

		a := NewAsset(0, "SPY", repo)
		first, err := a.Get(ctx, domain.FieldClose)
		require.NoError(t, err)
		second, err := a.Get(ctx, domain.FieldClose)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, []float64{1, 2, 3}, second.Values)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).
				Return(nil, domain.FieldNotFoundError{Ticker: "SPY", Field: domain.FieldClose}),
			repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).
				Return(newSeries(t, domain.FieldClose, start, 1), nil),
		)

		a := NewAsset(0, "SPY", repo)
		_, err := a.Get(ctx, domain.FieldClose)
		require.ErrorAs(t, err, &domain.FieldNotFoundError{})
		_, err = a.Get(ctx, domain.FieldClose)
		require.NoError(t, err)
	})
}

func TestAsset_AddIndicator(t *testing.T) {
	ctx := context.Background()
	start := util.NewDate(2021, 1, 4)

	t.Run("resolves declared fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldHigh).Return(newSeries(t, domain.FieldHigh, start, 10, 12), nil)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldLow).Return(newSeries(t, domain.FieldLow, start, 8, 9), nil)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).Return(newSeries(t, domain.FieldClose, start, 9, 11), nil)

		a := NewAsset(0, "SPY", repo)
		require.NoError(t, a.AddIndicator(ctx, "atr", indicator.KindATR))

		ind, ok := a.Indicator("atr")
		require.True(t, ok)
		tr, ok := ind.Get("tr")
		require.True(t, ok)
		require.Equal(t, []float64{2, 3}, tr.Values)
	})

	t.Run("aligns fields with different dates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldHigh).Return(newSeries(t, domain.FieldHigh, start, 10, 12, 13), nil)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldLow).Return(newSeries(t, domain.FieldLow, start, 8, 9), nil)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).Return(newSeries(t, domain.FieldClose, start, 9, 11, 12), nil)

		a := NewAsset(0, "SPY", repo)
		require.NoError(t, a.AddIndicator(ctx, "atr", indicator.KindATR))

		ind, _ := a.Indicator("atr")
		tr, _ := ind.Get("tr")
		require.Equal(t, 3, tr.Len())
		require.Equal(t, 2.0, tr.At(2))
	})

	t.Run("provider names series after the ticker", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldHigh).Return(newSeries(t, "SPY", start, 10, 12), nil).Times(1)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldLow).Return(newSeries(t, "SPY", start, 8, 9), nil).Times(1)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).Return(newSeries(t, "SPY", start, 9, 11), nil).Times(1)

		a := NewAsset(0, "SPY", repo)
		require.NoError(t, a.AddIndicator(ctx, "atr", indicator.KindATR))
		require.NoError(t, a.AddIndicator(ctx, "macd", indicator.KindMACDSignal))
		require.NoError(t, a.AddIndicator(ctx, "rsirange", indicator.KindRSIRange))

		atr, _ := a.Indicator("atr")
		tr, ok := atr.Get("tr")
		require.True(t, ok)
		require.Equal(t, []float64{2, 3}, tr.Values)

		macd, _ := a.Indicator("macd")
		hist, ok := macd.Get("histogram")
		require.True(t, ok)
		require.Equal(t, 2, hist.Len())

		cached, err := a.Get(ctx, domain.FieldClose)
		require.NoError(t, err)
		require.Equal(t, "SPY", cached.Name)
	})

	t.Run("fetch failure leaves no indicator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldHigh).Return(newSeries(t, domain.FieldHigh, start, 10), nil)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldLow).Return(nil, errors.New("connection refused"))

		a := NewAsset(0, "SPY", repo)
		err := a.AddIndicator(ctx, "atr", indicator.KindATR)
		require.Error(t, err)
		_, ok := a.Indicator("atr")
		require.False(t, ok)
	})

	t.Run("unknown kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		a := NewAsset(0, "SPY", repo)
		require.Error(t, a.AddIndicator(ctx, "bb", indicator.Kind("bollinger")))
	})
}

func TestAsset_Price(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockPriceFieldRepository(ctrl)
	start := util.NewDate(2021, 1, 4)
	repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldAdjClose).Return(newSeries(t, domain.FieldAdjClose, start, 10, math.NaN()), nil)

	a := NewAsset(0, "SPY", repo)
	p, ok, err := a.Price(context.Background(), start)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 10.0, p)

	_, ok, err = a.Price(context.Background(), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = a.Price(context.Background(), start.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.False(t, ok)
}
