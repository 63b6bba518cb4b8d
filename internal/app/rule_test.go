package app

import (
	"context"
	"ixbacktest/internal/domain"
	mock_repository "ixbacktest/internal/repository/mocks"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func signalStrategy(t *testing.T, repo *mock_repository.MockPriceFieldRepository, sig *domain.Series) *Strategy {
	t.Helper()
	s, err := NewStrategy(context.Background(), StrategyInput{
		Name:                 "signal",
		Tickers:              []string{"SPY"},
		Principal:            decimal.NewFromInt(100),
		Rule:                 SignalRule{Signal: sig, MinLot: 2},
		PriceFieldRepository: repo,
	})
	require.NoError(t, err)
	return s
}

func TestSignalRule(t *testing.T) {
	ctx := context.Background()
	days := testDates(5)

	t.Run("trades on the sign and skips missing dates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {10, 10, 10, 10, 10}})
		sig, err := domain.NewSeries("signal",
			[]time.Time{days[0], days[2], days[3], days[4]},
			[]float64{0.5, -0.3, -0.2, 0},
		)
		require.NoError(t, err)

		result, err := signalStrategy(t, repo, sig).Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Fills, 2)
		require.Equal(t, 10.0, result.Fills[0].Shares)
		require.Equal(t, days[1], result.Fills[0].Date)
		require.Equal(t, -10.0, result.Fills[1].Shares)
		require.Equal(t, days[3], result.Fills[1].Date)
		require.True(t, decimal.NewFromInt(100).Equal(result.Cash))
		require.Equal(t, map[string]float64{"SPY": 0}, result.Positions)
	})

	t.Run("holds lots below the minimum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {60, 60, 60}})
		sig, err := domain.NewSeries("signal", days[:3], []float64{1, -1, -1})
		require.NoError(t, err)

		result, err := signalStrategy(t, repo, sig).Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Fills, 1)
		require.Equal(t, map[string]float64{"SPY": 1}, result.Positions)
		require.True(t, decimal.NewFromInt(40).Equal(result.Cash))
	})

	t.Run("no buy without a price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {math.NaN(), 10}})
		sig, err := domain.NewSeries("signal", days[:2], []float64{1, math.NaN()})
		require.NoError(t, err)

		result, err := signalStrategy(t, repo, sig).Run(ctx)
		require.NoError(t, err)
		require.Empty(t, result.Fills)
		require.Empty(t, result.Positions)
	})
}

func TestCrossoverRule(t *testing.T) {
	ctx := context.Background()

	t.Run("sells the whole position on bearish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {10, 10, 20, 20}})
		s := newEventStrategy(t, repo, 100, "SPY", flags(4, 0), flags(4, 2), CrossoverRule{Indicator: "macd"})

		result, err := s.Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Fills, 2)
		require.Equal(t, -10.0, result.Fills[1].Shares)
		require.True(t, decimal.NewFromInt(200).Equal(result.Cash))
	})

	t.Run("bullish wins over bearish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {10, 10}})
		s := newEventStrategy(t, repo, 100, "SPY", flags(2, 0), flags(2, 0), CrossoverRule{Indicator: "macd"})

		result, err := s.Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Fills, 1)
		require.Equal(t, 10.0, result.Fills[0].Shares)
	})

	t.Run("skips a buy smaller than one share", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mockPrices(t, ctrl, map[string][]float64{"SPY": {500, 500}})
		s := newEventStrategy(t, repo, 100, "SPY", flags(2, 0), flags(2), CrossoverRule{Indicator: "macd"})

		result, err := s.Run(ctx)
		require.NoError(t, err)
		require.Empty(t, result.Fills)
		require.Empty(t, result.Positions)
	})
}
