package app

import (
	"context"
	"ixbacktest/internal/domain"
	mock_repository "ixbacktest/internal/repository/mocks"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBacktestApp_Backtest(t *testing.T) {
	t.Run("defaults the principal and records a profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		closePx, err := domain.NewSeries(domain.FieldClose, testDates(4), []float64{10, 11, 12, 13})
		require.NoError(t, err)
		adjClose, err := domain.NewSeries(domain.FieldAdjClose, testDates(4), []float64{10, 11, 12, 13})
		require.NoError(t, err)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldClose).Return(closePx, nil).Times(1)
		repo.EXPECT().GetPriceField(gomock.Any(), "SPY", domain.FieldAdjClose).Return(adjClose, nil).Times(1)

		result, err := NewBacktestApp(repo).Backtest(context.Background(), BacktestInput{
			Preset:  PresetRsiRange,
			Tickers: []string{"SPY"},
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, result.RunID)
		require.True(t, decimal.NewFromInt(DefaultPrincipal).Equal(result.Principal))
		require.True(t, result.Principal.Equal(result.Cash))
		require.Len(t, result.Snapshots, 4)
		require.NotNil(t, result.Profile)
		require.Len(t, result.Profile.Spans, 2)
		require.NotNil(t, result.Profile.TotalMs)
		// flat equity has no finite sharpe ratio
		require.Nil(t, result.Metrics)
	})

	t.Run("unknown preset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPriceFieldRepository(ctrl)
		_, err := NewBacktestApp(repo).Backtest(context.Background(), BacktestInput{Preset: "momentum"})
		require.Error(t, err)
	})
}
