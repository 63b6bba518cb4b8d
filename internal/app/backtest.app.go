package app

import (
	"context"
	"fmt"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"

	"github.com/shopspring/decimal"
)

type BacktestInput struct {
	Preset    Preset
	Tickers   []string
	Principal decimal.Decimal
	// Signal selects what the oecdcli preset trades on, see signal.Keys
	Signal string
}

type BacktestApp interface {
	Backtest(ctx context.Context, in BacktestInput) (*domain.BacktestResult, error)
}

type backtestAppHandler struct {
	PriceFieldRepository repository.PriceFieldRepository
}

func NewBacktestApp(priceFieldRepository repository.PriceFieldRepository) BacktestApp {
	return backtestAppHandler{PriceFieldRepository: priceFieldRepository}
}

// Backtest wires and runs one strategy and attaches the timing profile.
// Every run gets its own universe, so concurrent calls share nothing but
// the repository.
func (h backtestAppHandler) Backtest(ctx context.Context, in BacktestInput) (*domain.BacktestResult, error) {
	profile, endProfile := domain.GetProfile(ctx)
	log := logger.FromContext(ctx).With("strategy", in.Preset)

	if in.Principal.IsZero() {
		in.Principal = decimal.NewFromInt(DefaultPrincipal)
	}

	_, endSpan := profile.StartNewSpan("wiring strategy")
	strategy, err := NewPresetStrategy(ctx, in.Preset, h.PriceFieldRepository, in.Principal, in.Signal, in.Tickers...)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s strategy: %w", in.Preset, err)
	}

	_, endSpan = profile.StartNewSpan("running strategy")
	result, err := strategy.Run(logger.WithLogger(ctx, log))
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s strategy: %w", in.Preset, err)
	}

	endProfile()
	result.Profile = profile

	return result, nil
}
