package app

import (
	"context"
	"fmt"
	"ixbacktest/internal/data"
	"ixbacktest/internal/domain"
	"math"

	"github.com/shopspring/decimal"
)

// CrossoverRule trades on an indicator's events: all-in on bullish, flat on
// bearish. Bullish wins when both fire.
type CrossoverRule struct {
	Indicator string
}

func (r CrossoverRule) Decide(ctx context.Context, s *Strategy, asset *data.Asset) error {
	ind, ok := asset.Indicator(r.Indicator)
	if !ok {
		return fmt.Errorf("%s has no indicator %s", asset.Name, r.Indicator)
	}

	if ind.Bullish().Get(s.Date()) {
		shares, ok, err := affordableShares(ctx, s, asset)
		if err != nil || !ok {
			return err
		}
		s.Buy(ctx, asset, shares)
		return nil
	}

	if ind.Bearish().Get(s.Date()) {
		p, ok := s.Position(asset)
		if !ok {
			return nil
		}
		s.Sell(ctx, asset, p.Shares)
	}
	return nil
}

// SignalRule trades on the sign of a shared signal read on each date. Dates
// without a signal value are skipped.
type SignalRule struct {
	Signal *domain.Series
	// MinLot is the smallest whole share count worth selling
	MinLot float64
}

func (r SignalRule) Decide(ctx context.Context, s *Strategy, asset *data.Asset) error {
	v, ok := r.Signal.Get(s.Date())
	if !ok {
		return nil
	}

	if v > 0 {
		shares, ok, err := affordableShares(ctx, s, asset)
		if err != nil || !ok {
			return err
		}
		s.Buy(ctx, asset, shares)
		return nil
	}

	if v < 0 {
		p, ok := s.Position(asset)
		if !ok {
			return nil
		}
		shares := math.Trunc(p.Shares)
		if shares >= r.MinLot {
			s.Sell(ctx, asset, shares)
		}
	}
	return nil
}

// affordableShares is floor(cash / price). ok is false when there is no
// price today or not even one share is affordable.
func affordableShares(ctx context.Context, s *Strategy, asset *data.Asset) (float64, bool, error) {
	price, ok, err := s.Price(ctx, asset)
	if err != nil || !ok || price <= 0 {
		return 0, false, err
	}
	shares := s.Cash().Div(decimal.NewFromFloat(price)).Floor()
	if !shares.IsPositive() {
		return 0, false, nil
	}
	return shares.InexactFloat64(), true, nil
}
