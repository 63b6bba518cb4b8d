package signal

import (
	"context"
	"fmt"
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/domain"
)

const DefaultNormalizeWindow = 200

// normalized values are clipped to this many standard deviations, then
// divided by it so the result lies in [-1, 1]
const normalizeBound = 2.0

// Signal is a raw series built from one or more instruments
type Signal interface {
	Name() string
	Compute(ctx context.Context) (*domain.Series, error)
	NormalizeWindow() int
}

// Normalize computes the signal and rescales it with NormalizeSeries
func Normalize(ctx context.Context, sig Signal) (*domain.Series, error) {
	raw, err := sig.Compute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", sig.Name(), err)
	}
	out, err := NormalizeSeries(*raw, sig.NormalizeWindow())
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s: %w", sig.Name(), err)
	}
	return out, nil
}

// NormalizeSeries takes, for every full trailing window, the standard score
// of the latest value clipped to [-2, 2] and halved. Points before the first
// full window and windows with gaps are NaN.
func NormalizeSeries(s domain.Series, window int) (*domain.Series, error) {
	if window < 2 {
		return nil, fmt.Errorf("normalize window must be at least 2, got %d", window)
	}
	bounds := calculator.NewBounds(-normalizeBound, normalizeBound)
	values, err := calculator.RollingWindows(s.Values, window, func(w []float64) (float64, error) {
		latest, err := calculator.Latest(calculator.StandardScaler{}, w, bounds)
		if err != nil {
			return 0, err
		}
		return latest / normalizeBound, nil
	})
	if err != nil {
		return nil, err
	}
	return s.WithValues(s.Name, values), nil
}

// Daily spreads a normalized signal onto calendar days so it can be read on
// any trading date
func Daily(ctx context.Context, sig Signal) (*domain.Series, error) {
	normalized, err := Normalize(ctx, sig)
	if err != nil {
		return nil, err
	}
	return calculator.ForwardFillDaily(*normalized)
}
