package calculator

import (
	"fmt"
	"ixbacktest/internal/domain"
	"math"

	"github.com/montanaflynn/stats"
)

const AnnualizationFactor = 252.0

// PriceReturns is px / px.shift(periods) - 1. forward aligns each return
// with the start of its period instead of the end.
func PriceReturns(px []float64, periods int, forward bool) []float64 {
	out := make([]float64, len(px))
	for i := range px {
		j := i - periods
		if j < 0 || j >= len(px) {
			out[i] = math.NaN()
			continue
		}
		out[i] = px[i]/px[j] - 1
	}
	if !forward {
		return out
	}
	shifted := make([]float64, len(out))
	for i := range shifted {
		j := i + periods
		if j >= len(out) {
			shifted[i] = math.NaN()
			continue
		}
		shifted[i] = out[j]
	}
	return shifted
}

func LogReturns(px []float64, periods int, forward bool) []float64 {
	out := PriceReturns(px, periods, forward)
	for i, r := range out {
		out[i] = math.Log1p(r)
	}
	return out
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func CumulativeReturn(px []float64) (float64, error) {
	clean := dropNaN(px)
	if len(clean) < 2 {
		return 0, fmt.Errorf("cannot compute cumulative return on < 2 values")
	}
	return clean[len(clean)-1]/clean[0] - 1, nil
}

func AnnualizedReturn(px []float64, annFactor float64) (float64, error) {
	mean, err := stats.Mean(dropNaN(LogReturns(px, 1, false)))
	if err != nil {
		return 0, fmt.Errorf("failed to compute mean log return: %w", err)
	}
	return math.Exp(mean*annFactor) - 1, nil
}

func AnnualizedVolatility(px []float64, annFactor float64) (float64, error) {
	stdev, err := stats.StandardDeviationSample(dropNaN(LogReturns(px, 1, false)))
	if err != nil {
		return 0, fmt.Errorf("failed to compute log return stdev: %w", err)
	}
	return stdev * math.Sqrt(annFactor), nil
}

func SharpeRatio(px []float64, riskFree, annFactor float64) (float64, error) {
	ret, err := AnnualizedReturn(px, annFactor)
	if err != nil {
		return 0, err
	}
	vol, err := AnnualizedVolatility(px, annFactor)
	if err != nil {
		return 0, err
	}
	return (ret - riskFree) / vol, nil
}

// Drawdown is the distance from the running peak
func Drawdown(px []float64) []float64 {
	out := make([]float64, len(px))
	peak := math.NaN()
	for i, v := range px {
		if !math.IsNaN(v) && (math.IsNaN(peak) || v > peak) {
			peak = v
		}
		out[i] = v/peak - 1
	}
	return out
}

func MaxDrawdown(px []float64) (float64, error) {
	min, err := stats.Min(dropNaN(Drawdown(px)))
	if err != nil {
		return 0, fmt.Errorf("failed to compute max drawdown: %w", err)
	}
	return min, nil
}

// Rebase divides by the first non-NaN value
func Rebase(px []float64) []float64 {
	clean := dropNaN(px)
	out := make([]float64, len(px))
	for i, v := range px {
		if len(clean) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = v / clean[0]
	}
	return out
}

// CalculateMetrics summarises a portfolio value series. It needs at least
// three observations so the return stdev is defined.
func CalculateMetrics(values *domain.Series) (*domain.PerformanceMetrics, error) {
	px := dropNaN(values.Values)
	if len(px) < 3 {
		return nil, fmt.Errorf("cannot calculate metrics on < 3 values")
	}

	cumulative, err := CumulativeReturn(px)
	if err != nil {
		return nil, err
	}
	annualizedReturn, err := AnnualizedReturn(px, AnnualizationFactor)
	if err != nil {
		return nil, err
	}
	annualizedVolatility, err := AnnualizedVolatility(px, AnnualizationFactor)
	if err != nil {
		return nil, err
	}
	maxDrawdown, err := MaxDrawdown(px)
	if err != nil {
		return nil, err
	}

	out := &domain.PerformanceMetrics{
		CumulativeReturn:     cumulative,
		AnnualizedReturn:     annualizedReturn,
		AnnualizedVolatility: annualizedVolatility,
		SharpeRatio:          annualizedReturn / annualizedVolatility,
		MaxDrawdown:          maxDrawdown,
	}
	for _, v := range []float64{out.CumulativeReturn, out.AnnualizedReturn, out.AnnualizedVolatility, out.SharpeRatio, out.MaxDrawdown} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("metrics are not finite for %d values", len(px))
		}
	}

	return out, nil
}
