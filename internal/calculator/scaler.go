package calculator

import (
	"fmt"
	"ixbacktest/internal/domain"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Scaler rescales a window of data
type Scaler interface {
	Compute(data []float64) ([]float64, error)
}

// Bounds clip the latest scaled value. A nil bound is open.
type Bounds struct {
	Lower *float64
	Upper *float64
}

func NewBounds(lower, upper float64) Bounds {
	return Bounds{
		Lower: &lower,
		Upper: &upper,
	}
}

// Latest scales data and returns its last value clipped to the bounds
func Latest(s Scaler, data []float64, bounds Bounds) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("input data is empty")
	}
	scaled, err := s.Compute(data)
	if err != nil {
		return 0, err
	}
	latest := scaled[len(scaled)-1]
	if bounds.Lower != nil {
		latest = math.Max(latest, *bounds.Lower)
	}
	if bounds.Upper != nil {
		latest = math.Min(latest, *bounds.Upper)
	}
	return latest, nil
}

// StandardScaler subtracts the mean (or a fixed one) and divides by the
// sample standard deviation
type StandardScaler struct {
	Mean *float64
}

func (s StandardScaler) Compute(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("input data is empty")
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	if s.Mean != nil {
		mean = *s.Mean
	}
	stdev, err := stats.StandardDeviationSample(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute standard deviation: %w", err)
	}
	if stdev == 0 || math.IsNaN(stdev) {
		return nil, domain.DegenerateInputError{Reason: "standard deviation is zero"}
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = (v - mean) / stdev
	}
	return out, nil
}

// RobustScaler centers on the median and divides by the interquartile range
type RobustScaler struct {
	Median *float64
}

func (s RobustScaler) Compute(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("input data is empty")
	}
	q1, err := quantile(data, 0.25)
	if err != nil {
		return nil, err
	}
	q3, err := quantile(data, 0.75)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	if s.Median != nil {
		median = *s.Median
	}
	if q3-q1 == 0 {
		return nil, domain.DegenerateInputError{Reason: "interquartile range is zero"}
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = (v - median) / (q3 - q1)
	}
	return out, nil
}

// quantile interpolates linearly between closest ranks
func quantile(data []float64, q float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("input data is empty")
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo)), nil
}

// MinMaxScaler maps data onto [0, 1]
type MinMaxScaler struct{}

func (s MinMaxScaler) Compute(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("input data is empty")
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	if min == max {
		return nil, domain.DegenerateInputError{Reason: "minimum and maximum values are the same"}
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = (v - min) / (max - min)
	}
	return out, nil
}
