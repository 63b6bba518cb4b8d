package calculator

import (
	"math"
)

// EMA is the exponentially weighted mean with alpha = 2/(span+1). adjust
// selects the bias-corrected weighting over the recursive form. NaN
// observations are skipped but still decay earlier weights.
func EMA(values []float64, span int, adjust bool) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	oldWtFactor := 1.0 - alpha
	newWt := 1.0
	if !adjust {
		newWt = alpha
	}

	avg := values[0]
	oldWt := 1.0
	out[0] = avg
	for i := 1; i < len(values); i++ {
		cur := values[i]
		observed := !math.IsNaN(cur)
		if !math.IsNaN(avg) {
			oldWt *= oldWtFactor
			if observed {
				if avg != cur {
					avg = ((oldWt * avg) + (newWt * cur)) / (oldWt + newWt)
				}
				if adjust {
					oldWt += newWt
				} else {
					oldWt = 1.0
				}
			}
		} else if observed {
			avg = cur
		}
		out[i] = avg
	}
	return out
}

// RollingMean averages the non-NaN values of each trailing window, NaN when
// fewer than minPeriods are present
func RollingMean(values []float64, window, minPeriods int) []float64 {
	return rollingApply(values, window, minPeriods, func(w []float64) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}
		return sum / float64(len(w))
	})
}

// SMA is a full-window rolling mean
func SMA(values []float64, window int) []float64 {
	return RollingMean(values, window, window)
}

// rollingApply calls fn with the non-NaN values of each trailing window.
// Windows with fewer than minPeriods observations yield NaN.
func rollingApply(values []float64, window, minPeriods int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		obs := make([]float64, 0, window)
		for _, v := range values[start : i+1] {
			if !math.IsNaN(v) {
				obs = append(obs, v)
			}
		}
		if len(obs) < minPeriods || len(obs) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(obs)
	}
	return out
}

// RollingWindows calls fn for each full trailing window that has no NaN,
// which is how rolling(window).apply treats gaps
func RollingWindows(values []float64, window int, fn func([]float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = math.NaN()
		if i+1 < window {
			continue
		}
		w := values[i-window+1 : i+1]
		complete := true
		for _, v := range w {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		v, err := fn(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func Diff(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i] - values[i-1]
	}
	return out
}

// RSI uses simple rolling means of gains and losses with one period
// minimum. A window with no losses is 100, no moves at all is NaN.
func RSI(close []float64, window int) []float64 {
	delta := Diff(close)
	gains := make([]float64, len(delta))
	losses := make([]float64, len(delta))
	for i, d := range delta {
		if math.IsNaN(d) {
			gains[i], losses[i] = math.NaN(), math.NaN()
			continue
		}
		if d > 0 {
			gains[i] = d
		}
		if d < 0 {
			losses[i] = -d
		}
	}
	avgGain := RollingMean(gains, window, 1)
	avgLoss := RollingMean(losses, window, 1)

	out := make([]float64, len(close))
	for i := range out {
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}

// TrueRange is max(high-low, |high-prev close|, |low-prev close|), ignoring
// terms that are NaN
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		prevClose := math.NaN()
		if i > 0 {
			prevClose = close[i-1]
		}
		out[i] = nanMax(
			high[i]-low[i],
			math.Abs(high[i]-prevClose),
			math.Abs(low[i]-prevClose),
		)
	}
	return out
}

// AverageTrueRange smooths the true range with the recursive EMA
func AverageTrueRange(high, low, close []float64, period int) []float64 {
	return EMA(TrueRange(high, low, close), period, false)
}

func nanMax(values ...float64) float64 {
	out := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

// Gradient uses central differences inside and one-sided differences at
// the edges, unit spacing
func Gradient(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n < 2 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	out[0] = values[1] - values[0]
	out[n-1] = values[n-1] - values[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (values[i+1] - values[i-1]) / 2
	}
	return out
}
