package calculator

import (
	"ixbacktest/internal/domain"
	"ixbacktest/internal/util"
	"math"
	"time"
)

// ResampleMonthEnd keeps the last non-NaN value of each calendar month,
// indexed at month end. Months without data are NaN.
func ResampleMonthEnd(s domain.Series) (*domain.Series, error) {
	if s.Len() == 0 {
		return domain.NewSeries(s.Name, []time.Time{}, []float64{})
	}
	first := util.EndOfMonth(s.Dates[0])
	last := util.EndOfMonth(s.Dates[len(s.Dates)-1])

	dates := []time.Time{}
	values := []float64{}
	i := 0
	for m := first; !m.After(last); m = util.EndOfMonth(m.AddDate(0, 0, 1)) {
		v := math.NaN()
		for i < len(s.Dates) && util.DateLte(s.Dates[i], m) {
			if !math.IsNaN(s.Values[i]) {
				v = s.Values[i]
			}
			i++
		}
		dates = append(dates, m)
		values = append(values, v)
	}
	return domain.NewSeries(s.Name, dates, values)
}

// ForwardFillDaily spreads the series onto every calendar day between its
// first and last date, carrying the latest value forward over gaps and NaN
func ForwardFillDaily(s domain.Series) (*domain.Series, error) {
	if s.Len() == 0 {
		return domain.NewSeries(s.Name, []time.Time{}, []float64{})
	}
	start := util.ToDate(s.Dates[0])
	end := util.ToDate(s.Dates[len(s.Dates)-1])

	dates := []time.Time{}
	values := []float64{}
	last := math.NaN()
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for i < len(s.Dates) && util.DateLte(s.Dates[i], d) {
			if !math.IsNaN(s.Values[i]) {
				last = s.Values[i]
			}
			i++
		}
		dates = append(dates, d)
		values = append(values, last)
	}
	return domain.NewSeries(s.Name, dates, values)
}

// ShiftMonths moves every date forward, e.g. to reflect publication lag
func ShiftMonths(s domain.Series, months int) (*domain.Series, error) {
	dates := make([]time.Time, len(s.Dates))
	for i, d := range s.Dates {
		dates[i] = util.AddMonths(d, months)
	}
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return domain.NewSeries(s.Name, dates, values)
}
