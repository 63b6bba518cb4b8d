package domain

import (
	"fmt"
	"math"
	"time"
)

// Series is a date-indexed float series. Dates are ascending and unique,
// missing observations are NaN.
type Series struct {
	Name   string
	Dates  []time.Time
	Values []float64

	index map[string]int
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NewSeries validates the index and builds the date lookup
func NewSeries(name string, dates []time.Time, values []float64) (*Series, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("series %s has %d dates but %d values", name, len(dates), len(values))
	}
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		if i > 0 && !d.After(dates[i-1]) {
			return nil, fmt.Errorf("series %s is not strictly ascending at %s", name, dateKey(d))
		}
		index[dateKey(d)] = i
	}
	return &Series{
		Name:   name,
		Dates:  dates,
		Values: values,
		index:  index,
	}, nil
}

// mustSeries is for derived series whose index is copied from a valid one
func mustSeries(name string, dates []time.Time, values []float64) *Series {
	s, err := NewSeries(name, dates, values)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Series) Len() int {
	return len(s.Values)
}

func (s Series) At(i int) float64 {
	return s.Values[i]
}

// IndexOf returns the position of date in the series
func (s Series) IndexOf(date time.Time) (int, bool) {
	if s.index == nil {
		for i, d := range s.Dates {
			if dateKey(d) == dateKey(date) {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := s.index[dateKey(date)]
	return i, ok
}

// Get returns the value on date. ok is false when the date is absent or
// the value is NaN.
func (s Series) Get(date time.Time) (float64, bool) {
	i, ok := s.IndexOf(date)
	if !ok {
		return math.NaN(), false
	}
	v := s.Values[i]
	return v, !math.IsNaN(v)
}

// WithValues returns a series on the same index
func (s Series) WithValues(name string, values []float64) *Series {
	return mustSeries(name, s.Dates, values)
}

// Map applies fn to every value, NaN included
func (s Series) Map(fn func(float64) float64) *Series {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = fn(v)
	}
	return s.WithValues(s.Name, out)
}

// Shift moves values forward by n positions (backward when n < 0), filling
// with NaN
func (s Series) Shift(n int) *Series {
	out := make([]float64, len(s.Values))
	for i := range out {
		j := i - n
		if j < 0 || j >= len(s.Values) {
			out[i] = math.NaN()
			continue
		}
		out[i] = s.Values[j]
	}
	return s.WithValues(s.Name, out)
}

// Diff is the one period difference, first value NaN
func (s Series) Diff() *Series {
	prev := s.Shift(1)
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = v - prev.Values[i]
	}
	return s.WithValues(s.Name, out)
}

func (s Series) DropNaN() *Series {
	dates := []time.Time{}
	values := []float64{}
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		dates = append(dates, s.Dates[i])
		values = append(values, v)
	}
	return mustSeries(s.Name, dates, values)
}

// BoolSeries holds event flags over a date index
type BoolSeries struct {
	Dates  []time.Time
	Values []bool

	index map[string]int
}

func NewBoolSeries(dates []time.Time, values []bool) BoolSeries {
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[dateKey(d)] = i
	}
	return BoolSeries{
		Dates:  dates,
		Values: values,
		index:  index,
	}
}

// Get is false for dates outside the index
func (b BoolSeries) Get(date time.Time) bool {
	i, ok := b.index[dateKey(date)]
	if !ok {
		return false
	}
	return b.Values[i]
}

func (b BoolSeries) Len() int {
	return len(b.Values)
}

// True returns the dates flagged true
func (b BoolSeries) True() []time.Time {
	out := []time.Time{}
	for i, v := range b.Values {
		if v {
			out = append(out, b.Dates[i])
		}
	}
	return out
}
