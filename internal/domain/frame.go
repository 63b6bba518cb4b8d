package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Frame is a date-aligned table of series. Dates is the sorted union of
// every column's dates, gaps are NaN.
type Frame struct {
	Dates   []time.Time
	Names   []string
	columns map[string][]float64
	index   map[string]int
}

func dateIndex(dates []time.Time) map[string]int {
	out := make(map[string]int, len(dates))
	for i, d := range dates {
		out[dateKey(d)] = i
	}
	return out
}

// NewFrame aligns the given series on the union of their dates. Column order
// follows the input order.
func NewFrame(series ...*Series) (*Frame, error) {
	seen := map[string]time.Time{}
	names := []string{}
	for _, s := range series {
		for _, name := range names {
			if name == s.Name {
				return nil, fmt.Errorf("duplicate column %s in frame", s.Name)
			}
		}
		names = append(names, s.Name)
		for _, d := range s.Dates {
			seen[dateKey(d)] = d
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	columns := map[string][]float64{}
	for _, s := range series {
		values := make([]float64, len(dates))
		for i, d := range dates {
			v, ok := s.IndexOf(d)
			if !ok {
				values[i] = math.NaN()
				continue
			}
			values[i] = s.Values[v]
		}
		columns[s.Name] = values
	}

	return &Frame{
		Dates:   dates,
		Names:   names,
		columns: columns,
		index:   dateIndex(dates),
	}, nil
}

func (f Frame) Len() int {
	return len(f.Dates)
}

// Column returns the named column on the frame's index
func (f Frame) Column(name string) (*Series, error) {
	values, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("frame has no column %s", name)
	}
	return NewSeries(name, f.Dates, values)
}

// Row returns every column's value at position i
func (f Frame) Row(i int) map[string]float64 {
	out := make(map[string]float64, len(f.Names))
	for _, name := range f.Names {
		out[name] = f.columns[name][i]
	}
	return out
}

// DropNaN keeps only dates where every column has a value
func (f Frame) DropNaN() *Frame {
	dates := []time.Time{}
	columns := map[string][]float64{}
	for i, d := range f.Dates {
		complete := true
		for _, name := range f.Names {
			if math.IsNaN(f.columns[name][i]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		dates = append(dates, d)
		for _, name := range f.Names {
			columns[name] = append(columns[name], f.columns[name][i])
		}
	}
	for _, name := range f.Names {
		if _, ok := columns[name]; !ok {
			columns[name] = []float64{}
		}
	}
	return &Frame{
		Dates:   dates,
		Names:   f.Names,
		columns: columns,
		index:   dateIndex(dates),
	}
}
