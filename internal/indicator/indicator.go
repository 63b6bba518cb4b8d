package indicator

import (
	"fmt"
	"ixbacktest/internal/domain"
	"strings"
	"time"
)

// Indicator is a per-asset transform of aligned price fields. Compute fills
// the derived table once; Bullish and Bearish read from it.
type Indicator interface {
	// Fields lists the price fields Compute expects, in order
	Fields() []string
	Compute(inputs ...domain.Series) error
	Bullish() domain.BoolSeries
	Bearish() domain.BoolSeries
	Get(name string) (*domain.Series, bool)
}

type Kind string

const (
	KindATR        Kind = "atr"
	KindRSIRange   Kind = "rsirange"
	KindMACDSignal Kind = "macdsignal"
)

func NewKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindATR:
		return KindATR, nil
	case KindRSIRange:
		return KindRSIRange, nil
	case KindMACDSignal, "macd":
		return KindMACDSignal, nil
	}
	return "", fmt.Errorf("unknown indicator kind %q", s)
}

// New builds an indicator with default parameters
func New(kind Kind) (Indicator, error) {
	switch kind {
	case KindATR:
		return NewATR(14), nil
	case KindRSIRange:
		return NewRSIRange(14), nil
	case KindMACDSignal:
		return NewMACDSignal(12, 26, 9), nil
	}
	return nil, fmt.Errorf("unknown indicator kind %q", kind)
}

// table is the derived-series store shared by every kind
type table struct {
	dates   []time.Time
	series  map[string]*domain.Series
	bullish domain.BoolSeries
	bearish domain.BoolSeries
}

func (t *table) reset(dates []time.Time) {
	t.dates = dates
	t.series = map[string]*domain.Series{}
	t.bullish = domain.NewBoolSeries(dates, make([]bool, len(dates)))
	t.bearish = domain.NewBoolSeries(dates, make([]bool, len(dates)))
}

func (t *table) set(name string, values []float64) error {
	s, err := domain.NewSeries(name, t.dates, values)
	if err != nil {
		return err
	}
	t.series[name] = s
	return nil
}

func (t table) Get(name string) (*domain.Series, bool) {
	s, ok := t.series[name]
	return s, ok
}

func (t table) Bullish() domain.BoolSeries {
	return t.bullish
}

func (t table) Bearish() domain.BoolSeries {
	return t.bearish
}

// checkInputs verifies count and alignment of Compute inputs
func checkInputs(fields []string, inputs []domain.Series) error {
	if len(inputs) != len(fields) {
		return fmt.Errorf("expected %d inputs (%s), got %d", len(fields), strings.Join(fields, ", "), len(inputs))
	}
	for i := 1; i < len(inputs); i++ {
		if inputs[i].Len() != inputs[0].Len() {
			return fmt.Errorf("input %s is not aligned with %s", fields[i], fields[0])
		}
		for j, d := range inputs[i].Dates {
			if !d.Equal(inputs[0].Dates[j]) {
				return fmt.Errorf("input %s is not aligned with %s at %s", fields[i], fields[0], d.Format(time.DateOnly))
			}
		}
	}
	return nil
}

// crossAbove flags bars where the current value is above level and the
// previous one below it. The first bar never fires.
func crossAbove(values []float64, level float64) []bool {
	out := make([]bool, len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] > level && values[i-1] < level
	}
	return out
}

func crossBelow(values []float64, level float64) []bool {
	out := make([]bool, len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] < level && values[i-1] > level
	}
	return out
}
