package indicator

import (
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/domain"
)

// MACDSignal tracks the spread between MACD and its signal line. Bullish
// is the bar where the spread turns from positive to negative, bearish the
// opposite flip.
type MACDSignal struct {
	table
	ShortWindow  int
	LongWindow   int
	SignalWindow int
}

func NewMACDSignal(short, long, signal int) *MACDSignal {
	return &MACDSignal{
		ShortWindow:  short,
		LongWindow:   long,
		SignalWindow: signal,
	}
}

func (m *MACDSignal) Fields() []string {
	return []string{domain.FieldClose}
}

func (m *MACDSignal) Compute(inputs ...domain.Series) error {
	if err := checkInputs(m.Fields(), inputs); err != nil {
		return err
	}
	closePx := inputs[0]

	short := calculator.EMA(closePx.Values, m.ShortWindow, true)
	long := calculator.EMA(closePx.Values, m.LongWindow, true)
	macd := make([]float64, len(short))
	for i := range macd {
		macd[i] = short[i] - long[i]
	}
	signal := calculator.EMA(macd, m.SignalWindow, true)
	histogram := make([]float64, len(macd))
	for i := range histogram {
		histogram[i] = macd[i] - signal[i]
	}

	t := table{}
	t.reset(closePx.Dates)
	for name, values := range map[string][]float64{
		"macd":      macd,
		"signal":    signal,
		"histogram": histogram,
	} {
		if err := t.set(name, values); err != nil {
			return err
		}
	}
	t.bullish = domain.NewBoolSeries(closePx.Dates, crossBelow(histogram, 0))
	t.bearish = domain.NewBoolSeries(closePx.Dates, crossAbove(histogram, 0))

	m.table = t
	return nil
}
