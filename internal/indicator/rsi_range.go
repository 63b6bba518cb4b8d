package indicator

import (
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/domain"
)

const (
	rsiOversold   = 20.0
	rsiOverbought = 80.0
)

// RSIRange fires bullish when RSI climbs back above 20 and bearish when it
// falls back below 80
type RSIRange struct {
	table
	Window int
}

func NewRSIRange(window int) *RSIRange {
	return &RSIRange{Window: window}
}

func (r *RSIRange) Fields() []string {
	return []string{domain.FieldClose}
}

func (r *RSIRange) Compute(inputs ...domain.Series) error {
	if err := checkInputs(r.Fields(), inputs); err != nil {
		return err
	}
	closePx := inputs[0]

	t := table{}
	t.reset(closePx.Dates)
	rsi := calculator.RSI(closePx.Values, r.Window)
	if err := t.set("rsi", rsi); err != nil {
		return err
	}
	t.bullish = domain.NewBoolSeries(closePx.Dates, crossAbove(rsi, rsiOversold))
	t.bearish = domain.NewBoolSeries(closePx.Dates, crossBelow(rsi, rsiOverbought))

	r.table = t
	return nil
}
