package indicator

import (
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/domain"
)

// ATR is the average true range. It has no crossover events, so Bullish
// and Bearish are all false.
type ATR struct {
	table
	Window int
}

func NewATR(window int) *ATR {
	return &ATR{Window: window}
}

func (a *ATR) Fields() []string {
	return []string{domain.FieldHigh, domain.FieldLow, domain.FieldClose}
}

func (a *ATR) Compute(inputs ...domain.Series) error {
	if err := checkInputs(a.Fields(), inputs); err != nil {
		return err
	}
	high, low, closePx := inputs[0], inputs[1], inputs[2]

	t := table{}
	t.reset(closePx.Dates)
	tr := calculator.TrueRange(high.Values, low.Values, closePx.Values)
	if err := t.set("tr", tr); err != nil {
		return err
	}
	if err := t.set("atr", calculator.EMA(tr, a.Window, true)); err != nil {
		return err
	}

	a.table = t
	return nil
}
