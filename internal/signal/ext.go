package signal

import (
	"context"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/repository"
	"math"

	"github.com/montanaflynn/stats"
)

const (
	AudCadTicker      = "AUDCAD.Curncy"
	NominalTicker     = "DGS10.Index"
	TermPremiumTicker = "THREEFFTP10.Index"
	BreakevenTicker   = "T10YIE.Index"
)

// AudCadMom is the inverted AUD/CAD cross rate
type AudCadMom struct {
	PriceFieldRepository repository.PriceFieldRepository
}

func (a AudCadMom) Name() string {
	return "AudCadMom"
}

func (a AudCadMom) NormalizeWindow() int {
	return DefaultNormalizeWindow
}

func (a AudCadMom) Compute(ctx context.Context) (*domain.Series, error) {
	px, err := a.PriceFieldRepository.GetPriceField(ctx, AudCadTicker, domain.FieldAdjClose)
	if err != nil {
		return nil, err
	}
	out := px.Map(func(v float64) float64 { return -v })
	out.Name = a.Name()
	return out, nil
}

// ISC is the negated rolling correlation between the short term rate
// component (nominal 10y less term premium less breakeven) and the
// breakeven itself
type ISC struct {
	PriceFieldRepository repository.PriceFieldRepository
	CorrWindow           int
}

func NewISC(priceFieldRepository repository.PriceFieldRepository) ISC {
	return ISC{
		PriceFieldRepository: priceFieldRepository,
		CorrWindow:           500,
	}
}

func (s ISC) Name() string {
	return "ISC"
}

func (s ISC) NormalizeWindow() int {
	return DefaultNormalizeWindow
}

func (s ISC) Compute(ctx context.Context) (*domain.Series, error) {
	spread := NewExpression(
		s.PriceFieldRepository,
		"ShortTerm",
		`px("`+NominalTicker+`") - px("`+TermPremiumTicker+`") - px("`+BreakevenTicker+`")`,
	)
	frame, err := spread.Frame(ctx)
	if err != nil {
		return nil, err
	}
	short, err := spread.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	breakeven, err := frame.Column(BreakevenTicker)
	if err != nil {
		return nil, err
	}

	corr, err := RollingCorrelation(short.Values, breakeven.Values, s.CorrWindow)
	if err != nil {
		return nil, err
	}
	for i := range corr {
		corr[i] = -corr[i]
	}
	return short.WithValues(s.Name(), corr), nil
}

// RollingCorrelation is the Pearson correlation over each full trailing
// window. Windows with a gap or a constant side are NaN.
func RollingCorrelation(x, y []float64, window int) ([]float64, error) {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = math.NaN()
		if i+1 < window {
			continue
		}
		wx, wy := x[i-window+1:i+1], y[i-window+1:i+1]
		if hasNaN(wx) || hasNaN(wy) || isConstant(wx) || isConstant(wy) {
			continue
		}
		c, err := stats.Correlation(wx, wy)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
