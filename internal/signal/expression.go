package signal

import (
	"context"
	"fmt"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/repository"
	"math"
	"sort"

	"github.com/maja42/goval"
)

// Expression evaluates an arithmetic formula over instrument prices, e.g.
// px("DGS10.Index") - px("T10YIE.Index"). Dates where any referenced
// instrument is missing are dropped.
type Expression struct {
	PriceFieldRepository repository.PriceFieldRepository
	Label                string
	Formula              string
	Field                string
	Window               int
}

func NewExpression(priceFieldRepository repository.PriceFieldRepository, label, formula string) *Expression {
	return &Expression{
		PriceFieldRepository: priceFieldRepository,
		Label:                label,
		Formula:              formula,
		Field:                domain.FieldAdjClose,
		Window:               DefaultNormalizeWindow,
	}
}

func (e *Expression) Name() string {
	return e.Label
}

func (e *Expression) NormalizeWindow() int {
	return e.Window
}

// Tickers lists the instruments referenced by the formula. The formula is
// evaluated once with placeholder prices to collect them.
func (e *Expression) Tickers() ([]string, error) {
	seen := map[string]bool{}
	functions := map[string]goval.ExpressionFunction{
		"px": func(args ...interface{}) (interface{}, error) {
			ticker, err := tickerArg(args)
			if err != nil {
				return nil, err
			}
			seen[ticker] = true
			return 1.0, nil
		},
	}
	if _, err := goval.NewEvaluator().Evaluate(e.Formula, nil, functions); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", e.Label, err)
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%s references no instruments", e.Label)
	}

	out := make([]string, 0, len(seen))
	for ticker := range seen {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out, nil
}

// Frame fetches every referenced instrument and keeps the dates where all
// of them have a value
func (e *Expression) Frame(ctx context.Context) (*domain.Frame, error) {
	tickers, err := e.Tickers()
	if err != nil {
		return nil, err
	}
	columns := make([]*domain.Series, 0, len(tickers))
	for _, ticker := range tickers {
		s, err := e.PriceFieldRepository.GetPriceField(ctx, ticker, e.Field)
		if err != nil {
			return nil, err
		}
		col, err := domain.NewSeries(ticker, s.Dates, s.Values)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	frame, err := domain.NewFrame(columns...)
	if err != nil {
		return nil, err
	}
	return frame.DropNaN(), nil
}

// Evaluate runs the formula on every row of frame
func (e *Expression) Evaluate(frame *domain.Frame) (*domain.Series, error) {
	eval := goval.NewEvaluator()
	values := make([]float64, frame.Len())
	for i := range frame.Dates {
		row := frame.Row(i)
		functions := map[string]goval.ExpressionFunction{
			"px": func(args ...interface{}) (interface{}, error) {
				ticker, err := tickerArg(args)
				if err != nil {
					return nil, err
				}
				v, ok := row[ticker]
				if !ok {
					return nil, fmt.Errorf("%s is not loaded", ticker)
				}
				return v, nil
			},
		}
		result, err := eval.Evaluate(e.Formula, nil, functions)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s: %w", e.Label, err)
		}
		v, err := toFloat(result)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s: %w", e.Label, err)
		}
		values[i] = v
	}

	return domain.NewSeries(e.Label, frame.Dates, values)
}

func (e *Expression) Compute(ctx context.Context) (*domain.Series, error) {
	frame, err := e.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(frame)
}

func tickerArg(args []interface{}) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("px needs 1 arg, got %d", len(args))
	}
	ticker, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("px needs a ticker string, got %v", args[0])
	}
	return ticker, nil
}

func toFloat(v interface{}) (float64, error) {
	switch r := v.(type) {
	case float64:
		return r, nil
	case int:
		return float64(r), nil
	}
	return math.NaN(), fmt.Errorf("expression returned %v, not a number", v)
}
