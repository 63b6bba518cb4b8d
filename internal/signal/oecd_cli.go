package signal

import (
	"context"
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/repository"
)

// OECD US composite leading indicator, amplitude adjusted
const OecdCliTicker = "USALOLITONOSTSAM.Index"

const (
	oecdCliWindow = 12
	// months between the reference period and publication
	oecdCliLag = 1
)

type oecdCli struct {
	PriceFieldRepository repository.PriceFieldRepository
}

func (o oecdCli) NormalizeWindow() int {
	return oecdCliWindow
}

// monthly loads month-end readings dated at their publication month
func (o oecdCli) monthly(ctx context.Context) (*domain.Series, error) {
	px, err := o.PriceFieldRepository.GetPriceField(ctx, OecdCliTicker, domain.FieldAdjClose)
	if err != nil {
		return nil, err
	}
	monthEnd, err := calculator.ResampleMonthEnd(*px)
	if err != nil {
		return nil, err
	}
	return calculator.ShiftMonths(*monthEnd, oecdCliLag)
}

func (o oecdCli) rollingLastGradient(ctx context.Context, name string, order int) (*domain.Series, error) {
	data, err := o.monthly(ctx)
	if err != nil {
		return nil, err
	}
	values, err := calculator.RollingWindows(data.Values, oecdCliWindow, func(w []float64) (float64, error) {
		g := w
		for i := 0; i < order; i++ {
			g = calculator.Gradient(g)
		}
		return g[len(g)-1], nil
	})
	if err != nil {
		return nil, err
	}
	return data.WithValues(name, values), nil
}

// OecdCliRoCC is the change in the monthly change of the indicator
type OecdCliRoCC struct {
	oecdCli
}

func NewOecdCliRoCC(priceFieldRepository repository.PriceFieldRepository) OecdCliRoCC {
	return OecdCliRoCC{oecdCli{PriceFieldRepository: priceFieldRepository}}
}

func (o OecdCliRoCC) Name() string {
	return "OecdCliRoCC"
}

func (o OecdCliRoCC) Compute(ctx context.Context) (*domain.Series, error) {
	data, err := o.monthly(ctx)
	if err != nil {
		return nil, err
	}
	out := data.Diff().Diff()
	out.Name = o.Name()
	return out, nil
}

// OecdCliRoG is the latest gradient over a trailing year
type OecdCliRoG struct {
	oecdCli
}

func NewOecdCliRoG(priceFieldRepository repository.PriceFieldRepository) OecdCliRoG {
	return OecdCliRoG{oecdCli{PriceFieldRepository: priceFieldRepository}}
}

func (o OecdCliRoG) Name() string {
	return "OecdCliRoG"
}

func (o OecdCliRoG) Compute(ctx context.Context) (*domain.Series, error) {
	return o.rollingLastGradient(ctx, o.Name(), 1)
}

// OecdCliRoGG is the latest gradient of the gradient over a trailing year
type OecdCliRoGG struct {
	oecdCli
}

func NewOecdCliRoGG(priceFieldRepository repository.PriceFieldRepository) OecdCliRoGG {
	return OecdCliRoGG{oecdCli{PriceFieldRepository: priceFieldRepository}}
}

func (o OecdCliRoGG) Name() string {
	return "OecdCliRoGG"
}

func (o OecdCliRoGG) Compute(ctx context.Context) (*domain.Series, error) {
	return o.rollingLastGradient(ctx, o.Name(), 2)
}
