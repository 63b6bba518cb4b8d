package app

import (
	"context"
	"errors"
	"fmt"
	"ixbacktest/internal/calculator"
	"ixbacktest/internal/data"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/indicator"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultPrincipal = 10_000

// IndicatorBinding wires one indicator kind on every asset under Name
type IndicatorBinding struct {
	Name string
	Kind indicator.Kind
}

// Rule decides what to stage for one asset on the strategy's current date
type Rule interface {
	Decide(ctx context.Context, s *Strategy, asset *data.Asset) error
}

type StrategyInput struct {
	Name                 string
	Tickers              []string
	Principal            decimal.Decimal
	Indicators           []IndicatorBinding
	Rule                 Rule
	PriceFieldRepository repository.PriceFieldRepository
}

type runState int

const (
	stateIdle runState = iota
	stateAdvancing
	stateSettled
)

// Strategy walks the universe timeline one date at a time. Orders staged on
// a date settle at the next date with a price, never on the date they were
// staged. Not safe for concurrent use.
type Strategy struct {
	Name      string
	principal decimal.Decimal
	cash      decimal.Decimal
	book      *domain.Book
	universe  *data.Universe
	bindings  []IndicatorBinding
	rule      Rule

	state     runState
	date      time.Time
	stagedAt  map[int]time.Time
	fills     []domain.Fill
	snapshots []domain.Snapshot
}

// NewStrategy builds the universe and computes every indicator binding on
// every asset
func NewStrategy(ctx context.Context, in StrategyInput) (*Strategy, error) {
	if in.Rule == nil {
		return nil, fmt.Errorf("strategy %s has no rule", in.Name)
	}
	if len(in.Tickers) == 0 {
		return nil, fmt.Errorf("strategy %s has no assets", in.Name)
	}
	if in.Principal.IsNegative() {
		return nil, fmt.Errorf("principal cannot be negative, got %s", in.Principal)
	}

	universe, err := data.NewUniverse(in.PriceFieldRepository, in.Tickers...)
	if err != nil {
		return nil, err
	}
	for _, asset := range universe.Assets() {
		for _, b := range in.Indicators {
			if err := asset.AddIndicator(ctx, b.Name, b.Kind); err != nil {
				return nil, err
			}
		}
	}

	return &Strategy{
		Name:      in.Name,
		principal: in.Principal,
		cash:      in.Principal,
		book:      domain.NewBook(),
		universe:  universe,
		bindings:  in.Indicators,
		rule:      in.Rule,
		state:     stateIdle,
		stagedAt:  map[int]time.Time{},
		fills:     []domain.Fill{},
		snapshots: []domain.Snapshot{},
	}, nil
}

func (s *Strategy) Date() time.Time {
	return s.date
}

func (s *Strategy) Cash() decimal.Decimal {
	return s.cash
}

func (s *Strategy) Universe() *data.Universe {
	return s.universe
}

func (s *Strategy) Indicators() []IndicatorBinding {
	return s.bindings
}

func (s *Strategy) Position(asset *data.Asset) (*domain.Position, bool) {
	return s.book.Get(asset.ID)
}

// Price is the asset's adjusted close on the current date
func (s *Strategy) Price(ctx context.Context, asset *data.Asset) (float64, bool, error) {
	return asset.Price(ctx, s.date)
}

// Buy stages shares for the next settlement, replacing anything already
// staged for the asset
func (s *Strategy) Buy(ctx context.Context, asset *data.Asset, shares float64) {
	logger.FromContext(ctx).Infof("buy %s, %s %v", s.date.Format(time.DateOnly), asset.Name, shares)
	p := s.book.GetOrCreate(asset.ID, asset.Name)
	s.stagedAt[p.AssetID] = s.date
	p.Order = shares
}

// Sell subtracts shares from the staged order. It does nothing for an asset
// that was never traded.
func (s *Strategy) Sell(ctx context.Context, asset *data.Asset, shares float64) {
	p, ok := s.book.Get(asset.ID)
	if !ok {
		return
	}
	logger.FromContext(ctx).Infof("sell %s, %s %v", s.date.Format(time.DateOnly), asset.Name, shares)
	s.markStaged(p)
	p.Order -= shares
}

// markStaged dates an order that starts from nothing. A sell adjusting an
// existing order keeps that order's date.
func (s *Strategy) markStaged(p *domain.Position) {
	if p.Order == 0 {
		s.stagedAt[p.AssetID] = s.date
	}
}

// settle executes staged orders at today's price. An asset without a price
// keeps its order for the next date.
func (s *Strategy) settle(ctx context.Context) error {
	log := logger.FromContext(ctx)
	for _, id := range s.book.AssetIDs() {
		p, _ := s.book.Get(id)
		if p.Order == 0 {
			continue
		}
		asset, ok := s.universe.Get(p.Ticker)
		if !ok {
			return fmt.Errorf("book entry %s is not in the universe", p.Ticker)
		}
		price, ok, err := s.Price(ctx, asset)
		if err != nil {
			return err
		}
		if !ok {
			log.Debugf("no price for %s on %s, order of %v stays staged", p.Ticker, s.date.Format(time.DateOnly), p.Order)
			continue
		}

		fill := domain.Fill{
			Date:   s.date,
			Ticker: p.Ticker,
			Shares: p.Order,
			Price:  decimal.NewFromFloat(price),
		}
		s.cash = s.cash.Sub(fill.Amount())
		p.Shares += p.Order
		p.Order = 0
		delete(s.stagedAt, id)
		s.fills = append(s.fills, fill)
	}
	return nil
}

// Value is cash plus every held position at today's price
func (s *Strategy) Value(ctx context.Context) (decimal.Decimal, error) {
	v := s.cash
	for _, id := range s.book.AssetIDs() {
		p, _ := s.book.Get(id)
		if p.Shares == 0 {
			continue
		}
		asset, ok := s.universe.Get(p.Ticker)
		if !ok {
			return decimal.Zero, fmt.Errorf("book entry %s is not in the universe", p.Ticker)
		}
		price, ok, err := s.Price(ctx, asset)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			return decimal.Zero, domain.MissingPriceError{Ticker: p.Ticker, Date: s.date}
		}
		v = v.Add(decimal.NewFromFloat(p.Shares).Mul(decimal.NewFromFloat(price)))
	}
	return v, nil
}

func (s *Strategy) snapshot(ctx context.Context) error {
	snap := domain.Snapshot{
		Date: s.date,
		Cash: s.cash,
	}
	v, err := s.Value(ctx)
	if err != nil && !errors.As(err, &domain.MissingPriceError{}) {
		return err
	}
	if err == nil {
		snap.Value = &v
	}
	s.snapshots = append(s.snapshots, snap)
	return nil
}

// Run visits every date of the adjusted close cross section: settle, decide,
// snapshot. Nothing settles after the last date. A strategy runs once.
func (s *Strategy) Run(ctx context.Context) (*domain.BacktestResult, error) {
	if s.state != stateIdle {
		return nil, fmt.Errorf("strategy %s has already run", s.Name)
	}
	s.state = stateAdvancing
	log := logger.FromContext(ctx)

	timeline, err := s.universe.CrossSection(ctx, domain.FieldAdjClose)
	if err != nil {
		return nil, fmt.Errorf("failed to build timeline: %w", err)
	}

	for _, date := range timeline.Dates {
		s.date = date
		if err := s.settle(ctx); err != nil {
			return nil, fmt.Errorf("failed to settle on %s: %w", date.Format(time.DateOnly), err)
		}
		for _, asset := range s.universe.Assets() {
			if err := s.rule.Decide(ctx, s, asset); err != nil {
				return nil, fmt.Errorf("failed to evaluate %s on %s: %w", asset.Name, date.Format(time.DateOnly), err)
			}
		}
		if err := s.snapshot(ctx); err != nil {
			return nil, err
		}
	}
	s.state = stateSettled

	result := s.result(ctx)
	log.Infof("%s finished %d dates with %d fills, cash %s", s.Name, timeline.Len(), len(s.fills), s.cash.StringFixed(2))

	return result, nil
}

func (s *Strategy) result(ctx context.Context) *domain.BacktestResult {
	unsettled := []domain.UnsettledOrder{}
	for _, id := range s.book.AssetIDs() {
		p, _ := s.book.Get(id)
		if p.Order == 0 {
			continue
		}
		unsettled = append(unsettled, domain.UnsettledOrder{
			Ticker:   p.Ticker,
			Shares:   p.Order,
			StagedAt: s.stagedAt[id],
		})
	}

	result := &domain.BacktestResult{
		RunID:           uuid.New(),
		Strategy:        s.Name,
		Principal:       s.principal,
		Cash:            s.cash,
		Positions:       s.book.Shares(),
		UnsettledOrders: unsettled,
		Fills:           s.fills,
		Snapshots:       s.snapshots,
	}

	metrics, err := calculator.CalculateMetrics(result.ValueSeries())
	if err != nil {
		logger.FromContext(ctx).Warnf("no performance metrics for %s: %v", s.Name, err)
	} else {
		result.Metrics = metrics
	}

	return result
}
