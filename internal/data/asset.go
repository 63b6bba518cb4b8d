package data

import (
	"context"
	"fmt"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/indicator"
	"ixbacktest/internal/repository"
	"time"
)

// Asset is one tradable instrument. Price fields are fetched on first use and
// cached for the life of the run; the cache is not safe for concurrent use.
type Asset struct {
	ID   int
	Name string

	priceFieldRepository repository.PriceFieldRepository
	fields               map[string]*domain.Series
	indicators           map[string]indicator.Indicator
}

func NewAsset(id int, name string, priceFieldRepository repository.PriceFieldRepository) *Asset {
	return &Asset{
		ID:                   id,
		Name:                 name,
		priceFieldRepository: priceFieldRepository,
		fields:               map[string]*domain.Series{},
		indicators:           map[string]indicator.Indicator{},
	}
}

// Get returns the cached field, fetching it from the provider on first
// access. Failed fetches are not cached.
func (a *Asset) Get(ctx context.Context, field string) (*domain.Series, error) {
	if s, ok := a.fields[field]; ok {
		return s, nil
	}

	s, err := a.priceFieldRepository.GetPriceField(ctx, a.Name, field)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s for %s: %w", field, a.Name, err)
	}
	a.fields[field] = s

	return s, nil
}

// Price is the adjusted close on date
func (a *Asset) Price(ctx context.Context, date time.Time) (float64, bool, error) {
	s, err := a.Get(ctx, domain.FieldAdjClose)
	if err != nil {
		return 0, false, err
	}
	p, ok := s.Get(date)
	return p, ok, nil
}

// AddIndicator builds an indicator of the given kind, feeds it the fields it
// declares (aligned on their union of dates) and stores it under name. The
// asset is unchanged when any step fails.
func (a *Asset) AddIndicator(ctx context.Context, name string, kind indicator.Kind) error {
	ind, err := indicator.New(kind)
	if err != nil {
		return err
	}

	inputs := []*domain.Series{}
	for _, field := range ind.Fields() {
		s, err := a.Get(ctx, field)
		if err != nil {
			return fmt.Errorf("failed to wire %s on %s: %w", name, a.Name, err)
		}
		named, err := domain.NewSeries(field, s.Dates, s.Values)
		if err != nil {
			return err
		}
		inputs = append(inputs, named)
	}

	aligned, err := domain.NewFrame(inputs...)
	if err != nil {
		return err
	}
	args := make([]domain.Series, 0, len(inputs))
	for _, field := range ind.Fields() {
		col, err := aligned.Column(field)
		if err != nil {
			return err
		}
		args = append(args, *col)
	}

	if err := ind.Compute(args...); err != nil {
		return fmt.Errorf("failed to compute %s on %s: %w", name, a.Name, err)
	}
	a.indicators[name] = ind

	return nil
}

// Attach stores an already computed indicator under name
func (a *Asset) Attach(name string, ind indicator.Indicator) {
	a.indicators[name] = ind
}

func (a *Asset) Indicator(name string) (indicator.Indicator, bool) {
	ind, ok := a.indicators[name]
	return ind, ok
}

func (a *Asset) String() string {
	return a.Name
}
