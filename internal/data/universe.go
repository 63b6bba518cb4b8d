package data

import (
	"context"
	"fmt"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/repository"
)

// Universe is an ordered set of assets with unique names. Asset ids are
// positions in the universe.
type Universe struct {
	assets []*Asset
	byName map[string]*Asset
}

func NewUniverse(priceFieldRepository repository.PriceFieldRepository, tickers ...string) (*Universe, error) {
	u := &Universe{
		assets: []*Asset{},
		byName: map[string]*Asset{},
	}
	for i, ticker := range tickers {
		if _, ok := u.byName[ticker]; ok {
			return nil, fmt.Errorf("duplicate asset %s in universe", ticker)
		}
		a := NewAsset(i, ticker, priceFieldRepository)
		u.assets = append(u.assets, a)
		u.byName[ticker] = a
	}

	return u, nil
}

func (u Universe) Assets() []*Asset {
	return u.assets
}

func (u Universe) Get(name string) (*Asset, bool) {
	a, ok := u.byName[name]
	return a, ok
}

func (u Universe) Len() int {
	return len(u.assets)
}

// CrossSection aligns one field across every asset on the sorted union of
// their dates, with NaN where an asset has no observation. Columns are named
// by asset.
func (u Universe) CrossSection(ctx context.Context, field string) (*domain.Frame, error) {
	columns := make([]*domain.Series, 0, len(u.assets))
	for _, a := range u.assets {
		s, err := a.Get(ctx, field)
		if err != nil {
			return nil, err
		}
		col, err := domain.NewSeries(a.Name, s.Dates, s.Values)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return domain.NewFrame(columns...)
}
