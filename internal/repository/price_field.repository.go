package repository

import (
	"context"
	"ixbacktest/internal/domain"
	"math"
	"time"
)

//go:generate mockgen -source=price_field.repository.go -destination=mocks/mock_price_field.repository.go

// PriceFieldRepository returns one price field of one instrument as an
// ascending date series
type PriceFieldRepository interface {
	GetPriceField(ctx context.Context, ticker, field string) (*domain.Series, error)
}

// newFieldSeries builds the provider result. A field with no observations
// is reported as not found.
func newFieldSeries(ticker, field string, dates []time.Time, values []float64) (*domain.Series, error) {
	found := false
	for _, v := range values {
		if !math.IsNaN(v) {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.FieldNotFoundError{Ticker: ticker, Field: field}
	}

	return domain.NewSeries(field, dates, values)
}
