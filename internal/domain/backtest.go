package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Snapshot struct {
	Date time.Time       `json:"date"`
	Cash decimal.Decimal `json:"cash"`
	// nil when a held asset had no price that day
	Value *decimal.Decimal `json:"value"`
}

type PerformanceMetrics struct {
	CumulativeReturn     float64 `json:"cumulativeReturn"`
	AnnualizedReturn     float64 `json:"annualizedReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	SharpeRatio          float64 `json:"sharpeRatio"`
	MaxDrawdown          float64 `json:"maxDrawdown"`
}

type BacktestResult struct {
	RunID           uuid.UUID           `json:"runID"`
	Strategy        string              `json:"strategy"`
	Principal       decimal.Decimal     `json:"principal"`
	Cash            decimal.Decimal     `json:"cash"`
	Positions       map[string]float64  `json:"positions"`
	UnsettledOrders []UnsettledOrder    `json:"unsettledOrders"`
	Fills           []Fill              `json:"fills"`
	Snapshots       []Snapshot          `json:"snapshots"`
	Metrics         *PerformanceMetrics `json:"metrics,omitempty"`
	Profile         *Profile            `json:"profile,omitempty"`
}

// ValueAt returns the recorded portfolio value on a visited date
func (r BacktestResult) ValueAt(date time.Time) (decimal.Decimal, bool) {
	for _, s := range r.Snapshots {
		if s.Date.Equal(date) && s.Value != nil {
			return *s.Value, true
		}
	}
	return decimal.Zero, false
}

// ValueSeries is the snapshot values as a series, skipping days without a
// value
func (r BacktestResult) ValueSeries() *Series {
	dates := []time.Time{}
	values := []float64{}
	for _, s := range r.Snapshots {
		if s.Value == nil {
			continue
		}
		dates = append(dates, s.Date)
		values = append(values, s.Value.InexactFloat64())
	}
	return mustSeries("value", dates, values)
}
