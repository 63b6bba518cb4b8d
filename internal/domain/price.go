package domain

import (
	"math"
	"time"
)

// price fields stored per instrument and date
const (
	FieldOpen         = "open"
	FieldHigh         = "high"
	FieldLow          = "low"
	FieldClose        = "close"
	FieldAdjClose     = "adj_close"
	FieldVolume       = "volume"
	FieldDividends    = "dividends"
	FieldStockSplits  = "stock_splits"
	FieldCapitalGains = "capital_gains"
)

var PriceFields = []string{
	FieldOpen,
	FieldHigh,
	FieldLow,
	FieldClose,
	FieldAdjClose,
	FieldVolume,
	FieldDividends,
	FieldStockSplits,
	FieldCapitalGains,
}

func IsPriceField(field string) bool {
	for _, f := range PriceFields {
		if f == field {
			return true
		}
	}
	return false
}

// AssetPrice is one daily bar. Missing fields are NaN.
type AssetPrice struct {
	Symbol       string
	Date         time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	AdjClose     float64
	Volume       float64
	Dividends    float64
	StockSplits  float64
	CapitalGains float64
}

func NewAssetPrice(symbol string, date time.Time) AssetPrice {
	nan := math.NaN()
	return AssetPrice{
		Symbol:       symbol,
		Date:         date,
		Open:         nan,
		High:         nan,
		Low:          nan,
		Close:        nan,
		AdjClose:     nan,
		Volume:       nan,
		Dividends:    nan,
		StockSplits:  nan,
		CapitalGains: nan,
	}
}

// Field returns the named field, false for unknown names
func (p AssetPrice) Field(field string) (float64, bool) {
	switch field {
	case FieldOpen:
		return p.Open, true
	case FieldHigh:
		return p.High, true
	case FieldLow:
		return p.Low, true
	case FieldClose:
		return p.Close, true
	case FieldAdjClose:
		return p.AdjClose, true
	case FieldVolume:
		return p.Volume, true
	case FieldDividends:
		return p.Dividends, true
	case FieldStockSplits:
		return p.StockSplits, true
	case FieldCapitalGains:
		return p.CapitalGains, true
	}
	return math.NaN(), false
}
