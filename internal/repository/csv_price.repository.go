package repository

import (
	"context"
	"fmt"
	"io"
	"ixbacktest/internal/domain"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// PriceRow is one line of a price csv. Empty cells are missing values.
type PriceRow struct {
	Date         string `csv:"date"`
	Ticker       string `csv:"ticker"`
	Open         string `csv:"open"`
	High         string `csv:"high"`
	Low          string `csv:"low"`
	Close        string `csv:"close"`
	AdjClose     string `csv:"adj_close"`
	Volume       string `csv:"volume"`
	Dividends    string `csv:"dividends"`
	StockSplits  string `csv:"stock_splits"`
	CapitalGains string `csv:"capital_gains"`
}

func (r PriceRow) toAssetPrice() (domain.AssetPrice, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(r.Date))
	if err != nil {
		return domain.AssetPrice{}, fmt.Errorf("invalid date %q for %s: %w", r.Date, r.Ticker, err)
	}
	p := domain.NewAssetPrice(strings.TrimSpace(r.Ticker), date)

	cells := []struct {
		raw string
		dst *float64
	}{
		{r.Open, &p.Open},
		{r.High, &p.High},
		{r.Low, &p.Low},
		{r.Close, &p.Close},
		{r.AdjClose, &p.AdjClose},
		{r.Volume, &p.Volume},
		{r.Dividends, &p.Dividends},
		{r.StockSplits, &p.StockSplits},
		{r.CapitalGains, &p.CapitalGains},
	}
	for _, c := range cells {
		v, err := parseCell(c.raw)
		if err != nil {
			return domain.AssetPrice{}, fmt.Errorf("invalid value on %s for %s: %w", r.Date, r.Ticker, err)
		}
		*c.dst = v
	}
	return p, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// csvPriceRepository serves prices loaded once from a csv file
type csvPriceRepository struct {
	prices map[string][]domain.AssetPrice
}

func NewCsvPriceRepository(path string) (PriceFieldRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return NewCsvPriceRepositoryFromReader(f)
}

func NewCsvPriceRepositoryFromReader(r io.Reader) (PriceFieldRepository, error) {
	rows := []PriceRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price csv: %w", err)
	}

	prices := map[string][]domain.AssetPrice{}
	for _, row := range rows {
		p, err := row.toAssetPrice()
		if err != nil {
			return nil, err
		}
		prices[p.Symbol] = append(prices[p.Symbol], p)
	}

	for ticker, bars := range prices {
		sort.Slice(bars, func(i, j int) bool {
			return bars[i].Date.Before(bars[j].Date)
		})
		for i := 1; i < len(bars); i++ {
			if bars[i].Date.Equal(bars[i-1].Date) {
				return nil, fmt.Errorf("duplicate %s row on %s", ticker, bars[i].Date.Format(time.DateOnly))
			}
		}
	}

	return csvPriceRepository{prices: prices}, nil
}

func (h csvPriceRepository) GetPriceField(ctx context.Context, ticker, field string) (*domain.Series, error) {
	bars, ok := h.prices[ticker]
	if !ok || !domain.IsPriceField(field) {
		return nil, domain.FieldNotFoundError{Ticker: ticker, Field: field}
	}

	dates := make([]time.Time, len(bars))
	values := make([]float64, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
		values[i], _ = b.Field(field)
	}

	return newFieldSeries(ticker, field, dates, values)
}
