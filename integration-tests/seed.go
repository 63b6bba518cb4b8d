package integration_tests

import (
	"database/sql"
	"fmt"
	"ixbacktest/internal/db/models/postgres/public/model"
	"ixbacktest/internal/repository"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const pricesFixture = "testdata/prices.csv"

func parseFixtureCell(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return repository.NaNToPtr(v), nil
}

// loadFixture reads the price fixture grouped by ticker
func loadFixture(path string) (map[string][]repository.PriceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []repository.PriceRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	out := map[string][]repository.PriceRow{}
	for _, r := range rows {
		out[r.Ticker] = append(out[r.Ticker], r)
	}
	return out, nil
}

func toPxData(metaID int32, r repository.PriceRow) (*model.PxData, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return nil, err
	}
	out := model.PxData{MetaID: metaID, Date: date}
	for _, c := range []struct {
		raw string
		dst **float64
	}{
		{r.Open, &out.Open},
		{r.High, &out.High},
		{r.Low, &out.Low},
		{r.Close, &out.Close},
		{r.AdjClose, &out.AdjClose},
		{r.Volume, &out.Volume},
		{r.Dividends, &out.Dividends},
		{r.StockSplits, &out.StockSplits},
		{r.CapitalGains, &out.CapitalGains},
	} {
		v, err := parseFixtureCell(c.raw)
		if err != nil {
			return nil, fmt.Errorf("bad %s row on %s: %w", r.Ticker, r.Date, err)
		}
		*c.dst = v
	}
	return &out, nil
}

// seedPrices writes the fixture into meta and px_data and returns the meta
// ids it touched
func seedPrices(db *sql.DB, path string) ([]int32, error) {
	fixture, err := loadFixture(path)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	metaRepository := repository.NewMetaRepository(db)
	pxDataRepository := repository.NewPxDataRepository(db)

	ids := []int32{}
	for ticker, rows := range fixture {
		meta, err := metaRepository.Add(tx, model.Meta{
			Ticker: ticker,
			Source: repository.SourceYahoo,
		})
		if err != nil {
			return nil, err
		}
		if err := pxDataRepository.DeleteForMeta(tx, meta.ID); err != nil {
			return nil, err
		}

		models := make([]model.PxData, 0, len(rows))
		for _, r := range rows {
			m, err := toPxData(meta.ID, r)
			if err != nil {
				return nil, err
			}
			models = append(models, *m)
		}
		if err := pxDataRepository.Add(tx, models); err != nil {
			return nil, err
		}
		ids = append(ids, meta.ID)
	}

	return ids, tx.Commit()
}

func lastPrice(rows []repository.PriceRow) float64 {
	for i := len(rows) - 1; i >= 0; i-- {
		if v, err := parseFixtureCell(rows[i].AdjClose); err == nil && v != nil {
			return *v
		}
	}
	return math.NaN()
}
