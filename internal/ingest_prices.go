package internal

import (
	"context"
	"database/sql"
	"fmt"
	"ixbacktest/internal/db/models/postgres/public/model"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"
	"ixbacktest/pkg/fred"
	"math"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"go.uber.org/multierr"
)

// IngestStart is the first date requested from every source
var IngestStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PriceFetcher downloads the daily rows of one meta entry
type PriceFetcher interface {
	FetchPrices(ctx context.Context, meta model.Meta, start, end time.Time) ([]model.PxData, error)
}

// symbol is the code the source knows the instrument by
func symbol(meta model.Meta) string {
	if meta.Code != nil && *meta.Code != "" {
		return *meta.Code
	}
	return meta.Ticker
}

type YahooFetcher struct{}

func (YahooFetcher) FetchPrices(ctx context.Context, meta model.Meta, start, end time.Time) ([]model.PxData, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol(meta),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	rows := []model.PxData{}
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar := iter.Bar()
		volume := float64(bar.Volume)
		rows = append(rows, model.PxData{
			MetaID:   meta.ID,
			Date:     time.Unix(int64(bar.Timestamp), 0).UTC().Truncate(24 * time.Hour),
			Open:     floatPtr(bar.Open.InexactFloat64()),
			High:     floatPtr(bar.High.InexactFloat64()),
			Low:      floatPtr(bar.Low.InexactFloat64()),
			Close:    floatPtr(bar.Close.InexactFloat64()),
			AdjClose: floatPtr(bar.AdjClose.InexactFloat64()),
			Volume:   &volume,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol(meta), err)
	}

	return rows, nil
}

type FredFetcher struct {
	Client fred.Client
}

func (f FredFetcher) FetchPrices(ctx context.Context, meta model.Meta, start, end time.Time) ([]model.PxData, error) {
	observations, err := f.Client.GetSeries(ctx, symbol(meta), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get fred series %s: %w", symbol(meta), err)
	}
	return fredToPxData(meta.ID, observations), nil
}

// fredToPxData stores a FRED value as a bar whose close and adj_close are
// the observation. Missing observations are dropped.
func fredToPxData(metaID int32, observations []fred.Observation) []model.PxData {
	rows := []model.PxData{}
	for _, o := range observations {
		if math.IsNaN(o.Value) {
			continue
		}
		rows = append(rows, model.PxData{
			MetaID:   metaID,
			Date:     o.Date,
			Close:    floatPtr(o.Value),
			AdjClose: floatPtr(o.Value),
		})
	}
	return rows
}

func DefaultPriceFetchers() map[string]PriceFetcher {
	return map[string]PriceFetcher{
		repository.SourceYahoo: YahooFetcher{},
		repository.SourceFred:  FredFetcher{Client: fred.NewClient()},
	}
}

// IngestPrices replaces every stored row of meta with a fresh download
func IngestPrices(
	ctx context.Context,
	db *sql.DB,
	meta model.Meta,
	fetcher PriceFetcher,
	pxDataRepository repository.PxDataRepository,
) (int, error) {
	rows, err := fetcher.FetchPrices(ctx, meta, IngestStart, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("no rows returned for %s", meta.Ticker)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := pxDataRepository.DeleteForMeta(tx, meta.ID); err != nil {
		return 0, err
	}
	if err := pxDataRepository.Add(tx, rows); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prices for %s: %w", meta.Ticker, err)
	}

	return len(rows), nil
}

// UpdatePrices refreshes every meta entry from its source. A failing entry
// does not stop the others; all failures are returned together.
func UpdatePrices(
	ctx context.Context,
	db *sql.DB,
	metaRepository repository.MetaRepository,
	pxDataRepository repository.PxDataRepository,
	fetchers map[string]PriceFetcher,
) error {
	log := logger.FromContext(ctx)

	metas, err := metaRepository.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		return fmt.Errorf("no instruments found in meta")
	}

	var errs error
	failed := 0
	for _, m := range metas {
		fetcher, ok := fetchers[m.Source]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown source %q for %s", m.Source, m.Ticker))
			failed++
			continue
		}
		n, err := IngestPrices(ctx, db, m, fetcher, pxDataRepository)
		if err != nil {
			err = fmt.Errorf("failed to ingest prices for %s: %w", m.Ticker, err)
			log.Warn(err)
			errs = multierr.Append(errs, err)
			failed++
			continue
		}
		log.Infof("added %d rows for %s", n, m.Ticker)
	}

	if errs != nil {
		return fmt.Errorf("failed to update %d/%d instruments: %w", failed, len(metas), errs)
	}

	return nil
}

func floatPtr(f float64) *float64 {
	return &f
}
