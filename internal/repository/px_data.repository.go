package repository

import (
	"context"
	"database/sql"
	"fmt"
	"ixbacktest/internal/db/models/postgres/public/model"
	. "ixbacktest/internal/db/models/postgres/public/table"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/util"
	"math"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type PxDataRepository interface {
	PriceFieldRepository
	Add(tx *sql.Tx, rows []model.PxData) error
	DeleteForMeta(tx *sql.Tx, metaID int32) error
}

type pxDataRepositoryHandler struct {
	Db *sql.DB
}

func NewPxDataRepository(db *sql.DB) PxDataRepository {
	return pxDataRepositoryHandler{Db: db}
}

func pxDataColumn(field string) (ColumnFloat, bool) {
	switch field {
	case domain.FieldOpen:
		return PxData.Open, true
	case domain.FieldHigh:
		return PxData.High, true
	case domain.FieldLow:
		return PxData.Low, true
	case domain.FieldClose:
		return PxData.Close, true
	case domain.FieldAdjClose:
		return PxData.AdjClose, true
	case domain.FieldVolume:
		return PxData.Volume, true
	case domain.FieldDividends:
		return PxData.Dividends, true
	case domain.FieldStockSplits:
		return PxData.StockSplits, true
	case domain.FieldCapitalGains:
		return PxData.CapitalGains, true
	}
	return nil, false
}

func (h pxDataRepositoryHandler) GetPriceField(ctx context.Context, ticker, field string) (*domain.Series, error) {
	col, ok := pxDataColumn(field)
	if !ok {
		return nil, domain.FieldNotFoundError{Ticker: ticker, Field: field}
	}

	query := PxData.
		INNER_JOIN(Meta, Meta.ID.EQ(PxData.MetaID)).
		SELECT(PxData.Date, col).
		WHERE(Meta.Ticker.EQ(String(ticker))).
		ORDER_BY(PxData.Date.ASC())

	sqlStr, args := query.Sql()
	rows, err := h.Db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for %s: %w", field, ticker, err)
	}
	defer rows.Close()

	dates := []time.Time{}
	values := []float64{}
	for rows.Next() {
		var date time.Time
		var value sql.NullFloat64
		if err := rows.Scan(&date, &value); err != nil {
			return nil, fmt.Errorf("failed to scan %s for %s: %w", field, ticker, err)
		}
		dates = append(dates, util.ToDate(date))
		values = append(values, nullToNaN(value))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s for %s: %w", field, ticker, err)
	}

	return newFieldSeries(ticker, field, dates, values)
}

func (h pxDataRepositoryHandler) Add(tx *sql.Tx, rows []model.PxData) error {
	if len(rows) == 0 {
		return nil
	}
	query := PxData.
		INSERT(PxData.AllColumns).
		MODELS(rows).
		ON_CONFLICT(
			PxData.MetaID, PxData.Date,
		).DO_UPDATE(
		SET(
			PxData.Open.SET(PxData.EXCLUDED.Open),
			PxData.High.SET(PxData.EXCLUDED.High),
			PxData.Low.SET(PxData.EXCLUDED.Low),
			PxData.Close.SET(PxData.EXCLUDED.Close),
			PxData.AdjClose.SET(PxData.EXCLUDED.AdjClose),
			PxData.Volume.SET(PxData.EXCLUDED.Volume),
			PxData.Dividends.SET(PxData.EXCLUDED.Dividends),
			PxData.StockSplits.SET(PxData.EXCLUDED.StockSplits),
			PxData.CapitalGains.SET(PxData.EXCLUDED.CapitalGains),
		),
	)

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to add price rows to db: %w", err)
	}

	return nil
}

func (h pxDataRepositoryHandler) DeleteForMeta(tx *sql.Tx, metaID int32) error {
	query := PxData.
		DELETE().
		WHERE(PxData.MetaID.EQ(Int(int64(metaID))))

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to delete price rows for meta %d: %w", metaID, err)
	}

	return nil
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// NaNToPtr maps missing observations to NULL
func NaNToPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
