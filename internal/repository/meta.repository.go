package repository

import (
	"database/sql"
	"fmt"
	"ixbacktest/internal/db/models/postgres/public/model"
	"ixbacktest/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// price sources a meta row can be ingested from
const (
	SourceYahoo = "YAHOO"
	SourceFred  = "FRED"
)

type MetaRepository interface {
	List() ([]model.Meta, error)
	GetByTicker(ticker string) (*model.Meta, error)
	Add(tx *sql.Tx, m model.Meta) (*model.Meta, error)
}

type metaRepositoryHandler struct {
	Db *sql.DB
}

func NewMetaRepository(db *sql.DB) MetaRepository {
	return metaRepositoryHandler{Db: db}
}

func (h metaRepositoryHandler) List() ([]model.Meta, error) {
	query := table.Meta.
		SELECT(table.Meta.AllColumns).
		ORDER_BY(table.Meta.ID.ASC())

	result := []model.Meta{}
	err := query.Query(h.Db, &result)
	if err != nil && err != qrm.ErrNoRows {
		return nil, fmt.Errorf("failed to list meta: %w", err)
	}

	return result, nil
}

func (h metaRepositoryHandler) GetByTicker(ticker string) (*model.Meta, error) {
	query := table.Meta.
		SELECT(table.Meta.AllColumns).
		WHERE(table.Meta.Ticker.EQ(postgres.String(ticker)))

	out := model.Meta{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get meta for %s: %w", ticker, err)
	}

	return &out, nil
}

// Add inserts the row or refreshes the descriptive columns of an existing
// ticker
func (h metaRepositoryHandler) Add(tx *sql.Tx, m model.Meta) (*model.Meta, error) {
	query := table.Meta.
		INSERT(table.Meta.MutableColumns).
		MODEL(m).
		ON_CONFLICT(table.Meta.Ticker).DO_UPDATE(
		postgres.SET(
			table.Meta.Name.SET(table.Meta.EXCLUDED.Name),
			table.Meta.Source.SET(table.Meta.EXCLUDED.Source),
			table.Meta.Code.SET(table.Meta.EXCLUDED.Code),
		),
	).RETURNING(table.Meta.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Meta{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meta %s: %w", m.Ticker, err)
	}

	return &out, nil
}
