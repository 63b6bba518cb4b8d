package cmd

import (
	"database/sql"
	"fmt"
	"ixbacktest/api"
	"ixbacktest/internal"
	"ixbacktest/internal/app"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"
	"ixbacktest/internal/util"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Dependencies struct {
	Secrets    *util.Secrets
	ApiHandler *api.ApiHandler
}

func CloseDependencies(deps *Dependencies) {
	if deps == nil || deps.ApiHandler == nil || deps.ApiHandler.Db == nil {
		return
	}
	if err := deps.ApiHandler.Db.Close(); err != nil {
		zap.S().Errorf("failed to close db: %v", err)
	}
}

func OpenDb(secrets *util.Secrets) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return dbConn, nil
}

// InitializeDependencies connects to postgres and wires the backtest app
// onto the stored price data
func InitializeDependencies() (*Dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := OpenDb(secrets)
	if err != nil {
		return nil, err
	}

	metaRepository := repository.NewMetaRepository(dbConn)
	pxDataRepository := repository.NewPxDataRepository(dbConn)

	apiHandler := &api.ApiHandler{
		Db:               dbConn,
		BacktestApp:      app.NewBacktestApp(pxDataRepository),
		MetaRepository:   metaRepository,
		PxDataRepository: pxDataRepository,
		PriceFetchers:    internal.DefaultPriceFetchers(),
		Logger:           logger.New(),
	}

	return &Dependencies{
		Secrets:    secrets,
		ApiHandler: apiHandler,
	}, nil
}
