package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"ixbacktest/api"
	"ixbacktest/internal/app"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"
	"ixbacktest/internal/util"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixtureTickers = []string{"SPY", "QQQ"}

func runPreset(t *testing.T, repo repository.PriceFieldRepository, preset app.Preset) *domain.BacktestResult {
	t.Helper()
	result, err := app.NewBacktestApp(repo).Backtest(context.Background(), app.BacktestInput{
		Preset:    preset,
		Tickers:   fixtureTickers,
		Principal: decimal.NewFromInt(50_000),
	})
	require.NoError(t, err)
	return result
}

// checkLedger verifies that the result is consistent with its own fills
func checkLedger(t *testing.T, result *domain.BacktestResult, fixture map[string][]repository.PriceRow) {
	t.Helper()

	cash := result.Principal
	shares := map[string]float64{}
	for _, f := range result.Fills {
		cash = cash.Sub(f.Amount())
		shares[f.Ticker] += f.Shares
		require.GreaterOrEqual(t, shares[f.Ticker], 0.0, "short position in %s", f.Ticker)
	}
	require.True(t, cash.Equal(result.Cash), "cash %s != %s", cash, result.Cash)

	for ticker, held := range result.Positions {
		require.Equal(t, shares[ticker], held, ticker)
	}

	require.Len(t, result.Snapshots, len(fixture["SPY"]))
	last := result.Snapshots[len(result.Snapshots)-1]
	require.NotNil(t, last.Value)
	expected := result.Cash
	for ticker, held := range result.Positions {
		expected = expected.Add(decimal.NewFromFloat(held).Mul(decimal.NewFromFloat(lastPrice(fixture[ticker]))))
	}
	require.True(t, expected.Equal(*last.Value), "value %s != %s", expected, last.Value)
}

func TestCsvBacktest(t *testing.T) {
	fixture, err := loadFixture(pricesFixture)
	require.NoError(t, err)
	repo, err := repository.NewCsvPriceRepository(pricesFixture)
	require.NoError(t, err)

	for _, preset := range []app.Preset{app.PresetMacd, app.PresetRsiRange} {
		t.Run(string(preset), func(t *testing.T) {
			result := runPreset(t, repo, preset)
			require.Equal(t, string(preset), result.Strategy)
			checkLedger(t, result, fixture)

			again := runPreset(t, repo, preset)
			require.Equal(t, "", cmp.Diff(
				result,
				again,
				cmpopts.IgnoreFields(domain.BacktestResult{}, "RunID", "Profile"),
			))
		})
	}

	t.Run("macd trades the oscillation", func(t *testing.T) {
		result := runPreset(t, repo, app.PresetMacd)
		require.NotEmpty(t, result.Fills)
	})
}

func TestApiBacktestOverCsv(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, err := repository.NewCsvPriceRepository(pricesFixture)
	require.NoError(t, err)
	handler := api.ApiHandler{
		BacktestApp: app.NewBacktestApp(repo),
		Logger:      zap.NewNop().Sugar(),
	}

	principal := 50_000.0
	body, err := json.Marshal(api.BacktestRequest{
		Strategy:  "macd",
		Tickers:   fixtureTickers,
		Principal: &principal,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/backtest", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.InitializeRouterEngine().ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	got := domain.BacktestResult{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	direct := runPreset(t, repo, app.PresetMacd)
	require.True(t, direct.Cash.Equal(got.Cash))
	require.Equal(t, len(direct.Fills), len(got.Fills))
	require.Equal(t, direct.Positions, got.Positions)
}

func TestPostgresMatchesCsv(t *testing.T) {
	if !strings.EqualFold(os.Getenv(logger.EnvKey), "test") {
		t.Skip("postgres tests run with IX_ENV=test")
	}
	db, err := util.NewTestDb()
	require.NoError(t, err)
	defer db.Close()

	ids, err := seedPrices(db, pricesFixture)
	require.NoError(t, err)
	pxDataRepository := repository.NewPxDataRepository(db)
	defer func() {
		for _, id := range ids {
			require.NoError(t, pxDataRepository.DeleteForMeta(nil, id))
		}
	}()

	csvRepo, err := repository.NewCsvPriceRepository(pricesFixture)
	require.NoError(t, err)

	for _, preset := range []app.Preset{app.PresetMacd, app.PresetRsiRange} {
		fromCsv := runPreset(t, csvRepo, preset)
		fromDb := runPreset(t, pxDataRepository, preset)
		require.Equal(t, "", cmp.Diff(
			fromCsv,
			fromDb,
			cmpopts.IgnoreFields(domain.BacktestResult{}, "RunID", "Profile"),
		), preset)
	}
}
