package api

import (
	"errors"
	"fmt"
	"ixbacktest/internal/app"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/signal"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var errNegativePrincipal = errors.New("principal must not be negative")

type BacktestRequest struct {
	Strategy  string   `json:"strategy"`
	Tickers   []string `json:"tickers"`
	Principal *float64 `json:"principal"`
	Signal    string   `json:"signal"`
}

type BacktestResponse struct {
	*domain.BacktestResult
}

func (r BacktestRequest) toInput() (*app.BacktestInput, error) {
	preset, err := app.NewPreset(strings.TrimSpace(r.Strategy))
	if err != nil {
		return nil, err
	}
	in := app.BacktestInput{
		Preset:  preset,
		Tickers: r.Tickers,
	}
	if strings.TrimSpace(r.Signal) != "" {
		if preset != app.PresetOecdCli {
			return nil, fmt.Errorf("strategy %s does not take a signal", preset)
		}
		in.Signal, err = signal.ParseKey(r.Signal)
		if err != nil {
			return nil, err
		}
	}
	if r.Principal != nil {
		in.Principal = decimal.NewFromFloat(*r.Principal)
	}
	return &in, nil
}

func (m ApiHandler) backtest(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	defer endProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)

	var requestBody BacktestRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	in, err := requestBody.toInput()
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if in.Principal.IsNegative() {
		returnErrorJsonCode(errNegativePrincipal, c, 400)
		return
	}

	result, err := m.BacktestApp.Backtest(ctx, *in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, BacktestResponse{BacktestResult: result})
}
