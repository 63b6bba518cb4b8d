package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"ixbacktest/internal"
	"ixbacktest/internal/app"
	"ixbacktest/internal/domain"
	"ixbacktest/internal/logger"
	"ixbacktest/internal/repository"
	"ixbacktest/internal/signal"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type runOptions struct {
	strategy  string
	tickers   []string
	principal float64
	prices    string
	signal    string
	asJson    bool
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ixbacktest",
		Short:         "event-driven rule backtester",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(), newIngestCommand(), newServeCommand())
	return root
}

func Execute() error {
	ctx := logger.WithLogger(context.Background(), logger.New())
	return NewRootCommand().ExecuteContext(ctx)
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	c := &cobra.Command{
		Use:   "run",
		Short: "run one preset strategy over stored or csv prices",
		RunE: func(c *cobra.Command, args []string) error {
			return runBacktest(c.Context(), c.OutOrStdout(), opts)
		},
	}
	c.Flags().StringVar(&opts.strategy, "strategy", string(app.PresetMacd), "macd, rsirange or oecdcli")
	c.Flags().StringSliceVar(&opts.tickers, "tickers", nil, "comma separated tickers to trade")
	c.Flags().Float64Var(&opts.principal, "principal", 0, "starting cash, 10000 when unset")
	c.Flags().StringVar(&opts.signal, "signal", "", "signal traded by oecdcli: "+strings.Join(signal.Keys(), ", ")+"; rogg when unset")
	c.Flags().StringVar(&opts.prices, "prices", "", "csv file of daily bars to read instead of postgres")
	c.Flags().BoolVar(&opts.asJson, "json", false, "print the full result as json")
	return c
}

func priceRepository(prices string) (repository.PriceFieldRepository, func(), error) {
	if prices != "" {
		repo, err := repository.NewCsvPriceRepository(prices)
		return repo, func() {}, err
	}
	deps, err := InitializeDependencies()
	if err != nil {
		return nil, nil, err
	}
	return deps.ApiHandler.PxDataRepository, func() { CloseDependencies(deps) }, nil
}

func runBacktest(ctx context.Context, w io.Writer, opts runOptions) error {
	preset, err := app.NewPreset(opts.strategy)
	if err != nil {
		return err
	}
	repo, closeRepo, err := priceRepository(opts.prices)
	if err != nil {
		return err
	}
	defer closeRepo()

	profile, endProfile := domain.NewProfile()
	ctx = domain.NewCtxWithProfile(ctx, profile)
	defer endProfile()

	result, err := app.NewBacktestApp(repo).Backtest(ctx, app.BacktestInput{
		Preset:    preset,
		Tickers:   opts.tickers,
		Principal: decimal.NewFromFloat(opts.principal),
		Signal:    opts.signal,
	})
	if err != nil {
		return err
	}

	if opts.asJson {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(result)
	}
	printSummary(w, result)
	return nil
}

func printSummary(w io.Writer, result *domain.BacktestResult) {
	fmt.Fprintf(w, "strategy:   %s\n", result.Strategy)
	fmt.Fprintf(w, "principal:  %s\n", result.Principal.StringFixed(2))
	if n := len(result.Snapshots); n > 0 {
		last := result.Snapshots[n-1]
		fmt.Fprintf(w, "period:     %s to %s\n", result.Snapshots[0].Date.Format(time.DateOnly), last.Date.Format(time.DateOnly))
		if last.Value != nil {
			fmt.Fprintf(w, "value:      %s\n", last.Value.StringFixed(2))
		}
	}
	fmt.Fprintf(w, "cash:       %s\n", result.Cash.StringFixed(2))
	fmt.Fprintf(w, "fills:      %d\n", len(result.Fills))
	for ticker, shares := range result.Positions {
		fmt.Fprintf(w, "position:   %s %v\n", ticker, shares)
	}
	for _, o := range result.UnsettledOrders {
		fmt.Fprintf(w, "unsettled:  %s %v staged %s\n", o.Ticker, o.Shares, o.StagedAt.Format(time.DateOnly))
	}
	if m := result.Metrics; m != nil {
		fmt.Fprintf(w, "return:     %.4f (annualized %.4f)\n", m.CumulativeReturn, m.AnnualizedReturn)
		fmt.Fprintf(w, "volatility: %.4f\n", m.AnnualizedVolatility)
		fmt.Fprintf(w, "sharpe:     %.4f\n", m.SharpeRatio)
		fmt.Fprintf(w, "drawdown:   %.4f\n", m.MaxDrawdown)
	}
}

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "refresh stored prices of every instrument in meta",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := InitializeDependencies()
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			h := deps.ApiHandler
			return internal.UpdatePrices(c.Context(), h.Db, h.MetaRepository, h.PxDataRepository, h.PriceFetchers)
		},
	}
}

func newServeCommand() *cobra.Command {
	port := 0
	c := &cobra.Command{
		Use:   "serve",
		Short: "serve the http api",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := InitializeDependencies()
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			if port == 0 {
				port = deps.Secrets.Api.Port
			}
			return deps.ApiHandler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "listen port, defaults to the configured one")
	return c
}
