package cmd

import (
	"bytes"
	"encoding/json"
	"ixbacktest/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = "../integration-tests/testdata/prices.csv"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		out, err := execute(t, "run", "--strategy", "macd", "--tickers", "SPY,QQQ", "--prices", fixture)
		require.NoError(t, err)
		require.Contains(t, out, "strategy:   macd")
		require.Contains(t, out, "principal:  10000.00")
		require.Contains(t, out, "period:     2021-01-04 to")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "run", "--strategy", "rsirange", "--tickers", "SPY", "--principal", "2000", "--prices", fixture, "--json")
		require.NoError(t, err)

		result := domain.BacktestResult{}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Equal(t, "rsirange", result.Strategy)
		require.Equal(t, "2000", result.Principal.String())
		require.Len(t, result.Snapshots, 120)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := execute(t, "run", "--strategy", "momentum", "--prices", fixture)
		require.ErrorContains(t, err, "unknown strategy")
	})

	t.Run("signal on an indicator preset", func(t *testing.T) {
		_, err := execute(t, "run", "--strategy", "macd", "--signal", "audcad", "--tickers", "SPY", "--prices", fixture)
		require.ErrorContains(t, err, "does not take a signal")
	})

	t.Run("unknown signal", func(t *testing.T) {
		_, err := execute(t, "run", "--strategy", "oecdcli", "--signal", "vix", "--prices", fixture)
		require.ErrorContains(t, err, "unknown signal")
	})

	t.Run("missing csv", func(t *testing.T) {
		_, err := execute(t, "run", "--tickers", "SPY", "--prices", "does-not-exist.csv")
		require.Error(t, err)
	})

	t.Run("ticker absent from csv", func(t *testing.T) {
		_, err := execute(t, "run", "--tickers", "IWM", "--prices", fixture)
		require.ErrorContains(t, err, "IWM")
	})
}
