package app

import (
	"context"
	"fmt"
	"ixbacktest/internal/indicator"
	"ixbacktest/internal/repository"
	"ixbacktest/internal/signal"
	"strings"

	"github.com/shopspring/decimal"
)

type Preset string

const (
	PresetMacd     Preset = "macd"
	PresetRsiRange Preset = "rsirange"
	PresetOecdCli  Preset = "oecdcli"
)

// OecdCliAsset is the only instrument the leading indicator strategy trades
const OecdCliAsset = "SPY.US.Equity"

func NewPreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(s)) {
	case PresetMacd:
		return PresetMacd, nil
	case PresetRsiRange:
		return PresetRsiRange, nil
	case PresetOecdCli:
		return PresetOecdCli, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

func NewMacdStrategy(ctx context.Context, priceFieldRepository repository.PriceFieldRepository, principal decimal.Decimal, tickers ...string) (*Strategy, error) {
	return NewStrategy(ctx, StrategyInput{
		Name:                 string(PresetMacd),
		Tickers:              tickers,
		Principal:            principal,
		Indicators:           []IndicatorBinding{{Name: "macd", Kind: indicator.KindMACDSignal}},
		Rule:                 CrossoverRule{Indicator: "macd"},
		PriceFieldRepository: priceFieldRepository,
	})
}

func NewRsiRangeStrategy(ctx context.Context, priceFieldRepository repository.PriceFieldRepository, principal decimal.Decimal, tickers ...string) (*Strategy, error) {
	return NewStrategy(ctx, StrategyInput{
		Name:                 string(PresetRsiRange),
		Tickers:              tickers,
		Principal:            principal,
		Indicators:           []IndicatorBinding{{Name: "rsirange", Kind: indicator.KindRSIRange}},
		Rule:                 CrossoverRule{Indicator: "rsirange"},
		PriceFieldRepository: priceFieldRepository,
	})
}

// NewOecdCliStrategy holds the index while the normalized signal is
// positive and exits when it turns negative. The default signal is the
// acceleration of the OECD leading indicator.
func NewOecdCliStrategy(ctx context.Context, priceFieldRepository repository.PriceFieldRepository, principal decimal.Decimal, signalKey string) (*Strategy, error) {
	key, err := signal.ParseKey(signalKey)
	if err != nil {
		return nil, err
	}
	raw, err := signal.New(key, priceFieldRepository)
	if err != nil {
		return nil, err
	}
	sig, err := signal.Daily(ctx, raw)
	if err != nil {
		return nil, err
	}
	name := string(PresetOecdCli)
	if key != signal.DefaultKey {
		name += "/" + key
	}
	return NewStrategy(ctx, StrategyInput{
		Name:                 name,
		Tickers:              []string{OecdCliAsset},
		Principal:            principal,
		Rule:                 SignalRule{Signal: sig, MinLot: 2},
		PriceFieldRepository: priceFieldRepository,
	})
}

// NewPresetStrategy builds one of the named strategies. The leading
// indicator strategy ignores tickers and is the only one that takes a
// signal.
func NewPresetStrategy(ctx context.Context, preset Preset, priceFieldRepository repository.PriceFieldRepository, principal decimal.Decimal, signalKey string, tickers ...string) (*Strategy, error) {
	if signalKey != "" && preset != PresetOecdCli {
		return nil, fmt.Errorf("strategy %s does not take a signal", preset)
	}
	switch preset {
	case PresetMacd:
		return NewMacdStrategy(ctx, priceFieldRepository, principal, tickers...)
	case PresetRsiRange:
		return NewRsiRangeStrategy(ctx, priceFieldRepository, principal, tickers...)
	case PresetOecdCli:
		return NewOecdCliStrategy(ctx, priceFieldRepository, principal, signalKey)
	}
	return nil, fmt.Errorf("unknown strategy %q", preset)
}
