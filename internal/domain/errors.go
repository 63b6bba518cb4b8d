package domain

import (
	"fmt"
	"time"
)

// FieldNotFoundError means the provider has no data for the ticker/field
// pair. It aborts the run.
type FieldNotFoundError struct {
	Ticker string
	Field  string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("no %s data found for %s", e.Field, e.Ticker)
}

// DegenerateInputError is raised by normalization steps on zero variance
// or zero range windows
type DegenerateInputError struct {
	Reason string
}

func (e DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: %s", e.Reason)
}

// MissingPriceError is recovered by settlement, which defers the order
type MissingPriceError struct {
	Ticker string
	Date   time.Time
}

func (e MissingPriceError) Error() string {
	return fmt.Sprintf("missing price for %s on %s", e.Ticker, e.Date.Format(time.DateOnly))
}
