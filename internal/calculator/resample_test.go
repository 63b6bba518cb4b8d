package calculator

import (
	"ixbacktest/internal/domain"
	"ixbacktest/internal/util"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResampleMonthEnd(t *testing.T) {
	s, err := domain.NewSeries("cli", []time.Time{
		util.NewDate(2020, 1, 1),
		util.NewDate(2020, 1, 15),
		util.NewDate(2020, 3, 2),
	}, []float64{1, 2, 3})
	require.NoError(t, err)

	out, err := ResampleMonthEnd(*s)
	require.NoError(t, err)

	require.Equal(
		t,
		"",
		cmp.Diff(
			[]time.Time{
				util.NewDate(2020, 1, 31),
				util.NewDate(2020, 2, 29),
				util.NewDate(2020, 3, 31),
			},
			out.Dates,
		),
	)
	requireFloats(t, []float64{2, math.NaN(), 3}, out.Values)
}

func TestForwardFillDaily(t *testing.T) {
	s, err := domain.NewSeries("signal", []time.Time{
		util.NewDate(2020, 1, 31),
		util.NewDate(2020, 2, 3),
		util.NewDate(2020, 2, 4),
	}, []float64{math.NaN(), 0.5, math.NaN()})
	require.NoError(t, err)

	out, err := ForwardFillDaily(*s)
	require.NoError(t, err)

	require.Len(t, out.Dates, 5)
	requireFloats(t, []float64{math.NaN(), math.NaN(), math.NaN(), 0.5, 0.5}, out.Values)
}

func TestShiftMonths(t *testing.T) {
	s, err := domain.NewSeries("cli", []time.Time{
		util.NewDate(2020, 1, 31),
		util.NewDate(2020, 2, 29),
	}, []float64{1, 2})
	require.NoError(t, err)

	out, err := ShiftMonths(*s, 1)
	require.NoError(t, err)
	require.Equal(t, []time.Time{util.NewDate(2020, 2, 29), util.NewDate(2020, 3, 29)}, out.Dates)
}
