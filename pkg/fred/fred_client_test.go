package fred

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSeries(t *testing.T) {
	t.Run("legacy header with missing value", func(t *testing.T) {
		in := "DATE,T10YIE\n2020-01-03,1.77\n2020-01-02,1.79\n2020-01-06,.\n"
		out, err := ParseSeries(strings.NewReader(in), "T10YIE")
		require.NoError(t, err)

		require.Len(t, out, 3)
		require.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), out[0].Date)
		require.Equal(t, 1.79, out[0].Value)
		require.Equal(t, 1.77, out[1].Value)
		require.True(t, math.IsNaN(out[2].Value))
	})

	t.Run("observation_date header", func(t *testing.T) {
		in := "observation_date,DGS10\n2021-05-03,1.63\n"
		out, err := ParseSeries(strings.NewReader(in), "DGS10")
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, 1.63, out[0].Value)
	})

	t.Run("wrong series column", func(t *testing.T) {
		in := "DATE,DGS10\n2021-05-03,1.63\n"
		_, err := ParseSeries(strings.NewReader(in), "T10YIE")
		require.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		in := "DATE,DGS10\n2021-05-03,abc\n"
		_, err := ParseSeries(strings.NewReader(in), "DGS10")
		require.Error(t, err)
	})
}

func TestGetSeries(t *testing.T) {
	t.Run("passes code and range", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "DGS10", r.URL.Query().Get("id"))
			require.Equal(t, "2021-01-01", r.URL.Query().Get("cosd"))
			fmt.Fprint(w, "DATE,DGS10\n2021-01-04,0.93\n")
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseUrl: srv.URL}
		out, err := c.GetSeries(context.Background(), "DGS10", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, 0.93, out[0].Value)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "no such series")
		}))
		defer srv.Close()

		c := Client{HttpClient: srv.Client(), BaseUrl: srv.URL}
		_, err := c.GetSeries(context.Background(), "NOPE", time.Time{}, time.Time{})
		require.ErrorContains(t, err, "404")
	})
}
