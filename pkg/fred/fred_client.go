package fred

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const DefaultBaseUrl = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// Observation is one dated value of a FRED series. Missing values ("." in
// the download) are NaN.
type Observation struct {
	Date  time.Time
	Value float64
}

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient() Client {
	return Client{
		HttpClient: http.DefaultClient,
		BaseUrl:    DefaultBaseUrl,
	}
}

func (c Client) GetSeries(ctx context.Context, code string, start, end time.Time) ([]Observation, error) {
	q := url.Values{}
	q.Set("id", code)
	if !start.IsZero() {
		q.Set("cosd", start.Format(time.DateOnly))
	}
	if !end.IsZero() {
		q.Set("coed", end.Format(time.DateOnly))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseUrl+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	client := c.HttpClient
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		responseBytes, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
		}
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	return ParseSeries(response.Body, code)
}

// ParseSeries reads a fredgraph download. The date column is either DATE or
// observation_date depending on the export version; the value column is
// named after the series code.
func ParseSeries(r io.Reader, code string) ([]Observation, error) {
	rows, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv for %s: %w", code, err)
	}

	out := make([]Observation, 0, len(rows))
	for i, row := range rows {
		dateStr, ok := row["DATE"]
		if !ok {
			dateStr, ok = row["observation_date"]
		}
		if !ok {
			return nil, fmt.Errorf("row %d of %s has no date column", i, code)
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(dateStr))
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, code, err)
		}

		valueStr, ok := row[code]
		if !ok {
			return nil, fmt.Errorf("row %d has no %s column", i, code)
		}
		value, err := parseValue(valueStr)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, code, err)
		}

		out = append(out, Observation{Date: date, Value: value})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
