package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Position is one asset's entry in a strategy book. BookPrice and
// MarketValue are carried but never computed.
type Position struct {
	AssetID     int     `json:"-"`
	Ticker      string  `json:"ticker"`
	Shares      float64 `json:"shares"`
	BookPrice   float64 `json:"bookPrice"`
	MarketValue float64 `json:"marketValue"`
	// Order is the signed share delta staged for the next settlement
	Order float64 `json:"order"`
}

// Book maps asset ids to positions. Entries are created on first use and
// live for the whole run.
type Book struct {
	positions map[int]*Position
}

func NewBook() *Book {
	return &Book{
		positions: map[int]*Position{},
	}
}

func (b *Book) Get(assetID int) (*Position, bool) {
	p, ok := b.positions[assetID]
	return p, ok
}

func (b *Book) GetOrCreate(assetID int, ticker string) *Position {
	if p, ok := b.positions[assetID]; ok {
		return p
	}
	p := &Position{
		AssetID: assetID,
		Ticker:  ticker,
	}
	b.positions[assetID] = p
	return p
}

// AssetIDs is sorted so iteration over the book is deterministic
func (b *Book) AssetIDs() []int {
	ids := make([]int, 0, len(b.positions))
	for id := range b.positions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (b *Book) Len() int {
	return len(b.positions)
}

// Shares returns held shares by ticker
func (b *Book) Shares() map[string]float64 {
	out := map[string]float64{}
	for _, p := range b.positions {
		out[p.Ticker] = p.Shares
	}
	return out
}

type Fill struct {
	Date   time.Time       `json:"date"`
	Ticker string          `json:"ticker"`
	Shares float64         `json:"shares"`
	Price  decimal.Decimal `json:"price"`
}

// Amount is the signed cash cost of the fill
func (f Fill) Amount() decimal.Decimal {
	return decimal.NewFromFloat(f.Shares).Mul(f.Price)
}

type UnsettledOrder struct {
	Ticker   string    `json:"ticker"`
	Shares   float64   `json:"shares"`
	StagedAt time.Time `json:"stagedAt"`
}
