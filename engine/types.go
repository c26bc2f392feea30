package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
)

// NoBid is the sentinel LowestBid of an auction with no reveals yet. Every
// real score is strictly below it, so the first reveal always takes the win.
const NoBid = int64(math.MaxInt64)

// Auction is a snapshot of one auction's public state.
type Auction struct {
	ID           int64             `json:"id"`
	Auctioneer   string            `json:"auctioneer"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Prize        decimal.Decimal   `json:"prize"`
	EntryPrice   decimal.Decimal   `json:"entry_price"`
	Times        core.AuctionTimes `json:"times"`
	Type         core.AuctionType  `json:"type"`
	TotalBidders int64             `json:"total_bidders"`
	LowestBid    int64             `json:"lowest_bid"`
	Winner       string            `json:"winner,omitempty"`
	Exists       bool              `json:"exists"`
	Claimed      bool              `json:"claimed"`
	PrizeClaimed bool              `json:"prize_claimed"`
}

// Ticket is a snapshot of one committed bid slot. Ownership is not cached
// here; the engine queries the ticket registry on every operation that needs
// it.
type Ticket struct {
	ID            int64             `json:"id"`
	AuctionID     int64             `json:"auction_id"`
	Commitment    string            `json:"commitment"`
	Revealed      bool              `json:"revealed"`
	NumberFinal   int64             `json:"number_final"`
	HasModifier   bool              `json:"has_modifier"`
	ModifierType  core.ModifierType `json:"modifier_type"`
	ModifierValue int64             `json:"modifier_value"`
}

// auctionRecord is the engine's mutable state for one auction: the public
// snapshot plus the accrued auctioneer profit and the issued ticket ids.
type auctionRecord struct {
	Auction
	profit  decimal.Decimal
	tickets []int64
}
