package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
)

// CreateAuctionParams carries the caller-chosen fields of a new auction.
type CreateAuctionParams struct {
	Title       string
	Description string
	Prize       decimal.Decimal
	EntryPrice  decimal.Decimal
	Times       core.AuctionTimes
	Type        core.AuctionType
}

// CreateAuction escrows the prize from the caller and opens a new auction.
// The caller must have approved the engine's custody account for at least
// the prize. For the two normal types the modifier window collapses onto the
// commit deadline, so the reveal phase starts immediately after commits end.
func (e *Engine) CreateAuction(caller string, p CreateAuctionParams) (Auction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.asset.Allowance(caller, e.account).LessThan(p.Prize) {
		return Auction{}, ErrNotEnoughAllowance
	}
	if e.asset.BalanceOf(caller).LessThan(p.Prize) {
		return Auction{}, ErrNotEnoughBalance
	}
	if !p.Type.Valid() {
		return Auction{}, ErrTypeNotAllowed
	}

	times := p.Times
	if !p.Type.ModifiersEnabled() {
		times.EndModifiers = times.EndCommit
	}

	if err := e.asset.TransferFrom(e.account, caller, e.account, p.Prize); err != nil {
		return Auction{}, fmt.Errorf("escrow prize: %w", err)
	}

	e.lastAuctionID++
	rec := &auctionRecord{
		Auction: Auction{
			ID:          e.lastAuctionID,
			Auctioneer:  caller,
			Title:       p.Title,
			Description: p.Description,
			Prize:       p.Prize,
			EntryPrice:  p.EntryPrice,
			Times:       times,
			Type:        p.Type,
			LowestBid:   NoBid,
			Exists:      true,
		},
		profit: decimal.Zero,
	}
	e.auctions[rec.ID] = rec
	e.newAuctions = append(e.newAuctions, rec.ID)
	e.byAuctioneer[caller] = append(e.byAuctioneer[caller], rec.ID)

	e.emit(Event{Kind: EventCreateAuction, Account: caller, AuctionID: rec.ID})
	return rec.Auction, nil
}

// GetAuction returns a snapshot of the auction's public state.
func (e *Engine) GetAuction(id int64) (Auction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.auctions[id]
	if !ok {
		return Auction{}, ErrAuctionNotFound
	}
	return rec.Auction, nil
}

// TotalAuctions returns the number of auctions ever created.
func (e *Engine) TotalAuctions() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastAuctionID
}

// TotalTickets returns the number of tickets ever issued.
func (e *Engine) TotalTickets() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int64(len(e.ticketRecords))
}
