package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClaimAuctionPrize pays the escrowed prize to the winning ticket's owner.
// Calling it with a losing ticket is a successful no-op returning zero, so
// bidders can settle without first checking the outcome. The prize moves at
// most once; repeat claims by the winner also return zero.
func (e *Engine) ClaimAuctionPrize(caller string, auctionID, ticketID int64) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return decimal.Zero, ErrAuctionNotFound
	}
	tk, ok := e.ticketRecords[ticketID]
	if !ok || tk.AuctionID != auctionID {
		return decimal.Zero, ErrTicketNotInAuction
	}
	owner, err := e.tickets.OwnerOf(ticketID)
	if err != nil || owner != caller {
		return decimal.Zero, ErrNotTicketOwnerClaim
	}
	if rec.Winner != caller || rec.PrizeClaimed {
		return decimal.Zero, nil
	}

	rec.PrizeClaimed = true
	if err := e.asset.Transfer(e.account, caller, rec.Prize); err != nil {
		rec.PrizeClaimed = false
		return decimal.Zero, fmt.Errorf("pay prize: %w", err)
	}

	e.emit(Event{
		Kind:      EventClaimPrize,
		Account:   caller,
		AuctionID: auctionID,
		TicketID:  ticketID,
		Value:     rec.LowestBid,
		Amount:    rec.Prize.String(),
	})
	return rec.Prize, nil
}

// ClaimAuctionProfits pays the auctioneer's accumulated share of entry fees.
// It is available once the commit window has closed, and pays at most once;
// a second call is a no-op returning zero.
func (e *Engine) ClaimAuctionProfits(caller string, auctionID int64) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return decimal.Zero, ErrAuctionNotFound
	}
	if rec.Auctioneer != caller {
		return decimal.Zero, ErrNotAuctioneer
	}
	if rec.Times.CommitOpen(e.now()) {
		return decimal.Zero, ErrProfitsTooEarly
	}
	if rec.Claimed {
		return decimal.Zero, nil
	}

	amount := rec.profit
	rec.Claimed = true
	rec.profit = decimal.Zero
	if err := e.asset.Transfer(e.account, caller, amount); err != nil {
		rec.Claimed = false
		rec.profit = amount
		return decimal.Zero, fmt.Errorf("pay profits: %w", err)
	}

	e.emit(Event{Kind: EventClaimProfits, Account: caller, AuctionID: auctionID, Amount: amount.String()})
	return amount, nil
}
