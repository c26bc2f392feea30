package engine

import (
	"github.com/cloudx-io/reverseauction/core"
)

// RevealAuction opens a ticket's commitment. The caller must own the ticket
// and present the exact number and passphrase behind the commitment. The
// returned score is the number scaled by ten, or the modifier transform of
// it when one was applied to the ticket. A strictly lower score than the
// current best takes the win; ties keep the earlier winner.
//
// Bids are non-negative. A commitment over a negative number verifies but
// can never be revealed; without this guard a single negative commit would
// outscore every honest bid.
func (e *Engine) RevealAuction(caller string, auctionID, ticketID, number int64, passphrase string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return 0, ErrAuctionNotFound
	}
	tk, ok := e.ticketRecords[ticketID]
	if !ok || tk.AuctionID != auctionID {
		return 0, ErrTicketNotInAuction
	}
	owner, err := e.tickets.OwnerOf(ticketID)
	if err != nil || owner != caller {
		return 0, ErrNotTicketOwnerReveal
	}
	if !core.VerifyCommitment(tk.Commitment, number, passphrase) {
		return 0, ErrBadReveal
	}
	if number < 0 {
		return 0, ErrNegativeNumber
	}
	if !rec.Times.RevealOpen(e.now()) {
		return 0, ErrRevealOutOfTime
	}
	if tk.Revealed {
		return 0, ErrTicketAlreadyRevealed
	}

	var score int64
	if tk.HasModifier {
		score, err = core.ApplyModifier(number, tk.ModifierType, tk.ModifierValue)
		if err != nil {
			return 0, err
		}
	} else {
		score = core.ScaleNumber(number)
	}

	tk.Revealed = true
	tk.NumberFinal = score
	if score < rec.LowestBid {
		rec.LowestBid = score
		rec.Winner = caller
	}

	e.emit(Event{Kind: EventReveal, Account: caller, AuctionID: auctionID, TicketID: ticketID, Value: score})
	return score, nil
}

// TicketNumber returns the final score of a revealed ticket, or zero while
// the ticket is still sealed.
func (e *Engine) TicketNumber(ticketID int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tk, ok := e.ticketRecords[ticketID]
	if !ok {
		return 0, ErrTicketNotInAuction
	}
	if !tk.Revealed {
		return 0, nil
	}
	return tk.NumberFinal, nil
}
