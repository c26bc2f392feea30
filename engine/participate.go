package engine

import (
	"fmt"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/rbac"
)

// ParticipateSelectAuction records a commit made directly by the bidder in a
// select-type auction. The entry fee is pulled from the caller's balance and
// a ticket is minted to them; the returned id identifies the ticket.
func (e *Engine) ParticipateSelectAuction(caller, commitment string, auctionID int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return 0, ErrAuctionNotFound
	}
	if rec.Type.Random() {
		return 0, ErrRelayerMustCommit
	}
	return e.participate(rec, caller, commitment)
}

// ParticipateRandomAuction records a commit submitted by the relayer on a
// participant's behalf in a random-type auction. The participant pays the
// entry fee and receives the ticket; the relayer needs the recorder role.
func (e *Engine) ParticipateRandomAuction(caller, commitment string, auctionID int64, participant string) (int64, error) {
	if err := rbac.Require(e.auth, rbac.RoleRecorder, caller); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return 0, ErrAuctionNotFound
	}
	if !rec.Type.Random() {
		return 0, ErrParticipantMustCommit
	}
	return e.participate(rec, participant, commitment)
}

// participate charges the entry fee, splits it between the platform and the
// auctioneer, and mints the ticket. Callers hold e.mu.
func (e *Engine) participate(rec *auctionRecord, participant, commitment string) (int64, error) {
	if !rec.Times.CommitOpen(e.now()) {
		return 0, ErrCommitOutOfTime
	}
	if e.asset.Allowance(participant, e.account).LessThan(rec.EntryPrice) {
		return 0, ErrNotEnoughAllowance
	}
	if e.asset.BalanceOf(participant).LessThan(rec.EntryPrice) {
		return 0, ErrNotEnoughBalance
	}

	if err := e.asset.TransferFrom(e.account, participant, e.account, rec.EntryPrice); err != nil {
		return 0, fmt.Errorf("charge entry fee: %w", err)
	}
	ticketID, err := e.tickets.Mint(e.account, participant)
	if err != nil {
		// Undo the fee so a registry failure leaves the participant whole.
		if rbErr := e.asset.Transfer(e.account, participant, rec.EntryPrice); rbErr != nil {
			return 0, fmt.Errorf("mint ticket: %v (refund failed: %w)", err, rbErr)
		}
		return 0, fmt.Errorf("mint ticket: %w", err)
	}

	platform, profit := core.SplitEntryFee(rec.EntryPrice, e.feePercent)
	e.platformFees = e.platformFees.Add(platform)
	rec.profit = rec.profit.Add(profit)

	e.ticketRecords[ticketID] = &Ticket{
		ID:         ticketID,
		AuctionID:  rec.ID,
		Commitment: commitment,
	}
	rec.tickets = append(rec.tickets, ticketID)
	rec.TotalBidders++

	byOwner := e.bidsByOwner[rec.ID]
	if byOwner == nil {
		byOwner = make(map[string][]int64)
		e.bidsByOwner[rec.ID] = byOwner
	}
	byOwner[participant] = append(byOwner[participant], ticketID)

	e.emit(Event{Kind: EventCommit, Account: participant, AuctionID: rec.ID, TicketID: ticketID})
	return ticketID, nil
}

// CommitInAuction returns the stored commitment of a ticket, checking that
// the ticket actually belongs to the auction.
func (e *Engine) CommitInAuction(auctionID, ticketID int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.auctions[auctionID]; !ok {
		return "", ErrAuctionNotFound
	}
	tk, ok := e.ticketRecords[ticketID]
	if !ok || tk.AuctionID != auctionID {
		return "", ErrTicketNotInAuction
	}
	return tk.Commitment, nil
}

// Ticket returns a snapshot of one ticket.
func (e *Engine) Ticket(ticketID int64) (Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tk, ok := e.ticketRecords[ticketID]
	if !ok {
		return Ticket{}, ErrTicketNotInAuction
	}
	return *tk, nil
}
