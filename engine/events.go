package engine

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// EventKind labels an entry in the engine's append-only journal.
type EventKind string

const (
	EventCreateAuction EventKind = "create_auction"
	EventCommit        EventKind = "commit"
	EventReveal        EventKind = "reveal"
	EventClaimPrize    EventKind = "claim_prize"
	EventClaimProfits  EventKind = "claim_profits"
	EventBuyModifier   EventKind = "buy_modifier"
	EventUseModifier   EventKind = "use_modifier"
	EventSetFeePercent EventKind = "set_fee_percent"
	EventClaimFees     EventKind = "claim_fees"
)

// Event records one successful state transition. Value carries the
// kind-specific number: the final score for a reveal, the winning bid for a
// prize claim, the new percent for a fee change. Amount is the decimal asset
// amount moved, when one moved.
type Event struct {
	ID         string    `json:"id" cbor:"id"`
	Kind       EventKind `json:"kind" cbor:"kind"`
	Account    string    `json:"account" cbor:"account"`
	AuctionID  int64     `json:"auction_id,omitempty" cbor:"auction_id,omitempty"`
	TicketID   int64     `json:"ticket_id,omitempty" cbor:"ticket_id,omitempty"`
	ModifierID int64     `json:"modifier_id,omitempty" cbor:"modifier_id,omitempty"`
	Value      int64     `json:"value,omitempty" cbor:"value,omitempty"`
	Amount     string    `json:"amount,omitempty" cbor:"amount,omitempty"`
	At         int64     `json:"at" cbor:"at"`
}

// emit appends ev to the journal, stamping id and time. Callers hold e.mu.
func (e *Engine) emit(ev Event) {
	ev.ID = uuid.NewString()
	ev.At = e.now()
	e.events = append(e.events, ev)
	e.log.Info().
		Str("event", string(ev.Kind)).
		Str("account", ev.Account).
		Int64("auction_id", ev.AuctionID).
		Int64("ticket_id", ev.TicketID).
		Msg("journal entry recorded")
}

// Events returns a copy of the journal in emission order.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// JournalCBOR serializes the journal for archival or transport.
func (e *Engine) JournalCBOR() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cbor.Marshal(e.events)
}
