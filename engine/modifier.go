package engine

import (
	"fmt"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/rbac"
)

// BuyModifier mints a modifier token of (typ, value) to recipient, charging
// the flat modifier price from the recipient's balance. Sales go through the
// relayer, so the caller needs the recorder role; proceeds accrue to the
// platform fee pot.
func (e *Engine) BuyModifier(caller, recipient string, typ core.ModifierType, value int64) (int64, error) {
	if err := rbac.Require(e.auth, rbac.RoleRecorder, caller); err != nil {
		return 0, err
	}
	if !typ.Valid() || value < 1 {
		return 0, ErrInvalidModifier
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	price := e.modifierPrice
	if e.asset.Allowance(recipient, e.account).LessThan(price) {
		return 0, ErrNotEnoughAllowance
	}
	if e.asset.BalanceOf(recipient).LessThan(price) {
		return 0, ErrNotEnoughBalance
	}
	if err := e.asset.TransferFrom(e.account, recipient, e.account, price); err != nil {
		return 0, fmt.Errorf("charge modifier price: %w", err)
	}

	id, err := e.modifiers.MintModifier(e.account, recipient, typ, value)
	if err != nil {
		if rbErr := e.asset.Transfer(e.account, recipient, price); rbErr != nil {
			return 0, fmt.Errorf("mint modifier: %v (refund failed: %w)", err, rbErr)
		}
		return 0, fmt.Errorf("mint modifier: %w", err)
	}
	e.platformFees = e.platformFees.Add(price)

	e.emit(Event{Kind: EventBuyModifier, Account: recipient, ModifierID: id, Amount: price.String()})
	return id, nil
}

// UseModifier attaches a modifier to one of the caller's tickets in a
// modifier-type auction. The modifier must have been approved to the
// engine's custody account; it is burned on use, and a ticket carries at
// most one modifier for its lifetime.
func (e *Engine) UseModifier(caller string, auctionID, modifierID, ticketID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.auctions[auctionID]
	if !ok {
		return ErrAuctionNotFound
	}
	if !rec.Type.ModifiersEnabled() {
		return ErrModifiersNotAllowed
	}
	owner, err := e.modifiers.OwnerOf(modifierID)
	if err != nil || owner != caller {
		return ErrNotModifierOwner
	}
	ticketOwner, err := e.tickets.OwnerOf(ticketID)
	if err != nil || ticketOwner != caller {
		return ErrNotYourTicket
	}
	tk, ok := e.ticketRecords[ticketID]
	if !ok || tk.AuctionID != auctionID {
		return ErrTicketNotInAuction
	}
	if !rec.Times.ModifierOpen(e.now()) {
		return ErrModifierOutOfTime
	}
	approved, err := e.modifiers.Approved(modifierID)
	if err != nil || approved != e.account {
		return ErrModifierNotApproved
	}
	if tk.HasModifier {
		return ErrModifierAlreadyApplied
	}

	typ, err := e.modifiers.TokenType(modifierID)
	if err != nil {
		return fmt.Errorf("read modifier type: %w", err)
	}
	value, err := e.modifiers.TokenValue(modifierID)
	if err != nil {
		return fmt.Errorf("read modifier value: %w", err)
	}

	if err := e.modifiers.Burn(e.account, modifierID); err != nil {
		return fmt.Errorf("burn modifier: %w", err)
	}
	tk.HasModifier = true
	tk.ModifierType = typ
	tk.ModifierValue = value

	e.emit(Event{Kind: EventUseModifier, Account: caller, AuctionID: auctionID, TicketID: ticketID, ModifierID: modifierID})
	return nil
}
