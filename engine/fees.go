package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/rbac"
)

// SetFeePercent changes the platform's share of future entry fees. Admin
// only; already-split fees are unaffected.
func (e *Engine) SetFeePercent(caller string, percent int64) error {
	if err := rbac.Require(e.auth, rbac.RoleAdmin, caller); err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return ErrPercentOutOfRange
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.feePercent = percent
	e.emit(Event{Kind: EventSetFeePercent, Account: caller, Value: percent})
	return nil
}

// FeePercent returns the current platform share of entry fees.
func (e *Engine) FeePercent() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.feePercent
}

// PlatformFees returns the accumulated, unclaimed platform fees.
func (e *Engine) PlatformFees() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platformFees
}

// ClaimFees pays the accumulated platform fees to the caller and resets the
// pot. Admin only; claiming an empty pot is a no-op.
func (e *Engine) ClaimFees(caller string) (decimal.Decimal, error) {
	if err := rbac.Require(e.auth, rbac.RoleAdmin, caller); err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	amount := e.platformFees
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	e.platformFees = decimal.Zero
	if err := e.asset.Transfer(e.account, caller, amount); err != nil {
		e.platformFees = amount
		return decimal.Zero, fmt.Errorf("pay fees: %w", err)
	}

	e.emit(Event{Kind: EventClaimFees, Account: caller, Amount: amount.String()})
	return amount, nil
}
