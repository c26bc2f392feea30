// Package token provides an in-memory fungible asset service with
// transfer/allowance semantics. The auction engine treats the payment asset
// as an opaque collaborator exposing exactly this surface; this package is
// the reference implementation used by the server and the tests.
package token

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/rbac"
)

var (
	ErrInvalidAmount         = errors.New("token: amount must not be negative")
	ErrInsufficientBalance   = errors.New("token: transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("token: transfer amount exceeds allowance")
)

// Service is an in-memory balance ledger, safe for concurrent use. Amounts
// are exact decimals in the smallest currency unit.
type Service struct {
	mu         sync.Mutex
	auth       rbac.Authorizer
	balances   map[string]decimal.Decimal
	allowances map[string]map[string]decimal.Decimal // owner -> spender -> amount
}

// NewService returns an empty ledger. Minting requires rbac.RoleMinter under
// the supplied authorizer.
func NewService(auth rbac.Authorizer) *Service {
	return &Service{
		auth:       auth,
		balances:   make(map[string]decimal.Decimal),
		allowances: make(map[string]map[string]decimal.Decimal),
	}
}

// Mint credits amount to account. Restricted to minters; intended for
// bootstrap and tests.
func (s *Service) Mint(caller, account string, amount decimal.Decimal) error {
	if err := rbac.Require(s.auth, rbac.RoleMinter, caller); err != nil {
		return err
	}
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[account] = s.balance(account).Add(amount)
	return nil
}

// BalanceOf returns the current balance of account.
func (s *Service) BalanceOf(account string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(account)
}

// Approve sets the amount spender may transfer out of owner's balance.
func (s *Service) Approve(owner, spender string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allowances[owner] == nil {
		s.allowances[owner] = make(map[string]decimal.Decimal)
	}
	s.allowances[owner][spender] = amount
	return nil
}

// Allowance returns the remaining amount spender may transfer out of owner's
// balance.
func (s *Service) Allowance(owner, spender string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allowance(owner, spender)
}

// Transfer moves amount from the caller's balance to to.
func (s *Service) Transfer(from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(from, to, amount)
}

// TransferFrom moves amount from owner to to on behalf of spender, consuming
// the spender's allowance. The allowance is checked before the balance.
func (s *Service) TransferFrom(spender, owner, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.allowance(owner, spender)
	if remaining.LessThan(amount) {
		return fmt.Errorf("allowance %s < %s: %w", remaining, amount, ErrInsufficientAllowance)
	}
	if err := s.move(owner, to, amount); err != nil {
		return err
	}
	s.allowances[owner][spender] = remaining.Sub(amount)
	return nil
}

func (s *Service) balance(account string) decimal.Decimal {
	if b, ok := s.balances[account]; ok {
		return b
	}
	return decimal.Zero
}

func (s *Service) allowance(owner, spender string) decimal.Decimal {
	if a, ok := s.allowances[owner][spender]; ok {
		return a
	}
	return decimal.Zero
}

// move requires the caller to hold the lock.
func (s *Service) move(from, to string, amount decimal.Decimal) error {
	balance := s.balance(from)
	if balance.LessThan(amount) {
		return fmt.Errorf("balance %s < %s: %w", balance, amount, ErrInsufficientBalance)
	}
	s.balances[from] = balance.Sub(amount)
	s.balances[to] = s.balance(to).Add(amount)
	return nil
}
