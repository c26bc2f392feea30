// Package engine implements the reverse auction ledger: a commit-reveal
// state machine where the lowest revealed bid wins. The engine owns the
// auction and ticket bookkeeping and delegates asset custody to a fungible
// token service and ticket/modifier ownership to NFT registries. All
// operations are synchronous and serialized behind one mutex; a failing
// precondition aborts with no state change.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/rbac"
)

// DefaultFeePercent is the platform cut of each entry fee when the
// configuration does not override it.
const DefaultFeePercent = 10

// DefaultModifierPrice is the flat purchase price of a modifier token,
// in the asset's smallest unit (10 units at six decimals).
var DefaultModifierPrice = decimal.NewFromInt(10_000_000)

// Clock supplies the current time. Production code uses SystemClock;
// tests substitute a fixed clock to pin phase boundaries.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// AssetService is the fungible token surface the engine needs: balances,
// allowances, and the two transfer shapes. *token.Service satisfies it.
type AssetService interface {
	BalanceOf(account string) decimal.Decimal
	Allowance(owner, spender string) decimal.Decimal
	Transfer(from, to string, amount decimal.Decimal) error
	TransferFrom(spender, owner, to string, amount decimal.Decimal) error
}

// TicketRegistry is the NFT surface for tickets. *nft.Registry satisfies it.
type TicketRegistry interface {
	Mint(caller, to string) (int64, error)
	OwnerOf(id int64) (string, error)
}

// ModifierRegistry is the NFT surface for modifier tokens.
// *nft.ModifierRegistry satisfies it.
type ModifierRegistry interface {
	MintModifier(caller, to string, typ core.ModifierType, value int64) (int64, error)
	OwnerOf(id int64) (string, error)
	Approved(id int64) (string, error)
	Burn(caller string, id int64) error
	TokenType(id int64) (core.ModifierType, error)
	TokenValue(id int64) (int64, error)
}

// Config wires the engine's collaborators. Account, Asset, Tickets,
// Modifiers, and Auth are required; the rest default sensibly.
type Config struct {
	// Account is the engine's custody account. Escrowed prizes, accrued
	// profits, and platform fees all sit here between movements.
	Account   string
	Asset     AssetService
	Tickets   TicketRegistry
	Modifiers ModifierRegistry
	Auth      rbac.Authorizer

	Clock  Clock
	Logger zerolog.Logger

	// FeePercent is the platform share of every entry fee, 0-100.
	// Zero means DefaultFeePercent; use SetFeePercent for a true zero.
	FeePercent int64
	// ModifierPrice is the flat price of a modifier token. Zero means
	// DefaultModifierPrice.
	ModifierPrice decimal.Decimal
}

// Engine is the reverse auction ledger.
type Engine struct {
	mu sync.Mutex

	account   string
	asset     AssetService
	tickets   TicketRegistry
	modifiers ModifierRegistry
	auth      rbac.Authorizer
	clock     Clock
	log       zerolog.Logger

	feePercent    int64
	modifierPrice decimal.Decimal
	platformFees  decimal.Decimal

	lastAuctionID int64
	auctions      map[int64]*auctionRecord
	ticketRecords map[int64]*Ticket

	// newAuctions lists auctions whose commit window may still be open,
	// in creation order. UpdateNewAuctions sweeps out the closed ones.
	newAuctions []int64
	// byAuctioneer indexes auction ids per creator, in creation order.
	byAuctioneer map[string][]int64
	// bidsByOwner indexes ticket ids per auction per original committer.
	bidsByOwner map[int64]map[string][]int64

	events []Event
}

// New builds an Engine from cfg. It fails fast on missing collaborators
// rather than panicking mid-operation.
func New(cfg Config) (*Engine, error) {
	if cfg.Account == "" {
		return nil, fmt.Errorf("engine config: custody account is required")
	}
	if cfg.Asset == nil {
		return nil, fmt.Errorf("engine config: asset service is required")
	}
	if cfg.Tickets == nil {
		return nil, fmt.Errorf("engine config: ticket registry is required")
	}
	if cfg.Modifiers == nil {
		return nil, fmt.Errorf("engine config: modifier registry is required")
	}
	if cfg.Auth == nil {
		return nil, fmt.Errorf("engine config: authorizer is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.FeePercent == 0 {
		cfg.FeePercent = DefaultFeePercent
	}
	if cfg.FeePercent < 0 || cfg.FeePercent > 100 {
		return nil, ErrPercentOutOfRange
	}
	if cfg.ModifierPrice.IsZero() {
		cfg.ModifierPrice = DefaultModifierPrice
	}
	return &Engine{
		account:       cfg.Account,
		asset:         cfg.Asset,
		tickets:       cfg.Tickets,
		modifiers:     cfg.Modifiers,
		auth:          cfg.Auth,
		clock:         cfg.Clock,
		log:           cfg.Logger,
		feePercent:    cfg.FeePercent,
		modifierPrice: cfg.ModifierPrice,
		platformFees:  decimal.Zero,
		auctions:      make(map[int64]*auctionRecord),
		ticketRecords: make(map[int64]*Ticket),
		byAuctioneer:  make(map[string][]int64),
		bidsByOwner:   make(map[int64]map[string][]int64),
	}, nil
}

// Account returns the engine's custody account.
func (e *Engine) Account() string { return e.account }

// now returns the clock reading as unix seconds, matching the stored
// auction timestamps.
func (e *Engine) now() int64 { return e.clock.Now().Unix() }
