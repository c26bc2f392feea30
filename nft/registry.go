// Package nft provides in-memory non-fungible token registries for auction
// tickets and bid modifiers. Ownership, approval, and burn semantics follow
// the usual NFT registry contract: tokens are bearer assets, a token must be
// approved before a third party may transfer or burn it, and minting is
// restricted to the minter role.
package nft

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/rbac"
)

var (
	ErrTokenNotFound = errors.New("nft: token does not exist")
	ErrNotOwner      = errors.New("nft: caller is not the token owner")
	ErrNotAuthorized = errors.New("nft: caller is neither owner nor approved")
)

// baseURI prefixes every stored token URI, mirroring IPFS-pinned metadata.
const baseURI = "ipfs://"

// Registry is an in-memory NFT ledger with sequential ids starting at 1.
type Registry struct {
	mu        sync.Mutex
	name      string
	auth      rbac.Authorizer
	nextID    int64
	owners    map[int64]string
	approvals map[int64]string
	held      map[string][]int64
	uris      map[int64]string
}

// NewRegistry returns an empty registry. name appears in error context only.
func NewRegistry(name string, auth rbac.Authorizer) *Registry {
	return &Registry{
		name:      name,
		auth:      auth,
		owners:    make(map[int64]string),
		approvals: make(map[int64]string),
		held:      make(map[string][]int64),
		uris:      make(map[int64]string),
	}
}

// Mint creates a new token owned by to and returns its id. Restricted to
// the minter role.
func (r *Registry) Mint(caller, to string) (int64, error) {
	if err := rbac.Require(r.auth, rbac.RoleMinter, caller); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.owners[id] = to
	r.held[to] = append(r.held[to], id)
	return id, nil
}

// OwnerOf returns the current owner of id.
func (r *Registry) OwnerOf(id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return "", fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	return owner, nil
}

// Approve lets spender transfer or burn id. Only the owner may approve.
func (r *Registry) Approve(caller, spender string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	if owner != caller {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrNotOwner)
	}
	r.approvals[id] = spender
	return nil
}

// Approved returns the account approved for id, or "" if none.
func (r *Registry) Approved(id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[id]; !ok {
		return "", fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	return r.approvals[id], nil
}

// Transfer moves id to a new owner. The caller must be the owner or the
// approved account; any approval is cleared on transfer.
func (r *Registry) Transfer(caller, to string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	if caller != owner && caller != r.approvals[id] {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrNotAuthorized)
	}
	r.removeHeld(owner, id)
	r.owners[id] = to
	r.held[to] = append(r.held[to], id)
	delete(r.approvals, id)
	return nil
}

// Burn destroys id. The caller must be the owner or the approved account.
func (r *Registry) Burn(caller string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	if caller != owner && caller != r.approvals[id] {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrNotAuthorized)
	}
	r.removeHeld(owner, id)
	delete(r.owners, id)
	delete(r.approvals, id)
	delete(r.uris, id)
	return nil
}

// SetTokenURI stores the metadata path for id. Restricted to the uri-setter
// role.
func (r *Registry) SetTokenURI(caller string, id int64, uri string) error {
	if err := rbac.Require(r.auth, rbac.RoleURISetter, caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[id]; !ok {
		return fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	r.uris[id] = uri
	return nil
}

// TokenURI returns the stored metadata path prefixed with the IPFS base.
func (r *Registry) TokenURI(id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[id]; !ok {
		return "", fmt.Errorf("%s token %d: %w", r.name, id, ErrTokenNotFound)
	}
	return baseURI + r.uris[id], nil
}

// TokensOf returns the ids currently held by owner, in acquisition order.
func (r *Registry) TokensOf(owner string) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, len(r.held[owner]))
	copy(ids, r.held[owner])
	return ids
}

// removeHeld requires the caller to hold the lock.
func (r *Registry) removeHeld(owner string, id int64) {
	held := r.held[owner]
	for i, h := range held {
		if h == id {
			r.held[owner] = append(held[:i], held[i+1:]...)
			return
		}
	}
}

// ModifierRegistry extends Registry with per-token transform parameters.
// Modifier tokens are minted on purchase and burned exactly once on use.
type ModifierRegistry struct {
	*Registry
	mu     sync.Mutex
	types  map[int64]core.ModifierType
	values map[int64]int64
}

// NewModifierRegistry returns an empty modifier registry.
func NewModifierRegistry(auth rbac.Authorizer) *ModifierRegistry {
	return &ModifierRegistry{
		Registry: NewRegistry("modifier", auth),
		types:    make(map[int64]core.ModifierType),
		values:   make(map[int64]int64),
	}
}

// MintModifier creates a modifier token carrying (typ, value).
func (m *ModifierRegistry) MintModifier(caller, to string, typ core.ModifierType, value int64) (int64, error) {
	id, err := m.Mint(caller, to)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[id] = typ
	m.values[id] = value
	return id, nil
}

// TokenType returns the transform kind of id.
func (m *ModifierRegistry) TokenType(id int64) (core.ModifierType, error) {
	if _, err := m.OwnerOf(id); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[id], nil
}

// TokenValue returns the transform operand of id.
func (m *ModifierRegistry) TokenValue(id int64) (int64, error) {
	if _, err := m.OwnerOf(id); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[id], nil
}

// MyModifiers returns the modifier ids held by owner.
func (m *ModifierRegistry) MyModifiers(owner string) []int64 {
	return m.TokensOf(owner)
}
