// Package rbac provides role-based authorization for the auction services.
// Roles are an enumerated set; privileged operations check membership at the
// top of each call.
package rbac

import (
	"errors"
	"fmt"
	"sync"
)

// Role identifies a privilege grantable to an account.
type Role string

const (
	// RoleAdmin controls fee configuration, fee withdrawal, and role grants.
	RoleAdmin Role = "DEFAULT_ADMIN_ROLE"
	// RoleMinter may mint fungible tokens and non-fungible tickets/modifiers.
	RoleMinter Role = "MINTER_ROLE"
	// RoleRecorder is the relayer: it records commits on behalf of
	// participants in random-type auctions and sells modifiers.
	RoleRecorder Role = "RECORDER_ROLE"
	// RoleUpgrader is reserved for deployment tooling.
	RoleUpgrader Role = "UPGRADER_ROLE"
	// RoleURISetter may attach metadata URIs to minted tokens.
	RoleURISetter Role = "URI_SETTER_ROLE"
)

// ErrMissingRole is wrapped by every authorization failure.
var ErrMissingRole = errors.New("missing role")

// Authorizer answers role membership queries. The engine and the registries
// accept this interface so tests can substitute their own policy.
type Authorizer interface {
	HasRole(role Role, account string) bool
}

// Registry is an in-memory role store, safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	grants map[Role]map[string]struct{}
}

// NewRegistry returns an empty role registry. The deployer is expected to
// grant RoleAdmin to at least one account before handing the registry out.
func NewRegistry() *Registry {
	return &Registry{grants: make(map[Role]map[string]struct{})}
}

// Grant gives account the role. Granting an already-held role is a no-op.
func (r *Registry) Grant(role Role, account string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grants[role] == nil {
		r.grants[role] = make(map[string]struct{})
	}
	r.grants[role][account] = struct{}{}
}

// Revoke removes the role from account.
func (r *Registry) Revoke(role Role, account string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grants[role], account)
}

// HasRole reports whether account holds role.
func (r *Registry) HasRole(role Role, account string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.grants[role][account]
	return ok
}

// Require returns an error unless account holds role.
func Require(auth Authorizer, role Role, account string) error {
	if auth.HasRole(role, account) {
		return nil
	}
	return fmt.Errorf("account %s is missing role %s: %w", account, role, ErrMissingRole)
}
