package nft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/rbac"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	roles := rbac.NewRegistry()
	roles.Grant(rbac.RoleMinter, "engine")
	roles.Grant(rbac.RoleURISetter, "relayer")
	return NewRegistry("ticket", roles)
}

func TestMint_SequentialIDsAndOwnership(t *testing.T) {
	reg := newTestRegistry(t)

	id1, err := reg.Mint("engine", "alice")
	require.NoError(t, err)
	id2, err := reg.Mint("engine", "bob")
	require.NoError(t, err)

	require.Equal(t, int64(1), id1)
	require.Equal(t, int64(2), id2)

	owner, err := reg.OwnerOf(id1)
	require.NoError(t, err)
	require.Equal(t, "alice", owner)
}

func TestMint_RequiresMinterRole(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Mint("alice", "alice")
	require.True(t, errors.Is(err, rbac.ErrMissingRole))
}

func TestOwnerOf_UnknownToken(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.OwnerOf(99)
	require.True(t, errors.Is(err, ErrTokenNotFound))
}

func TestApproveAndBurn(t *testing.T) {
	reg := newTestRegistry(t)
	id, err := reg.Mint("engine", "alice")
	require.NoError(t, err)

	// Burn by a non-owner without approval is rejected.
	require.True(t, errors.Is(reg.Burn("engine", id), ErrNotAuthorized))

	// Only the owner can approve.
	require.True(t, errors.Is(reg.Approve("bob", "engine", id), ErrNotOwner))
	require.NoError(t, reg.Approve("alice", "engine", id))

	approved, err := reg.Approved(id)
	require.NoError(t, err)
	require.Equal(t, "engine", approved)

	require.NoError(t, reg.Burn("engine", id))
	_, err = reg.OwnerOf(id)
	require.True(t, errors.Is(err, ErrTokenNotFound))
}

func TestTransfer_ClearsApproval(t *testing.T) {
	reg := newTestRegistry(t)
	id, err := reg.Mint("engine", "alice")
	require.NoError(t, err)
	require.NoError(t, reg.Approve("alice", "engine", id))

	require.NoError(t, reg.Transfer("alice", "carl", id))

	owner, err := reg.OwnerOf(id)
	require.NoError(t, err)
	require.Equal(t, "carl", owner)

	approved, err := reg.Approved(id)
	require.NoError(t, err)
	require.Equal(t, "", approved)

	require.Equal(t, []int64{id}, reg.TokensOf("carl"))
	require.Empty(t, reg.TokensOf("alice"))
}

func TestTokenURI(t *testing.T) {
	reg := newTestRegistry(t)
	id, err := reg.Mint("engine", "alice")
	require.NoError(t, err)

	err = reg.SetTokenURI("alice", id, "test")
	require.True(t, errors.Is(err, rbac.ErrMissingRole))

	require.NoError(t, reg.SetTokenURI("relayer", id, "test"))

	uri, err := reg.TokenURI(id)
	require.NoError(t, err)
	require.Equal(t, "ipfs://test", uri)
}

func TestModifierRegistry(t *testing.T) {
	roles := rbac.NewRegistry()
	roles.Grant(rbac.RoleMinter, "engine")
	reg := NewModifierRegistry(roles)

	id, err := reg.MintModifier("engine", "alice", core.ModifierDivide, 6)
	require.NoError(t, err)

	typ, err := reg.TokenType(id)
	require.NoError(t, err)
	require.Equal(t, core.ModifierDivide, typ)

	value, err := reg.TokenValue(id)
	require.NoError(t, err)
	require.Equal(t, int64(6), value)

	require.Equal(t, []int64{id}, reg.MyModifiers("alice"))

	require.NoError(t, reg.Approve("alice", "engine", id))
	require.NoError(t, reg.Burn("engine", id))

	_, err = reg.TokenType(id)
	require.True(t, errors.Is(err, ErrTokenNotFound))
}
