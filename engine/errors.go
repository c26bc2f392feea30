package engine

import "errors"

// Every failure the engine reports is a synchronous, non-retryable rejection
// drawn from this closed taxonomy. A failing precondition aborts the whole
// operation with no state change and no asset movement.
var (
	ErrNotEnoughAllowance = errors.New("reverse auction: not enough allowance")
	ErrNotEnoughBalance   = errors.New("reverse auction: not enough token balance")
	ErrAuctionNotFound    = errors.New("reverse auction: the selected auction id doesn't exist")
	ErrTypeNotAllowed     = errors.New("reverse auction: not allowed type of auction")

	// ErrParticipantMustCommit is returned when the relayer entry point is
	// used against a select-type auction; ErrRelayerMustCommit is the
	// symmetric failure for the direct entry point on a random-type auction.
	ErrParticipantMustCommit = errors.New("reverse auction: this auction is of a normal type, so you cannot commit, the participant must do it")
	ErrRelayerMustCommit     = errors.New("reverse auction: this auction is of a random type, so you cannot commit, the relayer must do it")

	ErrCommitOutOfTime       = errors.New("reverse auction: it is out of time to make a commit")
	ErrNotTicketOwnerReveal  = errors.New("reverse auction: only the owner of the ticket can reveal the bid")
	ErrBadReveal             = errors.New("reverse auction: number and/or password incorrect for this ticket")
	ErrNegativeNumber        = errors.New("reverse auction: the revealed number must not be negative")
	ErrRevealOutOfTime       = errors.New("reverse auction: it is out of time to reveal")
	ErrTicketAlreadyRevealed = errors.New("reverse auction: the ticket was already revealed")

	ErrNotTicketOwnerClaim = errors.New("reverse auction: only the owner of the ticket can claim the prize")
	ErrNotAuctioneer       = errors.New("reverse auction: you are not the auctioneer")
	ErrProfitsTooEarly     = errors.New("reverse auction: profits can only be claimed after commits")

	ErrModifiersNotAllowed    = errors.New("reverse auction: this auction does not allow modifiers")
	ErrInvalidModifier        = errors.New("reverse auction: invalid modifier type or value")
	ErrNotModifierOwner       = errors.New("reverse auction: the modifier isn't yours")
	ErrNotYourTicket          = errors.New("reverse auction: the ticket isn't yours")
	ErrTicketNotInAuction     = errors.New("reverse auction: this ticket is not in this auction")
	ErrModifierOutOfTime      = errors.New("reverse auction: it is out of time to use a modifier")
	ErrModifierNotApproved    = errors.New("reverse auction: the modifier needs approval to burn")
	ErrModifierAlreadyApplied = errors.New("reverse auction: the modifier was already applied to this ticket")

	ErrPercentOutOfRange = errors.New("reverse auction: percent out of range 0-100")
	ErrPageSizeInvalid   = errors.New("reverse auction: page size must be positive")
	ErrPageOutOfBounds   = errors.New("reverse auction: out of bounds")
)
