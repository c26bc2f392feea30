package core

// AuctionType identifies one of the four supported auction variants.
// The type is orthogonal on two axes: who records commits (the participant
// directly, or the relayer on the participant's behalf) and whether bid
// modifiers may be applied before reveal.
type AuctionType string

const (
	AuctionTypeNormalSelect   AuctionType = "NORMAL_SELECT"
	AuctionTypeNormalRandom   AuctionType = "NORMAL_RANDOM"
	AuctionTypeModifierSelect AuctionType = "MODIFIER_SELECT"
	AuctionTypeModifierRandom AuctionType = "MODIFIER_RANDOM"
)

// Valid reports whether t is one of the four recognized auction types.
func (t AuctionType) Valid() bool {
	switch t {
	case AuctionTypeNormalSelect, AuctionTypeNormalRandom,
		AuctionTypeModifierSelect, AuctionTypeModifierRandom:
		return true
	}
	return false
}

// Random reports whether commits for this type are recorded by the relayer
// on behalf of participants.
func (t AuctionType) Random() bool {
	return t == AuctionTypeNormalRandom || t == AuctionTypeModifierRandom
}

// ModifiersEnabled reports whether tickets in this auction accept modifiers.
func (t AuctionType) ModifiersEnabled() bool {
	return t == AuctionTypeModifierSelect || t == AuctionTypeModifierRandom
}

// ModifierType identifies one of the five modifier transforms. The numeric
// values are part of the purchase interface and must not be reordered.
type ModifierType int

const (
	// ModifierSetDecimal appends a decimal digit to the scaled number.
	ModifierSetDecimal ModifierType = 0
	// ModifierDivide divides the scaled number, rounding half up.
	ModifierDivide ModifierType = 1
	// ModifierSubtract subtracts from the unscaled number, clamped.
	ModifierSubtract ModifierType = 2
	// ModifierAdd adds to the unscaled number.
	ModifierAdd ModifierType = 3
	// ModifierMultiply multiplies the scaled number.
	ModifierMultiply ModifierType = 4
)

// Valid reports whether t is a recognized modifier transform.
func (t ModifierType) Valid() bool {
	return t >= ModifierSetDecimal && t <= ModifierMultiply
}

// Phase is the lifecycle phase of an auction, derived from the current time
// and the auction's stored timestamps. There is no stored phase field; every
// operation re-derives validity from the clock.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseCommitOpen
	PhaseModifierWindow
	PhaseRevealOpen
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseCommitOpen:
		return "commit_open"
	case PhaseModifierWindow:
		return "modifier_window"
	case PhaseRevealOpen:
		return "reveal_open"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// AuctionTimes holds the four phase boundaries of an auction as unix seconds.
// Expected ordering: Start < EndCommit <= EndModifiers < EndReveal.
type AuctionTimes struct {
	Start        int64 `json:"start_time"`
	EndCommit    int64 `json:"end_time_commit"`
	EndModifiers int64 `json:"end_time_modifiers"`
	EndReveal    int64 `json:"end_time_reveal"`
}
