package core

// PhaseOf derives the lifecycle phase of an auction from its stored
// timestamps and the supplied clock reading (unix seconds).
//
// Boundaries are inclusive on the closing edge: a commit at exactly
// EndCommit is still in the commit phase, a modifier use at exactly
// EndModifiers is still in the modifier window, and a reveal at exactly
// EndReveal is still in the reveal phase. The window helpers below are all
// defined in terms of this derivation.
func PhaseOf(times AuctionTimes, now int64) Phase {
	switch {
	case now < times.Start:
		return PhaseCreated
	case now <= times.EndCommit:
		return PhaseCommitOpen
	case now <= times.EndModifiers:
		return PhaseModifierWindow
	case now <= times.EndReveal:
		return PhaseRevealOpen
	}
	return PhaseClosed
}

// CommitOpen reports whether a commit is accepted at now. Commits are
// accepted from creation through the commit deadline.
func (t AuctionTimes) CommitOpen(now int64) bool {
	return PhaseOf(t, now) <= PhaseCommitOpen
}

// ModifierOpen reports whether a modifier application is accepted at now.
func (t AuctionTimes) ModifierOpen(now int64) bool {
	return PhaseOf(t, now) <= PhaseModifierWindow
}

// RevealOpen reports whether a reveal is accepted at now. Reveals open the
// moment commits close, overlapping the modifier window.
func (t AuctionTimes) RevealOpen(now int64) bool {
	p := PhaseOf(t, now)
	return p == PhaseModifierWindow || p == PhaseRevealOpen
}
