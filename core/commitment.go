package core

import (
	"crypto/sha256"
	"fmt"
)

// CreateCommitment computes the binding, hiding commitment for a bid.
//
// Formula: SHA256("<number>|<passphrase>"), hex-encoded.
//
// The same (number, passphrase) pair always yields the same commitment, and
// the number cannot be recovered from the commitment without the passphrase.
// Participants compute this before the commit phase; the engine recomputes it
// at reveal time to verify the opened bid.
func CreateCommitment(number int64, passphrase string) string {
	data := fmt.Sprintf("%d|%s", number, passphrase)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// VerifyCommitment reports whether (number, passphrase) opens commitment.
func VerifyCommitment(commitment string, number int64, passphrase string) bool {
	return CreateCommitment(number, passphrase) == commitment
}
