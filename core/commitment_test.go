package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestCreateCommitment_Deterministic(t *testing.T) {
	first := CreateCommitment(3, "pass123")
	second := CreateCommitment(3, "pass123")

	check.Equal(t, first, second)
	check.Equal(t, 64, len(first)) // hex-encoded SHA-256
}

func TestCreateCommitment_BindsBothInputs(t *testing.T) {
	base := CreateCommitment(3, "pass123")

	check.NotEqual(t, base, CreateCommitment(4, "pass123"))
	check.NotEqual(t, base, CreateCommitment(3, "pass124"))
}

func TestCreateCommitment_SeparatorAmbiguity(t *testing.T) {
	// The number is rendered in full before the separator, so a passphrase
	// starting with digits cannot collide with a different number.
	check.NotEqual(t, CreateCommitment(12, "3pass"), CreateCommitment(1, "23pass"))
}

func TestVerifyCommitment(t *testing.T) {
	commitment := CreateCommitment(8, "pass123")

	check.True(t, VerifyCommitment(commitment, 8, "pass123"))
	check.False(t, VerifyCommitment(commitment, 8, "passIncorrect"))
	check.False(t, VerifyCommitment(commitment, 9, "pass123"))
	check.False(t, VerifyCommitment("", 8, "pass123"))
}
