package receipts

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func testSettlement() Settlement {
	return Settlement{
		AuctionID:  1,
		Auctioneer: "auctioneer",
		Winner:     "alice",
		LowestBid:  80,
		Prize:      "50000000",
		SettledAt:  2500,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer()
	assert.Nil(t, err)

	raw, err := issuer.Issue(testSettlement())
	assert.Nil(t, err)

	got, err := Verify(raw, issuer.Public())
	assert.Nil(t, err)
	check.Equal(t, testSettlement(), got)
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	issuer, err := NewIssuer()
	assert.Nil(t, err)
	other, err := NewIssuer()
	assert.Nil(t, err)

	raw, err := issuer.Issue(testSettlement())
	assert.Nil(t, err)

	_, err = Verify(raw, other.Public())
	check.Error(t, err)
}

func TestVerify_RejectsTamperedEnvelope(t *testing.T) {
	issuer, err := NewIssuer()
	assert.Nil(t, err)

	raw, err := issuer.Issue(testSettlement())
	assert.Nil(t, err)

	raw[len(raw)-1] ^= 0x01
	_, err = Verify(raw, issuer.Public())
	check.Error(t, err)
}

func TestPayload_ExtractsWithoutVerifying(t *testing.T) {
	issuer, err := NewIssuer()
	assert.Nil(t, err)

	raw, err := issuer.Issue(testSettlement())
	assert.Nil(t, err)

	got, err := Payload(raw)
	assert.Nil(t, err)
	check.Equal(t, testSettlement(), got)

	_, err = Payload([]byte{0x01, 0x02})
	check.Error(t, err)
}
