// Package receipts issues and verifies signed settlement receipts. A receipt
// is a COSE_Sign1 envelope over a CBOR-encoded settlement, signed with the
// server's ECDSA P-256 key, so an auction outcome can be checked offline by
// anyone holding the public key.
package receipts

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// Settlement is the payload of a receipt: the final outcome of one auction.
type Settlement struct {
	AuctionID  int64  `cbor:"auction_id" json:"auction_id"`
	Auctioneer string `cbor:"auctioneer" json:"auctioneer"`
	Winner     string `cbor:"winner" json:"winner"`
	LowestBid  int64  `cbor:"lowest_bid" json:"lowest_bid"`
	Prize      string `cbor:"prize" json:"prize"`
	SettledAt  int64  `cbor:"settled_at" json:"settled_at"`
}

// Issuer signs settlement receipts with a fixed ES256 key.
type Issuer struct {
	key    *ecdsa.PrivateKey
	signer cose.Signer
}

// NewIssuer generates a fresh P-256 key and returns an issuer for it.
func NewIssuer() (*Issuer, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate receipt key: %w", err)
	}
	return NewIssuerFromKey(key)
}

// NewIssuerFromKey wraps an existing P-256 key.
func NewIssuerFromKey(key *ecdsa.PrivateKey) (*Issuer, error) {
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	if err != nil {
		return nil, fmt.Errorf("create COSE signer: %w", err)
	}
	return &Issuer{key: key, signer: signer}, nil
}

// Public returns the verification key for receipts issued by this issuer.
func (i *Issuer) Public() *ecdsa.PublicKey {
	return &i.key.PublicKey
}

// Issue signs s and returns the serialized COSE_Sign1 envelope.
func (i *Issuer) Issue(s Settlement) ([]byte, error) {
	payload, err := cbor.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settlement: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload
	if err := msg.Sign(rand.Reader, nil, i.signer); err != nil {
		return nil, fmt.Errorf("sign settlement: %w", err)
	}

	raw, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}
	return raw, nil
}

// Verify checks the envelope signature against pub and returns the
// settlement it carries.
func Verify(raw []byte, pub *ecdsa.PublicKey) (Settlement, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(raw); err != nil {
		return Settlement{}, fmt.Errorf("parse receipt: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, pub)
	if err != nil {
		return Settlement{}, fmt.Errorf("create verifier: %w", err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return Settlement{}, fmt.Errorf("receipt signature verification failed: %w", err)
	}

	var s Settlement
	if err := cbor.Unmarshal(msg.Payload, &s); err != nil {
		return Settlement{}, fmt.Errorf("decode settlement: %w", err)
	}
	return s, nil
}

// Payload extracts the settlement from a COSE_Sign1 envelope without
// verifying the signature. The envelope is the standard 4-element array
// [protected, unprotected, payload, signature].
func Payload(raw []byte) (Settlement, error) {
	var coseArray []any
	if err := cbor.Unmarshal(raw, &coseArray); err != nil {
		return Settlement{}, fmt.Errorf("parse COSE array: %w", err)
	}
	if len(coseArray) != 4 {
		return Settlement{}, fmt.Errorf("invalid COSE_Sign1 structure: expected 4 elements, got %d", len(coseArray))
	}
	payload, ok := coseArray[2].([]byte)
	if !ok {
		return Settlement{}, fmt.Errorf("invalid payload in COSE structure")
	}

	var s Settlement
	if err := cbor.Unmarshal(payload, &s); err != nil {
		return Settlement{}, fmt.Errorf("decode settlement: %w", err)
	}
	return s, nil
}
