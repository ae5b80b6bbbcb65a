package hash

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
)

// DecommitmentLengthBytes is the length of the random nonce mixed into a
// commitment, matching PedPop+'s security parameter of 256 bits.
const DecommitmentLengthBytes = 32

type (
	// Commitment is the output of Commit: a hiding, binding digest of some
	// data, used by round 2's pre-commitment to round-3 material.
	Commitment []byte
	// Decommitment is the random nonce that must accompany the original
	// data to reopen a Commitment.
	Decommitment []byte
)

func (c Commitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c)
	return int64(n), err
}

func (Commitment) Domain() string { return "Commitment" }

// Validate checks that c has the length a genuine Commitment must have.
func (c Commitment) Validate() error {
	if l := len(c); l != DigestLengthBytes {
		return fmt.Errorf("hash: commitment has wrong length (got %d, want %d)", l, DigestLengthBytes)
	}
	return nil
}

func (d Decommitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d)
	return int64(n), err
}

func (Decommitment) Domain() string { return "Decommitment" }

// Validate checks that d has the length a genuine Decommitment must have.
func (d Decommitment) Validate() error {
	if l := len(d); l != DecommitmentLengthBytes {
		return fmt.Errorf("hash: decommitment has wrong length (got %d, want %d)", l, DecommitmentLengthBytes)
	}
	return nil
}

// Commit produces a commitment to data along with the decommitment needed
// to later reopen it, such that commitment = H(data, decommitment). hash is
// not mutated; the commitment is computed on a clone of its state.
func (hash *Hash) Commit(data ...interface{}) (Commitment, Decommitment, error) {
	decommitment := make(Decommitment, DecommitmentLengthBytes)
	if _, err := rand.Read(decommitment); err != nil {
		return nil, nil, fmt.Errorf("hash.Commit: failed to sample decommitment: %w", err)
	}

	h := hash.Clone()
	for _, item := range data {
		if err := h.WriteAny(item); err != nil {
			return nil, nil, fmt.Errorf("hash.Commit: %w", err)
		}
	}
	if err := h.WriteAny([]byte(decommitment)); err != nil {
		return nil, nil, fmt.Errorf("hash.Commit: %w", err)
	}

	return Commitment(h.Sum()), decommitment, nil
}

// Decommit verifies that commitment was produced by Commit over data and
// decommitment; it returns false on any mismatch or malformed input, never
// panicking on attacker-supplied commitments.
func (hash *Hash) Decommit(commitment Commitment, decommitment Decommitment, data ...interface{}) bool {
	if err := commitment.Validate(); err != nil {
		return false
	}
	if err := decommitment.Validate(); err != nil {
		return false
	}

	h := hash.Clone()
	for _, item := range data {
		if err := h.WriteAny(item); err != nil {
			return false
		}
	}
	if err := h.WriteAny([]byte(decommitment)); err != nil {
		return false
	}

	return bytes.Equal(h.Sum(), commitment)
}
