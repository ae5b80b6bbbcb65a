// Package hash provides the domain-separated transcript hash PedPop+ uses
// for H1 (session id), H2 (commitment-to-commitment), H3 (Schnorr
// challenge), and for commit/decommit pairs.
package hash

import (
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/near/threshold-signatures/pkg/math/curve"
)

// DigestLengthBytes is the output length of Sum, 64 bytes.
const DigestLengthBytes = 64

// Hash is an incremental, domain-separating transcript hash built on
// blake3's extendable output.
type Hash struct {
	h *blake3.Hasher
}

// New returns an empty Hash.
func New() *Hash {
	return &Hash{h: blake3.New()}
}

// Digest returns a reader over the current hash state's output stream.
// Reading from it finalizes the state as of this call.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns DigestLengthBytes of output derived from the current state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny writes a sequence of values to the hash state, domain-separating
// each one so that no two differently-typed inputs can collide by
// concatenation. Supported types: []byte, curve.Scalar, curve.Point, and
// anything implementing WriterToWithDomain; party IDs are written via
// their Bytes() encoding.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var err error
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "[]byte", Bytes: t})
		case curve.Scalar:
			var encoded []byte
			encoded, err = t.MarshalBinary()
			if err == nil {
				err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "curve.Scalar", Bytes: encoded})
			}
		case curve.Point:
			var encoded []byte
			encoded, err = t.MarshalBinary()
			if err == nil {
				err = writeWithDomain(hash.h, BytesWithDomain{TheDomain: "curve.Point", Bytes: encoded})
			}
		case WriterToWithDomain:
			err = writeWithDomain(hash.h, t)
		default:
			return fmt.Errorf("hash.WriteAny: unsupported type %T", d)
		}
		if err != nil {
			return fmt.Errorf("hash.WriteAny: %w", err)
		}
	}
	return nil
}

// Clone returns a copy of hash in its current state, useful for branching a
// transcript (e.g. to compute several independent commitments from the same
// prefix) without disturbing the original.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
