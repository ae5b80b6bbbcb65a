// Package party provides the identifiers and participant registries shared
// across PedPop+'s rounds: a party.ID is the wire-stable identifier a
// participant is addressed by, and an IDSlice is the sorted registry used to
// derive evaluation points and Lagrange coefficients.
package party

import (
	"encoding/binary"
	"math/rand"
	"strconv"
)

// ByteSize is the number of bytes used to encode an ID on the wire.
const ByteSize = 2

// MaxID is the largest value an ID may take.
const MaxID = (1 << (ByteSize * 8)) - 1

// ID identifies a participant within a single PedPop+ session. IDs are
// assigned by whoever sets up the session (e.g. the caller of Keygen) and
// must be non-zero and distinct; 0 is reserved as "no participant".
type ID uint16

// Size reuses ID's representation for counts such as N, F and T.
type Size = ID

// String returns the base-10 representation of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Bytes returns the big-endian encoding of the ID, ByteSize bytes long.
func (id ID) Bytes() []byte {
	out := make([]byte, ByteSize)
	binary.BigEndian.PutUint16(out, uint16(id))
	return out
}

// FromBytes decodes an ID from the first ByteSize bytes of b.
func FromBytes(b []byte) ID {
	return ID(binary.BigEndian.Uint16(b))
}

// IDFromString parses a base-10 ID, as produced by ID.String.
func IDFromString(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// RandID returns a pseudo-random non-zero ID, for use in tests.
func RandID() ID {
	return ID(rand.Int31n(MaxID)) + 1
}

// RandIDs returns n distinct pseudo-random non-zero IDs, for use in tests.
func RandIDs(n int) IDSlice {
	seen := make(map[ID]bool, n)
	out := make(IDSlice, 0, n)
	for len(out) < n {
		id := RandID()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	out.Sort()
	return out
}
