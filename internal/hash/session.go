package hash

import (
	"fmt"
	"sort"

	"github.com/near/threshold-signatures/pkg/party"
)

// SessionSeedBytes is the length of the random per-participant seed
// broadcast in round 1 and combined into the session id.
const SessionSeedBytes = 32

// DeriveSessionID computes H1, a session id binding every participant's
// round-1 seed together under protocolDomain, so that two sessions running
// the same protocol concurrently derive different ids. pkg/pedpop derives
// its own sid in round 2 and does not call this function.
//
// seeds must contain exactly one entry per participant; DeriveSessionID
// iterates participants in sorted ID order so that every participant
// derives the same session id regardless of message arrival order.
func DeriveSessionID(protocolDomain string, seeds map[party.ID][]byte) ([]byte, error) {
	ids := make(party.IDSlice, 0, len(seeds))
	for id, seed := range seeds {
		if len(seed) != SessionSeedBytes {
			return nil, fmt.Errorf("hash.DeriveSessionID: participant %s seed has wrong length (got %d, want %d)", id, len(seed), SessionSeedBytes)
		}
		ids = append(ids, id)
	}
	sort.Sort(ids)

	h := New()
	if err := h.WriteAny([]byte(protocolDomain)); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := h.WriteAny(id.Bytes(), seeds[id]); err != nil {
			return nil, err
		}
	}
	return h.Sum(), nil
}

// DeriveCommitmentHash computes H2: a hash of a participant's identity,
// their coefficient commitment, and the session id. Binding the session id
// into H2 stops a commitment hash from being replayed into a different
// session. pkg/pedpop computes its own pre-commit hash and does not call
// this function.
func DeriveCommitmentHash(protocolDomain string, id party.ID, commitmentEncoding, sessionID []byte) ([]byte, error) {
	h := New()
	if err := h.WriteAny([]byte(protocolDomain)); err != nil {
		return nil, err
	}
	if err := h.WriteAny(id.Bytes(), commitmentEncoding, sessionID); err != nil {
		return nil, err
	}
	return h.Sum(), nil
}
