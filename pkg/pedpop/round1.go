package pedpop

import (
	"context"
	"fmt"
	"io"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
)

// sidSeedBytes is the length of the per-participant session-seed
// contribution drawn in round 1 (§4.7, step 1): 32 bytes, 256 bits.
const sidSeedBytes = 32

// round1 is the start of every Keygen, Reshare and Refresh: draw a random
// session-seed contribution and echo-broadcast it, so that the eventual
// session id binds input from every participant rather than whoever
// happens to go first.
type round1 struct {
	*round.Helper

	rng io.Reader

	// oldSigners is the participant set a Reshare's (or Refresh's) secret
	// was shared under; nil for a fresh Keygen.
	oldSigners party.IDSlice
	// secretSeed is this participant's contribution to f_i(0): a random
	// scalar for Keygen, the Lagrange-weighted old share for a Reshare or
	// Refresh participant carrying one forward, or zero for a participant
	// newly joining via Reshare.
	secretSeed curve.Scalar
	// oldPublicKey is the master public key a Reshare or Refresh must
	// reproduce; nil for Keygen.
	oldPublicKey curve.Point
}

var (
	_ round.Round = (*round1)(nil)
	_ round.Round = (*round2)(nil)
	_ round.Round = (*round3)(nil)
	_ round.Round = (*round4)(nil)
	_ round.Round = (*round5)(nil)
	_ round.Round = (*roundAck)(nil)
)

func (r *round1) VerifyMessage(party.ID, round.Content) error { return nil }
func (r *round1) StoreMessage(party.ID, round.Content) error  { return nil }

func (r *round1) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	sid := make([]byte, sidSeedBytes)
	if _, err := io.ReadFull(r.rng, sid); err != nil {
		return nil, fmt.Errorf("pedpop: round 1: drawing session seed: %w", err)
	}

	if err := messenger.SendMany(ctx, r.OtherPartyIDs(), &sidMessage{Sid: sid}); err != nil {
		return nil, fmt.Errorf("pedpop: round 1: broadcasting session seed: %w", err)
	}

	sids := make(map[party.ID][]byte, len(r.PartyIDs()))
	sids[r.SelfID()] = sid

	return &round2{
		round1: r,
		sids:   sids,
	}, nil
}

func (r *round1) MessageContent() round.Content { return nil }
func (r *round1) Number() round.Number          { return 1 }

// ZeroizeSecrets wipes secretSeed, this participant's f_i(0) contribution.
// Safe to call on any termination path: round2.Finalize clones it into
// this participant's polynomial's constant term rather than aliasing it,
// so it owes nothing else once wiped.
func (r *round1) ZeroizeSecrets() {
	if r.secretSeed != nil {
		r.secretSeed.Set(r.Group().NewScalar())
	}
}
