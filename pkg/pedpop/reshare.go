package pedpop

import (
	"context"
	"fmt"
	"io"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// OldGroup describes the prior key-sharing a Reshare carries forward: the
// participant set and threshold it was produced under, its public key, and
// — for a participant that actually held a share of it — that share.
// Share is nil for a participant newly joining via Reshare, which every
// caller (old or new) can otherwise still supply, since the participant
// set, threshold and public key of a prior sharing are public.
type OldGroup struct {
	Participants party.IDSlice
	Threshold    int
	PublicKey    curve.Point
	Share        curve.Scalar
}

// Reshare runs PedPop+ in resharing mode: it re-splits the secret old
// reproduces across newParticipants under a possibly different threshold,
// without ever reconstructing the secret at a single party. A participant
// present in both old.Participants and newParticipants must supply its
// Share; one newly joining must leave it nil (§4.7, step 4).
func Reshare(
	ctx context.Context,
	group curve.Curve,
	old OldGroup,
	newParticipants party.IDSlice,
	me party.ID,
	newT int,
	rng io.Reader,
	messenger *round.Messenger,
) (*Output, error) {
	return reshare(ctx, group, old, newParticipants, me, newT, rng, messenger, false)
}

// reshare is the shared implementation behind Reshare and Refresh. sameSizeOnly
// selects which of §4.6's two policy checks applies at entry: Refresh demands
// pointwise equality of the old and new (N,F,T), while a genuine Reshare only
// demands that both independently satisfy Validate and leaves the rest of the
// policy comparison to the intersection-size and round-5 public-key checks.
func reshare(
	ctx context.Context,
	group curve.Curve,
	old OldGroup,
	newParticipants party.IDSlice,
	me party.ID,
	newT int,
	rng io.Reader,
	messenger *round.Messenger,
	sameSizeOnly bool,
) (*Output, error) {
	oldParticipants := old.Participants.Copy()
	newParticipants = newParticipants.Copy()

	oldParams := threshold.Parameters{N: len(oldParticipants), F: old.Threshold - 1, T: old.Threshold}
	newParams, err := threshold.New(len(newParticipants), newT-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}
	if err := newParams.CheckAgainst(oldParams, sameSizeOnly); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThresholdPolicyViolation, err)
	}

	intersection := intersect(oldParticipants, newParticipants)
	if len(intersection) < old.Threshold {
		return nil, fmt.Errorf("%w: only %d of the old threshold %d participants carry forward into the new set",
			ErrThresholdPolicyViolation, len(intersection), old.Threshold)
	}

	wasOldSigner := oldParticipants.Contains(me)
	if wasOldSigner && old.Share == nil {
		return nil, fmt.Errorf("%w: %s is in the old participant set but supplied no share", ErrParameter, me)
	}
	if !wasOldSigner && old.Share != nil {
		return nil, fmt.Errorf("%w: %s supplied a share but is not in the old participant set", ErrParameter, me)
	}

	var secretSeed curve.Scalar
	if wasOldSigner {
		lagrange := intersection.Lagrange(group, me)
		secretSeed = lagrange.Mul(old.Share)
	} else {
		secretSeed = group.NewScalar()
	}

	start, err := newStart(reshareProtocolID, group, newParticipants, me, newParams, rng, oldParticipants, secretSeed, old.PublicKey)
	if err != nil {
		return nil, err
	}
	return run(ctx, reshareProtocolID, me, start, messenger)
}

// intersect returns the sorted set of ids present in both a and b.
func intersect(a, b party.IDSlice) party.IDSlice {
	out := make(party.IDSlice, 0, len(a))
	for _, id := range a {
		if b.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

const reshareProtocolID = "pedpop/reshare"
