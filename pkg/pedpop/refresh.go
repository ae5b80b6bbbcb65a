package pedpop

import (
	"context"
	"io"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
)

// Refresh re-randomizes every participant's share of old's secret without
// changing the participant set, threshold, or public key (§6): every
// participant runs PedPop+ exactly as Reshare would with the old and new
// participant sets equal, so every f_i(0) is the Lagrange-weighted old
// share rather than fresh randomness, which is what makes pk provably
// unchanged while sk_i changes for everyone.
func Refresh(
	ctx context.Context,
	group curve.Curve,
	old *Output,
	me party.ID,
	rng io.Reader,
	messenger *round.Messenger,
) (*Output, error) {
	return reshare(ctx, group, OldGroup{
		Participants: old.Participants,
		Threshold:    old.Parameters.T,
		PublicKey:    old.PublicKey,
		Share:        old.SecretShare,
	}, old.Participants, me, old.Parameters.T, rng, messenger, true)
}
