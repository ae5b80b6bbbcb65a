package pedpop

import (
	"errors"
	"fmt"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
)

// zeroizeShares wipes every share in shares in place, for the zeroization
// discipline every termination path (success, abort, cancellation, panic)
// must follow for secret-sharing material (§5).
func zeroizeShares(group curve.Curve, shares map[party.ID]curve.Scalar) {
	zero := group.NewScalar()
	for _, s := range shares {
		if s != nil {
			s.Set(zero)
		}
	}
}

// abortOnInconsistency translates a broadcast.Inconsistency into an *Abort
// naming its culprit, the way every round that runs a broadcast.Channel
// needs to; any other error propagates as a hard failure.
func abortOnInconsistency(helper *round.Helper, number round.Number, op string, err error) (round.Round, error) {
	var inc *broadcast.Inconsistency
	if errors.As(err, &inc) {
		abort := &Abort{Round: number, Culprit: inc.Origin, Err: fmt.Errorf("%w: %w", ErrBroadcastInconsistency, err)}
		return helper.AbortRound(abort, inc.Origin), nil
	}
	return nil, fmt.Errorf("pedpop: %s: %w", op, err)
}

// fingerprintReveal computes a deterministic digest of a revealMessage,
// used as the payload a reliable echo-broadcast confirms consistency over:
// the broadcast channel only needs a comparable, deterministic byte string
// per origin, not a reversible encoding, since the actual commitment and
// proof are already held from the round's ordinary point-to-point send
// phase (§4.5).
func fingerprintReveal(msg *revealMessage) ([]byte, error) {
	h := hash.New()
	if err := h.WriteAny(msg.Commitment); err != nil {
		return nil, err
	}
	if msg.Proof != nil {
		if err := h.WriteAny([]byte{1}, msg.Proof.R, msg.Proof.Z); err != nil {
			return nil, err
		}
	} else {
		if err := h.WriteAny([]byte{0}); err != nil {
			return nil, err
		}
	}
	return h.Sum(), nil
}
