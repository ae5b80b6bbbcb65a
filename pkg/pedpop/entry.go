package pedpop

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/protocol"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// newStart builds PedPop+'s round 1 and the Helper every later round
// derives its Session methods from, shared by Keygen, Reshare and Refresh:
// the five rounds (§4.7) are identical across all three, which differ only
// in what f_i(0) is seeded with and whether a prior public key must be
// reproduced.
func newStart(
	protocolID string,
	group curve.Curve,
	participants party.IDSlice,
	me party.ID,
	params threshold.Parameters,
	rng io.Reader,
	oldSigners party.IDSlice,
	secretSeed curve.Scalar,
	oldPublicKey curve.Point,
) (*round1, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThresholdPolicyViolation, err)
	}

	info := round.Info{
		ProtocolID:       protocolID,
		FinalRoundNumber: 5,
		SelfID:           me,
		PartyIDs:         participants.Copy(),
		Group:            group,
		Parameters:       params,
	}
	helper, err := round.NewHelper(info)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}

	return &round1{
		Helper:       helper,
		rng:          rng,
		oldSigners:   oldSigners,
		secretSeed:   secretSeed,
		oldPublicKey: oldPublicKey,
	}, nil
}

// run drives start to completion and translates its terminal round into
// either an *Output or an *Abort.
func run(ctx context.Context, protocolID string, self party.ID, start *round1, messenger *round.Messenger) (*Output, error) {
	handler := protocol.NewHandler(protocolID, self)
	final, err := handler.Run(ctx, messenger, start)
	if err != nil {
		var abort *Abort
		if errors.As(err, &abort) {
			return nil, abort
		}
		return nil, err
	}

	switch r := final.(type) {
	case *round.Output:
		out, ok := r.Result.(*Output)
		if !ok {
			return nil, fmt.Errorf("pedpop: unexpected result type %T", r.Result)
		}
		return out, nil
	case *round.Abort:
		if abort, ok := r.Err.(*Abort); ok {
			return nil, abort
		}
		var culprit party.ID
		if len(r.Culprits) > 0 {
			culprit = r.Culprits[0]
		}
		return nil, &Abort{Culprit: culprit, Err: r.Err}
	default:
		return nil, fmt.Errorf("pedpop: unexpected terminal round %T", final)
	}
}
