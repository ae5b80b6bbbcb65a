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

// Keygen runs PedPop+ fresh, producing an Output shared among participants
// with no prior relationship. t is the reconstruction threshold; the
// tolerated fault count f = t - 1 is derived from it, per the PedPop+
// policy T = F + 1 (§4.6).
func Keygen(
	ctx context.Context,
	group curve.Curve,
	participants party.IDSlice,
	me party.ID,
	t int,
	rng io.Reader,
	messenger *round.Messenger,
) (*Output, error) {
	params, err := threshold.New(len(participants), t-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}

	secretSeed := group.SampleScalar(rng)
	start, err := newStart(keygenProtocolID, group, participants, me, params, rng, nil, secretSeed, nil)
	if err != nil {
		return nil, err
	}
	return run(ctx, keygenProtocolID, me, start, messenger)
}

const keygenProtocolID = "pedpop/keygen"
