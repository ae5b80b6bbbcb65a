package pedpop

import (
	"bytes"
	"context"
	"fmt"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
)

// roundAck is round 5.5: it collects every participant's success vote,
// confirms they all agree on the session id the protocol completed under,
// and, only then, emits the final Output (§4.7, steps 21-22). No
// participant commits to having finished until it knows every other
// participant finished too.
type roundAck struct {
	*round5

	secretShare curve.Scalar
	publicKey   curve.Point
	votes       map[party.ID][]byte
}

func (r *roundAck) VerifyMessage(from party.ID, content round.Content) error {
	msg, ok := content.(*successMessage)
	if !ok {
		r.secretShare.Set(r.Group().NewScalar())
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("unexpected content %T", content)}
	}
	if !bytes.Equal(msg.Sid, r.sid) {
		r.secretShare.Set(r.Group().NewScalar())
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: voted success under a different session id", ErrBroadcastInconsistency)}
	}
	return nil
}

func (r *roundAck) StoreMessage(from party.ID, content round.Content) error {
	r.votes[from] = content.(*successMessage).Sid
	return nil
}

func (r *roundAck) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	channel := broadcast.NewChannel(r.Helper)
	if _, err := channel.Run(ctx, messenger, roundSuccessEcho, roundSuccessReady, r.votes); err != nil {
		r.secretShare.Set(r.Group().NewScalar())
		return abortOnInconsistency(r.Helper, r.Number(), "round 5.5: confirming success votes", err)
	}

	output := newOutput(r.Group(), r.SelfID(), r.PartyIDs(), r.Parameters(), r.secretShare, r.publicKey)

	return r.ResultRound(output), nil
}

func (r *roundAck) MessageContent() round.Content { return &successMessage{} }
func (r *roundAck) Number() round.Number          { return 6 }

// ZeroizeSecrets cascades into round5/round4/round3/round2/round1.
// roundAck's own secretShare is deliberately excluded: on success it is
// the exact scalar handed off as Output.SecretShare, and every abort
// branch that must not let it survive (VerifyMessage's two rejections,
// Finalize's broadcast-inconsistency path) already zeroizes it directly
// before it would otherwise be reachable from here.
func (r *roundAck) ZeroizeSecrets() {
	r.round5.ZeroizeSecrets()
}
