package pedpop

import (
	"context"
	"errors"
	"fmt"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/math/polynomial"
	"github.com/near/threshold-signatures/pkg/party"
)

// round5 collects every participant's VSS share of this participant's
// index, verifies each against its sender's commitment, reconstructs the
// secret share and the master public key, and echo-broadcasts a success
// vote (§4.7, steps 15-20).
type round5 struct {
	*round4

	shares map[party.ID]curve.Scalar
}

func (r *round5) VerifyMessage(from party.ID, content round.Content) error {
	msg, ok := content.(*shareMessage)
	if !ok {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("unexpected content %T", content)}
	}
	if msg.Share == nil {
		return &Abort{Round: r.Number(), Culprit: from, Err: errors.New("sent a nil share")}
	}

	reveal, ok := r.reveals[from]
	if !ok {
		return &Abort{Round: r.Number(), Culprit: from, Err: errors.New("no commitment on file")}
	}

	lhs := msg.Share.ActOnBase()
	rhs := reveal.Commitment.Evaluate(r.SelfID().Scalar(r.Group()))
	if !lhs.Equal(rhs) {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: share does not match its commitment", ErrProofInvalid)}
	}

	return nil
}

func (r *round5) StoreMessage(from party.ID, content round.Content) error {
	r.shares[from] = content.(*shareMessage).Share
	return nil
}

func (r *round5) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	r.polynomial.Zeroize()

	secretShare := r.Group().NewScalar()
	for _, share := range r.shares {
		secretShare.Add(share)
	}
	zeroizeShares(r.Group(), r.shares)

	commitments := make([]*polynomial.Exponent, 0, len(r.reveals))
	for _, id := range r.PartyIDs() {
		commitments = append(commitments, r.reveals[id].Commitment)
	}
	joint, err := polynomial.Sum(commitments)
	if err != nil {
		return nil, fmt.Errorf("pedpop: round 5: combining commitments: %w", err)
	}
	publicKey := joint.Constant()

	if r.oldPublicKey != nil && !publicKey.Equal(r.oldPublicKey) {
		secretShare.Set(r.Group().NewScalar())
		return r.AbortRound(&Abort{Round: r.Number(), Err: ErrPublicKeyMismatch}), nil
	}

	messenger.AdvanceRound(roundSuccessSend)
	if err := messenger.SendMany(ctx, r.OtherPartyIDs(), &successMessage{Sid: r.sid}); err != nil {
		return nil, fmt.Errorf("pedpop: round 5: broadcasting success: %w", err)
	}

	votes := make(map[party.ID][]byte, len(r.PartyIDs()))
	votes[r.SelfID()] = r.sid

	return &roundAck{
		round5:      r,
		secretShare: secretShare,
		publicKey:   publicKey,
		votes:       votes,
	}, nil
}

func (r *round5) MessageContent() round.Content { return &shareMessage{} }
func (r *round5) Number() round.Number          { return 5 }

// ZeroizeSecrets wipes every other participant's VSS share of this
// participant's index and cascades into round4/round3/round2/round1.
// Covers the case VerifyMessage rejects a bad share: whatever earlier
// senders' shares this round already accepted are still sitting in
// r.shares at that point.
func (r *round5) ZeroizeSecrets() {
	zeroizeShares(r.Group(), r.shares)
	r.round4.ZeroizeSecrets()
}
