package pedpop

import (
	"context"
	"fmt"

	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/polynomial"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/schnorr"
)

// round3 collects every participant's round-2 commitment-hash pre-commit,
// then echo-broadcasts this participant's own commitment and proof of
// possession (§4.7, steps 9-10).
type round3 struct {
	*round2

	sid          []byte
	polynomial   *polynomial.Polynomial
	commitment   *polynomial.Exponent
	proof        *schnorr.Proof
	commitHashes map[party.ID][]byte
}

func (r *round3) VerifyMessage(from party.ID, content round.Content) error {
	msg, ok := content.(*commitHashMessage)
	if !ok {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("unexpected content %T", content)}
	}
	if len(msg.Hash) != hash.DigestLengthBytes {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("commitment hash is %d bytes, want %d", len(msg.Hash), hash.DigestLengthBytes)}
	}
	return nil
}

func (r *round3) StoreMessage(from party.ID, content round.Content) error {
	r.commitHashes[from] = content.(*commitHashMessage).Hash
	return nil
}

func (r *round3) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	messenger.AdvanceRound(roundRevealSend)

	reveal := &revealMessage{Commitment: r.commitment, Proof: r.proof}
	if err := messenger.SendMany(ctx, r.OtherPartyIDs(), reveal); err != nil {
		return nil, fmt.Errorf("pedpop: round 3: broadcasting commitment and proof: %w", err)
	}

	reveals := make(map[party.ID]*revealMessage, len(r.PartyIDs()))
	reveals[r.SelfID()] = reveal

	return &round4{
		round3:  r,
		reveals: reveals,
	}, nil
}

func (r *round3) MessageContent() round.Content { return &commitHashMessage{} }
func (r *round3) Number() round.Number          { return 3 }

// ZeroizeSecrets wipes the full secret polynomial sampled in round 2 and
// cascades into round2/round1. Safe on every termination path: by the
// time any later round exists, round4.Finalize has already evaluated
// every share it needs from this polynomial.
func (r *round3) ZeroizeSecrets() {
	if r.polynomial != nil {
		r.polynomial.Zeroize()
	}
	r.round2.ZeroizeSecrets()
}
