package pedpop

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/schnorr"
)

// round4 collects every participant's round-3 reveal, confirms it was
// reliably delivered, verifies each proof of possession against its
// pre-committed hash, and privately distributes this participant's VSS
// shares (§4.7, steps 11-14).
type round4 struct {
	*round3

	reveals map[party.ID]*revealMessage
}

func (r *round4) VerifyMessage(from party.ID, content round.Content) error {
	msg, ok := content.(*revealMessage)
	if !ok {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("unexpected content %T", content)}
	}
	if msg.Commitment == nil || msg.Commitment.Degree() != r.Parameters().F {
		return &Abort{Round: r.Number(), Culprit: from, Err: errors.New("commitment has the wrong degree")}
	}

	h2 := hash.New()
	if err := h2.WriteAny(from.Bytes(), msg.Commitment, r.sid); err != nil {
		return fmt.Errorf("pedpop: round 4: recomputing %s's commitment hash: %w", from, err)
	}
	if want, got := r.commitHashes[from], h2.Sum(); !bytes.Equal(want, got) {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: reveal does not match round-2 pre-commit", ErrProofInvalid)}
	}

	isZeroContribution := msg.Commitment.Constant().IsIdentity()
	wasOldSigner := r.oldSigners.Contains(from)

	switch {
	case msg.Proof == nil:
		if !isZeroContribution || wasOldSigner {
			return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: sent no proof but is not a legitimate zero-contributing new joiner", ErrProofInvalid)}
		}
	default:
		if isZeroContribution {
			return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: sent a proof for a zero commitment", ErrProofInvalid)}
		}
		transcript := hash.New()
		if err := transcript.WriteAny(r.sid, from.Bytes()); err != nil {
			return fmt.Errorf("pedpop: round 4: building %s's proof transcript: %w", from, err)
		}
		if !schnorr.Verify(r.Group(), transcript, msg.Commitment.Constant(), msg.Proof) {
			return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("%w: proof of possession", ErrProofInvalid)}
		}
	}

	return nil
}

func (r *round4) StoreMessage(from party.ID, content round.Content) error {
	r.reveals[from] = content.(*revealMessage)
	return nil
}

func (r *round4) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	fingerprints := make(map[party.ID][]byte, len(r.reveals))
	for id, reveal := range r.reveals {
		fp, err := fingerprintReveal(reveal)
		if err != nil {
			return nil, fmt.Errorf("pedpop: round 4: fingerprinting %s's reveal: %w", id, err)
		}
		fingerprints[id] = fp
	}

	channel := broadcast.NewChannel(r.Helper)
	if _, err := channel.Run(ctx, messenger, roundRevealEcho, roundRevealReady, fingerprints); err != nil {
		return abortOnInconsistency(r.Helper, r.Number(), "round 4: confirming commitment reveals", err)
	}

	messenger.AdvanceRound(roundShare)

	me := r.SelfID().Scalar(r.Group())
	shares := make(map[party.ID]curve.Scalar, len(r.PartyIDs()))
	shares[r.SelfID()] = r.polynomial.Evaluate(me)

	for _, to := range r.OtherPartyIDs() {
		share := r.polynomial.Evaluate(to.Scalar(r.Group()))
		if err := messenger.SendPrivate(ctx, to, &shareMessage{Share: share}); err != nil {
			return nil, fmt.Errorf("pedpop: round 4: sending share to %s: %w", to, err)
		}
	}

	return &round5{
		round4: r,
		shares: shares,
	}, nil
}

func (r *round4) MessageContent() round.Content { return &revealMessage{} }
func (r *round4) Number() round.Number          { return 4 }

// ZeroizeSecrets cascades into round3; round4 itself holds only public
// commitments and proofs of possession.
func (r *round4) ZeroizeSecrets() { r.round3.ZeroizeSecrets() }
