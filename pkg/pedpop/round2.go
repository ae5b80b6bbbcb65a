package pedpop

import (
	"context"
	"fmt"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/polynomial"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/schnorr"
)

// round2 collects every participant's round-1 session seed, confirms they
// were reliably delivered, then samples this participant's share of the
// joint polynomial and its proof of possession (§4.7, steps 3-8).
type round2 struct {
	*round1

	sids map[party.ID][]byte
}

func (r *round2) VerifyMessage(from party.ID, content round.Content) error {
	msg, ok := content.(*sidMessage)
	if !ok {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("unexpected content %T", content)}
	}
	if len(msg.Sid) != sidSeedBytes {
		return &Abort{Round: r.Number(), Culprit: from, Err: fmt.Errorf("session seed is %d bytes, want %d", len(msg.Sid), sidSeedBytes)}
	}
	return nil
}

func (r *round2) StoreMessage(from party.ID, content round.Content) error {
	r.sids[from] = content.(*sidMessage).Sid
	return nil
}

func (r *round2) Finalize(ctx context.Context, messenger *round.Messenger) (round.Round, error) {
	channel := broadcast.NewChannel(r.Helper)
	delivered, err := channel.Run(ctx, messenger, roundSidEcho, roundSidReady, r.sids)
	if err != nil {
		return abortOnInconsistency(r.Helper, r.Number(), "round 2: confirming session seeds", err)
	}

	sid := r.deriveSid(delivered)

	degree := r.Parameters().F
	f := polynomial.NewPolynomialWithConstant(r.Group(), degree, r.secretSeed, r.rng)
	commitment := f.Exponent()

	h2 := hash.New()
	if err := h2.WriteAny(r.SelfID().Bytes(), commitment, sid); err != nil {
		return nil, fmt.Errorf("pedpop: round 2: computing commitment hash: %w", err)
	}
	commitHash := h2.Sum()

	var proof *schnorr.Proof
	if !f.Constant().IsZero() {
		k := r.Group().SampleScalarNonZero(r.rng)
		transcript := hash.New()
		if err := transcript.WriteAny(sid, r.SelfID().Bytes()); err != nil {
			return nil, fmt.Errorf("pedpop: round 2: building proof transcript: %w", err)
		}
		proof = schnorr.Prove(r.Group(), transcript, commitment.Constant(), f.Constant(), k, r.rng)
		k.Set(r.Group().NewScalar())
	}

	// secretSeed's only job was to seed f's constant term, which
	// NewPolynomialWithConstant cloned rather than aliased; it owes
	// nothing else from here on.
	r.secretSeed.Set(r.Group().NewScalar())

	messenger.AdvanceRound(roundCommitHash)
	if err := messenger.SendMany(ctx, r.OtherPartyIDs(), &commitHashMessage{Hash: commitHash}); err != nil {
		return nil, fmt.Errorf("pedpop: round 2: sending commitment hash: %w", err)
	}

	hashes := make(map[party.ID][]byte, len(r.PartyIDs()))
	hashes[r.SelfID()] = commitHash

	return &round3{
		round2:       r,
		sid:          sid,
		polynomial:   f,
		commitment:   commitment,
		proof:        proof,
		commitHashes: hashes,
	}, nil
}

// deriveSid computes sid = H1(sid_1 ‖ ... ‖ sid_N) in canonical participant
// order, over the reliably-delivered seeds.
func (r *round2) deriveSid(delivered map[party.ID][]byte) []byte {
	h := r.Hash()
	for _, id := range r.PartyIDs() {
		_ = h.WriteAny(id.Bytes(), delivered[id])
	}
	return h.Sum()
}

func (r *round2) MessageContent() round.Content { return &sidMessage{} }
func (r *round2) Number() round.Number          { return 2 }

// ZeroizeSecrets cascades into round1; round2 itself holds only the
// session-seed broadcast, which is public by construction.
func (r *round2) ZeroizeSecrets() { r.round1.ZeroizeSecrets() }
