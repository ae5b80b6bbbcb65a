package pedpop

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/pedpoptest"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// These two tests drive a single Byzantine participant by hand, bypassing
// Keygen/protocol.Handler for that one party, while every other participant
// runs the real thing through pedpoptest. They exercise spec.md §8's two
// fault-injection scenarios at the pedpop level: a conflicting echo-broadcast
// session id, and a VSS share that doesn't match its sender's own commitment.

// TestKeygenDetectsConflictingSessionSeed has a rogue participant send a
// different round-1 session-seed contribution to each honest peer instead of
// the identical broadcast Keygen would send. Every honest peer's round-2
// echo-broadcast confirmation (§4.5) then has a different view of what the
// rogue sent, so no digest for the rogue's origin ever reaches the ready
// threshold, and the session aborts with ErrBroadcastInconsistency naming
// the rogue as culprit instead of hanging or silently diverging.
func TestKeygenDetectsConflictingSessionSeed(t *testing.T) {
	group := curve.Secp256k1{}
	ids := party.RandIDs(4)
	honest, rogue := ids[:3], ids[3]
	thresh := 2

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := pedpoptest.NewNetwork(ids)

	errs := make(chan error, 1)
	go func() {
		errs <- runRogueConflictingSid(ctx, honest, net.Messenger(rogue))
	}()

	_, err := pedpoptest.RunAll(ctx, honest, func(ctx context.Context, id party.ID) (*Output, error) {
		return Keygen(ctx, group, ids, id, thresh, rand.Reader, net.Messenger(id))
	})
	require.NoError(t, <-errs, "rogue sender")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBroadcastInconsistency)
	var abort *Abort
	if assert.ErrorAs(t, err, &abort) {
		assert.Equal(t, rogue, abort.Culprit)
	}
}

// runRogueConflictingSid sends a distinct round-1 session seed to every id
// in honest, instead of the single value a real round1.Finalize would echo
// to all of them, then plays along honestly enough in round 2's echo and
// ready phases (§4.5) that honest peers don't simply time out waiting on it.
func runRogueConflictingSid(ctx context.Context, honest party.IDSlice, messenger *round.Messenger) error {
	for i, to := range honest {
		sid := make([]byte, sidSeedBytes)
		sid[0] = byte(i + 1)
		if err := messenger.SendPrivate(ctx, to, &sidMessage{Sid: sid}); err != nil {
			return err
		}
	}
	if err := messenger.SendMany(ctx, honest, &broadcast.EchoMessage{Round: roundSidEcho}); err != nil {
		return err
	}
	return messenger.SendMany(ctx, honest, &broadcast.ReadyMessage{Round: roundSidReady})
}

// TestKeygenDetectsInconsistentShare has a rogue participant run rounds 1-3
// honestly (so its commitment and proof of possession are accepted by
// everyone) but then, in round 4, send one honest peer a VSS share that does
// not evaluate to its own committed polynomial. That peer's round5 rejects
// it as ErrProofInvalid with the rogue named as culprit.
func TestKeygenDetectsInconsistentShare(t *testing.T) {
	group := curve.Secp256k1{}
	ids := party.RandIDs(4)
	honest, rogue := ids[:3], ids[3]
	thresh := 2
	badTarget := honest[0]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := pedpoptest.NewNetwork(ids)

	errs := make(chan error, 1)
	go func() {
		errs <- runRogueWithBadShare(ctx, group, ids, rogue, thresh, badTarget, net.Messenger(rogue))
	}()

	_, err := pedpoptest.RunAll(ctx, honest, func(ctx context.Context, id party.ID) (*Output, error) {
		return Keygen(ctx, group, ids, id, thresh, rand.Reader, net.Messenger(id))
	})
	require.NoError(t, <-errs, "rogue sender")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProofInvalid)
	var abort *Abort
	if assert.ErrorAs(t, err, &abort) {
		assert.Equal(t, rogue, abort.Culprit)
	}
}

// runRogueWithBadShare drives the real round1 through round3 logic
// unmodified — so the rogue's commitment and proof are entirely legitimate —
// collects round4's incoming reveals the way protocol.Handler.Run would, and
// then, instead of calling the real round4.Finalize, replicates its body
// with badTarget's share deliberately evaluated at the wrong point.
func runRogueWithBadShare(ctx context.Context, group curve.Curve, participants party.IDSlice, me party.ID, t int, badTarget party.ID, messenger *round.Messenger) error {
	params, err := threshold.New(len(participants), t-1)
	if err != nil {
		return err
	}
	secretSeed := group.SampleScalar(rand.Reader)
	start, err := newStart(keygenProtocolID, group, participants, me, params, rand.Reader, nil, secretSeed, nil)
	if err != nil {
		return err
	}

	r4, err := driveThroughRound4Receive(ctx, start, messenger)
	if err != nil {
		return err
	}
	return r4.finalizeWithBadShare(ctx, messenger, badTarget)
}

// driveThroughRound4Receive mirrors protocol.Handler.Run's receive loop for
// rounds 1-4, stopping right after round 4's own reveal messages have been
// collected and verified but before its Finalize (the step being overridden)
// would run.
func driveThroughRound4Receive(ctx context.Context, start *round1, messenger *round.Messenger) (*round4, error) {
	var current round.Session = start
	for {
		if current.MessageContent() != nil {
			for range current.OtherPartyIDs() {
				msg, err := messenger.Receive(ctx)
				if err != nil {
					return nil, err
				}
				if err := current.VerifyMessage(msg.From, msg.Content); err != nil {
					return nil, err
				}
				if err := current.StoreMessage(msg.From, msg.Content); err != nil {
					return nil, err
				}
			}
		}

		if r4, ok := current.(*round4); ok {
			return r4, nil
		}

		next, err := current.Finalize(ctx, messenger)
		if err != nil {
			return nil, err
		}
		session, ok := next.(round.Session)
		if !ok {
			return nil, fmt.Errorf("pedpop: fault test: round %s: next round %T is not a Session", current.Number(), next)
		}
		current = session
	}
}

// finalizeWithBadShare replicates round4.Finalize's body, substituting
// badTarget's correctly-evaluated share for one evaluated at the sender's
// own index instead — a value that does not match the commitment badTarget
// will check it against.
func (r *round4) finalizeWithBadShare(ctx context.Context, messenger *round.Messenger, badTarget party.ID) error {
	fingerprints := make(map[party.ID][]byte, len(r.reveals))
	for id, reveal := range r.reveals {
		fp, err := fingerprintReveal(reveal)
		if err != nil {
			return err
		}
		fingerprints[id] = fp
	}

	channel := broadcast.NewChannel(r.Helper)
	if _, err := channel.Run(ctx, messenger, roundRevealEcho, roundRevealReady, fingerprints); err != nil {
		return err
	}

	messenger.AdvanceRound(roundShare)

	for _, to := range r.OtherPartyIDs() {
		at := to
		if to == badTarget {
			at = r.SelfID()
		}
		share := r.polynomial.Evaluate(at.Scalar(r.Group()))
		if err := messenger.SendPrivate(ctx, to, &shareMessage{Share: share}); err != nil {
			return err
		}
	}
	return nil
}
