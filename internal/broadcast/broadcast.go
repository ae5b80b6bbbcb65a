// Package broadcast implements the reliable (Byzantine) echo-broadcast
// channel PedPop+ runs its session-id and commitment broadcasts over: a
// Bracha-style Send/Echo/Ready/Deliver exchange guaranteeing agreement,
// totality, no-creation and no-duplication even when up to F participants
// are malicious (§4.5).
//
// A single Channel multiplexes N independent broadcast instances — one per
// originating sender — over two shared message rounds (Echo, then Ready),
// rather than running N sequential Bracha broadcasts.
package broadcast

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// Inconsistency is returned when a participant's broadcast could not be
// delivered: either it never collected enough matching echoes, or two
// honest participants saw it echo two different values. Either way, Origin
// is the culprit callers should exclude and report.
type Inconsistency struct {
	Origin party.ID
	Reason string
}

func (e *Inconsistency) Error() string {
	return fmt.Sprintf("broadcast: participant %s's broadcast is inconsistent: %s", e.Origin, e.Reason)
}

// Channel runs one Echo/Ready exchange over every originating sender's
// already-distributed Send-phase payload, and reports which payloads were
// reliably delivered.
type Channel struct {
	helper     *round.Helper
	parameters threshold.Parameters
}

// NewChannel builds a Channel bound to helper's session and participant
// set.
func NewChannel(helper *round.Helper) *Channel {
	return &Channel{helper: helper, parameters: helper.Parameters()}
}

// Run executes the Echo and Ready phases over sendPayloads — the payload
// this participant received directly from each origin during the round's
// ordinary Send phase — and returns the subset that were reliably
// delivered. echoRound and readyRound are the round numbers the caller has
// reserved for the two internal message exchanges; Run advances messenger
// into echoRound and then readyRound, and returns with it still positioned
// at readyRound. Advancing past readyRound is left to the caller.
func (c *Channel) Run(ctx context.Context, messenger *round.Messenger, echoRound, readyRound round.Number, sendPayloads map[party.ID][]byte) (map[party.ID][]byte, error) {
	self := c.helper.SelfID()
	parties := c.helper.PartyIDs()

	myDigests := digestAll(sendPayloads)

	if err := messenger.SendMany(ctx, c.helper.OtherPartyIDs(), &EchoMessage{Round: echoRound, Digests: myDigests}); err != nil {
		return nil, fmt.Errorf("broadcast: sending echo: %w", err)
	}
	messenger.AdvanceRound(echoRound)

	echoTally := newTally(parties)
	echoTally.record(self, myDigests)
	for range c.helper.OtherPartyIDs() {
		msg, err := messenger.Receive(ctx)
		if err != nil {
			return nil, fmt.Errorf("broadcast: receiving echo: %w", err)
		}
		body, ok := msg.Content.(*EchoMessage)
		if !ok {
			return nil, fmt.Errorf("broadcast: unexpected content for echo round from %s", msg.From)
		}
		echoTally.record(msg.From, body.Digests)
	}

	echoThreshold := (c.parameters.N + c.parameters.F) / 2
	readyDigests := make(map[party.ID]string, len(parties))
	for _, origin := range parties {
		digest, count := echoTally.majority(origin)
		if count > echoThreshold {
			readyDigests[origin] = digest
		}
	}

	if err := messenger.SendMany(ctx, c.helper.OtherPartyIDs(), &ReadyMessage{Round: readyRound, Digests: readyDigests}); err != nil {
		return nil, fmt.Errorf("broadcast: sending ready: %w", err)
	}
	messenger.AdvanceRound(readyRound)

	readyTally := newTally(parties)
	readyTally.record(self, readyDigests)
	for range c.helper.OtherPartyIDs() {
		msg, err := messenger.Receive(ctx)
		if err != nil {
			return nil, fmt.Errorf("broadcast: receiving ready: %w", err)
		}
		body, ok := msg.Content.(*ReadyMessage)
		if !ok {
			return nil, fmt.Errorf("broadcast: unexpected content for ready round from %s", msg.From)
		}
		readyTally.record(msg.From, body.Digests)
	}

	deliverThreshold := 2 * c.parameters.F
	delivered := make(map[party.ID][]byte, len(parties))
	for _, origin := range parties {
		digest, count := readyTally.majority(origin)
		if count <= deliverThreshold {
			return nil, &Inconsistency{Origin: origin, Reason: "insufficient matching ready messages to deliver"}
		}
		payload, ok := sendPayloads[origin]
		if !ok || digestOf(payload) != digest {
			return nil, &Inconsistency{Origin: origin, Reason: "delivered digest does not match the value we received in the send phase"}
		}
		delivered[origin] = payload
	}

	return delivered, nil
}

func digestOf(payload []byte) string {
	h := hash.New()
	_ = h.WriteAny(payload)
	return hex.EncodeToString(h.Sum())
}

func digestAll(payloads map[party.ID][]byte) map[party.ID]string {
	out := make(map[party.ID]string, len(payloads))
	for origin, payload := range payloads {
		out[origin] = digestOf(payload)
	}
	return out
}

// tally counts, per origin, how many distinct participants reported each
// digest.
type tally struct {
	counts map[party.ID]map[string]int
	seen   map[party.ID]map[party.ID]bool
}

func newTally(parties party.IDSlice) *tally {
	t := &tally{
		counts: make(map[party.ID]map[string]int, len(parties)),
		seen:   make(map[party.ID]map[party.ID]bool, len(parties)),
	}
	for _, origin := range parties {
		t.counts[origin] = make(map[string]int)
		t.seen[origin] = make(map[party.ID]bool)
	}
	return t
}

func (t *tally) record(reporter party.ID, digests map[party.ID]string) {
	for origin, digest := range digests {
		seen, ok := t.seen[origin]
		if !ok {
			continue
		}
		if seen[reporter] {
			continue
		}
		seen[reporter] = true
		t.counts[origin][digest]++
	}
}

// majority returns the most-reported digest for origin, and how many
// distinct participants reported it.
func (t *tally) majority(origin party.ID) (string, int) {
	var best string
	bestCount := 0
	for digest, count := range t.counts[origin] {
		if count > bestCount {
			best, bestCount = digest, count
		}
	}
	return best, bestCount
}
