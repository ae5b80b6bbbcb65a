// Package pedpoptest provides an in-memory network harness for exercising
// PedPop+ end to end: one goroutine per participant, each driving its own
// round.Messenger over channels connecting every pair of participants
// directly, the same shape as the teacher's own round package tests, scaled
// up to a full N-participant run.
package pedpoptest

import (
	"context"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

// memoryTransport connects one participant's outbox to every other
// participant's inbox.
type memoryTransport struct {
	self party.ID
	in   chan *round.Message
	out  map[party.ID]chan *round.Message
	drop map[party.ID]bool
}

// Network is a fixed set of participants' inboxes, wired so that every
// participant can reach every other directly. It is not itself safe for
// concurrent Send/Receive across goroutines other than the one calling
// Messenger methods for a given participant, matching the teacher's own
// "one task owns its state exclusively" model.
type Network struct {
	inboxes map[party.ID]chan *round.Message
}

// NewNetwork builds a Network with one inbox per id in ids, each buffered
// deeply enough that no participant blocks sending into a slower peer's
// queue across a handful of rounds.
func NewNetwork(ids party.IDSlice) *Network {
	inboxes := make(map[party.ID]chan *round.Message, len(ids))
	for _, id := range ids {
		inboxes[id] = make(chan *round.Message, 256)
	}
	return &Network{inboxes: inboxes}
}

// Messenger returns a round.Messenger for self, wired into the network.
func (n *Network) Messenger(self party.ID) *round.Messenger {
	return round.NewMessenger(self, &memoryTransport{self: self, in: n.inboxes[self], out: n.inboxes})
}

// MessengerDroppingTo returns a Messenger for self whose outgoing messages
// to any id in blocked are silently discarded rather than delivered, to
// simulate a participant cut off from some of its peers. It only drops
// messages; it cannot send divergent content to different peers.
func (n *Network) MessengerDroppingTo(self party.ID, blocked party.IDSlice) *round.Messenger {
	drop := make(map[party.ID]bool, len(blocked))
	for _, id := range blocked {
		drop[id] = true
	}
	return round.NewMessenger(self, &memoryTransport{self: self, in: n.inboxes[self], out: n.inboxes, drop: drop})
}

func (t *memoryTransport) Send(ctx context.Context, msg *round.Message) error {
	if t.drop[msg.To] {
		return nil
	}
	select {
	case t.out[msg.To] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *memoryTransport) Receive(ctx context.Context) (*round.Message, error) {
	select {
	case msg := <-t.in:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
