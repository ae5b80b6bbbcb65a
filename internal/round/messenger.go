package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/near/threshold-signatures/pkg/party"
)

// Transport is the caller-supplied delivery mechanism a Messenger drives:
// Send hands a single outgoing message to the network, and Receive blocks
// until the next incoming message (from any sender, any round) is
// available. Implementations must preserve each sender's message order;
// pkg/pedpoptest provides an in-memory implementation for tests, and a
// production caller would back this with whatever authenticated,
// confidential channel it already has between participants (§4.4).
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	Receive(ctx context.Context) (*Message, error)
}

// Messenger is the cooperative, round-based messaging core every PedPop+
// round runs on top of: send_private, send_many, receive and advance_round
// (§4.4). receive is the protocol's single suspension point — a round
// never blocks anywhere else, which is what makes the whole state machine
// drivable by one goroutine per participant pulling from one channel.
type Messenger struct {
	self     party.ID
	current  Number
	transport Transport
	inbox    *Inbox
	ready    []*Message
}

// NewMessenger constructs a Messenger for self, starting at round 1.
func NewMessenger(self party.ID, transport Transport) *Messenger {
	return &Messenger{
		self:      self,
		current:   1,
		transport: transport,
		inbox:     newInbox(),
	}
}

// SendPrivate sends content to a single participant over the private
// channel (§4.4): confidential and authenticated, but not reliably
// broadcast.
func (m *Messenger) SendPrivate(ctx context.Context, to party.ID, content Content) error {
	return m.transport.Send(ctx, &Message{From: m.self, To: to, Content: content})
}

// SendMany fans content out to every id in to over the private channel.
// Unlike a reliable broadcast, there is no guarantee every recipient sees
// the same content: callers that need that guarantee use
// internal/broadcast instead.
func (m *Messenger) SendMany(ctx context.Context, to []party.ID, content Content) error {
	for _, id := range to {
		if id == m.self {
			continue
		}
		if err := m.SendPrivate(ctx, id, content); err != nil {
			return fmt.Errorf("round: send to %s: %w", id, err)
		}
	}
	return nil
}

// Receive returns the next message addressed to this participant for the
// current round, blocking until one is available. Messages that arrive for
// a later round are buffered in the Inbox rather than discarded, and are
// returned once AdvanceRound reaches that round; messages for an earlier
// round than current are dropped, since no round will ever consume them
// again.
func (m *Messenger) Receive(ctx context.Context) (*Message, error) {
	for {
		if len(m.ready) > 0 {
			msg := m.ready[0]
			m.ready = m.ready[1:]
			return msg, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg, err := m.transport.Receive(ctx)
		if err != nil {
			return nil, err
		}
		if msg.Content == nil {
			return nil, errors.New("round: received message with nil content")
		}
		if !msg.IsFor(m.self) {
			continue
		}

		round := msg.Content.RoundNumber()
		switch {
		case round == m.current:
			return msg, nil
		case round > m.current:
			m.inbox.push(msg)
		default:
			// A message for a round we've already advanced past can never
			// be consumed; dropping it here (rather than erroring) lets a
			// straggler's retransmission be silently absorbed.
		}
	}
}

// AdvanceRound moves the Messenger to next, pulling any messages already
// buffered for it into the ready queue so that Receive returns them without
// blocking on the transport again.
func (m *Messenger) AdvanceRound(next Number) {
	m.current = next
	m.ready = append(m.ready, m.inbox.drain(next)...)
}

// CurrentRound returns the round number Receive is currently serving.
func (m *Messenger) CurrentRound() Number {
	return m.current
}
