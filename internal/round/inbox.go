package round

import "github.com/near/threshold-signatures/pkg/party"

// Inbox buffers messages that have arrived for a round that hasn't started
// yet. PedPop+ participants don't run in lockstep: a fast participant can
// receive a round-(n+1) message while still finishing round n, and that
// message must survive until advanceRound reaches round n+1, for however
// many rounds ahead it arrived — never discarded.
type Inbox struct {
	// buffered[round][sender] holds, in arrival order, every message
	// received for that round from that sender, before the round started.
	buffered map[Number]map[party.ID][]*Message
}

func newInbox() *Inbox {
	return &Inbox{buffered: make(map[Number]map[party.ID][]*Message)}
}

func (b *Inbox) push(msg *Message) {
	bySender, ok := b.buffered[msg.Content.RoundNumber()]
	if !ok {
		bySender = make(map[party.ID][]*Message)
		b.buffered[msg.Content.RoundNumber()] = bySender
	}
	bySender[msg.From] = append(bySender[msg.From], msg)
}

// drain removes and returns every message buffered for round, preserving
// each sender's FIFO order; the relative order between different senders is
// not meaningful and is not preserved across calls.
func (b *Inbox) drain(round Number) []*Message {
	bySender, ok := b.buffered[round]
	if !ok {
		return nil
	}
	delete(b.buffered, round)

	out := make([]*Message, 0)
	for _, msgs := range bySender {
		out = append(out, msgs...)
	}
	return out
}
