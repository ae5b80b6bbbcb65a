package round

import (
	"github.com/near/threshold-signatures/pkg/party"
)

// Content is a round's message payload. Every round-specific message type
// implements this so that it can be routed to the round it belongs to.
type Content interface {
	RoundNumber() Number
}

// Message is an envelope around a round's Content: who sent it, who it was
// addressed to, and whether it was sent over the reliable broadcast channel
// or the private point-to-point channel.
//
// To is the zero party.ID for a message addressed to every participant,
// whether broadcast or not. SendMany does not use this: it fans a single
// Content out as one private message per recipient, each with To set.
type Message struct {
	From      party.ID
	To        party.ID
	Broadcast bool
	Content   Content
}

// IsFor reports whether msg is addressed to id, either directly or as part
// of an all-participants send.
func (msg *Message) IsFor(id party.ID) bool {
	return msg.To == 0 || msg.To == id
}
