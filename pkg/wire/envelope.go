// Package wire provides PedPop+'s on-the-wire encodings: a self-describing
// CBOR envelope for round messages, and a fixed-layout binary encoding for
// the persisted Output a completed Keygen/Reshare/Refresh hands back.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

// Envelope is the tagged, self-describing form of a round.Message that
// actually crosses the wire: (protocol-id, round-id, sender, payload).
// round.Message's Content is an interface, so it can't be CBOR-decoded
// without knowing its concrete type ahead of time; Envelope carries the
// encoded payload separately so the receiver can decode it once it knows
// which round it belongs to.
type Envelope struct {
	ProtocolID string
	Round      round.Number
	From       party.ID
	To         party.ID
	Broadcast  bool
	Payload    []byte
}

// EncodeEnvelope serializes msg into an Envelope's wire form, tagged with
// protocolID for session-mismatch detection on the receiving end.
func EncodeEnvelope(protocolID string, msg *round.Message) ([]byte, error) {
	payload, err := cbor.Marshal(msg.Content)
	if err != nil {
		return nil, &CodecError{Op: "encode envelope content", Err: err}
	}
	env := Envelope{
		ProtocolID: protocolID,
		Round:      msg.Content.RoundNumber(),
		From:       msg.From,
		To:         msg.To,
		Broadcast:  msg.Broadcast,
		Payload:    payload,
	}
	data, err := cbor.Marshal(env)
	if err != nil {
		return nil, &CodecError{Op: "encode envelope", Err: err}
	}
	return data, nil
}

// DecodeEnvelope parses an Envelope and decodes its payload into content,
// which the caller must pre-populate with the concrete type expected for
// env.Round (e.g. via a Round's MessageContent()).
func DecodeEnvelope(data []byte, content interface{}) (*Envelope, error) {
	var env Envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, &CodecError{Op: "decode envelope", Err: err}
	}
	if err := cbor.Unmarshal(env.Payload, content); err != nil {
		return nil, &CodecError{Op: fmt.Sprintf("decode envelope payload for round %s", env.Round), Err: err}
	}
	return &env, nil
}
