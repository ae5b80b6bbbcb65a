// Package protocol drives a round.Session to completion: it owns the loop
// that pulls messages off a round.Messenger, feeds them to the current
// round's VerifyMessage/StoreMessage, and calls Finalize once every message
// the round is waiting on has arrived.
//
// This is the pull-style counterpart to the teacher's push-style
// Handler.Update, which callers fed messages into as they arrived off the
// wire. PedPop+'s cooperative substrate (§4.4/§5) instead suspends only at
// Messenger.Receive, so there is no outgoing channel here to Listen on —
// Run blocks until the session terminates or ctx is canceled.
package protocol

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

// Handler logs a single protocol run under its protocol id and participant
// id, the same fields the teacher's Handler attaches to its own logger.
type Handler struct {
	Log zerolog.Logger
}

// NewHandler builds a Handler for protocolID, logging as self.
func NewHandler(protocolID string, self party.ID) *Handler {
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.InfoLevel).With().
		Str("protocol", protocolID).
		Str("party", self.String()).
		Stack().
		Logger()
	return &Handler{Log: log}
}

// Run drives start to completion: every round whose MessageContent is
// non-nil waits for exactly one message from each other participant before
// finalizing, mirroring the teacher's own round1 convention of returning a
// nil MessageContent to mean "this round sends, but receives nothing first."
// Run returns the terminal *round.Output or *round.Abort session.
func (h *Handler) Run(ctx context.Context, messenger *round.Messenger, start round.Session) (round.Session, error) {
	current := start
	for {
		h.Log.Info().Str("round", current.Number().String()).Msg("entering round")

		if current.MessageContent() != nil {
			for range current.OtherPartyIDs() {
				msg, err := messenger.Receive(ctx)
				if err != nil {
					zeroizeSecrets(current)
					return nil, fmt.Errorf("protocol: round %s: receive: %w", current.Number(), err)
				}
				if err := current.VerifyMessage(msg.From, msg.Content); err != nil {
					h.Log.Warn().Err(err).Str("from", msg.From.String()).Msg("rejected message")
					zeroizeSecrets(current)
					return nil, fmt.Errorf("protocol: round %s: message from %s: %w", current.Number(), msg.From, err)
				}
				if err := current.StoreMessage(msg.From, msg.Content); err != nil {
					zeroizeSecrets(current)
					return nil, fmt.Errorf("protocol: round %s: storing message from %s: %w", current.Number(), msg.From, err)
				}
			}
		}

		next, err := current.Finalize(ctx, messenger)
		if err != nil {
			zeroizeSecrets(current)
			return nil, fmt.Errorf("protocol: round %s: finalize: %w", current.Number(), err)
		}

		nextSession, ok := next.(round.Session)
		if !ok {
			zeroizeSecrets(current)
			return nil, fmt.Errorf("protocol: round %s: next round %T is not a Session", current.Number(), next)
		}

		switch nextSession.(type) {
		case *round.Output:
			h.Log.Info().Msg("protocol succeeded")
			zeroizeSecrets(current)
			return nextSession, nil
		case *round.Abort:
			h.Log.Warn().Msg("protocol aborted")
			zeroizeSecrets(current)
			return nextSession, nil
		}
		current = nextSession
	}
}

// zeroizeSecrets wipes whatever secret material current (and, by
// embedding, every round it was built on top of) is still holding, on
// every Run exit — success, abort, or hard failure alike. Rounds that
// hand a value off to the caller (a final Output's share) zero their own
// copy only after that handoff, so this is always safe to call here.
func zeroizeSecrets(current round.Round) {
	if z, ok := current.(round.SecretZeroizer); ok {
		z.ZeroizeSecrets()
	}
}
