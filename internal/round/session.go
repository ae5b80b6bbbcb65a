package round

import (
	"context"

	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// Round is a single step of a protocol execution. VerifyMessage and
// StoreMessage are called once per message received for the round;
// Finalize is called once every expected message has been verified and
// stored, and produces either the next Round or a terminal Output/Abort.
type Round interface {
	// VerifyMessage checks content's validity for this round, without
	// mutating any round state: it may run concurrently with verification
	// of other senders' messages.
	VerifyMessage(from party.ID, content Content) error
	// StoreMessage records content, after VerifyMessage has accepted it.
	StoreMessage(from party.ID, content Content) error
	// Finalize is called once this round has received and stored every
	// message it's waiting on. It sends whatever this round owes the next
	// one (including any nested echo-broadcast exchanges) and returns the
	// next round to run, or a terminal Output/Abort round.
	Finalize(ctx context.Context, messenger *Messenger) (Round, error)
	// MessageContent returns a zero-valued Content for this round's
	// message type, used to decode incoming wire messages.
	MessageContent() Content
	// Number identifies which round this is.
	Number() Number
}

// SecretZeroizer is implemented by a Round holding secret material that
// must be wiped on every termination path — success, abort, cancellation
// or panic — not only the one that consumes it. Because a protocol's
// rounds are chained by embedding the previous round, a single call to
// ZeroizeSecrets on whichever Round a driver is holding when it stops
// cascades through every earlier round's secret state too.
type SecretZeroizer interface {
	ZeroizeSecrets()
}

// Session is a Round together with the session-wide context every round
// needs access to.
type Session interface {
	Round
	Group() curve.Curve
	Hash() *hash.Hash
	ProtocolID() string
	FinalRoundNumber() Number
	SSID() []byte
	SelfID() party.ID
	PartyIDs() party.IDSlice
	OtherPartyIDs() party.IDSlice
	Parameters() threshold.Parameters
}

// Helper implements Session without Round, and is embedded in a protocol's
// first round so that round plus Helper together satisfy Session.
type Helper struct {
	info Info

	partyIDs      party.IDSlice
	otherPartyIDs party.IDSlice

	ssid []byte
	hash *hash.Hash
}

// NewHelper builds a Helper from info, deriving the session id (H1) from
// the protocol id, group and participant set, plus whatever
// additional session-binding data the caller supplies (e.g. the combined
// round-1 seed broadcast, for PedPop+'s own session id derivation).
func NewHelper(info Info, aux ...hash.WriterToWithDomain) (*Helper, error) {
	if err := info.Parameters.Validate(); err != nil {
		return nil, err
	}
	if !info.PartyIDs.Contains(info.SelfID) {
		return nil, errInfoSelfNotPresent
	}

	h := hash.New()
	if err := h.WriteAny([]byte(info.ProtocolID)); err != nil {
		return nil, err
	}
	if err := h.WriteAny([]byte(info.Group.Name())); err != nil {
		return nil, err
	}
	for _, id := range info.PartyIDs {
		if err := h.WriteAny(id.Bytes()); err != nil {
			return nil, err
		}
	}
	for _, a := range aux {
		if a == nil {
			continue
		}
		if err := h.WriteAny(a); err != nil {
			return nil, err
		}
	}

	otherPartyIDs := make(party.IDSlice, 0, len(info.PartyIDs)-1)
	for _, id := range info.PartyIDs {
		if id != info.SelfID {
			otherPartyIDs = append(otherPartyIDs, id)
		}
	}

	return &Helper{
		info:          info,
		partyIDs:      info.PartyIDs.Copy(),
		otherPartyIDs: otherPartyIDs,
		ssid:          h.Clone().Sum(),
		hash:          h,
	}, nil
}

// HashForID returns a clone of the session hash with id written in, used to
// derive per-participant domain-separated values (e.g. H2's preimage).
func (h *Helper) HashForID(id party.ID) *hash.Hash {
	cloned := h.hash.Clone()
	if id != 0 {
		_ = cloned.WriteAny(id.Bytes())
	}
	return cloned
}

// UpdateHashState folds additional data into the session's running hash
// state, used by rounds that must bind later material (such as round 1's
// combined seed broadcast) into every subsequent domain-separated hash.
func (h *Helper) UpdateHashState(value hash.WriterToWithDomain) {
	_ = h.hash.WriteAny(value)
}

func (h *Helper) Hash() *hash.Hash                { return h.hash.Clone() }
func (h *Helper) ProtocolID() string              { return h.info.ProtocolID }
func (h *Helper) FinalRoundNumber() Number        { return h.info.FinalRoundNumber }
func (h *Helper) SSID() []byte                    { return h.ssid }
func (h *Helper) SelfID() party.ID                { return h.info.SelfID }
func (h *Helper) PartyIDs() party.IDSlice         { return h.partyIDs }
func (h *Helper) OtherPartyIDs() party.IDSlice    { return h.otherPartyIDs }
func (h *Helper) Parameters() threshold.Parameters { return h.info.Parameters }
func (h *Helper) Group() curve.Curve              { return h.info.Group }

// ResultRound wraps result in a terminal Output round.
func (h *Helper) ResultRound(result interface{}) Session {
	return &Output{Helper: h, Result: result}
}

// AbortRound wraps err and the identified culprits in a terminal Abort
// round. Finalize() should still return a nil error in this case: an abort
// is a protocol outcome, not a Go-level failure.
func (h *Helper) AbortRound(err error, culprits ...party.ID) Session {
	return &Abort{Helper: h, Culprits: culprits, Err: err}
}
