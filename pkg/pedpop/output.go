package pedpop

import (
	"fmt"
	"runtime"

	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
	"github.com/near/threshold-signatures/pkg/wire"
)

// Output is the atomic result of a Keygen, Reshare or Refresh: the holder's
// scalar share, the group public key, and the participant set and
// threshold policy it was produced under. Immutable after creation; Zeroize
// wipes SecretShare on every termination path (success, abort, cancellation
// or panic) per the zeroization discipline every caller must follow.
// newOutput/DecodeOutput additionally arm a runtime.SetFinalizer as backup
// cleanup for a caller that forgets to call Zeroize itself, the same
// belt-and-suspenders pattern moatus-FROST-Golang's Ed25519Scalar uses.
type Output struct {
	Group        curve.Curve
	SelfID       party.ID
	Participants party.IDSlice
	Parameters   threshold.Parameters
	SecretShare  curve.Scalar
	PublicKey    curve.Point
}

// newOutput builds an Output and arms its finalizer backup.
func newOutput(group curve.Curve, self party.ID, participants party.IDSlice, params threshold.Parameters, share curve.Scalar, publicKey curve.Point) *Output {
	o := &Output{
		Group:        group,
		SelfID:       self,
		Participants: participants,
		Parameters:   params,
		SecretShare:  share,
		PublicKey:    publicKey,
	}
	runtime.SetFinalizer(o, (*Output).finalize)
	return o
}

// finalize is the GC-driven backup cleanup; Zeroize disarms it once a
// caller has wiped the share itself.
func (o *Output) finalize() {
	o.Zeroize()
}

// Zeroize overwrites SecretShare with the zero scalar and disarms the
// backup finalizer, since there is nothing left for it to clean up.
func (o *Output) Zeroize() {
	if o.SecretShare != nil {
		o.SecretShare.Set(o.Group.NewScalar())
	}
	runtime.SetFinalizer(o, nil)
}

// Encode serializes o using the canonical persisted layout (§6): version ‖
// group tag ‖ participant count ‖ participant ids ascending ‖ (N,F,T) ‖
// secret share ‖ public key.
func (o *Output) Encode() ([]byte, error) {
	data, err := wire.EncodeOutput(o.Group, o.Participants, o.Parameters, o.SecretShare, o.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}
	return data, nil
}

// DecodeOutput parses data produced by Output.Encode, attributing the
// result to self — the persisted layout has no notion of "which
// participant is this," since every participant persists the same group,
// participant set and parameters alongside their own distinct share.
func DecodeOutput(self party.ID, data []byte) (*Output, error) {
	decoded, err := wire.DecodeOutput(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}
	if !decoded.Participants.Contains(self) {
		return nil, fmt.Errorf("%w: self %s is not among the persisted participants", ErrParameter, self)
	}
	return newOutput(decoded.Group, self, decoded.Participants, decoded.Parameters, decoded.SecretShare, decoded.PublicKey), nil
}
