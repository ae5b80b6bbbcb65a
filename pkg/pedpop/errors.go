package pedpop

import (
	"errors"
	"fmt"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

// Sentinel errors identifying why a Keygen, Reshare or Refresh failed.
// Failures raised inside a round are wrapped in an *Abort, whose Culprit
// names the misbehaving participant where one is identifiable (and is zero
// otherwise). Checks made at the entry points before any message is sent
// (e.g. a caller-side parameter mistake) return the sentinel wrapped with
// fmt.Errorf, not an *Abort.
var (
	ErrThresholdPolicyViolation = errors.New("pedpop: threshold policy violation")
	ErrParameter                = errors.New("pedpop: invalid parameter")
	ErrCodec                    = errors.New("pedpop: codec error")
	ErrProofInvalid             = errors.New("pedpop: schnorr proof of possession is invalid")
	ErrBroadcastInconsistency   = errors.New("pedpop: echo-broadcast delivered inconsistent values")
	ErrPublicKeyMismatch        = errors.New("pedpop: reshare produced a public key different from the prior one")
)

// Abort reports a round that ended the session because of a specific
// participant's bad message, mirroring the teacher's protocol.Error.
type Abort struct {
	Round   round.Number
	Culprit party.ID
	Err     error
}

func (e *Abort) Error() string {
	if e.Culprit == 0 {
		return fmt.Sprintf("pedpop: round %s: %v", e.Round, e.Err)
	}
	return fmt.Sprintf("pedpop: round %s: party %s: %v", e.Round, e.Culprit, e.Err)
}

func (e *Abort) Unwrap() error { return e.Err }
