package pedpop

import (
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/math/polynomial"
	"github.com/near/threshold-signatures/pkg/schnorr"
)

// Message-round tags. PedPop+'s five logical rounds (§4.7) expand into
// eleven of these: three reliable echo-broadcasts (sid, the commitment
// reveal, and the success vote), each itself a send/echo/ready exchange,
// plus two plain point-to-point exchanges (the commitment-hash pre-commit,
// and the share distribution).
const (
	roundSidSend      round.Number = 1
	roundSidEcho      round.Number = 2
	roundSidReady     round.Number = 3
	roundCommitHash   round.Number = 4
	roundRevealSend   round.Number = 5
	roundRevealEcho   round.Number = 6
	roundRevealReady  round.Number = 7
	roundShare        round.Number = 8
	roundSuccessSend  round.Number = 9
	roundSuccessEcho  round.Number = 10
	roundSuccessReady round.Number = 11
)

// sidMessage carries a participant's round-1 session-seed contribution,
// the raw material sid = H1(sid_1 ‖ ... ‖ sid_N) is derived from.
type sidMessage struct {
	Sid []byte
}

func (*sidMessage) RoundNumber() round.Number { return roundSidSend }

// commitHashMessage carries h_i = H2(i, C_i, sid), sent point-to-point
// ahead of the round-3 reveal so that a participant who later reveals a
// different C_i than the one it pre-committed to is caught (step 13).
type commitHashMessage struct {
	Hash []byte
}

func (*commitHashMessage) RoundNumber() round.Number { return roundCommitHash }

// revealMessage carries a participant's polynomial commitment and Schnorr
// proof of possession of its constant term, echo-broadcast in round 3.
type revealMessage struct {
	Commitment *polynomial.Exponent
	Proof      *schnorr.Proof
}

func (*revealMessage) RoundNumber() round.Number { return roundRevealSend }

// shareMessage carries a participant's VSS share evaluated at the
// recipient's identifier, sent privately in round 4.
type shareMessage struct {
	Share curve.Scalar
}

func (*shareMessage) RoundNumber() round.Number { return roundShare }

// successMessage is the round-5.5 termination vote: every participant
// echo-broadcasts the session id it believes the protocol completed under,
// so that a participant who saw something go wrong can veto completion for
// everyone rather than silently diverging.
type successMessage struct {
	Sid []byte
}

func (*successMessage) RoundNumber() round.Number { return roundSuccessSend }
