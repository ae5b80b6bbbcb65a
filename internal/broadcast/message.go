package broadcast

import (
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

// EchoMessage is phase 2 of the channel: each participant reports, for
// every origin it has a Send-phase payload from, the digest of that
// payload.
type EchoMessage struct {
	Round   round.Number
	Digests map[party.ID]string
}

func (m *EchoMessage) RoundNumber() round.Number { return m.Round }

// ReadyMessage is phase 3: each participant reports, for every origin whose
// echoes it saw reach the echo threshold, the digest that reached it.
type ReadyMessage struct {
	Round   round.Number
	Digests map[party.ID]string
}

func (m *ReadyMessage) RoundNumber() round.Number { return m.Round }
