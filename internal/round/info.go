package round

import (
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// Info describes a single protocol execution: who's in it, which group it
// runs over, and its policy. Keygen, Reshare and Refresh each build an Info
// before constructing their first round's Helper.
type Info struct {
	// ProtocolID identifies which operation this is: "pedpop/keygen" or
	// "pedpop/reshare" (Refresh runs as a reshare and uses the latter).
	ProtocolID string
	// FinalRoundNumber is the last numbered round before the Ack round.
	FinalRoundNumber Number
	// SelfID is this participant's ID.
	SelfID party.ID
	// PartyIDs is the sorted set of participants in this execution.
	PartyIDs party.IDSlice
	// Group is the curve this execution runs over.
	Group curve.Curve
	// Parameters is the validated (N, F, T) policy for this execution.
	Parameters threshold.Parameters
}
