package round

import (
	"context"
	"errors"

	"github.com/near/threshold-signatures/pkg/party"
)

// Output is a terminal round carrying the protocol's result: a
// *pedpop.Output for Keygen/Reshare/Refresh.
type Output struct {
	*Helper
	Result interface{}
}

func (*Output) VerifyMessage(party.ID, Content) error {
	return errors.New("round: output round does not accept messages")
}

func (*Output) StoreMessage(party.ID, Content) error {
	return errors.New("round: output round does not accept messages")
}

func (r *Output) Finalize(context.Context, *Messenger) (Round, error) {
	return r, errors.New("round: output round is already finalized")
}

func (*Output) MessageContent() Content { return nil }
func (*Output) Number() Number          { return 0 }
