package round

import (
	"context"

	"github.com/near/threshold-signatures/pkg/party"
)

// Abort is a terminal round produced when the protocol cannot continue: it
// carries whichever culprits were identifiable and the error that ended
// the session.
type Abort struct {
	*Helper
	Culprits []party.ID
	Err      error
}

func (*Abort) VerifyMessage(party.ID, Content) error { return nil }
func (*Abort) StoreMessage(party.ID, Content) error  { return nil }
func (r *Abort) Finalize(context.Context, *Messenger) (Round, error) {
	return r, nil
}
func (*Abort) MessageContent() Content { return nil }
func (*Abort) Number() Number          { return 0 }
