package broadcast_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/internal/broadcast"
	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

type memoryTransport struct {
	self party.ID
	in   chan *round.Message
	out  map[party.ID]chan *round.Message
}

func newNetwork(ids party.IDSlice) map[party.ID]*memoryTransport {
	inboxes := make(map[party.ID]chan *round.Message, len(ids))
	for _, id := range ids {
		inboxes[id] = make(chan *round.Message, 256)
	}
	net := make(map[party.ID]*memoryTransport, len(ids))
	for _, id := range ids {
		net[id] = &memoryTransport{self: id, in: inboxes[id], out: inboxes}
	}
	return net
}

func (t *memoryTransport) Send(_ context.Context, msg *round.Message) error {
	t.out[msg.To] <- msg
	return nil
}

func (t *memoryTransport) Receive(ctx context.Context) (*round.Message, error) {
	select {
	case msg := <-t.in:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newHelper(t *testing.T, ids party.IDSlice, self party.ID, params threshold.Parameters) *round.Helper {
	helper, err := round.NewHelper(round.Info{
		ProtocolID:       "pedpop/test",
		FinalRoundNumber: 5,
		SelfID:           self,
		PartyIDs:         ids,
		Group:            curve.Secp256k1{},
		Parameters:       params,
	})
	require.NoError(t, err)
	return helper
}

func TestChannelDeliversHonestBroadcast(t *testing.T) {
	ids := party.IDSlice{1, 2, 3, 4}
	params, err := threshold.New(4, 1)
	require.NoError(t, err)

	net := newNetwork(ids)

	var wg sync.WaitGroup
	results := make(map[party.ID]map[party.ID][]byte, len(ids))
	errs := make(map[party.ID]error, len(ids))
	var mu sync.Mutex

	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			helper := newHelper(t, ids, id, params)
			messenger := round.NewMessenger(id, net[id])
			channel := broadcast.NewChannel(helper)

			sendPayloads := make(map[party.ID][]byte, len(ids))
			for _, origin := range ids {
				sendPayloads[origin] = []byte(fmt.Sprintf("payload-from-%s", origin))
			}

			delivered, err := channel.Run(context.Background(), messenger, 2, 3, sendPayloads)

			mu.Lock()
			results[id] = delivered
			errs[id] = err
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, id := range ids {
		require.NoError(t, errs[id], "participant %s", id)
		assert.Len(t, results[id], len(ids))
		for _, origin := range ids {
			assert.Equal(t, []byte(fmt.Sprintf("payload-from-%s", origin)), results[id][origin])
		}
	}
}

func TestChannelDetectsInconsistentSend(t *testing.T) {
	ids := party.IDSlice{1, 2, 3, 4}
	params, err := threshold.New(4, 1)
	require.NoError(t, err)

	net := newNetwork(ids)

	var wg sync.WaitGroup
	errs := make(map[party.ID]error, len(ids))
	var mu sync.Mutex

	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			helper := newHelper(t, ids, id, params)
			messenger := round.NewMessenger(id, net[id])
			channel := broadcast.NewChannel(helper)

			sendPayloads := make(map[party.ID][]byte, len(ids))
			for _, origin := range ids {
				sendPayloads[origin] = []byte(fmt.Sprintf("payload-from-%s", origin))
			}
			// Participant 2 equivocates: party 4 alone sees a different
			// value purportedly sent by participant 2.
			if id == 4 {
				sendPayloads[2] = []byte("equivocated-payload")
			}

			_, err := channel.Run(context.Background(), messenger, 2, 3, sendPayloads)

			mu.Lock()
			errs[id] = err
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Error(t, errs[4])
	var inconsistency *broadcast.Inconsistency
	assert.ErrorAs(t, errs[4], &inconsistency)
	assert.Equal(t, party.ID(2), inconsistency.Origin)
}
