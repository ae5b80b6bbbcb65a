package round_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/party"
)

type fakeContent struct {
	round round.Number
	label string
}

func (c fakeContent) RoundNumber() round.Number { return c.round }

// memoryTransport is a minimal in-memory Transport connecting one
// participant's outbox to every other participant's inbox, used to exercise
// Messenger's buffering behavior directly without the full broadcast layer.
type memoryTransport struct {
	self party.ID
	in   chan *round.Message
	out  map[party.ID]chan *round.Message
}

func newNetwork(ids party.IDSlice) map[party.ID]*memoryTransport {
	inboxes := make(map[party.ID]chan *round.Message, len(ids))
	for _, id := range ids {
		inboxes[id] = make(chan *round.Message, 64)
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

func TestMessengerBuffersFutureRoundMessages(t *testing.T) {
	ids := party.IDSlice{1, 2}
	net := newNetwork(ids)

	m1 := round.NewMessenger(1, net[1])
	m2 := round.NewMessenger(2, net[2])

	ctx := context.Background()
	require.NoError(t, m2.SendPrivate(ctx, 1, fakeContent{round: 2, label: "from-round-2"}))
	require.NoError(t, m2.SendPrivate(ctx, 1, fakeContent{round: 1, label: "from-round-1"}))

	msg, err := m1.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-round-1", msg.Content.(fakeContent).label)

	m1.AdvanceRound(2)
	msg, err = m1.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-round-2", msg.Content.(fakeContent).label)
}

func TestMessengerDropsStaleRoundMessages(t *testing.T) {
	ids := party.IDSlice{1, 2}
	net := newNetwork(ids)

	m1 := round.NewMessenger(1, net[1])
	m2 := round.NewMessenger(2, net[2])

	ctx := context.Background()
	m1.AdvanceRound(2)

	require.NoError(t, m2.SendPrivate(ctx, 1, fakeContent{round: 1, label: "stale"}))
	require.NoError(t, m2.SendPrivate(ctx, 1, fakeContent{round: 2, label: "current"}))

	msg, err := m1.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "current", msg.Content.(fakeContent).label)
}

func TestSendManyExcludesSelf(t *testing.T) {
	ids := party.IDSlice{1, 2, 3}
	net := newNetwork(ids)

	var wg sync.WaitGroup
	received := make(chan party.ID, 2)
	for _, id := range []party.ID{2, 3} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := round.NewMessenger(id, net[id])
			_, err := m.Receive(context.Background())
			require.NoError(t, err)
			received <- id
		}()
	}

	m1 := round.NewMessenger(1, net[1])
	require.NoError(t, m1.SendMany(context.Background(), ids, fakeContent{round: 1, label: "hello"}))

	wg.Wait()
	close(received)
	seen := map[party.ID]bool{}
	for id := range received {
		seen[id] = true
	}
	assert.True(t, seen[2])
	assert.True(t, seen[3])
}
