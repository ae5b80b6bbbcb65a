package wire_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/internal/round"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
	"github.com/near/threshold-signatures/pkg/wire"
)

type fakeContent struct {
	Round round.Number
	Label string
}

func (c *fakeContent) RoundNumber() round.Number { return c.Round }

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := &round.Message{
		From:      1,
		To:        2,
		Broadcast: false,
		Content:   &fakeContent{Round: 3, Label: "hello"},
	}

	data, err := wire.EncodeEnvelope("pedpop/test", msg)
	require.NoError(t, err)

	var got fakeContent
	env, err := wire.DecodeEnvelope(data, &got)
	require.NoError(t, err)

	assert.Equal(t, "pedpop/test", env.ProtocolID)
	assert.Equal(t, round.Number(3), env.Round)
	assert.Equal(t, party.ID(1), env.From)
	assert.Equal(t, party.ID(2), env.To)
	assert.Equal(t, "hello", got.Label)
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	var got fakeContent
	_, err := wire.DecodeEnvelope([]byte("not cbor"), &got)
	require.Error(t, err)
}

var allGroups = []curve.Curve{
	curve.Secp256k1{},
	curve.Curve25519{},
	curve.BLS12381G2{},
}

func TestOutputRoundTrip(t *testing.T) {
	for _, group := range allGroups {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			participants := party.IDSlice{4, 3, 1, 2}
			params, err := threshold.New(4, 1)
			require.NoError(t, err)

			share := group.SampleScalarNonZero(rand.Reader)
			pk := share.ActOnBase()

			data, err := wire.EncodeOutput(group, participants, params, share, pk)
			require.NoError(t, err)

			out, err := wire.DecodeOutput(data)
			require.NoError(t, err)

			assert.Equal(t, group.Name(), out.Group.Name())
			assert.Equal(t, party.IDSlice{1, 2, 3, 4}, out.Participants)
			assert.Equal(t, params, out.Parameters)
			assert.True(t, share.Equal(out.SecretShare))
			assert.True(t, pk.Equal(out.PublicKey))
		})
	}
}

func TestDecodeOutputRejectsUnknownVersion(t *testing.T) {
	group := curve.Secp256k1{}
	participants := party.IDSlice{1, 2, 3, 4}
	params, err := threshold.New(4, 1)
	require.NoError(t, err)
	share := group.SampleScalarNonZero(rand.Reader)
	pk := share.ActOnBase()

	data, err := wire.EncodeOutput(group, participants, params, share, pk)
	require.NoError(t, err)

	corrupted := append([]byte{}, data...)
	corrupted[0] = 0xff
	_, err = wire.DecodeOutput(corrupted)
	assert.Error(t, err)
}

func TestDecodeOutputRejectsByteMutation(t *testing.T) {
	group := curve.Secp256k1{}
	participants := party.IDSlice{1, 2, 3, 4}
	params, err := threshold.New(4, 1)
	require.NoError(t, err)
	share := group.SampleScalarNonZero(rand.Reader)
	pk := share.ActOnBase()

	data, err := wire.EncodeOutput(group, participants, params, share, pk)
	require.NoError(t, err)

	for i := range data {
		mutated := append([]byte{}, data...)
		mutated[i] ^= 0xff
		out, err := wire.DecodeOutput(mutated)
		if err == nil {
			// A handful of bit flips inside the participant-id or point/scalar
			// payload can still decode to some other well-formed value; what
			// must never happen is decoding back to the original share/pk.
			unchanged := share.Equal(out.SecretShare) && pk.Equal(out.PublicKey) &&
				len(out.Participants) == len(participants.Copy())
			if unchanged {
				sorted := participants.Copy()
				for j := range sorted {
					unchanged = unchanged && sorted[j] == out.Participants[j]
				}
			}
			assert.False(t, unchanged, "byte %d flipped but value is unchanged", i)
		}
	}
}
