package schnorr_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/schnorr"
)

var allCurves = []curve.Curve{curve.Secp256k1{}, curve.Curve25519{}, curve.BLS12381G2{}}

func TestProveVerifyRoundTrip(t *testing.T) {
	for _, group := range allCurves {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			x := group.SampleScalarNonZero(rand.Reader)
			k := group.SampleScalarNonZero(rand.Reader)
			X := x.ActOnBase()

			transcript := hash.New()
			_ = transcript.WriteAny([]byte("pedpop/keygen"))

			proof := schnorr.Prove(group, transcript, X, x, k, rand.Reader)

			verifyTranscript := hash.New()
			_ = verifyTranscript.WriteAny([]byte("pedpop/keygen"))
			assert.True(t, schnorr.Verify(group, verifyTranscript, X, proof))
		})
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	group := curve.Secp256k1{}
	x := group.SampleScalarNonZero(rand.Reader)
	k := group.SampleScalarNonZero(rand.Reader)
	X := x.ActOnBase()

	transcript := hash.New()
	proof := schnorr.Prove(group, transcript, X, x, k, rand.Reader)

	wrongX := group.SampleScalarNonZero(rand.Reader).ActOnBase()
	assert.False(t, schnorr.Verify(group, hash.New(), wrongX, proof))
}

func TestVerifyRejectsMismatchedTranscript(t *testing.T) {
	group := curve.Secp256k1{}
	x := group.SampleScalarNonZero(rand.Reader)
	k := group.SampleScalarNonZero(rand.Reader)
	X := x.ActOnBase()

	proveTranscript := hash.New()
	_ = proveTranscript.WriteAny([]byte("session-a"))
	proof := schnorr.Prove(group, proveTranscript, X, x, k, rand.Reader)

	verifyTranscript := hash.New()
	_ = verifyTranscript.WriteAny([]byte("session-b"))
	assert.False(t, schnorr.Verify(group, verifyTranscript, X, proof))
}

func TestVerifyRejectsIdentity(t *testing.T) {
	group := curve.Secp256k1{}
	assert.False(t, schnorr.Verify(group, hash.New(), group.NewPoint(), &schnorr.Proof{
		R: group.NewPoint(),
		Z: group.NewScalar(),
	}))
}
