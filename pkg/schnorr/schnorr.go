// Package schnorr implements the Schnorr proof of possession PedPop+ binds
// into round 2: a proof that a participant knows the discrete log of the
// constant term of its committed polynomial, preventing a participant from
// contributing a share it cannot evaluate.
package schnorr

import (
	"io"

	"github.com/near/threshold-signatures/internal/hash"
	"github.com/near/threshold-signatures/pkg/math/curve"
)

// Proof is a Schnorr proof of knowledge (R, Z) for a secret x such that
// X = x*G: R = k*G for a random nonce k, and Z = k + c*x, where c is the H3
// challenge derived from (A, X) and whatever context the caller has already
// written into the transcript hash (session id, participant id, domain).
type Proof struct {
	R curve.Point
	Z curve.Scalar
}

// challenge computes H3 = H(transcript || A || X). transcript is expected
// to already carry the session id and participant id the caller bound in
// before calling Prove or Verify, so that a proof cannot be replayed across
// sessions or reattributed to a different participant.
func challenge(group curve.Curve, transcript *hash.Hash, A, X curve.Point) curve.Scalar {
	h := transcript.Clone()
	_ = h.WriteAny(A, X)
	return group.SampleScalar(h.Digest())
}

// Prove constructs a proof that the caller knows x, where X = x*G. k must be
// a value sampled uniformly at random and independent of x; it is consumed
// and should not be reused.
func Prove(group curve.Curve, transcript *hash.Hash, X curve.Point, x, k curve.Scalar, rng io.Reader) *Proof {
	A := k.ActOnBase()
	c := challenge(group, transcript, A, X)
	z := c.Clone().Mul(x).Add(k)
	return &Proof{R: A, Z: z}
}

// Verify reports whether proof is a valid proof of knowledge of the
// discrete log of X, relative to the same transcript context Prove was
// called with.
func Verify(group curve.Curve, transcript *hash.Hash, X curve.Point, proof *Proof) bool {
	if proof == nil || X == nil || proof.R == nil || proof.Z == nil {
		return false
	}
	if X.IsIdentity() || proof.R.IsIdentity() {
		return false
	}

	c := challenge(group, transcript, proof.R, X)

	lhs := proof.Z.ActOnBase()
	rhs := c.Act(X)
	rhs.Add(proof.R)

	return lhs.Equal(rhs)
}
