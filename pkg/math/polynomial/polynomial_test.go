package polynomial_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/math/polynomial"
)

var allCurves = []curve.Curve{curve.Secp256k1{}, curve.Curve25519{}, curve.BLS12381G2{}}

func TestEvaluateMatchesExponentEvaluate(t *testing.T) {
	for _, group := range allCurves {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			poly := polynomial.NewPolynomial(group, 3, rand.Reader)
			exp := poly.Exponent()

			index := group.SampleScalarNonZero(rand.Reader)

			scalarEval := poly.Evaluate(index)
			pointEval := exp.Evaluate(index)

			assert.True(t, scalarEval.ActOnBase().Equal(pointEval))
		})
	}
}

func TestEvaluateAtZeroPanics(t *testing.T) {
	group := curve.Secp256k1{}
	poly := polynomial.NewPolynomial(group, 2, rand.Reader)
	assert.Panics(t, func() {
		poly.Evaluate(group.NewScalar())
	})
}

func TestZeroConstantForJoiningParticipant(t *testing.T) {
	group := curve.Secp256k1{}
	poly := polynomial.NewPolynomial(group, 2, rand.Reader)
	assert.True(t, poly.Constant().IsZero())
}

func TestExponentSum(t *testing.T) {
	for _, group := range allCurves {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			p1 := polynomial.NewPolynomial(group, 2, rand.Reader)
			p2 := polynomial.NewPolynomial(group, 2, rand.Reader)

			summed, err := polynomial.Sum([]*polynomial.Exponent{p1.Exponent(), p2.Exponent()})
			require.NoError(t, err)

			index := group.SampleScalarNonZero(rand.Reader)
			expected := p1.Evaluate(index).Clone().Add(p2.Evaluate(index)).ActOnBase()
			assert.True(t, summed.Evaluate(index).Equal(expected))
		})
	}
}

func TestExponentCopyIsIndependent(t *testing.T) {
	group := curve.Secp256k1{}
	poly := polynomial.NewPolynomial(group, 2, rand.Reader)
	exp := poly.Exponent()
	copied := exp.Copy()

	assert.True(t, exp.Equal(copied))

	exp.Coefficients()[0].Add(group.Generator())
	assert.False(t, exp.Equal(copied))
}

func TestZeroizeClearsCoefficients(t *testing.T) {
	group := curve.Secp256k1{}
	poly := polynomial.NewPolynomialWithConstant(group, 2, group.SampleScalarNonZero(rand.Reader), rand.Reader)
	require.False(t, poly.Constant().IsZero())

	poly.Zeroize()
	assert.True(t, poly.Constant().IsZero())
}
