// Package polynomial implements the Feldman/Pedersen-style verifiable
// secret sharing primitives PedPop+ builds on: a secret scalar polynomial
// f(X), and the corresponding "in the exponent" commitment F(X) = f(X)•G
// used to verify shares without revealing them.
package polynomial

import (
	"io"

	"github.com/near/threshold-signatures/pkg/math/curve"
)

// Polynomial represents f(X) = a_0 + a_1*X + ... + a_t*X^t over a Curve's
// scalar field. Coefficients hold secret material and must be zeroized with
// Zeroize on every termination path, successful or not.
type Polynomial struct {
	group        curve.Curve
	coefficients []curve.Scalar
}

// NewPolynomial samples a random polynomial of the given degree whose
// constant term is zero, as when a newly-joining participant in a Reshare
// contributes a share of zero (§4.7). Use NewPolynomialWithConstant for a
// chosen constant term.
func NewPolynomial(group curve.Curve, degree int, rng io.Reader) *Polynomial {
	return NewPolynomialWithConstant(group, degree, nil, rng)
}

// NewPolynomialWithConstant samples a0 = constant (or zero, if nil) and
// a1..a_degree uniformly at random.
func NewPolynomialWithConstant(group curve.Curve, degree int, constant curve.Scalar, rng io.Reader) *Polynomial {
	coefficients := make([]curve.Scalar, degree+1)
	if constant == nil {
		coefficients[0] = group.NewScalar()
	} else {
		coefficients[0] = constant.Clone()
	}
	for i := 1; i <= degree; i++ {
		coefficients[i] = group.SampleScalar(rng)
	}
	return &Polynomial{group: group, coefficients: coefficients}
}

// Evaluate computes f(index) using Horner's method. index must not be the
// zero scalar: evaluating a secret-sharing polynomial at zero would leak
// the secret itself.
func (p *Polynomial) Evaluate(index curve.Scalar) curve.Scalar {
	if index.IsZero() {
		panic("polynomial: attempted to evaluate at zero, which would leak the secret")
	}

	result := p.group.NewScalar()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result.Mul(index).Add(p.coefficients[i])
	}
	return result
}

// Constant returns the polynomial's constant term, f(0) — the shared
// secret, or zero for a non-contributing resharing participant.
func (p *Polynomial) Constant() curve.Scalar {
	return p.coefficients[0]
}

// Degree is the highest power of the polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Exponent commits to p by lifting every coefficient into the exponent of
// the group's generator, producing the Feldman/Pedersen-style VSS
// commitment the polynomial's secrecy does not need to survive.
func (p *Polynomial) Exponent() *Exponent {
	coefficients := make([]curve.Point, len(p.coefficients))
	for i, c := range p.coefficients {
		coefficients[i] = c.ActOnBase()
	}
	return &Exponent{group: p.group, coefficients: coefficients}
}

// Zeroize overwrites every coefficient with the zero scalar, so the secret
// polynomial does not linger in memory past the point it's needed. Callers
// must invoke this on every termination path: success, abort, cancellation
// or panic.
func (p *Polynomial) Zeroize() {
	zero := p.group.NewScalar()
	for i := range p.coefficients {
		p.coefficients[i].Set(zero)
	}
}
