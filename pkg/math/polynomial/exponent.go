package polynomial

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/near/threshold-signatures/pkg/math/curve"
)

// Exponent represents a polynomial whose coefficients are points on a
// curve: F(X) = [a_0 + a_1*X + ... + a_t*X^t]*G. It is the public
// commitment every participant broadcasts in round 3, and the basis for
// verifying a received share against, without ever handling the secret
// coefficients it commits to.
type Exponent struct {
	group        curve.Curve
	coefficients []curve.Point
}

// NewExponent builds an Exponent directly from a list of point
// coefficients, as used when reconstructing a commitment from wire data.
func NewExponent(group curve.Curve, coefficients []curve.Point) *Exponent {
	return &Exponent{group: group, coefficients: coefficients}
}

// Evaluate computes F(index) using Horner's method, the same way
// Polynomial.Evaluate does but over group elements rather than scalars.
func (e *Exponent) Evaluate(index curve.Scalar) curve.Point {
	result := e.group.NewPoint()
	for i := len(e.coefficients) - 1; i >= 0; i-- {
		result = index.Act(result)
		result.Add(e.coefficients[i])
	}
	return result
}

// Degree is the highest power of the committed polynomial.
func (e *Exponent) Degree() int {
	return len(e.coefficients) - 1
}

// Constant returns the commitment to the polynomial's constant term,
// F(0) = f(0)*G — the participant's public key share contribution.
func (e *Exponent) Constant() curve.Point {
	return e.coefficients[0]
}

// Coefficients returns the underlying point coefficients, in increasing
// power order.
func (e *Exponent) Coefficients() []curve.Point {
	return e.coefficients
}

// Copy returns a deep copy of e.
func (e *Exponent) Copy() *Exponent {
	coefficients := make([]curve.Point, len(e.coefficients))
	for i, c := range e.coefficients {
		coefficients[i] = c.Clone()
	}
	return &Exponent{group: e.group, coefficients: coefficients}
}

// Equal reports whether e and other commit to the same polynomial.
func (e *Exponent) Equal(other *Exponent) bool {
	if len(e.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range e.coefficients {
		if !e.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

func (e *Exponent) add(other *Exponent) error {
	if len(e.coefficients) != len(other.coefficients) {
		return errors.New("polynomial: exponent degrees do not match")
	}
	for i := range e.coefficients {
		e.coefficients[i].Add(other.coefficients[i])
	}
	return nil
}

// Sum combines every participant's round-3 commitment into the joint
// commitment to the final shared polynomial, as required by PedPop+'s
// "every participant's public share is the sum of the others' commitments
// evaluated at their index" reconstruction rule.
func Sum(exponents []*Exponent) (*Exponent, error) {
	if len(exponents) == 0 {
		return nil, errors.New("polynomial: cannot sum zero exponents")
	}
	summed := exponents[0].Copy()
	for _, other := range exponents[1:] {
		if err := summed.add(other); err != nil {
			return nil, err
		}
	}
	return summed, nil
}

// WriteTo implements io.WriterTo, used to fold an Exponent into a transcript
// hash (e.g. for H2's commitment-to-commitment binding).
func (e *Exponent) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, uint32(len(e.coefficients))); err != nil {
		return 0, err
	}
	nAll := int64(4)
	for _, c := range e.coefficients {
		encoded, err := c.MarshalBinary()
		if err != nil {
			return nAll, err
		}
		n, err := w.Write(encoded)
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain.
func (e *Exponent) Domain() string { return "polynomial.Exponent" }
