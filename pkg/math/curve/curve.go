// Package curve provides a group abstraction over the three prime-order
// groups PedPop+ is required to run over: Secp256k1, Curve25519, and the G2
// subgroup of BLS12-381. Every cryptographic operation in this module is
// written once against Curve/Scalar/Point and monomorphised per call site by
// the concrete implementation the caller selects; there is no runtime
// dispatch table.
package curve

import (
	"encoding"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

// Curve is a prime-order group of order q with a fixed generator.
type Curve interface {
	// Name identifies the group, used for domain separation in transcript hashes.
	Name() string
	// Order is the order q of the scalar field.
	Order() *saferith.Modulus
	// ScalarBytes is the canonical encoded length of a Scalar.
	ScalarBytes() int
	// PointBytes is the canonical compressed encoded length of a Point.
	PointBytes() int
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// NewPoint returns the identity element.
	NewPoint() Point
	// Generator returns the fixed generator G.
	Generator() Point
	// SampleScalar draws a uniformly random scalar from rng.
	SampleScalar(rng io.Reader) Scalar
	// SampleScalarNonZero draws a uniformly random non-zero scalar from rng.
	SampleScalarNonZero(rng io.Reader) Scalar
}

// Scalar is an element of a Curve's scalar field.
//
// Every arithmetic method (Set, SetUint32, Add, Sub, Negate, Mul, Invert)
// mutates and returns the receiver, mirroring the
// mutate-in-place convention of the underlying curve libraries; callers that
// need the original value preserved should Clone first.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Curve() Curve
	Clone() Scalar
	Set(Scalar) Scalar
	SetUint32(uint32) Scalar
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool

	// Act returns s*P for a point P, without mutating the receiver.
	Act(Point) Point
	// ActOnBase returns s*G, without mutating the receiver.
	ActOnBase() Point
}

// Point is an element of a Curve's group.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Curve() Curve
	Clone() Point
	Set(Point) Point
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
}

// ErrInvalidEncoding is returned by UnmarshalBinary when the byte string does
// not represent a valid scalar or group element.
type ErrInvalidEncoding struct {
	Curve string
	Kind  string
}

func (e *ErrInvalidEncoding) Error() string {
	return fmt.Sprintf("curve %s: invalid %s encoding", e.Curve, e.Kind)
}

// ScalarFromUint32 is a convenience wrapper used to derive a participant's
// evaluation point x_i from its identifier by an injective map into the
// scalar field (§3 of the spec: "x_i != 0").
func ScalarFromUint32(group Curve, id uint32) Scalar {
	return group.NewScalar().SetUint32(id)
}

// SumScalars adds a list of scalars belonging to the same curve.
func SumScalars(group Curve, scalars ...Scalar) Scalar {
	sum := group.NewScalar()
	for _, s := range scalars {
		sum.Add(s)
	}
	return sum
}

// SumPoints adds a list of points belonging to the same curve.
func SumPoints(group Curve, points ...Point) Point {
	sum := group.NewPoint()
	for _, p := range points {
		sum.Add(p)
	}
	return sum
}
