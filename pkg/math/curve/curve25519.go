package curve

import (
	"encoding/binary"
	"io"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/cronokirby/saferith"
)

// curve25519Order is the order l of the prime-order subgroup generated by
// the Ed25519 base point: l = 2^252 + 27742317777372353535851937790883648493.
var curve25519Order = func() *saferith.Modulus {
	l, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return saferith.ModulusFromBytes(l.Bytes())
}()

// Curve25519 is the prime-order group generated by the Ed25519 base point,
// as used by FROST-EdDSA and friends.
type Curve25519 struct{}

var _ Curve = Curve25519{}

func (Curve25519) Name() string             { return "curve25519" }
func (Curve25519) Order() *saferith.Modulus { return curve25519Order }
func (Curve25519) ScalarBytes() int         { return 32 }
func (Curve25519) PointBytes() int          { return 32 }
func (Curve25519) NewScalar() Scalar        { return &curve25519Scalar{value: edwards25519.NewScalar()} }
func (Curve25519) NewPoint() Point          { return &curve25519Point{value: edwards25519.NewIdentityPoint()} }
func (Curve25519) Generator() Point         { return &curve25519Point{value: edwards25519.NewGeneratorPoint()} }

func (c Curve25519) SampleScalar(rng io.Reader) Scalar {
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic(err)
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		panic(err)
	}
	return &curve25519Scalar{value: s}
}

func (c Curve25519) SampleScalarNonZero(rng io.Reader) Scalar {
	zero := edwards25519.NewScalar()
	for {
		s := c.SampleScalar(rng).(*curve25519Scalar)
		if s.value.Equal(zero) == 0 {
			return s
		}
	}
}

func castCurve25519Scalar(s Scalar) *curve25519Scalar {
	v, ok := s.(*curve25519Scalar)
	if !ok {
		panic("curve: mismatched scalar type for curve25519")
	}
	return v
}

func castCurve25519Point(p Point) *curve25519Point {
	v, ok := p.(*curve25519Point)
	if !ok {
		panic("curve: mismatched point type for curve25519")
	}
	return v
}

type curve25519Scalar struct {
	value *edwards25519.Scalar
}

func (s *curve25519Scalar) Curve() Curve { return Curve25519{} }

func (s *curve25519Scalar) Clone() Scalar {
	clone := edwards25519.NewScalar().Set(s.value)
	return &curve25519Scalar{value: clone}
}

func (s *curve25519Scalar) Set(other Scalar) Scalar {
	s.value.Set(castCurve25519Scalar(other).value)
	return s
}

func (s *curve25519Scalar) SetUint32(v uint32) Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint32(buf[:4], v)
	if _, err := s.value.SetCanonicalBytes(buf[:]); err != nil {
		panic(err)
	}
	return s
}

func (s *curve25519Scalar) Add(other Scalar) Scalar {
	s.value.Add(s.value, castCurve25519Scalar(other).value)
	return s
}

func (s *curve25519Scalar) Sub(other Scalar) Scalar {
	s.value.Subtract(s.value, castCurve25519Scalar(other).value)
	return s
}

func (s *curve25519Scalar) Negate() Scalar {
	s.value.Negate(s.value)
	return s
}

func (s *curve25519Scalar) Mul(other Scalar) Scalar {
	s.value.Multiply(s.value, castCurve25519Scalar(other).value)
	return s
}

func (s *curve25519Scalar) Invert() Scalar {
	s.value.Invert(s.value)
	return s
}

func (s *curve25519Scalar) Equal(other Scalar) bool {
	return s.value.Equal(castCurve25519Scalar(other).value) == 1
}

func (s *curve25519Scalar) IsZero() bool {
	return s.value.Equal(edwards25519.NewScalar()) == 1
}

func (s *curve25519Scalar) Act(p Point) Point {
	result := edwards25519.NewIdentityPoint().ScalarMult(s.value, castCurve25519Point(p).value)
	return &curve25519Point{value: result}
}

func (s *curve25519Scalar) ActOnBase() Point {
	result := edwards25519.NewIdentityPoint().ScalarBaseMult(s.value)
	return &curve25519Point{value: result}
}

func (s *curve25519Scalar) MarshalBinary() ([]byte, error) {
	return s.value.Bytes(), nil
}

func (s *curve25519Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return &ErrInvalidEncoding{Curve: "curve25519", Kind: "scalar"}
	}
	if _, err := s.value.SetCanonicalBytes(data); err != nil {
		return &ErrInvalidEncoding{Curve: "curve25519", Kind: "scalar"}
	}
	return nil
}

type curve25519Point struct {
	value *edwards25519.Point
}

func (p *curve25519Point) Curve() Curve { return Curve25519{} }

func (p *curve25519Point) Clone() Point {
	clone := edwards25519.NewIdentityPoint().Set(p.value)
	return &curve25519Point{value: clone}
}

func (p *curve25519Point) Set(other Point) Point {
	p.value.Set(castCurve25519Point(other).value)
	return p
}

func (p *curve25519Point) Add(other Point) Point {
	p.value.Add(p.value, castCurve25519Point(other).value)
	return p
}

func (p *curve25519Point) Sub(other Point) Point {
	p.value.Subtract(p.value, castCurve25519Point(other).value)
	return p
}

func (p *curve25519Point) Negate() Point {
	p.value.Negate(p.value)
	return p
}

func (p *curve25519Point) Equal(other Point) bool {
	return p.value.Equal(castCurve25519Point(other).value) == 1
}

func (p *curve25519Point) IsIdentity() bool {
	return p.value.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *curve25519Point) MarshalBinary() ([]byte, error) {
	return p.value.Bytes(), nil
}

func (p *curve25519Point) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return &ErrInvalidEncoding{Curve: "curve25519", Kind: "point"}
	}
	if _, err := p.value.SetBytes(data); err != nil {
		return &ErrInvalidEncoding{Curve: "curve25519", Kind: "point"}
	}
	return nil
}
