package curve

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1Order is the order of the secp256k1 scalar field, used to build
// the safenum.Modulus returned by Secp256k1.Order.
var secp256k1Order = func() *saferith.Modulus {
	n := secp256k1.S256().N
	return saferith.ModulusFromBytes(n.Bytes())
}()

// Secp256k1 is the group used by Bitcoin/Ethereum-style ECDSA and by CMP.
type Secp256k1 struct{}

var _ Curve = Secp256k1{}

func (Secp256k1) Name() string              { return "secp256k1" }
func (Secp256k1) Order() *saferith.Modulus  { return secp256k1Order }
func (Secp256k1) ScalarBytes() int          { return 32 }
func (Secp256k1) PointBytes() int           { return 33 }
func (Secp256k1) NewScalar() Scalar         { return &secp256k1Scalar{} }
func (Secp256k1) NewPoint() Point           { return &secp256k1Point{} }

func (Secp256k1) Generator() Point {
	var p secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar).SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &p)
	p.ToAffine()
	return &secp256k1Point{value: p}
}

func (c Secp256k1) SampleScalar(rng io.Reader) Scalar {
	var buf [48]byte // XOR-folded down to 32 bytes by reduceWideBytes
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic(err)
	}
	s := new(secp256k1.ModNScalar)
	reduceWideBytes(s, buf[:])
	return &secp256k1Scalar{value: *s}
}

func (c Secp256k1) SampleScalarNonZero(rng io.Reader) Scalar {
	for {
		s := c.SampleScalar(rng).(*secp256k1Scalar)
		if !s.value.IsZero() {
			return s
		}
	}
}

// reduceWideBytes XOR-folds a wide (>32 byte) buffer into 32 bytes and
// reduces that modulo the group order with SetBytes. This is not a wide
// reduction: the result has the same modulo bias as reducing a single
// 32-byte value.
func reduceWideBytes(s *secp256k1.ModNScalar, buf []byte) {
	var acc [32]byte
	for i, b := range buf {
		acc[i%32] ^= b
	}
	s.SetBytes(&acc)
}

func castSecp256k1Scalar(s Scalar) *secp256k1Scalar {
	v, ok := s.(*secp256k1Scalar)
	if !ok {
		panic("curve: mismatched scalar type for secp256k1")
	}
	return v
}

func castSecp256k1Point(p Point) *secp256k1Point {
	v, ok := p.(*secp256k1Point)
	if !ok {
		panic("curve: mismatched point type for secp256k1")
	}
	return v
}

type secp256k1Scalar struct {
	value secp256k1.ModNScalar
}

func (s *secp256k1Scalar) Curve() Curve { return Secp256k1{} }

func (s *secp256k1Scalar) Clone() Scalar {
	out := *s
	return &out
}

func (s *secp256k1Scalar) Set(other Scalar) Scalar {
	s.value = castSecp256k1Scalar(other).value
	return s
}

func (s *secp256k1Scalar) SetUint32(v uint32) Scalar {
	s.value.SetInt(v)
	return s
}

func (s *secp256k1Scalar) Add(other Scalar) Scalar {
	s.value.Add(&castSecp256k1Scalar(other).value)
	return s
}

func (s *secp256k1Scalar) Sub(other Scalar) Scalar {
	neg := castSecp256k1Scalar(other).value
	neg.Negate()
	s.value.Add(&neg)
	return s
}

func (s *secp256k1Scalar) Negate() Scalar {
	s.value.Negate()
	return s
}

func (s *secp256k1Scalar) Mul(other Scalar) Scalar {
	s.value.Mul(&castSecp256k1Scalar(other).value)
	return s
}

func (s *secp256k1Scalar) Invert() Scalar {
	s.value.InverseNonConst()
	return s
}

func (s *secp256k1Scalar) Equal(other Scalar) bool {
	return s.value.Equals(&castSecp256k1Scalar(other).value)
}

func (s *secp256k1Scalar) IsZero() bool { return s.value.IsZero() }

func (s *secp256k1Scalar) Act(p Point) Point {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.value, &castSecp256k1Point(p).value, &result)
	result.ToAffine()
	return &secp256k1Point{value: result}
}

func (s *secp256k1Scalar) ActOnBase() Point {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.value, &result)
	result.ToAffine()
	return &secp256k1Point{value: result}
}

func (s *secp256k1Scalar) MarshalBinary() ([]byte, error) {
	data := s.value.Bytes()
	out := make([]byte, 32)
	copy(out, data[:])
	return out, nil
}

func (s *secp256k1Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return &ErrInvalidEncoding{Curve: "secp256k1", Kind: "scalar"}
	}
	var exact [32]byte
	copy(exact[:], data)
	if overflow := s.value.SetBytes(&exact); overflow != 0 {
		return &ErrInvalidEncoding{Curve: "secp256k1", Kind: "scalar"}
	}
	return nil
}

type secp256k1Point struct {
	value secp256k1.JacobianPoint
}

func (p *secp256k1Point) Curve() Curve { return Secp256k1{} }

func (p *secp256k1Point) Clone() Point {
	out := *p
	return &out
}

func (p *secp256k1Point) Set(other Point) Point {
	p.value = castSecp256k1Point(other).value
	return p
}

func (p *secp256k1Point) Add(other Point) Point {
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.value, &castSecp256k1Point(other).value, &result)
	result.ToAffine()
	p.value = result
	return p
}

func (p *secp256k1Point) Sub(other Point) Point {
	var negated secp256k1.JacobianPoint
	negated = castSecp256k1Point(other).value
	negated.Y.Negate(1)
	negated.Y.Normalize()
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.value, &negated, &result)
	result.ToAffine()
	p.value = result
	return p
}

func (p *secp256k1Point) Negate() Point {
	p.value.Y.Negate(1)
	p.value.Y.Normalize()
	return p
}

func (p *secp256k1Point) Equal(other Point) bool {
	o := castSecp256k1Point(other)
	a, b := p.value, o.value
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

func (p *secp256k1Point) IsIdentity() bool {
	return (p.value.X.IsZero() && p.value.Y.IsZero()) || p.value.Z.IsZero()
}

func (p *secp256k1Point) MarshalBinary() ([]byte, error) {
	a := p.value
	a.ToAffine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	return pub.SerializeCompressed(), nil
}

func (p *secp256k1Point) UnmarshalBinary(data []byte) error {
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return &ErrInvalidEncoding{Curve: "secp256k1", Kind: "point"}
	}
	pub.AsJacobian(&p.value)
	return nil
}
