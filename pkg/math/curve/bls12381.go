package curve

import (
	"io"
	"math/big"

	bls12381 "github.com/kilic/bls12-381"

	"github.com/cronokirby/saferith"
)

// bls12381Order is the order r of the BLS12-381 scalar field, shared by G1
// and G2: r = 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001.
var bls12381Order = func() *saferith.Modulus {
	r, _ := new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	return saferith.ModulusFromBytes(r.Bytes())
}()

var bls12381OrderBig = func() *big.Int {
	r, _ := new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	return r
}()

// BLS12381G2 is the G2 subgroup of BLS12-381, used by the BLS threshold
// signature variant of PedPop+.
type BLS12381G2 struct{}

var _ Curve = BLS12381G2{}

func (BLS12381G2) Name() string             { return "bls12381g2" }
func (BLS12381G2) Order() *saferith.Modulus { return bls12381Order }
func (BLS12381G2) ScalarBytes() int         { return 32 }
func (BLS12381G2) PointBytes() int          { return 96 }

func (BLS12381G2) NewScalar() Scalar {
	return &bls12381Scalar{value: *bls12381.NewFr()}
}

func (BLS12381G2) NewPoint() Point {
	return &bls12381Point{value: *bls12381.NewG2().Zero()}
}

func (BLS12381G2) Generator() Point {
	return &bls12381Point{value: *bls12381.NewG2().One()}
}

func (c BLS12381G2) SampleScalar(rng io.Reader) Scalar {
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic(err)
	}
	reduced := new(big.Int).Mod(new(big.Int).SetBytes(buf[:]), bls12381OrderBig)
	var fr bls12381.Fr
	fr.FromBytes(padTo32(reduced.Bytes()))
	return &bls12381Scalar{value: fr}
}

func (c BLS12381G2) SampleScalarNonZero(rng io.Reader) Scalar {
	for {
		s := c.SampleScalar(rng).(*bls12381Scalar)
		if !s.value.IsZero() {
			return s
		}
	}
}

func padTo32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func castBLS12381Scalar(s Scalar) *bls12381Scalar {
	v, ok := s.(*bls12381Scalar)
	if !ok {
		panic("curve: mismatched scalar type for bls12381g2")
	}
	return v
}

func castBLS12381Point(p Point) *bls12381Point {
	v, ok := p.(*bls12381Point)
	if !ok {
		panic("curve: mismatched point type for bls12381g2")
	}
	return v
}

type bls12381Scalar struct {
	value bls12381.Fr
}

func (s *bls12381Scalar) Curve() Curve { return BLS12381G2{} }

func (s *bls12381Scalar) Clone() Scalar {
	var out bls12381.Fr
	out.Set(&s.value)
	return &bls12381Scalar{value: out}
}

func (s *bls12381Scalar) Set(other Scalar) Scalar {
	s.value.Set(&castBLS12381Scalar(other).value)
	return s
}

func (s *bls12381Scalar) SetUint32(v uint32) Scalar {
	var buf [32]byte
	buf[28] = byte(v >> 24)
	buf[29] = byte(v >> 16)
	buf[30] = byte(v >> 8)
	buf[31] = byte(v)
	s.value.FromBytes(buf[:])
	return s
}

func (s *bls12381Scalar) Add(other Scalar) Scalar {
	s.value.Add(&s.value, &castBLS12381Scalar(other).value)
	return s
}

func (s *bls12381Scalar) Sub(other Scalar) Scalar {
	s.value.Sub(&s.value, &castBLS12381Scalar(other).value)
	return s
}

func (s *bls12381Scalar) Negate() Scalar {
	s.value.Neg(&s.value)
	return s
}

func (s *bls12381Scalar) Mul(other Scalar) Scalar {
	s.value.Mul(&s.value, &castBLS12381Scalar(other).value)
	return s
}

func (s *bls12381Scalar) Invert() Scalar {
	s.value.Inverse(&s.value)
	return s
}

func (s *bls12381Scalar) Equal(other Scalar) bool {
	return s.value.Equal(&castBLS12381Scalar(other).value)
}

func (s *bls12381Scalar) IsZero() bool { return s.value.IsZero() }

func (s *bls12381Scalar) Act(p Point) Point {
	g2 := bls12381.NewG2()
	result := g2.New()
	g2.MulScalar(result, &castBLS12381Point(p).value, &s.value)
	return &bls12381Point{value: *result}
}

func (s *bls12381Scalar) ActOnBase() Point {
	g2 := bls12381.NewG2()
	result := g2.New()
	g2.MulScalar(result, g2.One(), &s.value)
	return &bls12381Point{value: *result}
}

func (s *bls12381Scalar) MarshalBinary() ([]byte, error) {
	return s.value.ToBytes(), nil
}

func (s *bls12381Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return &ErrInvalidEncoding{Curve: "bls12381g2", Kind: "scalar"}
	}
	if new(big.Int).SetBytes(data).Cmp(bls12381OrderBig) >= 0 {
		return &ErrInvalidEncoding{Curve: "bls12381g2", Kind: "scalar"}
	}
	s.value.FromBytes(data)
	return nil
}

type bls12381Point struct {
	value bls12381.PointG2
}

func (p *bls12381Point) Curve() Curve { return BLS12381G2{} }

func (p *bls12381Point) Clone() Point {
	var out bls12381.PointG2
	out.Set(&p.value)
	return &bls12381Point{value: out}
}

func (p *bls12381Point) Set(other Point) Point {
	p.value.Set(&castBLS12381Point(other).value)
	return p
}

func (p *bls12381Point) Add(other Point) Point {
	bls12381.NewG2().Add(&p.value, &p.value, &castBLS12381Point(other).value)
	return p
}

func (p *bls12381Point) Sub(other Point) Point {
	bls12381.NewG2().Sub(&p.value, &p.value, &castBLS12381Point(other).value)
	return p
}

func (p *bls12381Point) Negate() Point {
	bls12381.NewG2().Neg(&p.value, &p.value)
	return p
}

func (p *bls12381Point) Equal(other Point) bool {
	return bls12381.NewG2().Equal(&p.value, &castBLS12381Point(other).value)
}

func (p *bls12381Point) IsIdentity() bool {
	return bls12381.NewG2().IsZero(&p.value)
}

func (p *bls12381Point) MarshalBinary() ([]byte, error) {
	return bls12381.NewG2().ToCompressed(&p.value), nil
}

func (p *bls12381Point) UnmarshalBinary(data []byte) error {
	pt, err := bls12381.NewG2().FromCompressed(data)
	if err != nil {
		return &ErrInvalidEncoding{Curve: "bls12381g2", Kind: "point"}
	}
	p.value = *pt
	return nil
}
