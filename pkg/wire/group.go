package wire

import (
	"fmt"

	"github.com/near/threshold-signatures/pkg/math/curve"
)

// Group tags identify a curve.Curve in a persisted Output's header. Bumped
// only by adding a new tag; existing tags are never reassigned.
const (
	groupTagSecp256k1  byte = 0x01
	groupTagCurve25519 byte = 0x02
	groupTagBLS12381G2 byte = 0x03
)

func groupTag(group curve.Curve) (byte, error) {
	switch group.(type) {
	case curve.Secp256k1:
		return groupTagSecp256k1, nil
	case curve.Curve25519:
		return groupTagCurve25519, nil
	case curve.BLS12381G2:
		return groupTagBLS12381G2, nil
	default:
		return 0, fmt.Errorf("wire: unsupported group %q", group.Name())
	}
}

func groupFromTag(tag byte) (curve.Curve, error) {
	switch tag {
	case groupTagSecp256k1:
		return curve.Secp256k1{}, nil
	case groupTagCurve25519:
		return curve.Curve25519{}, nil
	case groupTagBLS12381G2:
		return curve.BLS12381G2{}, nil
	default:
		return nil, fmt.Errorf("wire: unknown group tag 0x%02x", tag)
	}
}
