package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/near/threshold-signatures/pkg/math/curve"
	"github.com/near/threshold-signatures/pkg/party"
	"github.com/near/threshold-signatures/pkg/threshold"
)

// outputVersion1 is the only version this codec understands. Bumped, never
// reused, on any incompatible change to the layout below; DecodeOutput
// rejects every other value.
const outputVersion1 byte = 1

// OutputData is the plain encode/decode form of a completed Keygen, Reshare
// or Refresh: everything pedpop.Output persists, without the zeroization
// and accessor behavior that package layers on top.
type OutputData struct {
	Group        curve.Curve
	Participants party.IDSlice
	Parameters   threshold.Parameters
	SecretShare  curve.Scalar
	PublicKey    curve.Point
}

// EncodeOutput serializes a keyshare into the canonical layout: version (1
// byte) || group tag (1 byte) || participant count (4 bytes, big-endian) ||
// participant ids in ascending order (2 bytes each) || (N, F, T) (4 bytes
// each, big-endian) || secret share (group's scalar length) || public key
// (group's compressed point length).
func EncodeOutput(group curve.Curve, participants party.IDSlice, params threshold.Parameters, secretShare curve.Scalar, publicKey curve.Point) ([]byte, error) {
	tag, err := groupTag(group)
	if err != nil {
		return nil, &CodecError{Op: "encode output", Err: err}
	}
	if err := params.Validate(); err != nil {
		return nil, &CodecError{Op: "encode output", Err: err}
	}

	sorted := participants.Copy()
	sorted.Sort()

	shareBytes, err := secretShare.MarshalBinary()
	if err != nil {
		return nil, &CodecError{Op: "encode output secret share", Err: err}
	}
	pkBytes, err := publicKey.MarshalBinary()
	if err != nil {
		return nil, &CodecError{Op: "encode output public key", Err: err}
	}

	buf := make([]byte, 0, 2+4+len(sorted)*party.ByteSize+12+len(shareBytes)+len(pkBytes))
	buf = append(buf, outputVersion1, tag)
	buf = appendUint32(buf, uint32(len(sorted)))
	for _, id := range sorted {
		buf = append(buf, id.Bytes()...)
	}
	buf = appendUint32(buf, uint32(params.N))
	buf = appendUint32(buf, uint32(params.F))
	buf = appendUint32(buf, uint32(params.T))
	buf = append(buf, shareBytes...)
	buf = append(buf, pkBytes...)
	return buf, nil
}

// DecodeOutput parses data produced by EncodeOutput, rejecting any version
// it does not recognize, any truncation, and any trailing bytes.
func DecodeOutput(data []byte) (*OutputData, error) {
	const headerLen = 2 + 4
	if len(data) < headerLen {
		return nil, &CodecError{Op: "decode output", Err: fmt.Errorf("truncated header")}
	}
	version, tag := data[0], data[1]
	if version != outputVersion1 {
		return nil, &CodecError{Op: "decode output", Err: fmt.Errorf("unsupported version %d", version)}
	}
	group, err := groupFromTag(tag)
	if err != nil {
		return nil, &CodecError{Op: "decode output", Err: err}
	}

	count := binary.BigEndian.Uint32(data[2:6])
	cursor := headerLen
	idsEnd := cursor + int(count)*party.ByteSize
	if idsEnd+12 > len(data) {
		return nil, &CodecError{Op: "decode output", Err: fmt.Errorf("truncated participant list")}
	}
	participants := make(party.IDSlice, count)
	for i := 0; i < int(count); i++ {
		off := cursor + i*party.ByteSize
		participants[i] = party.FromBytes(data[off : off+party.ByteSize])
	}
	cursor = idsEnd

	params := threshold.Parameters{
		N: int(binary.BigEndian.Uint32(data[cursor : cursor+4])),
		F: int(binary.BigEndian.Uint32(data[cursor+4 : cursor+8])),
		T: int(binary.BigEndian.Uint32(data[cursor+8 : cursor+12])),
	}
	cursor += 12
	if err := params.Validate(); err != nil {
		return nil, &CodecError{Op: "decode output parameters", Err: err}
	}
	if params.N != int(count) {
		return nil, &CodecError{Op: "decode output parameters", Err: fmt.Errorf("N=%d does not match participant count %d", params.N, count)}
	}

	scalarLen := group.ScalarBytes()
	pointLen := group.PointBytes()
	if len(data) != cursor+scalarLen+pointLen {
		return nil, &CodecError{Op: "decode output", Err: fmt.Errorf("unexpected length: want %d, got %d", cursor+scalarLen+pointLen, len(data))}
	}

	secretShare := group.NewScalar()
	if err := secretShare.UnmarshalBinary(data[cursor : cursor+scalarLen]); err != nil {
		return nil, &CodecError{Op: "decode output secret share", Err: err}
	}
	cursor += scalarLen

	publicKey := group.NewPoint()
	if err := publicKey.UnmarshalBinary(data[cursor : cursor+pointLen]); err != nil {
		return nil, &CodecError{Op: "decode output public key", Err: err}
	}

	return &OutputData{
		Group:        group,
		Participants: participants,
		Parameters:   params,
		SecretShare:  secretShare,
		PublicKey:    publicKey,
	}, nil
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}
