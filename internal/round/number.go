package round

import (
	"encoding/binary"
	"io"
)

// Number is the index of the current round. 0 indicates the output round,
// 1 is the first round. PedPop+'s success-acknowledgement round is encoded
// as 6 internally (String, and so the logs, name it "5.5").
type Number uint8

// Ack is PedPop+'s final success-acknowledgement round (round 5.5 in the
// protocol's own numbering): every participant that completed round 5
// broadcasts a success signal before anyone commits to the output.
const Ack Number = 6

func (n Number) WriteTo(w io.Writer) (int64, error) {
	err := binary.Write(w, binary.BigEndian, uint16(n))
	return 2, err
}

func (Number) Domain() string { return "Round Number" }

func (n Number) String() string {
	if n == Ack {
		return "5.5"
	}
	return [...]string{"0", "1", "2", "3", "4", "5"}[n]
}
