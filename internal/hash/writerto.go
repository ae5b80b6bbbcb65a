package hash

import "io"

// WriterToWithDomain is implemented by types that know how to serialize
// themselves into a transcript hash and how to identify themselves for
// domain separation.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string unique to this type, so that its
	// encoding cannot be confused with another type's encoding of the same
	// bytes.
	Domain() string
}

// writeWithDomain writes "(<domain><data>)" to w, so that a domain's
// written data can never be mistaken for a different domain's.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	if _, err := w.Write([]byte("(")); err != nil {
		return err
	}
	if _, err := w.Write([]byte(object.Domain())); err != nil {
		return err
	}
	if _, err := object.WriteTo(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte(")")); err != nil {
		return err
	}
	return nil
}

// BytesWithDomain wraps a byte slice with an explicit domain string, for use
// with WriteAny or as a WriterToWithDomain elsewhere.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
