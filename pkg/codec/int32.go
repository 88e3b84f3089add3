package codec

import (
	"encoding/binary"
	"errors"
	"io"
)

// Int32Size is the wire size of an int32.
const Int32Size = 4

// EncodeInt32 returns the big-endian two's-complement bytes of v.
func EncodeInt32(v int32) [Int32Size]byte {
	var b [Int32Size]byte
	PutInt32(b[:], v)
	return b
}

// PutInt32 writes v into the first four bytes of dst. It panics if dst is
// shorter than Int32Size, like binary.BigEndian.PutUint32.
func PutInt32(dst []byte, v int32) {
	putUint32(dst, uint32(v))
}

// AppendInt32 appends the wire form of v to dst.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

// DecodeInt32 decodes the first four bytes of b.
func DecodeInt32(b []byte) (int32, error) {
	u, err := decodeUint32(b)
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// WriteInt32 writes the wire form of v to w.
func WriteInt32(w io.Writer, v int32) error {
	b := EncodeInt32(v)
	return writeFull(w, b[:])
}

// ReadInt32 reads exactly four bytes from r and decodes them.
func ReadInt32(r io.Reader) (int32, error) {
	u, err := readUint32(r)
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// putUint32 splits u most significant byte first.
func putUint32(dst []byte, u uint32) {
	_ = dst[3] // bounds check hint
	dst[0] = byte(u >> 24)
	dst[1] = byte(u >> 16)
	dst[2] = byte(u >> 8)
	dst[3] = byte(u)
}

func decodeUint32(b []byte) (uint32, error) {
	if len(b) < Int32Size {
		var cause error = io.ErrUnexpectedEOF
		if len(b) == 0 {
			cause = io.EOF
		}
		return 0, truncated(Int32Size, len(b), cause)
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [Int32Size]byte
	n, err := io.ReadFull(r, b[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, truncated(Int32Size, n, err)
		}
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err == nil && n < len(b) {
		return io.ErrShortWrite
	}
	return err
}
