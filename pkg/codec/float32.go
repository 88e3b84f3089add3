package codec

import (
	"encoding/binary"
	"io"
	"math"
)

// Float32Size is the wire size of a float32.
const Float32Size = 4

// EncodeFloat32 returns the big-endian bytes of the IEEE-754 bit pattern of v.
// NaN payloads, signed zeros and infinities are carried through unchanged.
func EncodeFloat32(v float32) [Float32Size]byte {
	var b [Float32Size]byte
	PutFloat32(b[:], v)
	return b
}

// PutFloat32 writes v into the first four bytes of dst.
func PutFloat32(dst []byte, v float32) {
	putUint32(dst, math.Float32bits(v))
}

// AppendFloat32 appends the wire form of v to dst.
func AppendFloat32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

// DecodeFloat32 decodes the first four bytes of b as a raw binary32 pattern.
func DecodeFloat32(b []byte) (float32, error) {
	u, err := decodeUint32(b)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// WriteFloat32 writes the wire form of v to w.
func WriteFloat32(w io.Writer, v float32) error {
	b := EncodeFloat32(v)
	return writeFull(w, b[:])
}

// ReadFloat32 reads exactly four bytes from r and decodes them.
func ReadFloat32(r io.Reader) (float32, error) {
	u, err := readUint32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}
