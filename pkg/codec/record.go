package codec

import (
	"errors"
	"fmt"
	"io"
)

// RecordSize is the wire size of a Record: id(4) followed by value(4).
const RecordSize = Int32Size + Float32Size

// Record is the fixed-layout record carried on the wire.
type Record struct {
	ID    int32   // Encoded first
	Value float32 // Encoded second
}

// String renders the record for logs and CLI output.
func (r Record) String() string {
	return fmt.Sprintf("id=%d value=%g", r.ID, r.Value)
}

// EncodeRecord serializes r into its 8-byte wire form.
// Format: [ID(4)][Value(4)], both big-endian.
func EncodeRecord(r Record) [RecordSize]byte {
	var b [RecordSize]byte
	PutInt32(b[0:], r.ID)
	PutFloat32(b[Int32Size:], r.Value)
	return b
}

// AppendRecord appends the wire form of r to dst.
func AppendRecord(dst []byte, r Record) []byte {
	dst = AppendInt32(dst, r.ID)
	return AppendFloat32(dst, r.Value)
}

// WriteRecord writes id then value to w. A failure writing either field is
// returned unchanged.
func WriteRecord(w io.Writer, r Record) error {
	b := EncodeRecord(r)
	return writeFull(w, b[:])
}

// DecodeRecord decodes the first RecordSize bytes of b.
func DecodeRecord(b []byte) (Record, error) {
	id, err := DecodeInt32(b)
	if err != nil {
		return Record{}, recordTruncated(err, "id", 0)
	}
	value, err := DecodeFloat32(b[Int32Size:])
	if err != nil {
		return Record{}, recordTruncated(err, "value", Int32Size)
	}
	return Record{ID: id, Value: value}, nil
}

// ReadRecord reads id then value from src. Either both fields decode or the
// zero Record is returned with the error.
func ReadRecord(src io.Reader) (Record, error) {
	id, err := ReadInt32(src)
	if err != nil {
		return Record{}, recordTruncated(err, "id", 0)
	}
	value, err := ReadFloat32(src)
	if err != nil {
		return Record{}, recordTruncated(err, "value", Int32Size)
	}
	return Record{ID: id, Value: value}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r Record) MarshalBinary() ([]byte, error) {
	return AppendRecord(make([]byte, 0, RecordSize), r), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must be exactly
// RecordSize bytes long.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) > RecordSize {
		return fmt.Errorf("codec: record is %d bytes, got %d", RecordSize, len(data))
	}
	dec, err := DecodeRecord(data)
	if err != nil {
		return err
	}
	*r = dec
	return nil
}

// recordTruncated rescales a primitive truncation to the record: the field
// name is attached and the counts cover the whole record. A record cut after
// its id is never reported as a clean io.EOF.
func recordTruncated(err error, field string, consumed int) error {
	var te *TruncatedError
	if !errors.As(err, &te) {
		return err
	}
	cause := te.Err
	if consumed > 0 {
		cause = io.ErrUnexpectedEOF
	}
	return &TruncatedError{
		Field: field,
		Need:  RecordSize,
		Have:  consumed + te.Have,
		Err:   cause,
	}
}
