// Package codec provides portable binary encoding for fixed-width numbers and
// fixed-layout records.
//
// The byte representation produced here is the same on every host regardless
// of native byte order. It is the foundation for portbin's record log, its
// keyed record storage and its HTTP API.
//
// # Wire Format
//
// Primitive values occupy exactly four bytes, most significant byte first:
//
//	Type     Size  Representation
//	───────────────────────────────────────────────
//	int32    4     big-endian two's complement
//	float32  4     big-endian IEEE-754 binary32 bits
//
// A Record is the concatenation of its fields in declaration order:
//
//	[ID(4)][Value(4)]
//
// There is no length prefix, delimiter, field tag or schema marker. The total
// record size is always RecordSize (8) bytes.
//
// # Floats
//
// Floats are encoded by viewing their storage as a uint32 with
// math.Float32bits and decoded with math.Float32frombits. No numeric conversion
// happens in either direction, so NaN payloads, the signaling bit, signed zero
// and both infinities round-trip bit for bit. Compare decoded floats by their
// bits, not with ==.
//
// # Usage
//
// Slice based:
//
//	wire := codec.EncodeRecord(codec.Record{ID: 123, Value: 456.789})
//	rec, err := codec.DecodeRecord(wire[:])
//
// Stream based, against any io.Writer sink and io.Reader source:
//
//	if err := codec.WriteRecord(f, rec); err != nil {
//	    return err
//	}
//	rec, err := codec.ReadRecord(bufio.NewReader(f))
//
// # Error Handling
//
// Encoding cannot fail except through the sink. Decoding from fewer bytes than
// required returns a *TruncatedError, which matches ErrTruncated:
//
//	if errors.Is(err, codec.ErrTruncated) {
//	    // short or empty source
//	}
//
// A truncated record is never partially returned. Errors from the underlying
// reader or writer other than end-of-data are returned unchanged.
//
// # Thread Safety
//
// Every function is stateless and safe for concurrent use. Synchronization of a
// shared reader or writer is the caller's responsibility.
package codec
