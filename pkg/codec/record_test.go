package codec

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestRecord_EncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
	}{
		{
			name:   "sample record",
			record: Record{ID: 123, Value: 456.789},
		},
		{
			name:   "zero record",
			record: Record{},
		},
		{
			name:   "negative id",
			record: Record{ID: -42, Value: 1.5},
		},
		{
			name:   "extreme id",
			record: Record{ID: math.MinInt32, Value: math.MaxFloat32},
		},
		{
			name:   "negative zero value",
			record: Record{ID: math.MaxInt32, Value: float32(math.Copysign(0, -1))},
		},
		{
			name:   "infinite value",
			record: Record{ID: 7, Value: float32(math.Inf(-1))},
		},
		{
			name:   "smallest subnormal",
			record: Record{ID: 1, Value: math.SmallestNonzeroFloat32},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := EncodeRecord(tc.record)
			if len(encoded) != RecordSize {
				t.Fatalf("Encoded length: got %d, want %d", len(encoded), RecordSize)
			}

			decoded, err := DecodeRecord(encoded[:])
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded.ID != tc.record.ID {
				t.Errorf("ID mismatch: got %d, want %d", decoded.ID, tc.record.ID)
			}
			if math.Float32bits(decoded.Value) != math.Float32bits(tc.record.Value) {
				t.Errorf("Value bits mismatch: got %#08x, want %#08x",
					math.Float32bits(decoded.Value), math.Float32bits(tc.record.Value))
			}
		})
	}
}

func TestRecord_NaNRoundTrip(t *testing.T) {
	nan := math.Float32frombits(0x7fa00001) // signaling NaN with payload
	encoded := EncodeRecord(Record{ID: 9, Value: nan})

	decoded, err := DecodeRecord(encoded[:])
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := math.Float32bits(decoded.Value); got != 0x7fa00001 {
		t.Errorf("NaN payload not preserved: got %#08x", got)
	}
}

func TestRecord_FieldOrder(t *testing.T) {
	r := Record{ID: 123, Value: 456.789}

	id := EncodeInt32(123)
	value := EncodeFloat32(456.789)
	want := append(id[:], value[:]...)

	got := EncodeRecord(r)
	if !bytes.Equal(got[:], want) {
		t.Fatalf("Record bytes: got %x, want %x", got, want)
	}

	wire := []byte{0x00, 0x00, 0x00, 0x7b, 0x43, 0xe4, 0x64, 0xfe}
	if !bytes.Equal(got[:], wire) {
		t.Errorf("Record bytes: got %x, want %x", got, wire)
	}

	decoded, err := DecodeRecord(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.ID != 123 {
		t.Errorf("ID: got %d, want 123", decoded.ID)
	}
	if decoded.Value != float32(456.789) {
		t.Errorf("Value: got %v, want %v", decoded.Value, float32(456.789))
	}
}

func TestRecord_StreamRoundTrip(t *testing.T) {
	records := []Record{
		{ID: 1, Value: 1},
		{ID: -1, Value: -1},
		{ID: 123, Value: 456.789},
	}

	var buf bytes.Buffer
	for _, r := range records {
		if err := WriteRecord(&buf, r); err != nil {
			t.Fatalf("WriteRecord failed: %v", err)
		}
	}

	if buf.Len() != len(records)*RecordSize {
		t.Fatalf("Sink length: got %d, want %d", buf.Len(), len(records)*RecordSize)
	}

	src := bytes.NewReader(buf.Bytes())
	for i, want := range records {
		got, err := ReadRecord(src)
		if err != nil {
			t.Fatalf("ReadRecord %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Record %d: got %v, want %v", i, got, want)
		}
	}

	_, err := ReadRecord(src)
	if !errors.Is(err, ErrTruncated) || !errors.Is(err, io.EOF) {
		t.Errorf("Expected clean end-of-data truncation, got %v", err)
	}
}

func TestRecord_Truncated(t *testing.T) {
	full := EncodeRecord(Record{ID: 123, Value: 456.789})

	for n := 0; n < RecordSize; n++ {
		short := full[:n]

		t.Run("slice", func(t *testing.T) {
			rec, err := DecodeRecord(short)
			assertRecordTruncated(t, n, rec, err)
		})

		t.Run("stream", func(t *testing.T) {
			rec, err := ReadRecord(bytes.NewReader(short))
			assertRecordTruncated(t, n, rec, err)
		})
	}
}

func assertRecordTruncated(t *testing.T, have int, rec Record, err error) {
	t.Helper()

	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("%d bytes: expected ErrTruncated, got %v", have, err)
	}
	if rec != (Record{}) {
		t.Errorf("%d bytes: expected zero record, got %v", have, rec)
	}

	var te *TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("%d bytes: expected *TruncatedError, got %T", have, err)
	}
	if te.Need != RecordSize || te.Have != have {
		t.Errorf("%d bytes: got need=%d have=%d", have, te.Need, te.Have)
	}

	wantField := "id"
	if have >= Int32Size {
		wantField = "value"
	}
	if te.Field != wantField {
		t.Errorf("%d bytes: field got %q, want %q", have, te.Field, wantField)
	}

	if have > 0 && errors.Is(err, io.EOF) {
		t.Errorf("%d bytes: a cut record must not look like a clean EOF", have)
	}
}

func TestRecord_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("medium unavailable")

	_, err := ReadRecord(&failingReader{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected source error, got %v", err)
	}
	if errors.Is(err, ErrTruncated) {
		t.Error("Source failure must not be reported as truncation")
	}
}

func TestRecord_SinkErrorPropagates(t *testing.T) {
	boom := errors.New("permission denied")

	err := WriteRecord(&failingWriter{err: boom}, Record{ID: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected sink error, got %v", err)
	}

	err = WriteRecord(&failingWriter{short: true}, Record{ID: 1})
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("Expected io.ErrShortWrite, got %v", err)
	}
}

func TestRecord_BinaryMarshaler(t *testing.T) {
	want := Record{ID: -7, Value: 0.25}

	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	if len(data) != RecordSize {
		t.Fatalf("MarshalBinary length: got %d, want %d", len(data), RecordSize)
	}

	var got Record
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if got != want {
		t.Errorf("Round trip: got %v, want %v", got, want)
	}

	if err := got.UnmarshalBinary(data[:5]); !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated for short data, got %v", err)
	}
	if got != want {
		t.Errorf("Failed unmarshal modified record: %v", got)
	}

	err = got.UnmarshalBinary(append(data, 0x00))
	if err == nil || errors.Is(err, ErrTruncated) {
		t.Errorf("Expected length error for trailing data, got %v", err)
	}
}

func TestRecord_String(t *testing.T) {
	r := Record{ID: 123, Value: 0.5}
	if got := r.String(); got != "id=123 value=0.5" {
		t.Errorf("String: got %q", got)
	}
}

func TestAppendRecord(t *testing.T) {
	prefix := []byte{0xAA}
	got := AppendRecord(prefix, Record{ID: 1, Value: 1.5})
	want := []byte{0xAA, 0x00, 0x00, 0x00, 0x01, 0x3f, 0xc0, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendRecord: got %x, want %x", got, want)
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

type failingWriter struct {
	err   error
	short bool
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.short {
		return len(p) - 1, nil
	}
	return 0, w.err
}
