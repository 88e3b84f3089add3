package api

import (
	"fmt"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/storage"
)

// Content types understood by the record endpoints
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordBody is the JSON form of a codec.Record. JSON cannot carry NaN or
// infinities, so the raw float bits travel in ValueBits as 8 hex digits.
type RecordBody struct {
	ID        int32    `json:"id"`
	Value     *float32 `json:"value,omitempty"`
	ValueBits string   `json:"value_bits,omitempty"`
}

// RecordResponse describes a stored record
type RecordResponse struct {
	Key    string     `json:"key,omitempty"`
	Wire   string     `json:"wire"`
	Record RecordBody `json:"record"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string

	// Registry receives the server's metrics and backs /metrics. A nil
	// Registry gets a fresh one per server.
	Registry *prometheus.Registry
}

// RecordStore defines the storage operations the API needs
type RecordStore interface {
	Create(r codec.Record) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) (codec.Record, error)
	ReadRaw(id ksuid.KSUID) ([]byte, error)
	Update(id ksuid.KSUID, r codec.Record) error
	Delete(id ksuid.KSUID) error
	List(limit int) ([]storage.Entry, error)
}

func toBody(r codec.Record) RecordBody {
	body := RecordBody{
		ID:        r.ID,
		ValueBits: fmt.Sprintf("%08x", math.Float32bits(r.Value)),
	}
	if f := float64(r.Value); !math.IsNaN(f) && !math.IsInf(f, 0) {
		v := r.Value
		body.Value = &v
	}
	return body
}

// record converts the body, preferring ValueBits when both are present
func (b RecordBody) record() (codec.Record, error) {
	switch {
	case b.ValueBits != "":
		bits, err := strconv.ParseUint(b.ValueBits, 16, 32)
		if err != nil {
			return codec.Record{}, fmt.Errorf("invalid value_bits %q: %w", b.ValueBits, err)
		}
		return codec.Record{ID: b.ID, Value: math.Float32frombits(uint32(bits))}, nil
	case b.Value != nil:
		return codec.Record{ID: b.ID, Value: *b.Value}, nil
	default:
		return codec.Record{}, fmt.Errorf("value or value_bits is required")
	}
}
