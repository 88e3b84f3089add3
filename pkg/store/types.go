package store

import (
	"time"

	"github.com/ssargent/portbin/pkg/codec"
)

// LogWriterConfig holds configuration for the log writer
type LogWriterConfig struct {
	FilePath      string        // Path to the record file
	FsyncInterval time.Duration // How often to fsync (0 = every write)
	BufferSize    int           // Write buffer size
	Truncate      bool          // Start from an empty file instead of appending
}

// LogReaderConfig holds configuration for the log reader
type LogReaderConfig struct {
	FilePath   string // Path to the record file
	StartIndex int64  // Record index to start reading from
}

// RecordIterator provides streaming access to records
type RecordIterator interface {
	Next() bool
	Record() codec.Record
	Err() error
	Close() error
}

// Errors
var (
	ErrClosed        = &StoreError{"record log is closed"}
	ErrIndexNegative = &StoreError{"record index must not be negative"}
)

// StoreError represents a record log error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
