package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ssargent/portbin/pkg/codec"
	"go.uber.org/zap"
)

const defaultBufferSize = 4096

// LogWriter handles append-only writes of wire records to a data file
type LogWriter struct {
	file       *os.File
	writer     *bufio.Writer
	fsyncTimer *time.Timer
	config     LogWriterConfig
	mutex      sync.Mutex
	offset     int64 // Current write offset
	closed     bool
}

// NewLogWriter creates a new log writer with the given configuration
func NewLogWriter(config LogWriterConfig) (*LogWriter, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if config.Truncate {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(config.FilePath, flags, 0600)
	if err != nil {
		return nil, err
	}

	// Seek to end for append behavior
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		if closeErr := file.Close(); closeErr != nil {
			Logger().Warn("close after failed seek", zap.String("path", config.FilePath), zap.Error(closeErr))
		}
		return nil, err
	}

	// Appending after a partial record would shift every later record out of frame
	if rem := end % codec.RecordSize; rem != 0 {
		Logger().Error("record file ends with a partial record",
			zap.String("path", config.FilePath),
			zap.Int64("size", end),
			zap.Int64("partial_bytes", rem))
		if closeErr := file.Close(); closeErr != nil {
			Logger().Warn("close after partial record check", zap.String("path", config.FilePath), zap.Error(closeErr))
		}
		return nil, fmt.Errorf("%s: record %d: %w", config.FilePath, end/codec.RecordSize,
			&codec.TruncatedError{Need: codec.RecordSize, Have: int(rem), Err: io.ErrUnexpectedEOF})
	}

	bufferSize := config.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	writer := &LogWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, bufferSize),
		config: config,
		offset: end,
	}

	// Set up fsync timer if interval is configured
	if config.FsyncInterval > 0 {
		writer.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			writer.mutex.Lock()
			defer writer.mutex.Unlock()
			if writer.closed {
				return
			}
			if err := writer.sync(); err != nil {
				Logger().Error("background fsync failed", zap.String("path", config.FilePath), zap.Error(err))
			}
		})
	}

	Logger().Debug("opened record log for writing",
		zap.String("path", config.FilePath),
		zap.Int64("offset", end))

	return writer, nil
}

// Append writes a record to the log file and returns the byte offset where it starts
func (w *LogWriter) Append(r codec.Record) (int64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	if err := codec.WriteRecord(w.writer, r); err != nil {
		return 0, err
	}

	// Calculate the offset where this record starts
	recordOffset := w.offset
	w.offset += codec.RecordSize

	// Sync immediately if no fsync interval configured
	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			return 0, err
		}
	} else if w.fsyncTimer != nil {
		w.fsyncTimer.Reset(w.config.FsyncInterval)
	}

	return recordOffset, nil
}

// Sync forces a fsync to disk
func (w *LogWriter) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.sync()
}

// sync performs the actual fsync operation (internal method)
func (w *LogWriter) sync() error {
	// Flush buffered writes
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush record log: %w", err)
	}

	// Fsync to disk
	return w.file.Sync()
}

// Close closes the log writer and ensures all data is synced
func (w *LogWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	// Cancel fsync timer
	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}

	// Final sync
	if err := w.sync(); err != nil {
		if closeErr := w.file.Close(); closeErr != nil {
			Logger().Warn("close after failed sync", zap.String("path", w.config.FilePath), zap.Error(closeErr))
		}
		return err
	}

	return w.file.Close()
}

// Size returns the current size of the log file
func (w *LogWriter) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Count returns the number of complete records in the file
func (w *LogWriter) Count() int64 {
	return w.Size() / codec.RecordSize
}

// Path returns the file path
func (w *LogWriter) Path() string {
	return w.config.FilePath
}
