package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ssargent/portbin/pkg/codec"
	"go.uber.org/zap"
)

// LogReader provides sequential and indexed access to records in a data file
type LogReader struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	config LogReaderConfig
}

// NewLogReader creates a new log reader for the specified file
func NewLogReader(config LogReaderConfig) (*LogReader, error) {
	if config.StartIndex < 0 {
		return nil, ErrIndexNegative
	}

	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	start := config.StartIndex * codec.RecordSize

	// Seek to start offset if specified
	if start > 0 {
		if _, err := file.Seek(start, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &LogReader{
		file:   file,
		reader: bufio.NewReader(file),
		offset: start,
		config: config,
	}, nil
}

// ReadNext reads the next record from the current offset. It returns io.EOF
// when the file ends on a record boundary and a codec.ErrTruncated error when
// the file ends inside a record.
func (r *LogReader) ReadNext() (codec.Record, error) {
	rec, err := codec.ReadRecord(r.reader)
	if err != nil {
		var te *codec.TruncatedError
		if errors.As(err, &te) && te.Have == 0 {
			return codec.Record{}, io.EOF
		}
		if errors.Is(err, codec.ErrTruncated) {
			Logger().Warn("partial record at end of file",
				zap.String("path", r.config.FilePath),
				zap.Int64("offset", r.offset),
				zap.Error(err))
		}
		return codec.Record{}, err
	}

	r.offset += codec.RecordSize
	return rec, nil
}

// ReadAt reads the record with the given index without moving the sequential
// read position.
func (r *LogReader) ReadAt(index int64) (codec.Record, error) {
	if index < 0 {
		return codec.Record{}, ErrIndexNegative
	}

	section := io.NewSectionReader(r.file, index*codec.RecordSize, codec.RecordSize)
	rec, err := codec.ReadRecord(section)
	if err != nil {
		return codec.Record{}, fmt.Errorf("record %d: %w", index, err)
	}
	return rec, nil
}

// Seek positions the sequential reader at the given record index
func (r *LogReader) Seek(index int64) error {
	if index < 0 {
		return ErrIndexNegative
	}

	offset := index * codec.RecordSize
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	r.reader.Reset(r.file) // Clear buffered bytes
	r.offset = offset
	return nil
}

// Offset returns the current read offset in bytes
func (r *LogReader) Offset() int64 {
	return r.offset
}

// Count returns the number of complete records in the file
func (r *LogReader) Count() (int64, error) {
	stat, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size() / codec.RecordSize, nil
}

// Iterator returns a streaming iterator for records
func (r *LogReader) Iterator() RecordIterator {
	return &logRecordIterator{reader: r}
}

// Close closes the log reader
func (r *LogReader) Close() error {
	return r.file.Close()
}

// ReadAll reads every record in the file at path. A partial trailing record
// fails the whole read.
func ReadAll(path string) ([]codec.Record, error) {
	reader, err := NewLogReader(LogReaderConfig{FilePath: path})
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var records []codec.Record
	it := reader.Iterator()
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// logRecordIterator implements RecordIterator for streaming access
type logRecordIterator struct {
	reader *LogReader
	record codec.Record
	err    error
}

func (it *logRecordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *logRecordIterator) Record() codec.Record {
	return it.record
}

// Err returns the error that stopped iteration, or nil at a clean end of file.
func (it *logRecordIterator) Err() error {
	if errors.Is(it.err, io.EOF) && !errors.Is(it.err, codec.ErrTruncated) {
		return nil
	}
	return it.err
}

func (it *logRecordIterator) Close() error {
	// Don't close the underlying reader as it's owned by the caller
	return nil
}
