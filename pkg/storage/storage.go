// Package storage keeps wire-encoded records in a pebble database keyed by
// KSUIDs, so records sort by creation time.
package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/portbin/pkg/codec"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no record exists for a key
var ErrNotFound = errors.New("record not found")

// Entry pairs a stored record with its key
type Entry struct {
	Key    ksuid.KSUID
	Record codec.Record
}

type options struct {
	fs   vfs.FS
	sync bool
}

// Option configures DefaultStorage
type Option func(*options)

// WithFS opens the database on the given filesystem, vfs.NewMem() in tests
func WithFS(fs vfs.FS) Option {
	return func(o *options) { o.fs = fs }
}

// WithSync makes every write durable before returning
func WithSync(sync bool) Option {
	return func(o *options) { o.sync = sync }
}

type DefaultStorage struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
}

func NewDefaultStorage(path string, opts ...Option) (*DefaultStorage, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	pebbleOpts := &pebble.Options{}
	if o.fs != nil {
		pebbleOpts.FS = o.fs
	}

	db, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record storage: %w", err)
	}

	writeOpts := pebble.NoSync
	if o.sync {
		writeOpts = pebble.Sync
	}

	Logger().Debug("opened record storage", zap.String("path", path), zap.Bool("sync", o.sync))
	return &DefaultStorage{db: db, writeOpts: writeOpts}, nil
}

func (s *DefaultStorage) Create(r codec.Record) (ksuid.KSUID, error) {
	id := ksuid.New()
	wire := codec.EncodeRecord(r)
	if err := s.db.Set(id.Bytes(), wire[:], s.writeOpts); err != nil {
		return ksuid.Nil, err
	}

	return id, nil
}

func (s *DefaultStorage) Read(id ksuid.KSUID) (codec.Record, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return codec.Record{}, ErrNotFound
		}
		return codec.Record{}, err
	}
	defer closer.Close()

	return decodeStored(id, data)
}

// ReadRaw returns the stored wire bytes for id
func (s *DefaultStorage) ReadRaw(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), data...), nil
}

// Update replaces the record stored under id. It returns ErrNotFound when id
// has no record.
func (s *DefaultStorage) Update(id ksuid.KSUID, r codec.Record) error {
	if err := s.exists(id); err != nil {
		return err
	}

	wire := codec.EncodeRecord(r)
	return s.db.Set(id.Bytes(), wire[:], s.writeOpts)
}

// Delete removes the record stored under id. It returns ErrNotFound when id
// has no record.
func (s *DefaultStorage) Delete(id ksuid.KSUID) error {
	if err := s.exists(id); err != nil {
		return err
	}

	return s.db.Delete(id.Bytes(), s.writeOpts)
}

func (s *DefaultStorage) exists(id ksuid.KSUID) error {
	_, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return closer.Close()
}

// List returns up to limit records in key order. A limit <= 0 returns all.
func (s *DefaultStorage) List(limit int) ([]Entry, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for valid := iter.First(); valid; valid = iter.Next() {
		if limit > 0 && len(entries) >= limit {
			break
		}

		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("invalid key %x: %w", iter.Key(), err)
		}

		r, err := decodeStored(id, iter.Value())
		if err != nil {
			iter.Close()
			return nil, err
		}
		entries = append(entries, Entry{Key: id, Record: r})
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DefaultStorage) Close() error {
	return s.db.Close()
}

func decodeStored(id ksuid.KSUID, data []byte) (codec.Record, error) {
	var r codec.Record
	if err := r.UnmarshalBinary(data); err != nil {
		Logger().Warn("stored record is malformed", zap.Stringer("key", id), zap.Int("bytes", len(data)), zap.Error(err))
		return codec.Record{}, fmt.Errorf("record %s: %w", id, err)
	}
	return r, nil
}
