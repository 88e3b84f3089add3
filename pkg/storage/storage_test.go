package storage

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStorage(t *testing.T) *DefaultStorage {
	t.Helper()

	s, err := NewDefaultStorage("records", WithFS(vfs.NewMem()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultStorage_CreateRead(t *testing.T) {
	s := newMemStorage(t)

	sample := codec.Record{ID: 123, Value: 456.789}
	id, err := s.Create(sample)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	raw, err := s.ReadRaw(id)
	require.NoError(t, err)
	wire := codec.EncodeRecord(sample)
	assert.Equal(t, wire[:], raw)
}

func TestDefaultStorage_ReadMissing(t *testing.T) {
	s := newMemStorage(t)

	_, err := s.Read(ksuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ReadRaw(ksuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefaultStorage_Update(t *testing.T) {
	s := newMemStorage(t)

	id, err := s.Create(codec.Record{ID: 1, Value: 1})
	require.NoError(t, err)

	require.NoError(t, s.Update(id, codec.Record{ID: 1, Value: 2}))

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, float32(2), got.Value)

	assert.ErrorIs(t, s.Update(ksuid.New(), codec.Record{}), ErrNotFound)
}

func TestDefaultStorage_Delete(t *testing.T) {
	s := newMemStorage(t)

	id, err := s.Create(codec.Record{ID: 9, Value: 9})
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.Read(id)
	assert.ErrorIs(t, err, ErrNotFound)

	// A second delete of the same key reports it missing
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestDefaultStorage_DeleteMissing(t *testing.T) {
	s := newMemStorage(t)

	kept, err := s.Create(codec.Record{ID: 1, Value: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ksuid.New()), ErrNotFound)

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept, entries[0].Key)
}

func TestDefaultStorage_List(t *testing.T) {
	s := newMemStorage(t)

	var ids []ksuid.KSUID
	for i := int32(0); i < 5; i++ {
		id, err := s.Create(codec.Record{ID: i, Value: float32(i) / 2})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Keys come back in ksuid order
	for i := 1; i < len(all); i++ {
		assert.True(t, ksuid.Compare(all[i-1].Key, all[i].Key) < 0)
	}

	found := make(map[ksuid.KSUID]codec.Record)
	for _, e := range all {
		found[e.Key] = e.Record
	}
	for i, id := range ids {
		assert.Equal(t, int32(i), found[id].ID)
	}

	limited, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDefaultStorage_TruncatedValue(t *testing.T) {
	s := newMemStorage(t)

	id := ksuid.New()
	require.NoError(t, s.db.Set(id.Bytes(), []byte{0x00, 0x00, 0x00}, pebble.Sync))

	_, err := s.Read(id)
	assert.ErrorIs(t, err, codec.ErrTruncated)

	_, err = s.List(0)
	assert.ErrorIs(t, err, codec.ErrTruncated)
}

func TestDefaultStorage_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")

	s, err := NewDefaultStorage(dir, WithSync(true))
	require.NoError(t, err)

	id, err := s.Create(codec.Record{ID: 123, Value: 456.789})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewDefaultStorage(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Read(id)
	require.NoError(t, err)
	assert.Equal(t, codec.Record{ID: 123, Value: 456.789}, got)
}
