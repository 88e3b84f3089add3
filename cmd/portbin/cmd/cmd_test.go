package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/config"
	"github.com/ssargent/portbin/pkg/storage"
	"github.com/ssargent/portbin/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	var out bytes.Buffer
	require.NoError(t, runDemo(&out, path))
	assert.Equal(t, "Read id: 123, value: 456.789001\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x7b, 0x43, 0xe4, 0x64, 0xfe}, data)
}

func TestRunDemo_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("stale contents from an earlier run"), 0644))

	var out bytes.Buffer
	require.NoError(t, runDemo(&out, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(codec.RecordSize), info.Size())
}

func TestRunDemo_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var out bytes.Buffer
	err := runDemo(&out, filepath.Join(blocker, "data.bin"))
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestEncodeDecodeHex(t *testing.T) {
	rec := codec.Record{ID: 123, Value: 456.789}
	assert.Equal(t, "0000007b43e464fe", encodeHex(rec))

	got, err := decodeHex(" 0000007b43e464fe\n")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeHex_Errors(t *testing.T) {
	_, err := decodeHex("0000007b43")
	assert.ErrorIs(t, err, codec.ErrTruncated)

	_, err = decodeHex("zz")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, codec.ErrTruncated)

	_, err = decodeHex("0000007b43e464fe00")
	assert.Error(t, err)
}

func TestReadAll_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	wire := codec.EncodeRecord(codec.Record{ID: 1, Value: 2})
	require.NoError(t, os.WriteFile(path, append(wire[:], 0x00, 0x01), 0644))

	reader, err := store.NewLogReader(store.LogReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	var out bytes.Buffer
	err = readAll(&out, reader)
	assert.ErrorIs(t, err, codec.ErrTruncated)
	assert.Equal(t, "Read id: 1, value: 2.000000\n", out.String())
}

func TestReadOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	writer, err := store.NewLogWriter(store.LogWriterConfig{FilePath: path})
	require.NoError(t, err)
	for i := int32(0); i < 3; i++ {
		_, err := writer.Append(codec.Record{ID: i, Value: float32(i) / 2})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader, err := store.NewLogReader(store.LogReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	var out bytes.Buffer
	require.NoError(t, readOne(&out, reader, 2))
	assert.Equal(t, "Read id: 2, value: 1.000000\n", out.String())

	assert.ErrorIs(t, readOne(&out, reader, 3), codec.ErrTruncated)
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	var out bytes.Buffer
	require.NoError(t, runInit(&out, configPath, filepath.Join(dir, "data"), false))
	assert.Contains(t, out.String(), "API key: ")

	c, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), c.DataDir)
	assert.Len(t, c.Security.APIKey, 64)

	// A second run without force keeps the existing file
	err = runInit(&out, configPath, "", false)
	assert.Error(t, err)

	require.NoError(t, runInit(&out, configPath, "", true))
	c2, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.NotEqual(t, c.Security.APIKey, c2.Security.APIKey)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.Logging{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger(config.Logging{Level: "loud"})
	assert.Error(t, err)
}

func TestRootCommand_Encode(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", "", "encode", "--id", "-1", "--value-bits", "7fc00000"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ffffffff7fc00000\n", out.String())
}

func TestFindByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	writer, err := store.NewLogWriter(store.LogWriterConfig{FilePath: path})
	require.NoError(t, err)
	for _, rec := range []codec.Record{{ID: 5, Value: 1}, {ID: 6, Value: 2}, {ID: 5, Value: 3}} {
		_, err := writer.Append(rec)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader, err := store.NewLogReader(store.LogReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	var out bytes.Buffer
	require.NoError(t, findByID(&out, reader, 5))
	assert.Equal(t, "0\tRead id: 5, value: 1.000000\n2\tRead id: 5, value: 3.000000\n", out.String())

	assert.Error(t, findByID(&out, reader, 7))
}

func TestEnsureConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "portbin.yaml")

	var out bytes.Buffer
	require.NoError(t, ensureConfig(&out, configPath, dir))
	assert.Contains(t, out.String(), "Created config")

	first, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	// An existing config is left alone
	out.Reset()
	require.NoError(t, ensureConfig(&out, configPath, ""))
	assert.Empty(t, out.String())

	second, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	s, err := storage.NewDefaultStorage("records", storage.WithFS(vfs.NewMem()))
	require.NoError(t, err)
	defer s.Close()

	id, err := s.Create(codec.Record{ID: 1, Value: 1})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, updateRecord(&out, s, id, codec.Record{ID: 1, Value: 2.5}))
	assert.Contains(t, out.String(), "Updated "+id.String())

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, codec.Record{ID: 1, Value: 2.5}, got)

	require.NoError(t, deleteRecord(&out, s, id))
	assert.ErrorIs(t, deleteRecord(&out, s, id), storage.ErrNotFound)
	assert.ErrorIs(t, updateRecord(&out, s, id, codec.Record{}), storage.ErrNotFound)
}

func TestRootCommand_WriteRefusesPartialRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	wire := codec.EncodeRecord(codec.Record{ID: 1, Value: 1})
	original := append(wire[:], 0x00, 0x00, 0x00)
	require.NoError(t, os.WriteFile(path, original, 0600))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--config", "", "--data-dir", dir, "--data-file", "data.bin",
		"write", "--id", "7", "--value", "1.5"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, codec.ErrTruncated)
	assert.NotContains(t, out.String(), "Wrote record")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}
