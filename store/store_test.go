package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/chainpurge/nlp/ngram"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCodecFor(t *testing.T) {
	assert.Equal(t, "json", CodecFor("chain.json").Name())
	assert.Equal(t, "json", CodecFor("chain").Name())
	assert.Equal(t, "msgpack", CodecFor("chain.msgpack").Name())
	assert.Equal(t, "msgpack", CodecFor("/tmp/Chain.MPK").Name())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "chain.json", `{"start <s>": {"hello": 2}, "<s> hello": {"world": 1}}`)
	m, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ngram.Model{
		"start <s>": {"hello": 2},
		"<s> hello": {"world": 1},
	}, m)
}

func TestLoadEmptyObject(t *testing.T) {
	m, err := New(writeFile(t, "chain.json", "{}\n")).Load()
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "chain.json")).Load()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadRejectsMalformed(t *testing.T) {
	docs := map[string]string{
		"not json":       `{"start": {"a": 1}`,
		"null":           `null`,
		"array":          `[1, 2]`,
		"flat counts":    `{"start": 3}`,
		"empty prefix":   `{"start": {}}`,
		"zero count":     `{"start": {"a": 0}}`,
		"negative count": `{"start": {"a": -2}}`,
		"string count":   `{"start": {"a": "1"}}`,
		"fractional":     `{"start": {"a": 1.5}}`,
	}
	for name, doc := range docs {
		_, err := New(writeFile(t, "chain.json", doc)).Load()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidChain), "%s: %v", name, err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := writeFile(t, "chain.json", `{"old": {"entry": 9}, "other": {"x": 1}}`)
	s := New(path)
	m, err := s.Load()
	require.NoError(t, err)

	delete(m, "old")
	m["other"]["x"] = 2
	require.NoError(t, s.Save(m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"other": {"x": 2}}`, string(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])

	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestSaveNilModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.json")
	require.NoError(t, New(path).Save(nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestMsgpackRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.msgpack")
	s := New(path)
	m := ngram.Model{"start": {"Hi": 3}, "hi": {"there": 1, "you": 2}}
	require.NoError(t, s.Save(m))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMsgpackRejectsBadCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.mpk")
	s := New(path)
	require.NoError(t, s.Save(ngram.Model{"start": {}}))

	_, err := s.Load()
	assert.True(t, errors.Is(err, ErrInvalidChain))
	assert.True(t, errors.Is(err, ngram.ErrEmptyPrefix))
}

func TestMsgpackRejectsGarbage(t *testing.T) {
	_, err := New(writeFile(t, "chain.msgpack", "\xc1\xc1")).Load()
	assert.True(t, errors.Is(err, ErrInvalidChain))
}

func TestModelFromRaw(t *testing.T) {
	m, err := modelFromRaw(map[string]any{
		"start":  map[string]any{"hi": float64(3), "Hi": int64(1)},
		"hi you": map[string]any{"there": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, ngram.Model{
		"start":  {"hi": 3, "Hi": 1},
		"hi you": {"there": 2},
	}, m)

	_, err = modelFromRaw(map[string]any{"start": map[string]any{"hi": 2.5}})
	assert.ErrorIs(t, err, ErrInvalidChain)
	_, err = modelFromRaw(map[string]any{"start": "hi"})
	assert.ErrorIs(t, err, ErrInvalidChain)
	_, err = modelFromRaw([]any{})
	assert.ErrorIs(t, err, ErrInvalidChain)
}

func TestSaveWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chain.json")
	err := New(path).Save(ngram.Model{"start": {"hi": 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}
