package diskcache

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestCacheRoundtrip(t *testing.T) {
	c, err := New(t.TempDir())
	assert.NilError(t, err)

	key := Key("https://example.com/v1/laps?session_key=1")
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	assert.NilError(t, c.Put(key, []byte(`[{"lap_number":1}]`)))

	data, ok := c.Get(key)
	assert.Assert(t, ok)
	assert.Equal(t, string(data), `[{"lap_number":1}]`)
}

func TestCacheRequiresDir(t *testing.T) {
	_, err := New("")
	assert.ErrorContains(t, err, "not configured")
}

func TestCacheInfoAndPurge(t *testing.T) {
	c, err := New(t.TempDir())
	assert.NilError(t, err)
	assert.NilError(t, c.Put(Key("a"), []byte("payload-a")))
	assert.NilError(t, c.Put(Key("b"), []byte("payload-b")))

	info, err := c.Info()
	assert.NilError(t, err)
	assert.Equal(t, info.Entries, 2)
	assert.Assert(t, info.Size > 0)
	assert.Assert(t, !info.Oldest.IsZero())

	removed, err := c.Purge()
	assert.NilError(t, err)
	assert.Equal(t, removed, 2)

	info, err = c.Info()
	assert.NilError(t, err)
	assert.Equal(t, info.Entries, 0)
}

func TestKeyIsStable(t *testing.T) {
	if Key("x") != Key("x") {
		t.Error("same input must produce the same key")
	}
	if Key("x") == Key("y") {
		t.Error("different inputs must produce different keys")
	}
}
