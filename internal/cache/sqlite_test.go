package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	m := NewMemory()

	_, ok := m.Get("missing")
	assert.False(t, ok)

	m.Set("k", "v1")
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	m.Set("k", "v2")
	v, _ = m.Get("k")
	assert.Equal(t, "v2", v)

	m.Delete("k")
	_, ok = m.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestSQLiteGetSetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := NewSQLite(path)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v1")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	// Upsert overwrites in place.
	c.Set("k", "v2")
	v, _ = c.Get("k")
	assert.Equal(t, "v2", v)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := NewSQLite(path)
	require.NoError(t, err)
	c.Set("trackflow:u1:tracked", `{"42":"connect"}`)
	require.NoError(t, c.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	v, ok := reopened.Get("trackflow:u1:tracked")
	require.True(t, ok)
	assert.Equal(t, `{"42":"connect"}`, v)
}
