package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

func TestPutGet(t *testing.T) {
	c := NewCache(10, time.Minute)
	rec := extract.NewRecord("karar.pdf")

	d := c.Put("hash-1", rec, 3)
	require.NotEmpty(t, d.ID)

	got, ok := c.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got.Record)
	assert.Equal(t, 3, got.Pages)

	byHash, ok := c.Lookup("hash-1")
	require.True(t, ok)
	assert.Equal(t, d.ID, byHash.ID)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestDelete(t *testing.T) {
	c := NewCache(10, time.Minute)
	d := c.Put("hash-1", extract.NewRecord("a"), 1)

	c.Delete(d.ID)

	_, ok := c.Get(d.ID)
	assert.False(t, ok)
	_, ok = c.Lookup("hash-1")
	assert.False(t, ok)
}

func TestRename(t *testing.T) {
	c := NewCache(10, time.Minute)
	d := c.Put("hash-1", extract.NewRecord("a.pdf"), 1)

	renamed, ok := c.Rename(d.ID, "b.pdf")
	require.True(t, ok)
	assert.Equal(t, d.ID, renamed.ID)
	assert.Equal(t, "b.pdf", renamed.Record.SourceName)
	assert.Equal(t, "a.pdf", d.Record.SourceName)

	got, ok := c.Lookup("hash-1")
	require.True(t, ok)
	assert.Equal(t, "b.pdf", got.Record.SourceName)

	_, ok = c.Rename("missing", "c.pdf")
	assert.False(t, ok)
}

func TestEvictsOldest(t *testing.T) {
	c := NewCache(2, time.Minute)

	first := c.Put("a", extract.NewRecord("a"), 1)
	time.Sleep(2 * time.Millisecond)
	second := c.Put("b", extract.NewRecord("b"), 1)
	time.Sleep(2 * time.Millisecond)
	third := c.Put("c", extract.NewRecord("c"), 1)

	_, ok := c.Get(first.ID)
	assert.False(t, ok)
	_, ok = c.Lookup("a")
	assert.False(t, ok)

	_, ok = c.Get(second.ID)
	assert.True(t, ok)
	_, ok = c.Get(third.ID)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Size)
}

func TestExpiry(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	d := c.Put("a", extract.NewRecord("a"), 1)

	time.Sleep(50 * time.Millisecond)

	_, ok := c.Get(d.ID)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	c.Put("a", extract.NewRecord("a"), 1)
	c.Get("missing")

	c.Clear()

	assert.Equal(t, CacheStats{}, c.Stats())
}

func TestDocumentHash(t *testing.T) {
	a := DocumentHash([]byte("%PDF-1.4 bir"))
	b := DocumentHash([]byte("%PDF-1.4 iki"))

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, DocumentHash([]byte("%PDF-1.4 bir")))
}
