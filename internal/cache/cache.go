package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

// Draft is an analyzed but not yet confirmed record
type Draft struct {
	ID        string         `json:"id"`
	DocHash   string         `json:"doc_hash"`
	Record    extract.Record `json:"record"`
	Pages     int            `json:"pages"`
	CreatedAt time.Time      `json:"created_at"`
}

type Cache interface {
	Put(docHash string, record extract.Record, pages int) *Draft
	Get(id string) (*Draft, bool)
	Lookup(docHash string) (*Draft, bool)
	Rename(id, sourceName string) (*Draft, bool)
	Delete(id string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

// LRUCache keeps drafts by id with a secondary index by document hash,
// so re-uploading the same file returns the existing draft.
type LRUCache struct {
	drafts  *cache.Cache
	byHash  *cache.Cache
	mu      sync.Mutex
	stats   CacheStats
	maxSize int
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &LRUCache{
		drafts:  cache.New(ttl, ttl*2),
		byHash:  cache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

func (c *LRUCache) Put(docHash string, record extract.Record, pages int) *Draft {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drafts.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	d := &Draft{
		ID:        uuid.NewString(),
		DocHash:   docHash,
		Record:    record,
		Pages:     pages,
		CreatedAt: time.Now(),
	}
	c.drafts.Set(d.ID, d, cache.DefaultExpiration)
	if docHash != "" {
		c.byHash.Set(docHash, d.ID, cache.DefaultExpiration)
	}
	return d
}

func (c *LRUCache) Get(id string) (*Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.get(id)
}

func (c *LRUCache) Lookup(docHash string) (*Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, found := c.byHash.Get(docHash); found {
		return c.get(id.(string))
	}
	c.stats.LastAccess = time.Now()
	c.stats.Misses++
	return nil, false
}

func (c *LRUCache) get(id string) (*Draft, bool) {
	c.stats.LastAccess = time.Now()

	if data, found := c.drafts.Get(id); found {
		if d, ok := data.(*Draft); ok {
			c.stats.Hits++
			return d, true
		}
	}

	c.stats.Misses++
	return nil, false
}

// Rename replaces the source name of a draft. The stored draft is swapped
// for an updated copy, so pointers handed out earlier keep their values.
func (c *LRUCache) Rename(id, sourceName string) (*Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, found := c.drafts.Get(id)
	if !found {
		return nil, false
	}
	d, ok := data.(*Draft)
	if !ok {
		return nil, false
	}
	if d.Record.SourceName == sourceName {
		return d, true
	}

	renamed := *d
	renamed.Record.SourceName = sourceName
	c.drafts.Set(id, &renamed, cache.DefaultExpiration)
	return &renamed, true
}

func (c *LRUCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.delete(id)
}

func (c *LRUCache) delete(id string) {
	if data, found := c.drafts.Get(id); found {
		if d, ok := data.(*Draft); ok && d.DocHash != "" {
			c.byHash.Delete(d.DocHash)
		}
	}
	c.drafts.Delete(id)
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drafts.Flush()
	c.byHash.Flush()
	c.stats = CacheStats{}
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.drafts.ItemCount()
	return c.stats
}

// removeOldest evicts the draft closest to expiry. All drafts share one
// TTL, so this is the oldest one.
func (c *LRUCache) removeOldest() {
	items := c.drafts.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldest int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldest {
			oldestKey = key
			oldest = item.Expiration
		}
	}

	c.delete(oldestKey)
}

// DocumentHash identifies an upload by its content
func DocumentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
