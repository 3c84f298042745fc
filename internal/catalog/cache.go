package catalog

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// cachedItemEntry wraps an item definition with version metadata for
// cache invalidation
type cachedItemEntry struct {
	Version  string                 `json:"version"`
	Item     *domain.ItemDefinition `json:"item"`
	CachedAt time.Time              `json:"cached_at"`
}

// cachedCaseEntry wraps a case definition with version metadata
type cachedCaseEntry struct {
	Version  string                 `json:"version"`
	Case     *domain.CaseDefinition `json:"case"`
	CachedAt time.Time              `json:"cached_at"`
}

// cachedKeyEntry wraps a key definition with version metadata
type cachedKeyEntry struct {
	Version  string                `json:"version"`
	Key      *domain.KeyDefinition `json:"key"`
	CachedAt time.Time             `json:"cached_at"`
}

// defCache provides in-memory LRU caches for catalog lookups with
// time-based expiration and version-based invalidation.
type defCache struct {
	items *expirable.LRU[string, *cachedItemEntry]
	cases *expirable.LRU[string, *cachedCaseEntry]
	keys  *expirable.LRU[string, *cachedKeyEntry]
}

func newDefCache(size int, ttl time.Duration) *defCache {
	return &defCache{
		items: expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
		cases: expirable.NewLRU[string, *cachedCaseEntry](size, nil, ttl),
		keys:  expirable.NewLRU[string, *cachedKeyEntry](size, nil, ttl),
	}
}

func (c *defCache) GetItem(itemDefID int) (*domain.ItemDefinition, bool) {
	key := strconv.Itoa(itemDefID)
	entry, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.items.Remove(key)
		return nil, false
	}
	return entry.Item, true
}

func (c *defCache) SetItem(def *domain.ItemDefinition) {
	c.items.Add(strconv.Itoa(def.ID), &cachedItemEntry{
		Version:  CacheSchemaVersion,
		Item:     def,
		CachedAt: time.Now(),
	})
}

func (c *defCache) GetCase(caseID int) (*domain.CaseDefinition, bool) {
	key := strconv.Itoa(caseID)
	entry, found := c.cases.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.cases.Remove(key)
		return nil, false
	}
	return entry.Case, true
}

func (c *defCache) SetCase(def *domain.CaseDefinition) {
	c.cases.Add(strconv.Itoa(def.ID), &cachedCaseEntry{
		Version:  CacheSchemaVersion,
		Case:     def,
		CachedAt: time.Now(),
	})
}

func (c *defCache) GetKey(keyID int) (*domain.KeyDefinition, bool) {
	key := strconv.Itoa(keyID)
	entry, found := c.keys.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.keys.Remove(key)
		return nil, false
	}
	return entry.Key, true
}

func (c *defCache) SetKey(def *domain.KeyDefinition) {
	c.keys.Add(strconv.Itoa(def.ID), &cachedKeyEntry{
		Version:  CacheSchemaVersion,
		Key:      def,
		CachedAt: time.Now(),
	})
}

// Clear removes all entries from every cache.
func (c *defCache) Clear() {
	c.items.Purge()
	c.cases.Purge()
	c.keys.Purge()
}
