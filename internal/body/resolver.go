package body

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cnharrison/harview/internal/har"
)

// DefaultCacheEntries is used when a non-positive cache size is configured
const DefaultCacheEntries = 64

// Resolver caches decoded bodies per entry and target.
// It is safe for concurrent use.
type Resolver struct {
	cache  *lru.Cache[string, *Decoded]
	logger *slog.Logger
}

// NewResolver creates a resolver holding at most size decoded bodies
func NewResolver(size int, logger *slog.Logger) (*Resolver, error) {
	if size <= 0 {
		size = DefaultCacheEntries
	}
	if logger == nil {
		logger = slog.Default()
	}
	c, err := lru.New[string, *Decoded](size)
	if err != nil {
		return nil, err
	}
	return &Resolver{cache: c, logger: logger}, nil
}

func cacheKey(entryID string, target Target) string {
	return entryID + "/" + target.String()
}

// Get returns the decoded body for target of entry.
// Decode failures are not cached so a reload can retry them.
func (r *Resolver) Get(entry har.Entry, target Target) (*Decoded, error) {
	key := cacheKey(entry.ID, target)
	if d, ok := r.cache.Get(key); ok {
		return d, nil
	}

	d, err := Resolve(Record(entry, target))
	if err != nil {
		r.logger.Warn("body decode failed", "entry", entry.ID, "target", target.String(), "error", err)
		return nil, err
	}
	r.cache.Add(key, d)
	return d, nil
}

// Purge drops every cached body; call it when a new document is loaded
func (r *Resolver) Purge() {
	r.cache.Purge()
}

// Len returns the number of cached bodies
func (r *Resolver) Len() int {
	return r.cache.Len()
}
