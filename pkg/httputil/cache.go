package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] together with the entry when it is
// older than the TTL. The entry can still be revalidated or served stale.
var ErrExpired = errors.New("cache entry expired")

// Entry is one cached response.
type Entry struct {
	URL       string    `json:"url"`
	ETag      string    `json:"etag,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Body      []byte    `json:"body"`
}

// Cache stores responses as JSON files named by the SHA-256 of the URL.
// A TTL of 0 means entries never expire. Instances in different processes
// may share a directory; a Cache is not safe for concurrent use on its own.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a cache in dir, creating the directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create http cache dir: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Get returns the entry for url.
//
//   - (entry, true, nil): fresh hit
//   - (entry, true, ErrExpired): stale hit
//   - (zero, false, nil): miss
func (c *Cache) Get(url string) (Entry, bool, error) {
	data, err := os.ReadFile(c.path(url))
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, nil
	}
	if c.ttl > 0 && c.now().Sub(e.FetchedAt) > c.ttl {
		return e, true, ErrExpired
	}
	return e, true, nil
}

// Set stores e under e.URL.
func (c *Cache) Set(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	tmp := c.path(e.URL) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path(e.URL))
}

func (c *Cache) path(url string) string {
	h := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".json")
}
