package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Entry is one cached review keyed by submission hash.
type Entry struct {
	Key       string    `json:"key"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	TTL       int       `json:"ttl"`
}

// Cache is a file-based cache for finished review results. A disabled cache
// is a valid value whose Get always misses.
type Cache struct {
	dir        string
	ttlSeconds int
	enabled    bool
}

// New creates a Cache rooted at dir. An empty dir selects the OS-appropriate
// default cache directory.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{}, nil
	}
	if dir == "" {
		d, err := defaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir, ttlSeconds: ttlSeconds, enabled: true}, nil
}

// BuildKey hashes the identifying parts of a submission into a cache key.
func BuildKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%x", h)
}

// Get retrieves a cached payload. Expired entries are removed and reported
// as misses.
func (c *Cache) Get(key string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return "", false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}
	if c.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(c.ttlSeconds)*time.Second {
		os.Remove(c.entryPath(key))
		return "", false
	}
	return entry.Payload, true
}

// Put stores a payload under key.
func (c *Cache) Put(key, payload string) error {
	if !c.enabled {
		return nil
	}
	entry := Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: time.Now(),
		TTL:       c.ttlSeconds,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(key), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled || c.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

// Enabled reports whether the cache is active.
func (c *Cache) Enabled() bool { return c.enabled }

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func defaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "codecritic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "codecritic"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "codecritic", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "codecritic", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "codecritic"), nil
	}
}
