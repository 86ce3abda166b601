package diskcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pitwall/f1insight/log"
)

// Cache stores raw API responses on disk, one file per request. The
// directory must be configured explicitly, there is no implicit default.
type Cache struct {
	dir string
	l   *log.Logger
}

// Info describes the current cache contents.
type Info struct {
	Dir     string
	Entries int
	Size    uint64
	Oldest  time.Time
}

const entrySuffix = ".json"

func New(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, l: log.Default().Named("timing.cache")}, nil
}

// Key builds the cache key for a request URL.
// The hex encoded hash doubles as the file name.
func Key(arg string) string {
	hasher := sha256.New()
	hasher.Write([]byte(arg))
	return hex.EncodeToString(hasher.Sum(nil))
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	c.l.Debug("cache hit", log.String("key", key))
	return data, true
}

// Put stores a response body. The write goes through a temp file so a
// concurrent Get never sees a partial entry.
func (c *Cache) Put(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.entryPath(key))
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+entrySuffix)
}

func (c *Cache) Info() (*Info, error) {
	entries, err := c.listEntries()
	if err != nil {
		return nil, err
	}
	info := &Info{Dir: c.dir, Entries: len(entries)}
	for _, entry := range entries {
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		info.Size += uint64(fi.Size())
		if info.Oldest.IsZero() || fi.ModTime().Before(info.Oldest) {
			info.Oldest = fi.ModTime()
		}
	}
	return info, nil
}

// Purge removes all entries and reports how many were deleted.
func (c *Cache) Purge() (int, error) {
	entries, err := c.listEntries()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			c.l.Warn("could not remove cache entry",
				log.String("entry", entry.Name()), log.ErrorField(err))
			continue
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) listEntries() ([]os.DirEntry, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	entries := make([]os.DirEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != entrySuffix {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
