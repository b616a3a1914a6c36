package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Схема полезной нагрузки; поднять при изменении формата CachePayload.
const cacheSchemaVersion uint16 = 1

// Digest идентифицирует результат форматирования: SHA-256 от отпечатка
// конфигурации и байтов исходника.
type Digest [sha256.Size]byte

// CacheKey derives the lookup digest for one source file under one
// configuration fingerprint.
func CacheKey(fingerprint, content []byte) Digest {
	h := sha256.New()
	h.Write(fingerprint)
	h.Write([]byte{0})
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// CachePayload stores one formatted output on disk.
type CachePayload struct {
	Schema uint16
	Output []byte
}

// Cache хранит готовый вывод форматтера по Digest на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes the disk cache at the standard XDG location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt initializes the disk cache at an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "out" — чтобы каталог кэша можно было чистить выборочно
	return filepath.Join(c.dir, "out", hexKey+".mp")
}

// Put serializes and writes a payload, replacing atomically via rename.
func (c *Cache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload; the second return is false on a clean miss.
// Записи с чужой схемой считаются промахом.
func (c *Cache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
