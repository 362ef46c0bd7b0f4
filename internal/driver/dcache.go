package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cxxpy/internal/astio"
	"cxxpy/internal/diag"
	"cxxpy/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key.
type Digest [32]byte

// DiskCache хранит результаты понижения файлов на диске по ключу из
// содержимого входа и конфигурации.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one lowered file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema  uint16
	Version string

	Units       []Unit
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey hashes everything the output of a file depends on. The
// diagnostics cap is part of it: a bag truncated under a small cap must not
// be replayed to a run with a larger one.
func CacheKey(data []byte, format astio.Format, fingerprint string, headers bool, maxDiagnostics int) Digest {
	if maxDiagnostics <= 0 {
		maxDiagnostics = diag.DefaultMax
	}
	h := sha256.New()
	h.Write([]byte("cxxpy/" + strconv.Itoa(int(diskCacheSchemaVersion)) + "/" + version.Version + "\x00"))
	h.Write([]byte(string(format) + "\x00" + fingerprint + "\x00" + strconv.FormatBool(headers) + "\x00"))
	h.Write([]byte("max=" + strconv.Itoa(maxDiagnostics) + "\x00"))
	h.Write(data)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости и очистки: подкаталог "units".
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
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
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func resultToPayload(res *Result) *DiskPayload {
	if res == nil {
		return nil
	}
	return &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Version:     version.Version,
		Units:       res.Units,
		Diagnostics: res.Bag.Items(),
	}
}

func payloadToResult(path string, payload *DiskPayload, opts Options) *Result {
	if payload == nil || payload.Schema != diskCacheSchemaVersion || payload.Version != version.Version {
		return nil
	}
	bag := diag.NewBag(max(opts.MaxDiagnostics, len(payload.Diagnostics)))
	for _, d := range payload.Diagnostics {
		bag.Add(d)
	}
	return &Result{
		Path:    path,
		Units:   payload.Units,
		Bag:     bag,
		Headers: opts.Headers,
		Cached:  true,
	}
}
