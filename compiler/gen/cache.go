package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/buildgen/compiler/load"
)

// CacheFile is the fingerprint index persisted in the target directory.
const CacheFile = ".buildgen.cache"

// Cache maps definition names to the fingerprint of their last emitted
// schema, letting the writer skip definitions that did not change.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	dirty   bool
}

// LoadCache reads the fingerprint index at path. A missing or unreadable
// index yields an empty cache; the cache is an optimization, never a
// correctness dependency.
func LoadCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]string)}
	buf, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]string
	if err := msgpack.Unmarshal(buf, &entries); err != nil {
		return c
	}
	c.entries = entries
	return c
}

// Hit reports whether the definition's fingerprint matches the index.
func (c *Cache) Hit(name, fingerprint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fingerprint != "" && c.entries[name] == fingerprint
}

// Put records the definition's fingerprint.
func (c *Cache) Put(name, fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[name] != fingerprint {
		c.entries[name] = fingerprint
		c.dirty = true
	}
}

// Save persists the index if it changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	buf, err := msgpack.Marshal(c.entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, buf, 0o644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// fingerprintSchema is the canonical shape hashed by Fingerprint. Source
// positions are excluded so moving a definition does not invalidate it;
// import paths are included as a sorted list because they affect emission.
type fingerprintSchema struct {
	Name    string
	Salt    []string
	Fields  []fingerprintField
	Imports []string
}

type fingerprintField struct {
	Name        string
	Tokens      []string
	Annotations []load.Annotation
}

// Fingerprint hashes the normalized shape of a schema plus any salt values
// (typically the output package and header, which also shape the artifact).
func Fingerprint(s *load.Schema, salt ...string) string {
	fp := fingerprintSchema{Name: s.Name, Salt: salt}
	imports := make(map[string]string)
	for _, f := range s.Fields {
		fp.Fields = append(fp.Fields, fingerprintField{
			Name:        f.Name,
			Tokens:      f.Type.Tokens,
			Annotations: f.Annotations,
		})
		for sel, path := range f.Type.Imports {
			imports[sel] = path
		}
	}
	for sel, path := range imports {
		fp.Imports = append(fp.Imports, sel+"="+path)
	}
	sort.Strings(fp.Imports)
	buf, err := msgpack.Marshal(fp)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
