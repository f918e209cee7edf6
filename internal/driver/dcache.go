package driver

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"dac/internal/decl"
	"dac/internal/declfile"
	"dac/internal/diag"
	"dac/internal/project"
	"dac/internal/source"
)

// Current schema version - increment when DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists check outcomes per fixture content digest, so an
// unchanged fixture renders its previous results without re-binding.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiag is one serialised diagnostic.
type CachedDiag struct {
	Code     uint16
	Severity uint8
	File     uint32
	Start    uint32
	End      uint32
	Message  string
}

// CachedActor stores one actor's outcome.
type CachedActor struct {
	Name       string
	Violations int
	Diags      []CachedDiag
}

// DiskPayload is the cached result of one fixture check.
type DiskPayload struct {
	Schema      uint16
	Fixture     string
	ContentHash project.Digest
	Actors      []CachedActor
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "runs", hexKey+".mp")
}

// Put serializes and writes a payload, replacing the entry atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
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
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; ok=false means miss or schema mismatch.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// CheckFixtureCached consults the cache before checking. A hit keyed by the
// fixture's content digest replays the stored results without binding or
// re-checking; a miss runs the full check and stores the outcome. The
// returned bool reports whether the results came from the cache.
func CheckFixtureCached(ctx context.Context, path string, cache *DiskCache, opts Options) (*source.FileSet, []ActorResult, bool, error) {
	fs := source.NewFileSet()
	var fileID source.FileID
	load := func() error {
		var err error
		fileID, err = fs.Load(path)
		return err
	}
	var err error
	if opts.Timer != nil {
		err = opts.Timer.Measure("load", path, load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, nil, false, err
	}
	// The key covers the extra-module list too: a manifest change must not
	// replay results computed under a different module set.
	key := project.HashContent(fs.Get(fileID).Content)
	if len(opts.ExtraModules) > 0 {
		key = project.Combine(key, project.HashContent([]byte(strings.Join(opts.ExtraModules, "\x00"))))
	}

	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok && payload.ContentHash == key {
		return fs, FromPayload(&payload, opts.bagCap()), true, nil
	}

	world, err := declfile.Bind(fs, fileID, opts.ExtraModules)
	if err != nil {
		return nil, nil, false, err
	}
	results, err := CheckWorld(ctx, world, opts)
	if err != nil {
		return nil, nil, false, err
	}
	// A failed write only costs the next run a re-check.
	_ = cache.Put(key, ToPayload(filepath.Base(path), key, results))
	return fs, results, false, nil
}

// ToPayload converts check results into their cacheable form.
func ToPayload(fixture string, contentHash project.Digest, results []ActorResult) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Fixture:     fixture,
		ContentHash: contentHash,
		Actors:      make([]CachedActor, 0, len(results)),
	}
	for i := range results {
		actor := CachedActor{
			Name:       results[i].Name,
			Violations: results[i].Violations,
			Diags:      make([]CachedDiag, 0, results[i].Bag.Len()),
		}
		for _, d := range results[i].Bag.Items() {
			actor.Diags = append(actor.Diags, CachedDiag{
				Code:     uint16(d.Code),
				Severity: uint8(d.Severity),
				File:     uint32(d.Primary.File),
				Start:    d.Primary.Start,
				End:      d.Primary.End,
				Message:  d.Message,
			})
		}
		payload.Actors = append(payload.Actors, actor)
	}
	return payload
}

// FromPayload reconstructs actor results from a cached payload. Actor IDs
// are not persisted; rendering only needs names, spans, and messages.
func FromPayload(payload *DiskPayload, bagCap int) []ActorResult {
	results := make([]ActorResult, 0, len(payload.Actors))
	for _, actor := range payload.Actors {
		bag := diag.NewBag(max(bagCap, len(actor.Diags)))
		for _, d := range actor.Diags {
			span := source.Span{
				File:  source.FileID(d.File),
				Start: d.Start,
				End:   d.End,
			}
			bag.Add(diag.New(diag.Severity(d.Severity), diag.Code(d.Code), span, d.Message))
		}
		results = append(results, ActorResult{
			Actor:      decl.NoDeclID,
			Name:       actor.Name,
			Bag:        bag,
			Violations: actor.Violations,
		})
	}
	return results
}
