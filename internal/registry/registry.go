// Package registry provides a global registry of sprite-pack factories.
// The built-in pack registers itself in init(); user packs are discovered
// from a directory at start-up, so the platform can list and load packs
// without hardcoded paths.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vovakirdan/maenggu/internal/sprite"
)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Title  string
	Source string
}

// Factory loads a fresh copy of a sprite pack.
type Factory func() (*sprite.Pack, error)

type entry struct {
	factory Factory
	info    PackInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a pack factory to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id, source string, f Factory) {
	if err := add(id, source, f); err != nil {
		panic(err.Error())
	}
}

func add(id, source string, f Factory) error {
	// Load once up front so broken packs never reach the list.
	p, err := f()
	if err != nil {
		return fmt.Errorf("registry: pack %q: %w", id, err)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		return fmt.Errorf("registry: pack %q already registered", id)
	}

	entries[id] = entry{
		factory: f,
		info:    PackInfo{ID: id, Title: p.Name(), Source: source},
	}
	return nil
}

// RegisterDir registers every subdirectory of root holding a sprite.json.
// A missing root is not an error. Packs that fail to load are skipped and
// reported in the returned error slice.
func RegisterDir(root string) (int, []error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, []error{fmt.Errorf("registry: reading %s: %w", root, err)}
	}

	var (
		count int
		errs  []error
	)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		dir := filepath.Join(root, d.Name())
		if _, err := os.Stat(filepath.Join(dir, sprite.ManifestFile)); err != nil {
			continue
		}

		if err := add(d.Name(), dir, func() (*sprite.Pack, error) { return sprite.Load(dir) }); err != nil {
			errs = append(errs, err)
			continue
		}
		count++
	}
	return count, errs
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create loads a pack by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (*sprite.Pack, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	return e.factory()
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

func init() {
	Register(sprite.BuiltinName, "builtin", sprite.Builtin)
}
