package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"taskcore/internal/core"
)

// DiscoverAndRegister scans a hooks root directory for hook plugin
// subdirectories (non-recursive), loads/validates their manifests, and
// registers them.
//
// Behavior:
//   - If root does not exist: returns an empty registry, no errors.
//   - Directories missing manifest.json are skipped.
//   - Invalid manifests are skipped with logged errors.
//   - Duplicate hook ids are rejected (later entries skipped).
//   - Final registry order is deterministic by hook_id.
func DiscoverAndRegister(root string, log core.Logger) (Registry, []error) {
	log = loggerOrNop(log)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Registry{ByID: map[string]Manifest{}}, nil
		}
		log.Printf("hooks: failed to read hooks root %q: %v", root, err)
		return Registry{ByID: map[string]Manifest{}}, []error{err}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	reg := Registry{ByID: make(map[string]Manifest)}
	var errs []error

	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		hookDir := filepath.Join(root, ent.Name())
		manifestPath := filepath.Join(hookDir, "manifest.json")

		if _, statErr := os.Stat(manifestPath); statErr != nil {
			if os.IsNotExist(statErr) {
				continue
			}
			err := fmt.Errorf("stat manifest.json in %q: %w", hookDir, statErr)
			log.Printf("hooks: %v", err)
			errs = append(errs, err)
			continue
		}

		m, loadErr := LoadManifestFile(manifestPath)
		if loadErr != nil {
			log.Printf("hooks: invalid hook in %q: %v", hookDir, loadErr)
			errs = append(errs, loadErr)
			continue
		}

		if _, exists := reg.ByID[m.HookID]; exists {
			err := fmt.Errorf("%w: %s", ErrDuplicateHookID, m.HookID)
			log.Printf("hooks: %v", err)
			errs = append(errs, err)
			continue
		}
		reg.ByID[m.HookID] = m
	}

	reg.Manifests = make([]Manifest, 0, len(reg.ByID))
	for _, m := range reg.ByID {
		reg.Manifests = append(reg.Manifests, m)
	}
	sort.Slice(reg.Manifests, func(i, j int) bool { return reg.Manifests[i].HookID < reg.Manifests[j].HookID })

	return reg, errs
}
