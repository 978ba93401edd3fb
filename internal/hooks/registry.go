package hooks

import (
	"fmt"

	"taskcore/internal/core"
)

// DefaultHooksRoot is a conventional location for hook plugin directories.
// The CLI does not fall back to it: it scans for hooks only when
// --hooks-dir is set.
const DefaultHooksRoot = ".taskcore/hooks"

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

func loggerOrNop(l core.Logger) core.Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// Registry stores successfully loaded hook manifests, in deterministic
// order (sorted by hook_id).
type Registry struct {
	Manifests []Manifest
	ByID      map[string]Manifest
}

// RegisterManifests validates manifests and rejects duplicate hook ids.
func RegisterManifests(manifests []Manifest) (map[string]Manifest, error) {
	byID := make(map[string]Manifest, len(manifests))
	for _, m := range manifests {
		if err := ValidateManifest(m); err != nil {
			return nil, err
		}
		if _, exists := byID[m.HookID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHookID, m.HookID)
		}
		byID[m.HookID] = m
	}
	return byID, nil
}
