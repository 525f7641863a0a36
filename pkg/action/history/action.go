package history

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/elementgen/pkg/manifest"
)

// List returns the manifest as recorded.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// Diff loads the manifest and returns a textual diff of the file lists of
// the previous and current generations.
func Diff(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.Current == nil || m.Previous == nil {
		return "", fmt.Errorf("no current/previous generations recorded")
	}

	return cmp.Diff(m.Previous.Paths(), m.Current.Paths()), nil
}
