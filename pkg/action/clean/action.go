package clean

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmmoran/elementgen/pkg/manifest"
)

// Clean removes every file of the current generation recorded in the
// manifest and clears it. Files already gone are ignored.
func Clean(manifestPath string) ([]string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if m.Current == nil {
		return nil, nil
	}

	removed := make([]string, 0, len(m.Current.Files))
	var errs []error
	for _, p := range m.Current.Paths() {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
			slog.Default().With("file", p).Debug("removed")
		case errors.Is(err, os.ErrNotExist):
		default:
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}
	if len(errs) > 0 {
		return removed, errors.Join(errs...)
	}

	m.Record(manifest.Generation{Namespace: m.Current.Namespace, ModuleName: m.Current.ModuleName})
	if err = m.Save(manifestPath); err != nil {
		return removed, err
	}
	return removed, nil
}
