package envexport

import (
	"maps"
	"slices"

	"github.com/envexport/secrets-to-env/env"
	"github.com/envexport/secrets-to-env/logger"
)

// ExportOptions controls how the merged mapping is published.
type ExportOptions struct {
	// Override replaces variables that already exist in the store. When
	// false, existing variables are left untouched and the entry is
	// skipped.
	Override bool

	// DryRun logs what would be exported without writing to the store.
	DryRun bool
}

// Export publishes the merged mapping to the store, in sorted key order so
// runs are reproducible. Values are never logged; only names and source
// kinds are. It returns the number of entries written (or, for a dry run,
// the number that would have been written).
func Export(merged map[string]Entry, store env.Store, l logger.Logger, opts ExportOptions) int {
	exported := 0

	for _, key := range slices.Sorted(maps.Keys(merged)) {
		entry := merged[key]

		if _, exists := store.Get(key); exists {
			switch {
			case !opts.Override:
				l.Info("Environment variable %q is already set, skipping it", key)
				continue
			case opts.DryRun:
				l.Warn("Environment variable %q is already set, it would be overwritten", key)
			default:
				l.Warn("Environment variable %q is already set, overwriting it", key)
			}
		}

		if opts.DryRun {
			l.Info("Would export %s %q as environment variable %q", entry.Source, entry.OriginalKey, key)
			exported++
			continue
		}

		store.Set(key, entry.Value)
		l.Info("Exported %s %q as environment variable %q", entry.Source, entry.OriginalKey, key)
		exported++
	}

	return exported
}
