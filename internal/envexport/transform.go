package envexport

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/envexport/secrets-to-env/logger"
)

// reservedExcludes are always excluded, on top of any caller-supplied
// patterns. The platform exports its own authentication token under this
// name and re-exporting it is never what anybody wants.
var reservedExcludes = []string{"github_token"}

// TransformConfig controls how raw input names become final environment
// variable names. It is built once per run and never mutated.
type TransformConfig struct {
	// Include patterns; a key must match at least one to survive. A nil
	// slice means no include filtering at all.
	Include []string

	// Exclude patterns; a key matching any is dropped. The reserved
	// platform names are always applied in addition to these.
	Exclude []string

	// RemovePrefix is stripped from the start of each key, matched
	// case-insensitively as a literal.
	RemovePrefix string

	// Prefix is prepended to every key after RemovePrefix is stripped.
	Prefix string

	// Convert names an entry in the case conversion table, or is empty
	// for no conversion.
	Convert string

	// ConvertPrefix applies the case conversion to the prefix too. When
	// false, only the part of the key after Prefix is converted and the
	// prefix keeps its literal casing.
	ConvertPrefix bool
}

// converters maps convert modes to pure string transforms. Unknown modes are
// rejected up front rather than silently passed through.
var converters = map[string]func(string) string{
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"camel":    strcase.ToLowerCamel,
	"constant": strcase.ToScreamingSnake,
	"pascal":   strcase.ToCamel,
	"snake":    strcase.ToSnake,
}

func converter(mode string) (func(string) string, error) {
	conv, ok := converters[mode]
	if !ok {
		modes := slices.Sorted(maps.Keys(converters))
		return nil, fmt.Errorf("unknown convert value %q: valid values are %s", mode, strings.Join(modes, ", "))
	}
	return conv, nil
}

// effectiveExcludes builds the exclude pattern list for one invocation,
// fresh each time so no state leaks between runs in a long-lived process.
func effectiveExcludes(cfg TransformConfig) []string {
	return append(slices.Clone(reservedExcludes), cfg.Exclude...)
}

func compilePatterns(kind string, patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern %q: %w", kind, pattern, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func matchesAny(key string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// Transform applies the configured filtering, prefix manipulation and case
// conversion to every raw entry, and returns the surviving entries keyed by
// their final names. Raw keys are unique per source, but two raw keys may
// still transform to the same final key; the later one (in sorted raw-key
// order) wins, which mirrors plain map semantics.
func Transform(raw map[string]string, source Source, cfg TransformConfig, l logger.Logger) (map[string]Entry, error) {
	// Validate the convert mode before touching any entries, even when
	// there is nothing to transform.
	var convert func(string) string
	if cfg.Convert != "" {
		var err error
		if convert, err = converter(cfg.Convert); err != nil {
			return nil, err
		}
	}

	var include []*regexp.Regexp
	if cfg.Include != nil {
		var err error
		if include, err = compilePatterns("include", cfg.Include); err != nil {
			return nil, err
		}
		l.Debug("Using include list: %q", cfg.Include)
	}

	excludePatterns := effectiveExcludes(cfg)
	exclude, err := compilePatterns("exclude", excludePatterns)
	if err != nil {
		return nil, err
	}
	l.Debug("Using exclude list: %q", excludePatterns)

	entries := make(map[string]Entry, len(raw))

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]

		if include != nil && !matchesAny(key, include) {
			l.Debug("Skipping %s %q: not in the include list", source, key)
			continue
		}

		if matchesAny(key, exclude) {
			l.Debug("Skipping %s %q: in the exclude list", source, key)
			continue
		}

		finalKey := key

		if cfg.RemovePrefix != "" && hasPrefixFold(finalKey, cfg.RemovePrefix) {
			finalKey = finalKey[len(cfg.RemovePrefix):]
			l.Debug("Removed prefix %q from %s %q", cfg.RemovePrefix, source, key)
		}

		finalKey = cfg.Prefix + finalKey

		if convert != nil {
			if cfg.ConvertPrefix || cfg.Prefix == "" {
				finalKey = convert(finalKey)
			} else {
				finalKey = cfg.Prefix + convert(finalKey[len(cfg.Prefix):])
			}
		}

		entries[finalKey] = Entry{
			FinalKey:    finalKey,
			Value:       value,
			Source:      source,
			OriginalKey: key,
		}
	}

	return entries, nil
}

// hasPrefixFold is strings.HasPrefix under simple Unicode case-folding.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
