package envexport

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Strategy selects how name collisions between the secrets and vars sources
// are resolved.
type Strategy string

const (
	// PreferSecrets keeps the secret's entry on collision.
	PreferSecrets Strategy = "prefer-secrets"

	// PreferVars keeps the var's entry on collision.
	PreferVars Strategy = "prefer-vars"

	// Fail aborts the entire run if any collision exists, before anything
	// is exported.
	Fail Strategy = "error"

	// Warn keeps the secret's entry on collision, like PreferSecrets, but
	// each collision is reported as a warning.
	Warn Strategy = "warn"
)

// ParseStrategy maps the on_collision input to a Strategy. An empty input
// selects the default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return PreferSecrets, nil
	case PreferSecrets, PreferVars, Fail, Warn:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown on-collision value %q: valid values are %s, %s, %s, %s", s, PreferSecrets, PreferVars, Fail, Warn)
	}
}

// Collision records one final key present in both sources, together with the
// original key on each side.
type Collision struct {
	FinalKey  string
	SecretKey string
	VarKey    string
}

// CollisionError is returned under the Fail strategy when any collision is
// detected. It lists every colliding key, not just the first.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	msgs := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		msgs = append(msgs, fmt.Sprintf("Collision detected for key %q (secret %q, var %q)", c.FinalKey, c.SecretKey, c.VarKey))
	}
	return strings.Join(msgs, "; ")
}

// Resolve merges the two independently transformed mappings. It returns the
// merged mapping and every collision found, in sorted final-key order. It is
// a pure function of its inputs: warnings for the Warn strategy are the
// caller's job to log.
func Resolve(secrets, vars map[string]Entry, strategy Strategy) (map[string]Entry, []Collision, error) {
	var collisions []Collision
	for _, key := range slices.Sorted(maps.Keys(secrets)) {
		if v, ok := vars[key]; ok {
			collisions = append(collisions, Collision{
				FinalKey:  key,
				SecretKey: secrets[key].OriginalKey,
				VarKey:    v.OriginalKey,
			})
		}
	}

	merged := make(map[string]Entry, len(secrets)+len(vars))

	switch strategy {
	case PreferSecrets, Warn, "":
		maps.Copy(merged, vars)
		maps.Copy(merged, secrets)

	case PreferVars:
		maps.Copy(merged, secrets)
		maps.Copy(merged, vars)

	case Fail:
		if len(collisions) > 0 {
			return nil, collisions, &CollisionError{Collisions: collisions}
		}
		maps.Copy(merged, vars)
		maps.Copy(merged, secrets)

	default:
		return nil, nil, fmt.Errorf("unknown on-collision value %q", strategy)
	}

	return merged, collisions, nil
}
