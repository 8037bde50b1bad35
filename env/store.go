package env

import "os"

// Store is a read+write view of an environment variable namespace. The
// exporter depends on this rather than reaching for the ambient process
// environment directly, so tests can run against an in-memory Environment.
type Store interface {
	// Get returns the value for key and whether it is present.
	Get(key string) (string, bool)

	// Set stores value under key and returns the value.
	Set(key, value string) string
}

// OS is a Store backed by the real process environment.
type OS struct{}

func (OS) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OS) Set(key, value string) string {
	// os.Setenv only fails for malformed names, which can't round-trip
	// through the host platform's inputs anyway.
	_ = os.Setenv(key, value)
	return value
}
