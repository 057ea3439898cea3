// Package cache provides the local ephemeral tier of track-flow persistence:
// a string key/value store namespaced per user. The cache is advisory, not
// authoritative; implementations swallow write failures and report read
// failures as a miss.
package cache

// Cache is the local-tier capability consumed by the dual-tier store.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key. Failures are swallowed: the local tier
	// is best-effort and the remote tier holds the authoritative state.
	Set(key, value string)
	// Delete removes key if present.
	Delete(key string)
}
