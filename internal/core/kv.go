package core

// KV is a durable key-value byte store used for settings and the
// leaderboard. Implementations live in the storage package.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}
