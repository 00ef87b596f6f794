package domain

// Storage keys for the persisted session
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserEmail    = "userEmail"
)

// KeyValueStore is persistent string storage for client state.
// Get reports whether the key exists.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}
