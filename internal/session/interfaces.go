package session

import "github.com/MKhiriev/go-profile-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Cache maps live session tokens to profile snapshots. It is a performance
// cache, never the source of truth; entries are lost on restart.
//
// Implementations must be safe for concurrent use. Values are copied in and
// out, so callers never share memory with a cache entry.
type Cache interface {
	// Put stores a snapshot of profile under token.
	Put(token string, profile models.Profile)

	// Get returns a copy of the snapshot stored under token.
	Get(token string) (models.Profile, bool)

	// Remove forgets token. Removing an unknown token is a no-op.
	Remove(token string)

	// Mutate applies fn to the entry for token under the write lock.
	// Returns false if no entry exists.
	Mutate(token string, fn func(*models.Profile)) bool

	// MutateUser applies fn to every entry belonging to username and
	// returns how many entries were touched.
	MutateUser(username string, fn func(*models.Profile)) int

	// RemoveUser forgets every token belonging to username and returns them.
	RemoveUser(username string) []string

	// Entries returns a token → username listing of the whole cache.
	Entries() map[string]string
}
