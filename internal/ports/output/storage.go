package output

// KeyValueStore persists small client-side values (locale, session) so the
// storage medium can change without touching the stores.
//
// Get reports ok=false for absent keys. Remove of an absent key is not an error.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
