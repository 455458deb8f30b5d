// Package storage is the durable key-value layer the stores persist to.
// It mirrors browser-local storage semantics: loads fail soft, saves are
// best effort, and the application must stay usable if every write fails.
package storage

// KV is a durable string-key store for JSON-serialized state.
//
// Load returns the stored bytes and true, or false when the key is absent
// or its contents are unusable. It never returns an error; corrupt data is
// indistinguishable from absent data to callers.
//
// Save overwrites the value for key. Callers treat a returned error as a
// lost write, not a failed operation: the in-memory state stands.
type KV interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte) error
}

// Discard drops every write and holds nothing. Used when persistence is
// disabled.
type Discard struct{}

func (Discard) Load(string) ([]byte, bool) { return nil, false }
func (Discard) Save(string, []byte) error  { return nil }
