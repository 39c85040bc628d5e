package credentials

// Store defines the interface for durable credential storage.
// A single named slot holds the serialized credential; absence and
// corruption are indistinguishable to callers.
type Store interface {
	// Save writes the credential, overwriting any prior value.
	// No validation is performed on the credential itself.
	Save(credential *Credential) error

	// Load returns the previously saved credential, or nil when no
	// credential exists or the stored value cannot be parsed. It never
	// returns a parse error to the caller.
	Load() (*Credential, error)

	// Clear removes the stored credential unconditionally. Clearing an
	// empty store is not an error.
	Clear() error
}
