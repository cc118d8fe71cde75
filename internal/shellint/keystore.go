package shellint

// KeyStore is the subset of HKEY_CURRENT_USER the registry strategy needs.
// Paths are relative to HKEY_CURRENT_USER and use backslash separators.
type KeyStore interface {
	// SetString creates path if needed and sets a string value. An empty
	// name addresses the key's default value.
	SetString(path, name, value string) error

	// GetString reads a string value. A missing key or value is marked
	// errors.ErrNotFound.
	GetString(path, name string) (string, error)

	// Exists reports whether the key at path exists.
	Exists(path string) (bool, error)

	// DeleteTree removes path and all of its subkeys. A missing key is not
	// an error.
	DeleteTree(path string) error
}
