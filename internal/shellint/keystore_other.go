//go:build !windows

package shellint

import (
	"github.com/fp-node-manager/fpnm/internal/errors"
)

// SystemKeyStore returns a store that fails every call: the registry only
// exists on Windows.
func SystemKeyStore() KeyStore {
	return noRegistry{}
}

type noRegistry struct{}

func errNoRegistry() error {
	return errors.Mark(errors.New("windows registry is not available on this build"), errors.ErrNotSupported)
}

func (noRegistry) SetString(string, string, string) error { return errNoRegistry() }

func (noRegistry) GetString(string, string) (string, error) { return "", errNoRegistry() }

func (noRegistry) Exists(string) (bool, error) { return false, errNoRegistry() }

func (noRegistry) DeleteTree(string) error { return errNoRegistry() }
