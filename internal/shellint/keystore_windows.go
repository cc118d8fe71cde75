//go:build windows

package shellint

import (
	"golang.org/x/sys/windows/registry"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// SystemKeyStore returns the HKEY_CURRENT_USER registry.
func SystemKeyStore() KeyStore {
	return hkcu{}
}

type hkcu struct{}

func (hkcu) SetString(path, name, value string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, path, registry.SET_VALUE)
	if err != nil {
		return errors.IOf(err, `creating key HKCU\%s`, path)
	}
	defer k.Close()

	if err := k.SetStringValue(name, value); err != nil {
		return errors.IOf(err, `setting value %q on HKCU\%s`, name, path)
	}
	return nil
}

func (hkcu) GetString(path, name string) (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return "", markNotExist(err, `opening key HKCU\%s`, path)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", markNotExist(err, `reading value %q on HKCU\%s`, name, path)
	}
	return v, nil
}

func (hkcu) Exists(path string) (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, errors.IOf(err, `opening key HKCU\%s`, path)
	}
	k.Close()
	return true, nil
}

func (s hkcu) DeleteTree(path string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.ENUMERATE_SUB_KEYS)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return errors.IOf(err, `opening key HKCU\%s`, path)
	}
	names, err := k.ReadSubKeyNames(-1)
	k.Close()
	if err != nil {
		return errors.IOf(err, `listing subkeys of HKCU\%s`, path)
	}

	// DeleteKey refuses keys with children
	for _, name := range names {
		if err := s.DeleteTree(path + `\` + name); err != nil {
			return err
		}
	}

	if err := registry.DeleteKey(registry.CURRENT_USER, path); err != nil && err != registry.ErrNotExist {
		return errors.IOf(err, `deleting key HKCU\%s`, path)
	}
	return nil
}

func markNotExist(err error, format string, args ...any) error {
	if err == registry.ErrNotExist {
		return errors.Mark(errors.Wrapf(err, format, args...), errors.ErrNotFound)
	}
	return errors.IOf(err, format, args...)
}
