package shellint

import (
	"sort"
	"strings"
	"sync"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// memKeyStore is an in-memory KeyStore. failOn makes SetString fail for
// any key path with that suffix.
type memKeyStore struct {
	mu     sync.Mutex
	values map[string]map[string]string
	failOn string
}

func newMemKeyStore() *memKeyStore {
	return &memKeyStore{values: make(map[string]map[string]string)}
}

func (m *memKeyStore) SetString(path, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn != "" && strings.HasSuffix(path, m.failOn) {
		return errors.IOf(errors.New("access is denied"), `creating key HKCU\%s`, path)
	}
	// creating a key creates its parents
	for p := path; p != ""; p = parentKey(p) {
		if _, ok := m.values[p]; !ok {
			m.values[p] = make(map[string]string)
		}
	}
	m.values[path][name] = value
	return nil
}

func (m *memKeyStore) GetString(path, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vals, ok := m.values[path]
	if !ok {
		return "", errors.Mark(errors.Newf("key %s not found", path), errors.ErrNotFound)
	}
	v, ok := vals[name]
	if !ok {
		return "", errors.Mark(errors.Newf("value %q not found", name), errors.ErrNotFound)
	}
	return v, nil
}

func (m *memKeyStore) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.values[path]
	return ok, nil
}

func (m *memKeyStore) DeleteTree(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := range m.values {
		if p == path || strings.HasPrefix(p, path+`\`) {
			delete(m.values, p)
		}
	}
	return nil
}

// keysUnder lists stored keys below prefix, sorted.
func (m *memKeyStore) keysUnder(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for p := range m.values {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func parentKey(path string) string {
	i := strings.LastIndex(path, `\`)
	if i < 0 {
		return ""
	}
	return path[:i]
}
