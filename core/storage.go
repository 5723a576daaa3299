package core

// Persistent key-value state for the MintGate contract. Collections are
// stored as JSON values under prefixed keys, one prefix per collection.
// The InMemoryStore backs unit tests and mocked runtimes, the SnapshotStore
// adds file persistence for node deployments.

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// KVStore is the storage primitive supplied by the host runtime.
type KVStore interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Iterator(start, end []byte) Iterator
}

// Iterator walks a key range in ascending key order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// -----------------------------------------------------------------------------
// In-memory store
// -----------------------------------------------------------------------------

type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string][]byte)}
}

func (s *InMemoryStore) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[string(key)] = v
	return nil
}

func (s *InMemoryStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *InMemoryStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, string(key))
	return nil
}

// Iterator returns all keys with the given prefix, ordered bytewise so that
// range scans are deterministic. A nil end means no upper bound.
func (s *InMemoryStore) Iterator(start, end []byte) Iterator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		kb := []byte(k)
		if !bytes.HasPrefix(kb, start) {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	it := &memIterator{index: -1}
	for _, k := range keys {
		it.keys = append(it.keys, []byte(k))
		it.values = append(it.values, s.data[k])
	}
	return it
}

type memIterator struct {
	keys   [][]byte
	values [][]byte
	index  int
}

func (it *memIterator) Next() bool {
	it.index++
	return it.index < len(it.keys)
}

func (it *memIterator) Key() []byte   { return it.keys[it.index] }
func (it *memIterator) Value() []byte { return it.values[it.index] }
func (it *memIterator) Error() error  { return nil }
func (it *memIterator) Close() error  { return nil }

// -----------------------------------------------------------------------------
// Snapshot store
// -----------------------------------------------------------------------------

// SnapshotStore wraps an InMemoryStore with a JSON snapshot on disk. Every
// mutation rewrites the snapshot, which is acceptable for the contract's
// transaction volume and keeps recovery trivial.
type SnapshotStore struct {
	mu   sync.Mutex
	mem  *InMemoryStore
	path string
}

// OpenSnapshotStore loads the snapshot at path, creating an empty store if
// the file does not exist yet.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	s := &SnapshotStore{mem: NewInMemoryStore(), path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Infof("store: starting with empty snapshot at %s", path)
			return s, nil
		}
		return nil, err
	}
	var snap map[string][]byte
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	for k, v := range snap {
		s.mem.data[k] = v
	}
	logrus.Infof("store: loaded %d keys from %s", len(snap), path)
	return s, nil
}

func (s *SnapshotStore) flush() error {
	s.mem.mu.RLock()
	raw, err := json.Marshal(s.mem.data)
	s.mem.mu.RUnlock()
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *SnapshotStore) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mem.Set(key, value); err != nil {
		return err
	}
	return s.flush()
}

func (s *SnapshotStore) Get(key []byte) ([]byte, error) {
	return s.mem.Get(key)
}

func (s *SnapshotStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mem.Delete(key); err != nil {
		return err
	}
	return s.flush()
}

func (s *SnapshotStore) Iterator(start, end []byte) Iterator {
	return s.mem.Iterator(start, end)
}
