package badger

import (
	"context"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
)

var ignorePrefix = []byte("ignored/")

// IgnoreStore persists the ignored-hostname set as empty-valued keys under
// a common prefix.
type IgnoreStore struct {
	db *badger.DB
}

func NewIgnoreStore(db *badger.DB) *IgnoreStore {
	return &IgnoreStore{db: db}
}

func ignoreKey(hostname string) []byte {
	return append(append([]byte{}, ignorePrefix...), hostname...)
}

func (s *IgnoreStore) Add(ctx context.Context, hostname string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ignoreKey(hostname), nil)
	})
}

func (s *IgnoreStore) Remove(ctx context.Context, hostname string) (bool, error) {
	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := ignoreKey(hostname)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return txn.Delete(key)
	})
	return found, err
}

func (s *IgnoreStore) Contains(ctx context.Context, hostname string) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(ignoreKey(hostname))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (s *IgnoreStore) List(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = ignorePrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().Key()
			out = append(out, string(k[len(ignorePrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
