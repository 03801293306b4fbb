package badger

import (
	"context"
	"encoding/json"
	"sort"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hamed0406/domainwatch/internal/domain"
)

var adminPrefix = []byte("admin/")

// AdminStore persists verified admins as JSON values keyed by phone number.
type AdminStore struct {
	db *badger.DB
}

func NewAdminStore(db *badger.DB) *AdminStore {
	return &AdminStore{db: db}
}

func adminKey(phone string) []byte {
	return append(append([]byte{}, adminPrefix...), phone...)
}

func (s *AdminStore) Put(ctx context.Context, a domain.Admin) error {
	val, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(adminKey(a.Phone), val)
	})
}

func (s *AdminStore) Get(ctx context.Context, phone string) (*domain.Admin, error) {
	var out *domain.Admin
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(adminKey(phone))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var a domain.Admin
			if err := json.Unmarshal(val, &a); err != nil {
				return err
			}
			out = &a
			return nil
		})
	})
	return out, err
}

func (s *AdminStore) List(ctx context.Context) ([]domain.Admin, error) {
	var out []domain.Admin
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = adminPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var a domain.Admin
				if err := json.Unmarshal(val, &a); err != nil {
					return err
				}
				out = append(out, a)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}
