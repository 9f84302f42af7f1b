package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend *Backend
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) (*ItemRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &ItemRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ItemRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddKnowledgeItems adds one or more knowledge items to storage.
func (r *ItemRepository) AddKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Truncate to the stored precision so a written item compares equal
		// to its read-back copy.
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, item := range items {
			if err := core.ValidateKnowledgeItem(item); err != nil {
				return err
			}

			// Content-derived ID unless the caller brought one
			if item.Id == "" {
				item.Id = core.IDFromContent(item.Title + "\x00" + item.Content)
			}

			if item.CreatedAt.IsZero() {
				item.CreatedAt = now
			}
			item.UpdatedAt = now

			key := makeKnowledgeItemKey(item.Id)
			if err := tx.Set(key, storage.MarshalKnowledgeItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// UpdateKnowledgeItems updates existing knowledge items.
// CreatedAt is preserved from the stored item; the created timestamp is
// immutable once set.
func (r *ItemRepository) UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			key := makeKnowledgeItemKey(item.Id)

			old, err := r.readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			item.CreatedAt = old.CreatedAt
			item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

			if err := tx.Set(key, storage.MarshalKnowledgeItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return items, err
}

// DeleteKnowledgeItems removes knowledge items by their IDs.
func (r *ItemRepository) DeleteKnowledgeItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeKnowledgeItemKey(id)

			item, err := r.readKnowledgeItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetKnowledgeItem retrieves a single knowledge item by ID.
func (r *ItemRepository) GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error) {
	var result *core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeKnowledgeItemKey(id)
		var err error
		result, err = r.readKnowledgeItem(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListKnowledgeItems retrieves the full item collection as one snapshot.
func (r *ItemRepository) ListKnowledgeItems(ctx context.Context) ([]*core.KnowledgeItem, error) {
	var results []*core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(knowledgeItemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item *core.KnowledgeItem
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalKnowledgeItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)

	return results, err
}

// TouchKnowledgeItem records a reference to an item: increments AccessCount
// and sets LastAccessed.
func (r *ItemRepository) TouchKnowledgeItem(ctx context.Context, id core.ID, at time.Time) (*core.KnowledgeItem, error) {
	var result *core.KnowledgeItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeKnowledgeItemKey(id)

		item, err := r.readKnowledgeItem(tx, key)
		if err != nil {
			return err
		}
		if item == nil {
			return storage.ErrNotFound
		}

		item.AccessCount++
		item.LastAccessed = at.UTC().Truncate(time.Microsecond)
		item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

		if err := tx.Set(key, storage.MarshalKnowledgeItem(item)); err != nil {
			return err
		}

		result = item
		return tx.Commit()
	}, true)

	return result, err
}

// readKnowledgeItem reads an item inside a transaction.
// Returns nil (no error) when the key does not exist.
func (r *ItemRepository) readKnowledgeItem(tx *badger.Txn, key []byte) (*core.KnowledgeItem, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var item *core.KnowledgeItem
	err = entry.Value(func(val []byte) error {
		var err error
		item, err = storage.UnmarshalKnowledgeItem(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
