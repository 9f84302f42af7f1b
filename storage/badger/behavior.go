package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
)

// BehaviorRepository implements storage.BehaviorRepository for BadgerDB.
// Events are keyed by timestamp so recency scans are a single reverse
// iteration.
type BehaviorRepository struct {
	backend *Backend
}

var _ storage.BehaviorRepository = (*BehaviorRepository)(nil)

// NewBehaviorRepository creates a new BehaviorRepository.
func NewBehaviorRepository(backend *Backend) (*BehaviorRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &BehaviorRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *BehaviorRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *BehaviorRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendEvent appends a behavior event to the log.
func (r *BehaviorRepository) AppendEvent(ctx context.Context, event *core.BehaviorEvent) error {
	if event != nil && event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := core.ValidateBehaviorEvent(event); err != nil {
		return err
	}

	if event.Id == "" {
		event.Id = core.IDFromContent(event.Query + "\x00" + string(event.ItemId) + "\x00" + event.Timestamp.UTC().Format(time.RFC3339Nano))
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBehaviorEventKey(event.Timestamp, event.Id)
		if err := tx.Set(key, storage.MarshalBehaviorEvent(event)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListRecentEvents retrieves events with Timestamp >= since, most recent
// first, up to limit results. A non-positive limit means no limit.
func (r *BehaviorRepository) ListRecentEvents(ctx context.Context, since time.Time, limit int) ([]*core.BehaviorEvent, error) {
	var results []*core.BehaviorEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the newest possible event key, then walk backwards
		startKey := makePartialBehaviorEventKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(behaviorEventPrefix + ":")

		// A zero since means no lower bound; its UnixMicro would be negative
		// and wrap when encoded.
		var sinceKey []byte
		if !since.IsZero() {
			sinceKey = makePartialBehaviorEventKey(since)
		}

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()

			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}
			if sinceKey != nil && slices.Compare(key, sinceKey) < 0 {
				break
			}

			var event *core.BehaviorEvent
			err := iter.Item().Value(func(val []byte) error {
				var err error
				event, err = storage.UnmarshalBehaviorEvent(val)
				return err
			})
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
				if limit > 0 && len(results) >= limit {
					break
				}
			}
		}
		return nil
	}, false)

	return results, err
}
