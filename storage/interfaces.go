package storage

import (
	"context"
	"time"

	"github.com/quarry-app/quarry/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ItemRepository provides operations for managing knowledge items.
type ItemRepository interface {
	Repository

	// AddKnowledgeItems adds one or more knowledge items to storage.
	// For items with an empty ID, derives a content-based ID.
	// Sets CreatedAt if not already set.
	// Returns the items with IDs and timestamps populated.
	AddKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error)

	// UpdateKnowledgeItems updates existing knowledge items.
	// Updates the UpdatedAt timestamp automatically; CreatedAt is preserved
	// from the stored item.
	// Returns ErrNotFound if any item doesn't exist.
	UpdateKnowledgeItems(ctx context.Context, items ...*core.KnowledgeItem) ([]*core.KnowledgeItem, error)

	// DeleteKnowledgeItems removes knowledge items by their IDs.
	// A deleted item never appears in future searches.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteKnowledgeItems(ctx context.Context, ids ...core.ID) error

	// GetKnowledgeItem retrieves a single knowledge item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetKnowledgeItem(ctx context.Context, id core.ID) (*core.KnowledgeItem, error)

	// ListKnowledgeItems retrieves the full item collection as one snapshot.
	// The engine operates on this snapshot per query; no pagination.
	ListKnowledgeItems(ctx context.Context) ([]*core.KnowledgeItem, error)

	// TouchKnowledgeItem records a reference to an item: increments
	// AccessCount and sets LastAccessed to at.
	// Returns the updated item, or ErrNotFound if it doesn't exist.
	TouchKnowledgeItem(ctx context.Context, id core.ID, at time.Time) (*core.KnowledgeItem, error)
}

// BehaviorRepository provides operations for the search-behavior event log.
// The log is append-only; events are never mutated.
type BehaviorRepository interface {
	Repository

	// AppendEvent appends a behavior event to the log.
	// For events with an empty ID, derives a content-based ID.
	AppendEvent(ctx context.Context, event *core.BehaviorEvent) error

	// ListRecentEvents retrieves events with Timestamp >= since, most recent
	// first, up to limit results. A non-positive limit means no limit.
	ListRecentEvents(ctx context.Context, since time.Time, limit int) ([]*core.BehaviorEvent, error)
}
