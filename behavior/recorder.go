package behavior

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/quarry-app/quarry/core"
	"github.com/quarry-app/quarry/storage"
)

const (
	defaultPoolSize   = 2
	defaultWindow     = 30 * 24 * time.Hour
	defaultEventLimit = 500
	maxFavoriteTags   = 5
)

// Recorder appends search-behavior events and aggregates them into a user
// preference profile. All failures are treated as telemetry loss: they are
// logged and swallowed, never surfaced to the search path.
type Recorder struct {
	events storage.BehaviorRepository
	items  storage.ItemRepository // optional, enables tag enrichment
	pool   *ants.Pool
	window time.Duration
	limit  int
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithItemSource enables tag enrichment: recorded events carry the selected
// item's tags, and the item's access counters are bumped on selection.
func WithItemSource(items storage.ItemRepository) Option {
	return func(r *Recorder) error {
		r.items = items
		return nil
	}
}

// WithPoolSize sets the worker pool size for async recording.
func WithPoolSize(size int) Option {
	return func(r *Recorder) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithWindow sets how far back preference aggregation looks for events.
// Default is 30 days.
func WithWindow(window time.Duration) Option {
	return func(r *Recorder) error {
		if window > 0 {
			r.window = window
		}
		return nil
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) error {
		if now != nil {
			r.now = now
		}
		return nil
	}
}

// NewRecorder creates a new behavior recorder.
func NewRecorder(events storage.BehaviorRepository, opts ...Option) (*Recorder, error) {
	if events == nil {
		return nil, ErrBehaviorRepositoryRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		events: events,
		pool:   pool,
		window: defaultWindow,
		limit:  defaultEventLimit,
		logger: slog.Default(),
		now:    time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Record appends an event for a search interaction: the user searched for
// query and acted on the item with the given id. When an item source is
// configured, the event is enriched with the item's tags and the item's
// access counters are bumped.
//
// Record never returns an error; failures are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, query string, itemId core.ID, userId string) {
	event := &core.BehaviorEvent{
		Query:     query,
		ItemId:    itemId,
		UserId:    userId,
		Timestamp: r.now().UTC(),
	}

	if r.items != nil {
		item, err := r.items.TouchKnowledgeItem(ctx, itemId, event.Timestamp)
		if err != nil {
			r.logger.Warn("failed to touch selected item", "itemId", itemId, "err", err)
		} else {
			event.Tags = item.Tags
		}
	}

	if err := r.events.AppendEvent(ctx, event); err != nil {
		r.logger.Warn("failed to record search behavior", "query", query, "itemId", itemId, "err", err)
	}
}

// RecordAsync is Record executed on the worker pool, detached from the
// caller's context. Useful on the search hot path.
func (r *Recorder) RecordAsync(query string, itemId core.ID, userId string) {
	err := r.pool.Submit(func() {
		r.Record(context.Background(), query, itemId, userId)
	})
	if err != nil {
		r.logger.Warn("failed to submit behavior recording", "query", query, "err", err)
	}
}

// UserPreferences derives a preference profile from recent behavior events.
// Favorite tags are the five most frequent tags across the user's events,
// ties broken by first appearance. On any read failure the zero-value
// profile is returned rather than an error.
func (r *Recorder) UserPreferences(ctx context.Context, userId string) core.UserPreferences {
	since := r.now().Add(-r.window)
	events, err := r.events.ListRecentEvents(ctx, since, r.limit)
	if err != nil {
		r.logger.Warn("failed to read behavior events", "userId", userId, "err", err)
		return core.UserPreferences{}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, event := range events {
		if userId != "" && event.UserId != userId {
			continue
		}
		for _, tag := range event.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if _, seen := counts[tag]; !seen {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}

	prefs := core.UserPreferences{
		FavorFrequentlyAccessed: true,
		FavorRecent:             true,
	}
	if len(counts) == 0 {
		r.logger.Debug("no tagged behavior events in window", "userId", userId, "events", len(events))
		return prefs
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return firstSeen[tags[i]] < firstSeen[tags[j]]
	})
	if len(tags) > maxFavoriteTags {
		tags = tags[:maxFavoriteTags]
	}
	prefs.FavoriteTags = tags
	return prefs
}

// Close releases the worker pool. Pending async recordings are abandoned.
func (r *Recorder) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}
