// Package feed reconciles the item collections a viewer can see (owned,
// public and favorites) into one deduplicated union with per-item liked
// state, so the three projections can never disagree on a shared item's
// counters.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/models"

	"github.com/google/uuid"
)

// Source is the content/engagement store the engine reconciles over.
type Source interface {
	ListOwned(ctx context.Context, viewerID uuid.UUID) ([]models.ContentItem, error)
	ListPublic(ctx context.Context) ([]models.ContentItem, error)
	LikeStatus(ctx context.Context, viewerID, itemID uuid.UUID) (liked bool, count int, err error)
	Like(ctx context.Context, viewerID, itemID uuid.UUID) (count int, err error)
	Unlike(ctx context.Context, viewerID, itemID uuid.UUID) (count int, err error)
}

// ItemView is one row of a projection.
type ItemView struct {
	models.ContentItem
	IsOwned    bool `json:"is_owned"`
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// Projection tabs.
const (
	TabAll       = "all"
	TabMine      = "mine"
	TabFavorites = "favorites"
)

// Engine holds the reconciled snapshot for one viewer. All reads come from
// the cached union; switching tabs never refetches, and favorites is
// recomputed from liked state on every read.
type Engine struct {
	source   Source
	viewerID uuid.UUID

	mu     sync.Mutex
	snap   Snapshot
	loaded bool
}

func NewEngine(source Source, viewerID uuid.UUID) *Engine {
	return &Engine{source: source, viewerID: viewerID}
}

// Load fetches the two source collections concurrently, merges them and
// resolves the viewer's like state for every item in the union. A failure
// of one collection degrades to the other; only a total failure is an
// error. Load replaces any previous snapshot.
func (e *Engine) Load(ctx context.Context) error {
	const op = "feed.Load"

	var (
		wg        sync.WaitGroup
		owned     []models.ContentItem
		public    []models.ContentItem
		ownedErr  error
		publicErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		owned, ownedErr = e.source.ListOwned(ctx, e.viewerID)
	}()
	go func() {
		defer wg.Done()
		public, publicErr = e.source.ListPublic(ctx)
	}()
	wg.Wait()

	if ownedErr != nil && publicErr != nil {
		return apperr.E(apperr.Unavailable, op, "Failed to load feed", ownedErr)
	}
	// A partial feed beats no feed: log the failed side and continue.
	if ownedErr != nil {
		slog.Error("owned items fetch failed, serving public only", "action", op, "error", ownedErr.Error(), "user_id", e.viewerID.String())
	}
	if publicErr != nil {
		slog.Error("public items fetch failed, serving owned only", "action", op, "error", publicErr.Error(), "user_id", e.viewerID.String())
	}

	snap := Apply(Snapshot{}, UnionLoaded{Owned: owned, Public: public})

	// Like-status lookups fan out concurrently; completion order is not
	// meaningful, so results are keyed by item ID and applied only after
	// every lookup has settled.
	events := make([]Event, len(snap.Order))
	var lookups sync.WaitGroup
	for i, id := range snap.Order {
		lookups.Add(1)
		go func(i int, id uuid.UUID) {
			defer lookups.Done()
			liked, count, err := e.source.LikeStatus(ctx, e.viewerID, id)
			if err != nil {
				events[i] = StatusFailed{ID: id}
				return
			}
			events[i] = StatusResolved{ID: id, Liked: liked, Count: count}
		}(i, id)
	}
	lookups.Wait()

	for _, ev := range events {
		snap = Apply(snap, ev)
	}

	e.mu.Lock()
	e.snap = snap
	e.loaded = true
	e.mu.Unlock()
	return nil
}

// Loaded reports whether the engine holds a snapshot.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Projection returns the requested tab from the cached union.
func (e *Engine) Projection(tab string) ([]ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return nil, apperr.E(apperr.Unavailable, "feed.Projection", "Feed not loaded")
	}

	var keep func(ItemState) bool
	switch tab {
	case TabAll, "":
		keep = func(ItemState) bool { return true }
	case TabMine:
		keep = func(st ItemState) bool { return st.Owned }
	case TabFavorites:
		keep = func(st ItemState) bool { return st.Liked }
	default:
		return nil, apperr.E(apperr.InvalidArgument, "feed.Projection", "tab must be all, mine, or favorites")
	}

	views := make([]ItemView, 0, len(e.snap.Order))
	for _, id := range e.snap.Order {
		st := e.snap.Items[id]
		if keep(st) {
			views = append(views, view(st))
		}
	}
	return views, nil
}

// ToggleLike flips the viewer's like for an item: the optimistic change is
// visible immediately, the server count overwrites it on success, and a
// failure rolls back to the exact pre-toggle state. A toggle for an item
// with a mutation still in flight returns Conflict.
func (e *Engine) ToggleLike(ctx context.Context, itemID uuid.UUID) (ItemView, error) {
	const op = "feed.ToggleLike"

	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ItemView{}, apperr.E(apperr.Unavailable, op, "Feed not loaded")
	}
	st, ok := e.snap.Items[itemID]
	if !ok {
		e.mu.Unlock()
		return ItemView{}, apperr.E(apperr.NotFound, op, "Content not found in feed")
	}
	if st.Pending {
		e.mu.Unlock()
		return ItemView{}, apperr.E(apperr.Conflict, op, "A like for this item is already in flight")
	}
	wasLiked := st.Liked
	e.snap = Apply(e.snap, LikeRequested{ID: itemID})
	e.mu.Unlock()

	var (
		count int
		err   error
	)
	if wasLiked {
		count, err = e.source.Unlike(ctx, e.viewerID, itemID)
	} else {
		count, err = e.source.Like(ctx, e.viewerID, itemID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.snap = Apply(e.snap, LikeFailed{ID: itemID})
		slog.Error("like mutation failed, rolled back", "action", op, "error", err.Error(), "content_id", itemID)
		return view(e.snap.Items[itemID]), apperr.E(apperr.Unavailable, op, "Failed to update like status", err)
	}
	e.snap = Apply(e.snap, LikeConfirmed{ID: itemID, Count: count})
	return view(e.snap.Items[itemID]), nil
}

func view(st ItemState) ItemView {
	return ItemView{
		ContentItem: st.Item,
		IsOwned:     st.Owned,
		IsLiked:     st.Liked,
		LikesCount:  st.Count,
	}
}
