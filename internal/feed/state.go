package feed

import (
	"github.com/mehedialhasan/tadabbur-backend/internal/models"

	"github.com/google/uuid"
)

// ItemState is the engine's view of one item: the authoritative copy from
// whichever source collection won the merge, plus the viewer's engagement
// state layered on top.
type ItemState struct {
	Item  models.ContentItem
	Owned bool
	Liked bool
	Count int

	// Pending marks an in-flight like mutation; a second toggle for the
	// same item is refused until it settles. prevLiked/prevCount hold the
	// pre-toggle values for rollback.
	Pending   bool
	prevLiked bool
	prevCount int
}

// Snapshot is the reconciled union for one viewer. Order preserves merge
// order (owned items first, then public-only items) so projections are
// stable across reads.
type Snapshot struct {
	Order []uuid.UUID
	Items map[uuid.UUID]ItemState
}

// Event is a state transition input. Apply is pure, so any sequence of
// events can be replayed deterministically in tests.
type Event interface {
	isEvent()
}

// UnionLoaded replaces the snapshot with the merged source collections.
// Deduplication is by item ID with the owned copy winning: the owner sees
// their authoritative copy, never the public-cache one.
type UnionLoaded struct {
	Owned  []models.ContentItem
	Public []models.ContentItem
}

// StatusResolved records a successful per-item like-status lookup.
type StatusResolved struct {
	ID    uuid.UUID
	Liked bool
	Count int
}

// StatusFailed records a failed lookup; the item degrades to not-liked
// with its last-known aggregate count.
type StatusFailed struct {
	ID uuid.UUID
}

// LikeRequested applies the optimistic toggle: liked flips and the count
// moves by one, with the previous values retained for rollback.
type LikeRequested struct {
	ID uuid.UUID
}

// LikeConfirmed settles an in-flight mutation with the server count.
type LikeConfirmed struct {
	ID    uuid.UUID
	Count int
}

// LikeFailed rolls an in-flight mutation back to the pre-toggle state.
type LikeFailed struct {
	ID uuid.UUID
}

func (UnionLoaded) isEvent()    {}
func (StatusResolved) isEvent() {}
func (StatusFailed) isEvent()   {}
func (LikeRequested) isEvent()  {}
func (LikeConfirmed) isEvent()  {}
func (LikeFailed) isEvent()     {}

// Apply returns the snapshot that results from ev. The input snapshot is
// not mutated.
func Apply(snap Snapshot, ev Event) Snapshot {
	next := clone(snap)

	switch e := ev.(type) {
	case UnionLoaded:
		next = Snapshot{Items: make(map[uuid.UUID]ItemState, len(e.Owned)+len(e.Public))}
		for _, item := range e.Owned {
			next.Order = append(next.Order, item.ID)
			next.Items[item.ID] = ItemState{Item: item, Owned: true, Count: item.LikeCount}
		}
		for _, item := range e.Public {
			if _, seen := next.Items[item.ID]; seen {
				continue
			}
			next.Order = append(next.Order, item.ID)
			next.Items[item.ID] = ItemState{Item: item, Count: item.LikeCount}
		}

	case StatusResolved:
		if st, ok := next.Items[e.ID]; ok {
			st.Liked = e.Liked
			st.Count = e.Count
			next.Items[e.ID] = st
		}

	case StatusFailed:
		if st, ok := next.Items[e.ID]; ok {
			st.Liked = false
			st.Count = st.Item.LikeCount
			next.Items[e.ID] = st
		}

	case LikeRequested:
		if st, ok := next.Items[e.ID]; ok && !st.Pending {
			st.prevLiked = st.Liked
			st.prevCount = st.Count
			st.Pending = true
			if st.Liked {
				st.Liked = false
				st.Count--
			} else {
				st.Liked = true
				st.Count++
			}
			if st.Count < 0 {
				st.Count = 0
			}
			next.Items[e.ID] = st
		}

	case LikeConfirmed:
		if st, ok := next.Items[e.ID]; ok && st.Pending {
			st.Pending = false
			st.Count = e.Count
			next.Items[e.ID] = st
		}

	case LikeFailed:
		if st, ok := next.Items[e.ID]; ok && st.Pending {
			st.Pending = false
			st.Liked = st.prevLiked
			st.Count = st.prevCount
			next.Items[e.ID] = st
		}
	}

	return next
}

func clone(snap Snapshot) Snapshot {
	next := Snapshot{
		Order: make([]uuid.UUID, len(snap.Order)),
		Items: make(map[uuid.UUID]ItemState, len(snap.Items)),
	}
	copy(next.Order, snap.Order)
	for id, st := range snap.Items {
		next.Items[id] = st
	}
	return next
}
