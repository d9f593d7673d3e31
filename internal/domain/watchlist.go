package domain

// Watchlist is an ordered, in-memory sequence of movies plus a 1-indexed
// cursor marking the current entry. Entries are addressed externally by list
// number (index + 1). The zero value is not usable; construct with NewWatchlist.
//
// The watchlist is not safe for concurrent use. Callers that serve concurrent
// requests must hold a single lock for the full duration of each operation.
type Watchlist struct {
	entries []Movie
	current int
}

// NewWatchlist returns an empty watchlist with the cursor at position 1.
func NewWatchlist() *Watchlist {
	return &Watchlist{current: 1}
}

// Len returns the number of entries.
func (w *Watchlist) Len() int {
	return len(w.entries)
}

// TotalDuration returns the summed duration in minutes of all entries.
// It is 0 for an empty watchlist.
func (w *Watchlist) TotalDuration() int {
	var total int
	for i := range w.entries {
		total += w.entries[i].Duration
	}
	return total
}

// CurrentPosition returns the 1-indexed cursor position.
func (w *Watchlist) CurrentPosition() int {
	return w.current
}

// Contains reports whether a movie with the given id is present.
func (w *Watchlist) Contains(id int64) bool {
	return w.indexOf(id) >= 0
}

// Add appends a movie to the end of the watchlist.
func (w *Watchlist) Add(m Movie) error {
	if w.indexOf(m.ID) >= 0 {
		return ErrDuplicateEntry
	}
	w.entries = append(w.entries, m)
	return nil
}

// RemoveByID removes the entry with the given id, preserving the relative
// order of the remaining entries.
func (w *Watchlist) RemoveByID(id int64) error {
	if len(w.entries) == 0 {
		return ErrEmptyWatchlist
	}
	idx := w.indexOf(id)
	if idx < 0 {
		return ErrNotInWatchlist
	}
	w.removeAt(idx)
	return nil
}

// RemoveByListNumber removes the entry at the given 1-indexed position.
func (w *Watchlist) RemoveByListNumber(n int) error {
	if len(w.entries) == 0 {
		return ErrEmptyWatchlist
	}
	if n < 1 || n > len(w.entries) {
		return ErrInvalidListNumber
	}
	w.removeAt(n - 1)
	return nil
}

// Clear empties the watchlist and resets the cursor. It returns the number
// of entries removed; clearing an already empty watchlist is not an error.
func (w *Watchlist) Clear() int {
	removed := len(w.entries)
	w.entries = nil
	w.current = 1
	return removed
}

// All returns a copy of the ordered entries.
func (w *Watchlist) All() ([]Movie, error) {
	if len(w.entries) == 0 {
		return nil, ErrEmptyWatchlist
	}
	out := make([]Movie, len(w.entries))
	copy(out, w.entries)
	return out, nil
}

// ByID returns the entry with the given id.
func (w *Watchlist) ByID(id int64) (Movie, error) {
	if len(w.entries) == 0 {
		return Movie{}, ErrEmptyWatchlist
	}
	idx := w.indexOf(id)
	if idx < 0 {
		return Movie{}, ErrNotInWatchlist
	}
	return w.entries[idx], nil
}

// ByListNumber returns the entry at the given 1-indexed position.
func (w *Watchlist) ByListNumber(n int) (Movie, error) {
	if len(w.entries) == 0 {
		return Movie{}, ErrEmptyWatchlist
	}
	if n < 1 || n > len(w.entries) {
		return Movie{}, ErrInvalidListNumber
	}
	return w.entries[n-1], nil
}

// Current returns the entry at the cursor position.
func (w *Watchlist) Current() (Movie, error) {
	if len(w.entries) == 0 {
		return Movie{}, ErrEmptyWatchlist
	}
	return w.entries[w.current-1], nil
}

// GoTo moves the cursor to the given 1-indexed position.
func (w *Watchlist) GoTo(n int) error {
	if len(w.entries) == 0 {
		return ErrEmptyWatchlist
	}
	if n < 1 || n > len(w.entries) {
		return ErrInvalidListNumber
	}
	w.current = n
	return nil
}

// MoveToBeginning moves the entry with the given id to list number 1. The
// relative order of all other entries is preserved.
func (w *Watchlist) MoveToBeginning(id int64) error {
	return w.MoveToListNumber(id, 1)
}

// MoveToEnd moves the entry with the given id to the last list number.
func (w *Watchlist) MoveToEnd(id int64) error {
	return w.MoveToListNumber(id, len(w.entries))
}

// MoveToListNumber moves the entry with the given id to the 1-indexed target
// position n. The target is validated against the full list length before the
// entry is removed, so moving an entry to the last position is always valid.
func (w *Watchlist) MoveToListNumber(id int64, n int) error {
	if len(w.entries) == 0 {
		return ErrEmptyWatchlist
	}
	idx := w.indexOf(id)
	if idx < 0 {
		return ErrNotInWatchlist
	}
	if n < 1 || n > len(w.entries) {
		return ErrInvalidListNumber
	}

	m := w.entries[idx]
	w.entries = append(w.entries[:idx], w.entries[idx+1:]...)

	target := n - 1
	w.entries = append(w.entries, Movie{})
	copy(w.entries[target+1:], w.entries[target:])
	w.entries[target] = m
	return nil
}

// Swap exchanges the positions of two entries, leaving all others untouched.
func (w *Watchlist) Swap(id1, id2 int64) error {
	if len(w.entries) == 0 {
		return ErrEmptyWatchlist
	}
	if id1 == id2 {
		return ErrSelfSwap
	}
	i := w.indexOf(id1)
	if i < 0 {
		return ErrNotInWatchlist
	}
	j := w.indexOf(id2)
	if j < 0 {
		return ErrNotInWatchlist
	}
	w.entries[i], w.entries[j] = w.entries[j], w.entries[i]
	return nil
}

func (w *Watchlist) indexOf(id int64) int {
	for i := range w.entries {
		if w.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// removeAt deletes the entry at index idx and adjusts the cursor: removing an
// entry before the cursor shifts it down by one, and the cursor is clamped to
// [1, length]. Emptying the list resets the cursor to 1.
func (w *Watchlist) removeAt(idx int) {
	w.entries = append(w.entries[:idx], w.entries[idx+1:]...)

	if len(w.entries) == 0 {
		w.current = 1
		return
	}
	if idx+1 < w.current {
		w.current--
	}
	if w.current > len(w.entries) {
		w.current = len(w.entries)
	}
	if w.current < 1 {
		w.current = 1
	}
}
