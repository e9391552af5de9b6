package state

// History holds the undo (past) and redo (future) stacks of board snapshots.
// The top of each stack is the last element. History is not safe for
// concurrent use on its own; Board serializes access to it.
type History struct {
	past   []Snapshot
	future []Snapshot
	limit  int
}

// NewHistory creates an empty history. A limit <= 0 keeps every snapshot;
// otherwise the oldest past entries are evicted beyond limit.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Record pushes the pre-mutation snapshot onto past and drops the future:
// a fresh edit branches history and redo is no longer available.
func (h *History) Record(before Snapshot) {
	h.past = append(h.past, before)
	if h.limit > 0 && len(h.past) > h.limit {
		drop := len(h.past) - h.limit
		clear(h.past[:drop])
		h.past = h.past[drop:]
	}
	clear(h.future)
	h.future = h.future[:0]
}

// Undo pops past and pushes current onto future. It returns the snapshot to
// restore and false when past is empty.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past[len(h.past)-1] = Snapshot{}
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, true
}

// Redo pops future and pushes current onto past. It returns the snapshot to
// restore and false when future is empty.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	next := h.future[len(h.future)-1]
	h.future[len(h.future)-1] = Snapshot{}
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}

// Reset discards both stacks.
func (h *History) Reset() {
	h.past = nil
	h.future = nil
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the past and future stacks.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}
