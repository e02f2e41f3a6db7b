// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

// pendingQueue holds tile sets waiting to be painted, oldest first.
//
// No two entries request the same page and region: push replaces a
// matching entry in place. pendingQueue is not synchronized; the
// generator guards it with its queue lock.
type pendingQueue struct {
	sets []*TileSet
}

// push appends set, or replaces the waiting set for the same page and
// region at its current position. The superseded set is returned so the
// caller can release it; nil means set was appended.
func (q *pendingQueue) push(set *TileSet) (superseded *TileSet) {
	for i, s := range q.sets {
		if s.SameRegion(set) {
			q.sets[i] = set
			return s
		}
	}
	q.sets = append(q.sets, set)
	return nil
}

// popFront removes and returns the oldest set, or nil if the queue is empty.
func (q *pendingQueue) popFront() *TileSet {
	if len(q.sets) == 0 {
		return nil
	}
	set := q.sets[0]
	q.sets[0] = nil
	q.sets = q.sets[1:]
	if len(q.sets) == 0 {
		q.sets = nil
	}
	return set
}

// removePage removes every waiting set that belongs to page, keeping the
// order of the rest. The removed sets are returned.
func (q *pendingQueue) removePage(page Page) []*TileSet {
	var removed []*TileSet
	kept := q.sets[:0]
	for _, s := range q.sets {
		if s.page == page {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, s)
	}
	clear(q.sets[len(kept):])
	q.sets = kept
	return removed
}

// drain drops every waiting set and returns them.
func (q *pendingQueue) drain() []*TileSet {
	sets := q.sets
	q.sets = nil
	return sets
}

func (q *pendingQueue) len() int {
	return len(q.sets)
}
