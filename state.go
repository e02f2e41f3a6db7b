// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tilegen

// State is the worker's position in its loop.
type State int32

const (
	// StateIdle means the worker is waiting for new work (or not started).
	StateIdle State = iota

	// StateDraining means the worker is taking the next set from the queue.
	StateDraining

	// StateExecuting means a set is being painted.
	StateExecuting

	// StateStopped means the worker has exited after Close.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDraining:
		return "Draining"
	case StateExecuting:
		return "Executing"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Stats counts generator activity since creation.
type Stats struct {
	// Scheduled is the number of sets accepted by ScheduleTileSet.
	Scheduled uint64

	// Coalesced is the number of waiting sets superseded by a newer set
	// for the same page and region.
	Coalesced uint64

	// Painted is the number of sets the worker executed.
	Painted uint64

	// TilesPainted is the number of individual tiles painted.
	TilesPainted uint64

	// Removed is the number of waiting sets dropped by RemoveSetsWithPage.
	Removed uint64

	// Waits is the number of RemoveSetsWithPage calls that blocked on a
	// set being painted.
	Waits uint64

	// Dropped is the number of waiting sets discarded by Close.
	Dropped uint64
}
