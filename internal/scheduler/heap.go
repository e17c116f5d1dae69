package scheduler

import (
	"container/heap"
	"time"
)

// timerEntry is one armed timer in the engine heap.
type timerEntry struct {
	Key    TimerKey
	FireAt time.Time
}

// timerHeap implements container/heap.Interface for timerEntry,
// sorted by FireAt (earliest first).
type timerHeap []timerEntry

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].FireAt.Before(h[j].FireAt) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(timerEntry))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds an entry, maintaining the heap invariant.
func heapPush(h *timerHeap, e timerEntry) {
	heap.Push(h, e)
}

// heapPop removes and returns the entry with the earliest FireAt.
// Panics if the heap is empty.
func heapPop(h *timerHeap) timerEntry {
	return heap.Pop(h).(timerEntry)
}

// heapRemoveKey removes the entry with the given key, if present.
// Returns true when an entry was removed.
func heapRemoveKey(h *timerHeap, key TimerKey) bool {
	for i, e := range *h {
		if e.Key == key {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}

// heapRemoveEvent removes every entry belonging to the given event.
// Returns the number of removed entries.
func heapRemoveEvent(h *timerHeap, ref EventRef) int {
	var removed int
	for i := 0; i < h.Len(); {
		if (*h)[i].Key.Event() == ref {
			heap.Remove(h, i)
			removed++
			continue
		}
		i++
	}
	return removed
}
