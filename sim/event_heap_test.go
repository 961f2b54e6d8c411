package sim

import (
	"testing"
)

func stamped(ev Event, due float64, ordinal uint64) Event {
	ev.stamp(due, ordinal)
	return ev
}

// TestEventHeap_TimestampOrdering tests that events are processed in timestamp order
func TestEventHeap_TimestampOrdering(t *testing.T) {
	h := NewEventHeap()

	// Add events with different timestamps in random order
	h.Schedule(stamped(&ArrivalEvent{}, 10, 1))
	h.Schedule(stamped(&ArrivalEvent{}, 5, 2))
	h.Schedule(stamped(&ArrivalEvent{}, 15, 3))

	// Should be popped in timestamp order: 5, 10, 15
	for _, want := range []float64{5, 10, 15} {
		got := h.PopNext()
		if got.Timestamp() != want {
			t.Errorf("event timestamp = %v, want %v", got.Timestamp(), want)
		}
	}

	if h.Len() != 0 {
		t.Errorf("Heap should be empty, len = %d", h.Len())
	}
}

// TestEventHeap_OrdinalOrdering tests same-timestamp events pop in insertion order
func TestEventHeap_OrdinalOrdering(t *testing.T) {
	h := NewEventHeap()

	// Insert many same-time events; heap internals must not reorder them
	for i := uint64(1); i <= 50; i++ {
		h.Schedule(stamped(&ServiceCompletionEvent{Customer: CustomerIndex(i)}, 7, i))
	}

	for i := uint64(1); i <= 50; i++ {
		ev := h.PopNext()
		if ev.Ordinal() != i {
			t.Fatalf("pop %d: ordinal %d, want %d", i, ev.Ordinal(), i)
		}
	}
}

// TestEventHeap_EmptyHeap tests PopNext and Peek on an empty heap
func TestEventHeap_EmptyHeap(t *testing.T) {
	h := NewEventHeap()
	if h.PopNext() != nil {
		t.Error("PopNext on empty heap should return nil")
	}
	if h.Peek() != nil {
		t.Error("Peek on empty heap should return nil")
	}
}

// TestEventHeap_PeekDoesNotRemove tests Peek leaves the earliest event in place
func TestEventHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(stamped(&ArrivalEvent{}, 3, 2))
	h.Schedule(stamped(&ArrivalEvent{}, 3, 1))

	if got := h.Peek().Ordinal(); got != 1 {
		t.Errorf("Peek ordinal = %d, want 1", got)
	}
	if h.Len() != 2 {
		t.Errorf("Len after Peek = %d, want 2", h.Len())
	}
}
