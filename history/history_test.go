package history

import (
	"testing"

	"github.com/stenocore/steno/stroke"
)

func TestPushPeekPop(t *testing.T) {
	h := New(4)
	h.Push(Entry{Stroke: 1, StrokesInSegment: 1})
	h.Push(Entry{Stroke: 2, StrokesInSegment: 1})
	h.Push(Entry{Stroke: 3, StrokesInSegment: 2})

	if h.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", h.Length())
	}

	top, ok := h.Peek(0)
	if !ok || top.Stroke != 3 {
		t.Fatalf("Peek(0) = %+v, want stroke 3", top)
	}

	e, ok := h.Pop()
	if !ok || e.Stroke != 3 {
		t.Fatalf("Pop() = %+v, want stroke 3", e)
	}
	if h.Length() != 2 {
		t.Fatalf("Length() after Pop = %d, want 2", h.Length())
	}
}

func TestEvictsOldestWhenFull(t *testing.T) {
	h := New(2)
	h.Push(Entry{Stroke: 1})
	h.Push(Entry{Stroke: 2})
	h.Push(Entry{Stroke: 3})

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() len = %d, want 2", len(entries))
	}
	if entries[0].Stroke != stroke.Stroke(2) || entries[1].Stroke != stroke.Stroke(3) {
		t.Fatalf("Entries() = %+v, want strokes [2 3]", entries)
	}
}

func TestUndoLastPopsRequestedCount(t *testing.T) {
	h := New(8)
	h.Push(Entry{Stroke: 1})
	h.Push(Entry{Stroke: 2})
	h.Push(Entry{Stroke: 3})

	popped := h.UndoLast(2)
	if len(popped) != 2 {
		t.Fatalf("UndoLast(2) returned %d entries, want 2", len(popped))
	}
	if popped[0].Stroke != stroke.Stroke(3) || popped[1].Stroke != stroke.Stroke(2) {
		t.Fatalf("UndoLast(2) = %+v, want strokes [3 2]", popped)
	}
	if h.Length() != 1 {
		t.Fatalf("Length() after UndoLast = %d, want 1", h.Length())
	}
}

func TestUndoBeyondHistoryIsNoOp(t *testing.T) {
	h := New(8)
	h.Push(Entry{Stroke: 1})

	popped := h.UndoLast(5)
	if len(popped) != 1 {
		t.Fatalf("UndoLast(5) returned %d entries, want 1 (clamped)", len(popped))
	}
	if h.Length() != 0 {
		t.Fatalf("Length() after over-undo = %d, want 0", h.Length())
	}

	popped = h.UndoLast(3)
	if len(popped) != 0 {
		t.Fatalf("UndoLast on empty history returned %d entries, want 0", len(popped))
	}
}

func TestUpdateTopMutatesMostRecentEntry(t *testing.T) {
	h := New(4)
	h.Push(Entry{Stroke: 1, StrokesInSegment: 0})
	h.Push(Entry{Stroke: 2, StrokesInSegment: 0})

	h.UpdateTop(func(e *Entry) { e.StrokesInSegment = 3 })

	top, _ := h.Peek(0)
	if top.StrokesInSegment != 3 {
		t.Fatalf("StrokesInSegment = %d, want 3", top.StrokesInSegment)
	}

	h2 := New(4)
	h2.UpdateTop(func(e *Entry) { e.StrokesInSegment = 99 })
	if h2.Length() != 0 {
		t.Fatal("UpdateTop on empty history should be a no-op")
	}
}

func TestPeekOutOfRange(t *testing.T) {
	h := New(4)
	h.Push(Entry{Stroke: 1})

	if _, ok := h.Peek(1); ok {
		t.Fatal("Peek(1) should miss with only one entry")
	}
	if _, ok := h.Peek(-1); ok {
		t.Fatal("Peek(-1) should miss")
	}
}
