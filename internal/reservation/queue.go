package reservation

import (
	"errors"

	"librarydesk/internal/entity"
)

// ErrDuplicate is returned when the exact (book, student) pair is
// already queued.
var ErrDuplicate = errors.New("reservation already exists")

// ErrLimitExceeded is returned when a student is at their reservation
// cap, counted across all books.
var ErrLimitExceeded = errors.New("reservation limit reached")

// Queue is the global FIFO wait-list. A single ordered slice keeps
// enqueue order across all books; per-book views scan it front to back.
type Queue struct {
	entries       []entity.Reservation
	maxPerStudent int
}

func NewQueue(maxPerStudent int) *Queue {
	return &Queue{maxPerStudent: maxPerStudent}
}

// Enqueue appends a reservation at the tail.
func (q *Queue) Enqueue(bookID int, studentID string) error {
	held := 0
	for _, e := range q.entries {
		if e.BookID == bookID && e.StudentID == studentID {
			return ErrDuplicate
		}
		if e.StudentID == studentID {
			held++
		}
	}
	if held >= q.maxPerStudent {
		return ErrLimitExceeded
	}
	q.entries = append(q.entries, entity.Reservation{BookID: bookID, StudentID: studentID})
	return nil
}

// PeekEarliest returns the earliest-enqueued reservation for bookID.
func (q *Queue) PeekEarliest(bookID int) (entity.Reservation, bool) {
	for _, e := range q.entries {
		if e.BookID == bookID {
			return e, true
		}
	}
	return entity.Reservation{}, false
}

// Dequeue removes the first entry matching the pair; no-op when absent.
func (q *Queue) Dequeue(bookID int, studentID string) {
	for i, e := range q.entries {
		if e.BookID == bookID && e.StudentID == studentID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// HasOtherReserver reports whether any student other than excluding has
// a reservation for bookID. Used by renew.
func (q *Queue) HasOtherReserver(bookID int, excluding string) bool {
	for _, e := range q.entries {
		if e.BookID == bookID && e.StudentID != excluding {
			return true
		}
	}
	return false
}

// HasAnyFor reports whether any reservation references bookID. Used by
// the engine's removal cross-check.
func (q *Queue) HasAnyFor(bookID int) bool {
	for _, e := range q.entries {
		if e.BookID == bookID {
			return true
		}
	}
	return false
}

// All returns the reservations in queue order.
func (q *Queue) All() []entity.Reservation {
	out := make([]entity.Reservation, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len reports the number of queued reservations.
func (q *Queue) Len() int {
	return len(q.entries)
}
