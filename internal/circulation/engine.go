package circulation

import (
	"errors"
	"fmt"

	"librarydesk/internal/catalog"
	"librarydesk/internal/entity"
	"librarydesk/internal/reservation"
	"librarydesk/internal/roster"
)

// ErrUnavailable is returned when borrowing a book with no free copies.
var ErrUnavailable = errors.New("no copies available")

// ErrBorrowLimit is returned when a student's loan list is full.
var ErrBorrowLimit = errors.New("borrow limit reached")

// ErrReserved is returned when renewal is blocked by another student's
// reservation.
var ErrReserved = errors.New("book reserved by another student")

// ErrNotEligible is returned when reserving a book that still has
// available copies.
var ErrNotEligible = errors.New("book has available copies")

// ErrLoanNotFound is returned when no active loan matches the
// (book, student) pair.
var ErrLoanNotFound = errors.New("no active loan for this book")

// Engine orchestrates borrow, return, renew and reserve across the
// catalog, the roster and the reservation queue. It is the only
// component that mutates more than one of them in a single operation,
// and every failure check precedes any mutation, so a failed call
// leaves no partial state behind.
type Engine struct {
	catalog      *catalog.Catalog
	roster       *roster.Roster
	reservations *reservation.Queue
	cfg          Config
}

// NewEngine wires the engine over its three collections. The queue must
// be built with the same MaxReserve the config carries.
func NewEngine(c *catalog.Catalog, r *roster.Roster, q *reservation.Queue, cfg Config) *Engine {
	return &Engine{catalog: c, roster: r, reservations: q, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// Borrow checks out one copy of a book to a student. The due date is
// today plus the loan duration.
//
// There is no guard against a student borrowing the same book twice: a
// second call occupies a second loan slot. Return always settles the
// earliest of the duplicates first.
func (e *Engine) Borrow(bookID int, studentID string) error {
	b, err := e.catalog.FindByID(bookID)
	if err != nil {
		return fmt.Errorf("borrow book %d: %w", bookID, err)
	}
	s, err := e.roster.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("borrow for student %s: %w", studentID, err)
	}
	if b.AvailableCopies == 0 {
		return ErrUnavailable
	}
	if len(s.Loans) >= e.cfg.MaxBorrows {
		return ErrBorrowLimit
	}
	s.Loans = append(s.Loans, entity.Loan{BookID: bookID, DueDate: e.cfg.dueDate()})
	b.AvailableCopies--
	return nil
}

// Return checks one copy back in. A return after the due date settles a
// flat late fee onto the student's stored fine. After a successful
// return the earliest reservation for the book, if any, is offered the
// freed copy; whether that hand-off happens or not, Return reports
// success to the original returner.
func (e *Engine) Return(bookID int, studentID, returnDate string) error {
	b, err := e.catalog.FindByID(bookID)
	if err != nil {
		return fmt.Errorf("return book %d: %w", bookID, err)
	}
	s, err := e.roster.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("return by student %s: %w", studentID, err)
	}
	i := s.LoanIndex(bookID)
	if i < 0 {
		return ErrLoanNotFound
	}
	if returnDate > s.Loans[i].DueDate {
		s.Fine += e.cfg.LateFee
	}
	s.RemoveLoanAt(i)
	b.AvailableCopies++
	e.fulfillReservation(bookID)
	return nil
}

// fulfillReservation hands the freed copy to the earliest reserver. If
// the reserving student cannot take the loan right now (full slots),
// the reservation stays queued for the book's next return and no error
// surfaces to the returner.
func (e *Engine) fulfillReservation(bookID int) {
	res, ok := e.reservations.PeekEarliest(bookID)
	if !ok {
		return
	}
	if err := e.Borrow(bookID, res.StudentID); err != nil {
		return
	}
	e.reservations.Dequeue(res.BookID, res.StudentID)
}

// Renew extends an active loan to today plus the loan duration. It is
// refused outright while another student has the book reserved; that
// check comes before the loan lookup, so a reserved book reports
// ErrReserved even to a student who never borrowed it.
func (e *Engine) Renew(bookID int, studentID string) error {
	if e.reservations.HasOtherReserver(bookID, studentID) {
		return ErrReserved
	}
	s, err := e.roster.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("renew for student %s: %w", studentID, err)
	}
	i := s.LoanIndex(bookID)
	if i < 0 {
		return ErrLoanNotFound
	}
	s.Loans[i].DueDate = e.cfg.dueDate()
	return nil
}

// Reserve queues a student for a fully checked-out book. Duplicate and
// per-student limit checks belong to the queue and propagate as-is.
func (e *Engine) Reserve(bookID int, studentID string) error {
	b, err := e.catalog.FindByID(bookID)
	if err != nil {
		return fmt.Errorf("reserve book %d: %w", bookID, err)
	}
	if _, err := e.roster.FindByID(studentID); err != nil {
		return fmt.Errorf("reserve for student %s: %w", studentID, err)
	}
	if b.AvailableCopies > 0 {
		return ErrNotEligible
	}
	return e.reservations.Enqueue(bookID, studentID)
}

// RemoveBook deletes a catalog record, adding the cross-check the
// catalog cannot do itself: a book with queued reservations stays.
func (e *Engine) RemoveBook(bookID int) error {
	if e.reservations.HasAnyFor(bookID) {
		return fmt.Errorf("book %d is reserved: %w", bookID, catalog.ErrInUse)
	}
	return e.catalog.Remove(bookID)
}

// CalculateTotalFine projects a student's fine as of today: settled
// fines plus the late fee for each currently overdue active loan.
func (e *Engine) CalculateTotalFine(studentID string) (int, error) {
	return e.roster.TotalFineDue(studentID, e.cfg.today(), e.cfg.LateFee)
}

// OverdueBooks reports the book record behind every active loan whose
// due date has passed, in student-then-loan order. A book appears once
// per overdue loan.
func (e *Engine) OverdueBooks() []*entity.Book {
	today := e.cfg.today()
	var out []*entity.Book
	for _, s := range e.roster.All() {
		for _, l := range s.Loans {
			if l.DueDate >= today {
				continue
			}
			if b, err := e.catalog.FindByID(l.BookID); err == nil {
				out = append(out, b)
			}
		}
	}
	return out
}
