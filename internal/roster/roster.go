package roster

import (
	"errors"

	"librarydesk/internal/entity"
)

// ErrNotFound is returned when no student has the requested ID.
var ErrNotFound = errors.New("student not found")

// ErrDuplicateID is returned when registering a taken student ID.
var ErrDuplicateID = errors.New("student id already exists")

// Roster owns the student records, in registration order.
type Roster struct {
	students []*entity.Student
	byID     map[string]*entity.Student
}

func New() *Roster {
	return &Roster{byID: make(map[string]*entity.Student)}
}

// FindByID returns the student with the given ID, or ErrNotFound.
func (r *Roster) FindByID(id string) (*entity.Student, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Register adds a new student with no loans and a zero fine.
func (r *Roster) Register(s entity.Student) error {
	if _, ok := r.byID[s.ID]; ok {
		return ErrDuplicateID
	}
	s.Loans = nil
	s.Fine = 0
	stored := &s
	r.students = append(r.students, stored)
	r.byID[s.ID] = stored
	return nil
}

// Restore re-registers a previously persisted student, keeping the
// saved fine. Active loans are not part of the persisted format, so a
// restored student starts with none.
func (r *Roster) Restore(s entity.Student) error {
	if _, ok := r.byID[s.ID]; ok {
		return ErrDuplicateID
	}
	s.Loans = nil
	stored := &s
	r.students = append(r.students, stored)
	r.byID[s.ID] = stored
	return nil
}

// TotalFineDue projects the student's total fine as of today: the stored
// (settled) fine plus lateFee for every active loan whose due date is
// strictly before today. Nothing is mutated; overdue loans are settled
// only when actually returned.
func (r *Roster) TotalFineDue(studentID, today string, lateFee int) (int, error) {
	s, ok := r.byID[studentID]
	if !ok {
		return 0, ErrNotFound
	}
	total := s.Fine
	for _, l := range s.Loans {
		if l.DueDate < today {
			total += lateFee
		}
	}
	return total, nil
}

// All returns every student in registration order.
func (r *Roster) All() []*entity.Student {
	out := make([]*entity.Student, len(r.students))
	copy(out, r.students)
	return out
}

// Len reports the number of registered students.
func (r *Roster) Len() int {
	return len(r.students)
}
