package entity

// Loan records one borrowed copy inside a student's loan list.
// DueDate is an ISO-8601 date (YYYY-MM-DD).
type Loan struct {
	BookID  int    `json:"book_id"`
	DueDate string `json:"due_date"`
}

// Student is a registered borrower. Loans is a bounded collection; the
// circulation engine enforces the capacity at borrow time. Fine is an
// accumulated integer amount, settled penalties only.
type Student struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Fine        int    `json:"fine"`
	Loans       []Loan `json:"loans"`
}

// LoanIndex returns the index of the first active loan for bookID, or -1.
// A student may hold more than one loan for the same book; callers always
// act on the earliest one.
func (s *Student) LoanIndex(bookID int) int {
	for i, l := range s.Loans {
		if l.BookID == bookID {
			return i
		}
	}
	return -1
}

// RemoveLoanAt clears one loan, preserving the order of the rest.
func (s *Student) RemoveLoanAt(i int) {
	s.Loans = append(s.Loans[:i], s.Loans[i+1:]...)
}
