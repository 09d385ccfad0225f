package entity

// Reservation is one entry in the global FIFO wait-list.
type Reservation struct {
	BookID    int    `json:"book_id"`
	StudentID string `json:"student_id"`
}
