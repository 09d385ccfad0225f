package entity

// Book is a title held by the library, with copy-count bookkeeping.
// Invariant: 0 <= AvailableCopies <= TotalCopies.
type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}
