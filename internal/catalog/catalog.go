package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"librarydesk/internal/entity"
)

// ErrNotFound is returned when no book has the requested ID.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateID is returned when inserting a book whose ID is taken.
var ErrDuplicateID = errors.New("book id already exists")

// ErrInUse is returned when removing a book with outstanding copies.
var ErrInUse = errors.New("book has outstanding copies")

// Catalog owns the book records. Lookups iterate in insertion order;
// the byID index is only a shortcut, it never defines ordering.
type Catalog struct {
	books []*entity.Book
	byID  map[int]*entity.Book
}

func New() *Catalog {
	return &Catalog{byID: make(map[int]*entity.Book)}
}

// FindByID returns the book with the given ID, or ErrNotFound.
func (c *Catalog) FindByID(id int) (*entity.Book, error) {
	b, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// FindByTitle returns books whose title contains keyword, in insertion
// order. Matching is case-sensitive; the empty keyword matches all.
func (c *Catalog) FindByTitle(keyword string) []*entity.Book {
	var out []*entity.Book
	for _, b := range c.books {
		if strings.Contains(b.Title, keyword) {
			out = append(out, b)
		}
	}
	return out
}

// FindByCategory returns books whose category matches exactly.
func (c *Catalog) FindByCategory(category string) []*entity.Book {
	var out []*entity.Book
	for _, b := range c.books {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Insert adds a new book. Available copies always start equal to total
// copies, whatever the caller set.
func (c *Catalog) Insert(b entity.Book) error {
	if _, ok := c.byID[b.ID]; ok {
		return ErrDuplicateID
	}
	b.AvailableCopies = b.TotalCopies
	stored := &b
	c.books = append(c.books, stored)
	c.byID[b.ID] = stored
	return nil
}

// Restore re-inserts a previously persisted book, keeping its saved
// available count instead of resetting it to the total.
func (c *Catalog) Restore(b entity.Book) error {
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return fmt.Errorf("book %d: available copies %d out of range [0,%d]",
			b.ID, b.AvailableCopies, b.TotalCopies)
	}
	if _, ok := c.byID[b.ID]; ok {
		return ErrDuplicateID
	}
	stored := &b
	c.books = append(c.books, stored)
	c.byID[b.ID] = stored
	return nil
}

// UpdateDetails replaces title, author and category. Copy counts are
// never changed through updates.
func (c *Catalog) UpdateDetails(id int, title, author, category string) error {
	b, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.Title = title
	b.Author = author
	b.Category = category
	return nil
}

// Remove deletes a book record. It refuses while copies are checked out;
// the reservation cross-check is the engine's job, since the catalog has
// no visibility into the reservation queue.
func (c *Catalog) Remove(id int) error {
	b, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	if b.AvailableCopies != b.TotalCopies {
		return ErrInUse
	}
	delete(c.byID, id)
	for i, stored := range c.books {
		if stored.ID == id {
			c.books = append(c.books[:i], c.books[i+1:]...)
			break
		}
	}
	return nil
}

// AdjustAvailability applies delta to a book's available count. Only the
// circulation engine calls this; clamping is the engine's responsibility.
func (c *Catalog) AdjustAvailability(id int, delta int) error {
	b, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.AvailableCopies += delta
	return nil
}

// All returns every book in insertion order.
func (c *Catalog) All() []*entity.Book {
	out := make([]*entity.Book, len(c.books))
	copy(out, c.books)
	return out
}

// SortedByTitle returns the books in ascending title order. The sort is
// stable, so equal titles keep their insertion order, and the catalog's
// own storage order is left untouched.
func (c *Catalog) SortedByTitle() []*entity.Book {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

// Len reports the number of books held.
func (c *Catalog) Len() int {
	return len(c.books)
}
