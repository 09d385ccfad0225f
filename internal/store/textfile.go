// Package store persists the library state as a labeled plain-text
// dump: three sections, one comma-separated record per line.
//
//	Books:
//	id,title,author,category,totalCopies,availableCopies
//	Students:
//	id,name,email,phoneNumber,fine
//	Reservations:
//	bookID,studentID
//
// Active loans are not part of the format and do not survive a
// save/load cycle.
package store

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"librarydesk/internal/catalog"
	"librarydesk/internal/entity"
	"librarydesk/internal/reservation"
	"librarydesk/internal/roster"
)

// Snapshot is the parsed content of a library data file.
type Snapshot struct {
	Books        []entity.Book
	Students     []entity.Student
	Reservations []entity.Reservation
}

// Save writes the current library state to path, replacing any
// previous file.
func Save(path string, c *catalog.Catalog, r *roster.Roster, q *reservation.Queue) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save library data: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Books:")
	for _, b := range c.All() {
		fmt.Fprintf(w, "%d,%s,%s,%s,%d,%d\n",
			b.ID, b.Title, b.Author, b.Category, b.TotalCopies, b.AvailableCopies)
	}
	fmt.Fprintln(w, "Students:")
	for _, s := range r.All() {
		fmt.Fprintf(w, "%s,%s,%s,%s,%d\n",
			s.ID, s.Name, s.Email, s.PhoneNumber, s.Fine)
	}
	fmt.Fprintln(w, "Reservations:")
	for _, res := range q.All() {
		fmt.Fprintf(w, "%d,%s\n", res.BookID, res.StudentID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save library data: %w", err)
	}
	return nil
}

// Load parses a data file written by Save. Parsing is strict: a line
// outside any known section, a wrong field count or a non-numeric
// number fails the whole load rather than recovering silently.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load library data: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	section := ""
	lineNo := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line {
		case "Books:", "Students:", "Reservations:":
			section = line
			continue
		}
		var perr error
		switch section {
		case "Books:":
			perr = parseBook(line, &snap)
		case "Students:":
			perr = parseStudent(line, &snap)
		case "Reservations:":
			perr = parseReservation(line, &snap)
		default:
			perr = fmt.Errorf("record outside any section")
		}
		if perr != nil {
			return Snapshot{}, fmt.Errorf("load library data: line %d: %w", lineNo, perr)
		}
	}
	if err := sc.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("load library data: %w", err)
	}
	return snap, nil
}

func parseBook(line string, snap *Snapshot) error {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return fmt.Errorf("book record has %d fields, want 6", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("book id %q: %w", fields[0], err)
	}
	total, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("total copies %q: %w", fields[4], err)
	}
	avail, err := strconv.Atoi(fields[5])
	if err != nil {
		return fmt.Errorf("available copies %q: %w", fields[5], err)
	}
	snap.Books = append(snap.Books, entity.Book{
		ID:              id,
		Title:           fields[1],
		Author:          fields[2],
		Category:        fields[3],
		TotalCopies:     total,
		AvailableCopies: avail,
	})
	return nil
}

func parseStudent(line string, snap *Snapshot) error {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return fmt.Errorf("student record has %d fields, want 5", len(fields))
	}
	fine, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("fine %q: %w", fields[4], err)
	}
	snap.Students = append(snap.Students, entity.Student{
		ID:          fields[0],
		Name:        fields[1],
		Email:       fields[2],
		PhoneNumber: fields[3],
		Fine:        fine,
	})
	return nil
}

func parseReservation(line string, snap *Snapshot) error {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return fmt.Errorf("reservation record has %d fields, want 2", len(fields))
	}
	bookID, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("reservation book id %q: %w", fields[0], err)
	}
	snap.Reservations = append(snap.Reservations, entity.Reservation{
		BookID:    bookID,
		StudentID: fields[1],
	})
	return nil
}

// Apply loads a snapshot into empty collections.
func Apply(snap Snapshot, c *catalog.Catalog, r *roster.Roster, q *reservation.Queue) error {
	for _, b := range snap.Books {
		if err := c.Restore(b); err != nil {
			return fmt.Errorf("apply library data: %w", err)
		}
	}
	for _, s := range snap.Students {
		if err := r.Restore(s); err != nil {
			return fmt.Errorf("apply library data: %w", err)
		}
	}
	for _, res := range snap.Reservations {
		if err := q.Enqueue(res.BookID, res.StudentID); err != nil {
			return fmt.Errorf("apply library data: %w", err)
		}
	}
	return nil
}
