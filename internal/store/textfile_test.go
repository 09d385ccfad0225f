package store

import (
	"os"
	"path/filepath"
	"testing"

	"librarydesk/internal/catalog"
	"librarydesk/internal/entity"
	"librarydesk/internal/reservation"
	"librarydesk/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_data.txt")

	c := catalog.New()
	require.NoError(t, c.Insert(entity.Book{
		ID: 1, Title: "Dune", Author: "Herbert", Category: "SciFi", TotalCopies: 3,
	}))
	require.NoError(t, c.Insert(entity.Book{
		ID: 2, Title: "Emma", Author: "Austen", Category: "Classic", TotalCopies: 1,
	}))
	require.NoError(t, c.AdjustAvailability(1, -2))

	r := roster.New()
	require.NoError(t, r.Register(entity.Student{
		ID: "S1", Name: "Ada", Email: "ada@example.com", PhoneNumber: "555-0100",
	}))
	s, err := r.FindByID("S1")
	require.NoError(t, err)
	s.Fine = 30
	s.Loans = []entity.Loan{{BookID: 1, DueDate: "2024-03-13"}}

	q := reservation.NewQueue(5)
	require.NoError(t, q.Enqueue(2, "S1"))
	require.NoError(t, q.Enqueue(1, "S1"))

	require.NoError(t, Save(path, c, r, q))

	snap, err := Load(path)
	require.NoError(t, err)

	c2 := catalog.New()
	r2 := roster.New()
	q2 := reservation.NewQueue(5)
	require.NoError(t, Apply(snap, c2, r2, q2))

	b, err := c2.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, 3, b.TotalCopies)
	assert.Equal(t, 1, b.AvailableCopies, "available count survives the round trip")

	s2, err := r2.FindByID("S1")
	require.NoError(t, err)
	assert.Equal(t, 30, s2.Fine)
	assert.Equal(t, "ada@example.com", s2.Email)
	assert.Empty(t, s2.Loans, "loans are not part of the format")

	all := q2.All()
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].BookID, "queue order survives")
	assert.Equal(t, 1, all[1].BookID)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "library_data.txt")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "record outside any section",
			content: "1,Dune,Herbert,SciFi,3,3\n",
		},
		{
			name:    "book with wrong field count",
			content: "Books:\n1,Dune,Herbert,3,3\n",
		},
		{
			name:    "book with non-numeric copies",
			content: "Books:\n1,Dune,Herbert,SciFi,three,3\n",
		},
		{
			name:    "student with non-numeric fine",
			content: "Students:\nS1,Ada,ada@example.com,555-0100,lots\n",
		},
		{
			name:    "reservation with wrong field count",
			content: "Reservations:\n1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestApplyRejectsInvalidSnapshots(t *testing.T) {
	t.Run("out-of-range available count", func(t *testing.T) {
		snap := Snapshot{Books: []entity.Book{{ID: 1, TotalCopies: 1, AvailableCopies: 2}}}
		err := Apply(snap, catalog.New(), roster.New(), reservation.NewQueue(5))
		assert.Error(t, err)
	})

	t.Run("duplicate student", func(t *testing.T) {
		snap := Snapshot{Students: []entity.Student{{ID: "S1"}, {ID: "S1"}}}
		err := Apply(snap, catalog.New(), roster.New(), reservation.NewQueue(5))
		assert.ErrorIs(t, err, roster.ErrDuplicateID)
	})
}
