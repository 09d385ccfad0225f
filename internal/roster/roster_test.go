package roster

import (
	"testing"

	"librarydesk/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("starts with no loans and zero fine", func(t *testing.T) {
		r := New()
		s := entity.Student{
			ID:   "S1",
			Name: "Ada",
			Fine: 50,
			Loans: []entity.Loan{
				{BookID: 1, DueDate: "2024-01-01"},
			},
		}
		require.NoError(t, r.Register(s))

		got, err := r.FindByID("S1")
		require.NoError(t, err)
		assert.Zero(t, got.Fine)
		assert.Empty(t, got.Loans)
	})

	t.Run("duplicate id", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(entity.Student{ID: "S1"}))
		assert.ErrorIs(t, r.Register(entity.Student{ID: "S1"}), ErrDuplicateID)
		assert.Equal(t, 1, r.Len())
	})
}

func TestFindByID(t *testing.T) {
	r := New()
	_, err := r.FindByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestore(t *testing.T) {
	r := New()
	require.NoError(t, r.Restore(entity.Student{
		ID:    "S1",
		Fine:  30,
		Loans: []entity.Loan{{BookID: 1, DueDate: "2024-01-01"}},
	}))

	got, err := r.FindByID("S1")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Fine)
	assert.Empty(t, got.Loans, "loans are not persisted, so a restore drops them")
}

func TestTotalFineDue(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(entity.Student{ID: "S1"}))
	s, err := r.FindByID("S1")
	require.NoError(t, err)

	s.Fine = 20
	s.Loans = []entity.Loan{
		{BookID: 1, DueDate: "2024-03-01"}, // overdue
		{BookID: 2, DueDate: "2024-03-10"}, // due today, not overdue
		{BookID: 3, DueDate: "2024-03-20"},
	}

	t.Run("stored fine plus overdue projection", func(t *testing.T) {
		total, err := r.TotalFineDue("S1", "2024-03-10", 10)
		require.NoError(t, err)
		assert.Equal(t, 30, total)
	})

	t.Run("projection is not a mutation", func(t *testing.T) {
		_, err := r.TotalFineDue("S1", "2024-03-10", 10)
		require.NoError(t, err)
		assert.Equal(t, 20, s.Fine)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := r.TotalFineDue("missing", "2024-03-10", 10)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
