package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue(t *testing.T) {
	t.Run("fifo order per book", func(t *testing.T) {
		q := NewQueue(5)
		require.NoError(t, q.Enqueue(1, "S1"))
		require.NoError(t, q.Enqueue(2, "S2"))
		require.NoError(t, q.Enqueue(1, "S3"))

		head, ok := q.PeekEarliest(1)
		require.True(t, ok)
		assert.Equal(t, "S1", head.StudentID)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		q := NewQueue(5)
		require.NoError(t, q.Enqueue(1, "S1"))
		assert.ErrorIs(t, q.Enqueue(1, "S1"), ErrDuplicate)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("per-student limit counts across books", func(t *testing.T) {
		q := NewQueue(2)
		require.NoError(t, q.Enqueue(1, "S1"))
		require.NoError(t, q.Enqueue(2, "S1"))
		assert.ErrorIs(t, q.Enqueue(3, "S1"), ErrLimitExceeded)

		// other students are unaffected
		assert.NoError(t, q.Enqueue(3, "S2"))
	})
}

func TestPeekEarliest(t *testing.T) {
	q := NewQueue(5)
	_, ok := q.PeekEarliest(1)
	assert.False(t, ok)
}

func TestDequeue(t *testing.T) {
	q := NewQueue(5)
	require.NoError(t, q.Enqueue(1, "S1"))
	require.NoError(t, q.Enqueue(1, "S2"))

	q.Dequeue(1, "S1")
	head, ok := q.PeekEarliest(1)
	require.True(t, ok)
	assert.Equal(t, "S2", head.StudentID)

	// absent pair is a no-op
	q.Dequeue(1, "S1")
	assert.Equal(t, 1, q.Len())
}

func TestHasOtherReserver(t *testing.T) {
	q := NewQueue(5)
	require.NoError(t, q.Enqueue(1, "S1"))

	assert.False(t, q.HasOtherReserver(1, "S1"))
	assert.True(t, q.HasOtherReserver(1, "S2"))
	assert.False(t, q.HasOtherReserver(2, "S2"))
}

func TestHasAnyFor(t *testing.T) {
	q := NewQueue(5)
	require.NoError(t, q.Enqueue(1, "S1"))

	assert.True(t, q.HasAnyFor(1))
	assert.False(t, q.HasAnyFor(2))
}

func TestAll(t *testing.T) {
	q := NewQueue(5)
	require.NoError(t, q.Enqueue(2, "S1"))
	require.NoError(t, q.Enqueue(1, "S2"))

	all := q.All()
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].BookID)
	assert.Equal(t, 1, all[1].BookID)
}
