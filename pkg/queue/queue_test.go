package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue_FIFO(t *testing.T) {
	q := NewInMemoryQueue(10)
	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	require.NoError(t, q.Enqueue("c"))
	assert.Equal(t, 3, q.Size())

	item, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	messages, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b", "c"}, messages)
	assert.Equal(t, 0, q.Size())
}

func TestInMemoryQueue_Limits(t *testing.T) {
	q := NewInMemoryQueue(1)
	require.NoError(t, q.Enqueue("a"))
	assert.Error(t, q.Enqueue("b"))

	require.NoError(t, q.ClearQueue())
	assert.Equal(t, 0, q.Size())

	_, err := q.Dequeue()
	assert.Error(t, err)
}
