package queue

import (
	"errors"
	"sync"

	"newsletter/internal/pkg/models"
)

// Bounded FIFO of content waiting to be gated and stored. Producers (the
// ingest HTTP endpoint) fail fast when the queue is full instead of blocking.
type Queue struct {
	mu       sync.Mutex
	capacity int
	q        []models.IngestItem
}

// Creates an empty queue with a specified capacity
func CreateQueue(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, errors.New("capacity should be greater than 0")
	}
	return &Queue{
		capacity: capacity,
		q:        make([]models.IngestItem, 0, capacity),
	}, nil
}

// Inserts an item into the queue
func (q *Queue) Insert(item models.IngestItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) < q.capacity {
		q.q = append(q.q, item)
		return nil
	}
	return errors.New("queue is full")
}

// Removes the oldest element from the queue
func (q *Queue) Remove() (models.IngestItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.q) > 0 {
		item := q.q[0]
		q.q = q.q[1:]
		return item, nil
	}
	return models.IngestItem{}, errors.New("queue is empty")
}

// Returns the number of elements in the queue
func (q *Queue) Length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.q)
}

// Returns true if the queue is empty
func (q *Queue) IsEmpty() bool {
	return q.Length() == 0
}
