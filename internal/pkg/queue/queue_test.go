package queue

import (
	"testing"

	"newsletter/internal/pkg/models"
)

func item(url string) models.IngestItem {
	return models.IngestItem{
		Content:  "body for " + url,
		Metadata: models.Metadata{"url": url, "source_type": "html"},
	}
}

// Tests creating a queue with a given capacity.
func TestCreateQueue(t *testing.T) {
	q, err := CreateQueue(3)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if q.capacity != 3 {
		t.Errorf("Expected queue size to be 3, got %d", q.capacity)
	}

	q, err = CreateQueue(0)
	if err == nil {
		t.Errorf("Expected error, got nil")
	}
	if q != nil {
		t.Errorf("Expected queue to be nil, got %v", q)
	}

	q, err = CreateQueue(-1)
	if err == nil {
		t.Errorf("Expected error, got nil")
	}
	if q != nil {
		t.Errorf("Expected queue to be nil, got %v", q)
	}
}

// Tests inserting elements into the queue.
func TestInsert(t *testing.T) {
	q, err := CreateQueue(2)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if q.Length() != 0 {
		t.Errorf("Expected queue length to be 0, got %d", q.Length())
	}

	if err := q.Insert(item("https://example.com/a")); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := q.Insert(item("https://example.com/b")); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if q.Length() != 2 {
		t.Errorf("Expected queue length to be 2, got %d", q.Length())
	}

	if err := q.Insert(item("https://example.com/c")); err == nil {
		t.Errorf("Expected error inserting into a full queue, got nil")
	}
	if q.Length() != 2 {
		t.Errorf("Queue should be full, expected queue length to be 2, got %d", q.Length())
	}
}

// Tests removing elements from the queue in FIFO order.
func TestRemove(t *testing.T) {
	q, err := CreateQueue(3)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := q.Insert(item("https://example.com/a")); err != nil {
		t.Errorf("Insert error: %v", err)
	}
	if err := q.Insert(item("https://example.com/b")); err != nil {
		t.Errorf("Insert error: %v", err)
	}

	first, err := q.Remove()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if first.Metadata.String("url") != "https://example.com/a" {
		t.Errorf("Expected FIFO order, got %v", first.Metadata)
	}

	second, err := q.Remove()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if second.Metadata.String("url") != "https://example.com/b" {
		t.Errorf("Expected FIFO order, got %v", second.Metadata)
	}

	if _, err := q.Remove(); err == nil {
		t.Errorf("Expected error removing from an empty queue, got nil")
	}
	if !q.IsEmpty() {
		t.Errorf("Expected queue to be empty")
	}
}
