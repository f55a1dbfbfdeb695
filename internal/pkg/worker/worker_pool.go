package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
	"newsletter/internal/pkg/models"
	"newsletter/internal/pkg/processor"
	"newsletter/internal/pkg/queue"
	"newsletter/internal/pkg/store"
)

// Manages a pool of workers that drain the ingest queue, run the quality
// gate, and store the surviving items.
type WorkerPool struct {
	numWorkers int
	queue      *queue.Queue
	processor  processor.Processor
	store      *store.Store
	wg         sync.WaitGroup
}

// Creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int, queue *queue.Queue, processor processor.Processor, contentStore *store.Store) *WorkerPool {
	return &WorkerPool{
		numWorkers: numWorkers,
		queue:      queue,
		processor:  processor,
		store:      contentStore,
	}
}

// Launches the worker goroutines
func (wp *WorkerPool) Start(ctx context.Context) {
	logger.Log.Info("Starting worker pool", zap.Int("workers", wp.numWorkers))

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.runWorker(ctx, i)
	}
}

// Blocks until all workers have finished
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// The main loop for each worker goroutine
func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	defer wp.wg.Done()

	logger.Log.Info("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Worker received stop signal", zap.Int("worker_id", id))
			return
		default:
			item, err := wp.queue.Remove()
			if err != nil {
				// If queue is empty, wait a bit before trying again
				time.Sleep(200 * time.Millisecond)
				continue
			}
			wp.handle(id, item)
		}
	}
}

// Gates and stores a single item.
func (wp *WorkerPool) handle(workerID int, item models.IngestItem) {
	url := item.Metadata.String(models.KeyURL)

	if err := wp.processor.Process(&item); err != nil {
		logger.Log.Warn("Item rejected by ingest gate",
			zap.Int("worker_id", workerID),
			zap.String("url", url),
			zap.Error(err))
		return
	}

	contentID, err := wp.store.Store(item.Content, item.Metadata)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			logger.Log.Warn("Item failed validation",
				zap.Int("worker_id", workerID),
				zap.String("url", url),
				zap.Error(err))
			return
		}
		logger.Log.Error("Failed to store item",
			zap.Int("worker_id", workerID),
			zap.String("url", url),
			zap.Error(err))
		return
	}

	metrics.ItemsProcessed.Inc()
	logger.Log.Debug("Stored item",
		zap.Int("worker_id", workerID),
		zap.String("url", url),
		zap.String("content_id", contentID))
}
