package administrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"newsletter/internal/pkg/config"
	"newsletter/internal/pkg/dedup"
	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
	"newsletter/internal/pkg/models"
	"newsletter/internal/pkg/processor"
	"newsletter/internal/pkg/queue"
	"newsletter/internal/pkg/store"
	"newsletter/internal/pkg/worker"
)

// Administrator interface
type Administrator interface {
	EnqueueItem(ctx context.Context, item models.IngestItem) error
	StartProcessing(ctx context.Context) error
	StartService(port string)
	Stop()
	ContentStore() *store.Store
	QueueDepth() int
	WorkerCount() int
	StartTime() time.Time
}

// Implementation of the Administrator interface
type administrator struct {
	store      *store.Store
	queue      *queue.Queue
	processor  processor.Processor
	workerPool *worker.WorkerPool
	config     *config.Config
	startTime  time.Time
	numWorkers int
}

// Creates a new instance of an Administrator with a config
func New(cfg *config.Config) Administrator {
	ingestQueue, err := queue.CreateQueue(cfg.QueueCapacity)
	if err != nil {
		logger.Log.Fatal("Failed to create queue", zap.Error(err))
	}

	var index dedup.Index
	if cfg.RedisEnabled {
		index, err = dedup.NewRedisIndex(cfg)
		if err != nil {
			logger.Log.Fatal("Failed to create Redis dedup index", zap.Error(err))
		}
	} else {
		index = dedup.NewMemoryIndex()
	}

	contentStore, err := store.New(cfg.DataDir, index)
	if err != nil {
		logger.Log.Fatal("Failed to create content store", zap.Error(err))
	}

	proc := processor.NewProcessor(cfg.SpamBlockThreshold)

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1 // Default to 1 worker if not specified
	}

	wp := worker.NewWorkerPool(numWorkers, ingestQueue, proc, contentStore)

	return &administrator{
		store:      contentStore,
		queue:      ingestQueue,
		processor:  proc,
		workerPool: wp,
		config:     cfg,
		startTime:  time.Now(),
		numWorkers: numWorkers,
	}
}

// This quickly returns so producers can move on.
func (admin *administrator) EnqueueItem(ctx context.Context, item models.IngestItem) error {
	if err := admin.queue.Insert(item); err != nil {
		return err
	}
	metrics.ItemsEnqueued.Inc()
	return nil
}

// Starts the worker pool and the periodic TTL sweep.
func (admin *administrator) StartProcessing(ctx context.Context) error {
	admin.workerPool.Start(ctx)
	go admin.runMaintenance(ctx)
	return nil
}

// Sweeps expired records on an interval until the context is cancelled.
func (admin *administrator) runMaintenance(ctx context.Context) {
	interval := time.Duration(admin.config.CleanupIntervalHours) * time.Hour
	if interval <= 0 {
		logger.Log.Info("Periodic cleanup disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := admin.store.Cleanup(admin.config.TTLDays)
			if err != nil {
				logger.Log.Error("Periodic cleanup failed", zap.Error(err))
				continue
			}
			logger.Log.Info("Periodic cleanup complete", zap.Int("files_deleted", deleted))
		}
	}
}

// StartService starts the HTTP service at the given port
func (admin *administrator) StartService(port string) {
	logger.Log.Info("Starting HTTP service", zap.String("port", port))
	startHTTP(admin, port)
}

// Waits for in-flight work to finish.
func (admin *administrator) Stop() {
	logger.Log.Info("Waiting for worker pool to finish processing")
	admin.workerPool.Wait()
	logger.Log.Info("Administrator stopped gracefully")
}

// Exposes the underlying content store to collaborators in-process.
func (admin *administrator) ContentStore() *store.Store {
	return admin.store
}

// Returns the current queue depth for health checks
func (admin *administrator) QueueDepth() int {
	return admin.queue.Length()
}

// Returns the number of workers for health checks
func (admin *administrator) WorkerCount() int {
	return admin.numWorkers
}

// Returns when the service was started for health checks
func (admin *administrator) StartTime() time.Time {
	return admin.startTime
}
