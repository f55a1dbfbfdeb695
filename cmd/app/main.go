package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsletter/internal/pkg/administrator"
	"newsletter/internal/pkg/config"
	"newsletter/internal/pkg/logger"
)

func main() {

	// Load configuration from the environment.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer logger.Log.Sync()

	// Construct the administrator, which wires the queue, the dedup
	// index, the content store and the worker pool together.
	admin := administrator.New(cfg)

	// Create a cancellable context so we can gracefully shut down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the workers and the periodic TTL sweep in the background.
	if err := admin.StartProcessing(ctx); err != nil {
		log.Fatalf("failed to start processing: %v", err)
	}

	// Serve the ingestion and content API.
	go admin.StartService(cfg.ServerPort)

	// Listen for OS signals to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	s := <-sigChan
	fmt.Printf("received signal %s, shutting down...\n", s)
	cancel()

	// Give the workers a moment to drain in-flight items.
	done := make(chan struct{})
	go func() {
		admin.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		log.Println("shutdown timed out, exiting anyway")
	}
	log.Println("shutdown complete")
}
