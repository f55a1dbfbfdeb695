package administrator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/models"
	"newsletter/internal/pkg/store"
)

// Builds the HTTP mux for the collaborator-facing API: ingestion for
// producers, content reads and metadata patches for the AI enrichment
// consumer, enumeration for the digest assembler.
func newMux(admin *administrator) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /ingest", func(writer http.ResponseWriter, request *http.Request) {
		var item models.IngestItem
		if err := json.NewDecoder(request.Body).Decode(&item); err != nil {
			http.Error(writer, "failed to decode request", http.StatusBadRequest)
			logger.Log.Warn("Failed to decode ingest request", zap.Error(err))
			return
		}

		// Fail fast on metadata the store would reject anyway.
		if item.Metadata.String(models.KeyURL) == "" || item.Metadata.String(models.KeySourceType) == "" {
			http.Error(writer, "metadata must include url and source_type", http.StatusBadRequest)
			return
		}

		if err := admin.EnqueueItem(request.Context(), item); err != nil {
			http.Error(writer, "queue is full, try again later", http.StatusServiceUnavailable)
			logger.Log.Warn("Failed to enqueue item", zap.Error(err))
			return
		}
		writer.WriteHeader(http.StatusAccepted)
		writer.Write([]byte("Item enqueued"))
	})

	mux.HandleFunc("GET /content", func(writer http.ResponseWriter, request *http.Request) {
		status := request.URL.Query().Get("status")
		days := 0
		if d := request.URL.Query().Get("days"); d != "" {
			parsed, err := strconv.Atoi(d)
			if err != nil {
				http.Error(writer, "days must be an integer", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		var result map[string]models.Metadata
		if status == "" {
			result = admin.store.List()
		} else {
			result = make(map[string]models.Metadata)
			for _, id := range admin.store.FindByStatus(status, days) {
				meta, err := admin.store.GetMetadata(id)
				if err != nil {
					continue
				}
				result[id] = meta
			}
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(result)
	})

	mux.HandleFunc("GET /content/{id}", func(writer http.ResponseWriter, request *http.Request) {
		body, err := admin.store.Get(request.PathValue("id"))
		if err != nil {
			writeStoreError(writer, err)
			return
		}
		writer.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		writer.Write([]byte(body))
	})

	mux.HandleFunc("GET /content/{id}/metadata", func(writer http.ResponseWriter, request *http.Request) {
		id := request.PathValue("id")
		meta, err := admin.store.GetMetadata(id)
		if err != nil {
			writeStoreError(writer, err)
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(models.Record{ID: id, Metadata: meta})
	})

	mux.HandleFunc("PATCH /content/{id}/metadata", func(writer http.ResponseWriter, request *http.Request) {
		var patch models.Metadata
		if err := json.NewDecoder(request.Body).Decode(&patch); err != nil {
			http.Error(writer, "failed to decode patch", http.StatusBadRequest)
			return
		}
		if err := admin.store.UpdateMetadata(request.PathValue("id"), patch); err != nil {
			writeStoreError(writer, err)
			return
		}
		writer.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /cleanup", func(writer http.ResponseWriter, request *http.Request) {
		ttlDays := admin.config.TTLDays
		if d := request.URL.Query().Get("ttl_days"); d != "" {
			parsed, err := strconv.Atoi(d)
			if err != nil || parsed <= 0 {
				http.Error(writer, "ttl_days must be a positive integer", http.StatusBadRequest)
				return
			}
			ttlDays = parsed
		}

		deleted, err := admin.store.Cleanup(ttlDays)
		if err != nil {
			http.Error(writer, "cleanup failed", http.StatusInternalServerError)
			logger.Log.Error("Cleanup failed", zap.Error(err))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]int{"files_deleted": deleted})
	})

	// /metrics endpoint for Prometheus
	mux.Handle("GET /metrics", promhttp.Handler())

	// /health endpoint
	mux.HandleFunc("GET /health", func(writer http.ResponseWriter, request *http.Request) {
		health := struct {
			Status     string    `json:"status"`
			QueueDepth int       `json:"queue_depth"`
			Workers    int       `json:"workers"`
			Uptime     string    `json:"uptime"`
			StartTime  time.Time `json:"start_time"`
		}{
			Status:     "OK",
			QueueDepth: admin.QueueDepth(),
			Workers:    admin.WorkerCount(),
			Uptime:     time.Since(admin.StartTime()).String(),
			StartTime:  admin.StartTime(),
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(health)
	})

	return mux
}

// Maps store errors onto HTTP statuses: unknown ids are the caller's
// problem, everything else is ours.
func writeStoreError(writer http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(writer, err.Error(), http.StatusNotFound)
		return
	}
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(writer, "internal error", http.StatusInternalServerError)
	logger.Log.Error("Store operation failed", zap.Error(err))
}

// Starts the HTTP service. This is a simple HTTP server that accepts
// content from producers and serves stored records to consumers.
func startHTTP(admin *administrator, port string) {
	mux := newMux(admin)

	logger.Log.Info("HTTP service listening", zap.String("address", ":"+port))

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Log.Fatal("Failed to start HTTP service", zap.Error(err))
	}
}
