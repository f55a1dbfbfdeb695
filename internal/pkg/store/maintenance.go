package store

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
	"newsletter/internal/pkg/models"
)

// Returns the IDs of records with exactly the given status. When days > 0,
// only records whose date_added falls within the last N days are included.
func (s *Store) FindByStatus(status string, days int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cutoff time.Time
	if days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -days)
	}

	var ids []string
	s.walkRecords(func(id string, meta models.Metadata, _ string) {
		if meta.String(models.KeyStatus) != status {
			return
		}
		if days > 0 {
			added, err := time.Parse(time.RFC3339, meta.String(models.KeyDateAdded))
			if err != nil || added.Before(cutoff) {
				return
			}
		}
		ids = append(ids, id)
	})

	logger.Log.Info("Found records by status",
		zap.String("status", status),
		zap.Int("count", len(ids)))
	return ids
}

// Deletes every record older than ttlDays, removing the record's files and
// its directory and evicting both dedup index entries. Returns the number of
// files removed. Records with an unparseable date_added are left alone.
func (s *Store) Cleanup(ttlDays int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -ttlDays)
	deleted := 0

	type expired struct {
		id          string
		dir         string
		urlHash     string
		fingerprint string
	}
	var toDelete []expired

	s.walkRecords(func(id string, meta models.Metadata, path string) {
		dateAdded := meta.String(models.KeyDateAdded)
		added, err := time.Parse(time.RFC3339, dateAdded)
		if err != nil {
			logger.Log.Warn("Record has unparseable date_added, skipping cleanup",
				zap.String("content_id", id),
				zap.String("date_added", dateAdded))
			return
		}
		if !added.Before(cutoff) {
			return
		}
		toDelete = append(toDelete, expired{
			id:          id,
			dir:         filepath.Dir(path),
			urlHash:     meta.String(models.KeyURLHash),
			fingerprint: meta.String(models.KeyFingerprint),
		})
	})

	for _, record := range toDelete {
		files, err := os.ReadDir(record.dir)
		if err != nil {
			logger.Log.Warn("Failed to read record dir during cleanup",
				zap.String("dir", record.dir), zap.Error(err))
			continue
		}
		for _, file := range files {
			path := filepath.Join(record.dir, file.Name())
			if err := os.Remove(path); err != nil {
				logger.Log.Warn("Failed to delete file", zap.String("path", path), zap.Error(err))
				continue
			}
			deleted++
			logger.Log.Debug("Deleted old file", zap.String("path", path))
		}

		// Remove the record directory if now empty.
		if err := os.Remove(record.dir); err != nil {
			logger.Log.Warn("Failed to remove record dir", zap.String("dir", record.dir), zap.Error(err))
		}

		s.index.Remove(record.urlHash, record.fingerprint)
	}

	metrics.RecordsDeleted.Add(float64(deleted))
	logger.Log.Info("Cleaned up old records",
		zap.Int("files_deleted", deleted),
		zap.Int("ttl_days", ttlDays))
	return deleted, nil
}
