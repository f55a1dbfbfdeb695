package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"newsletter/internal/pkg/dedup"
	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
	"newsletter/internal/pkg/models"
)

// Minimum Jaccard similarity for treating a fingerprint match as a
// duplicate. Kept as a confirmation gate even though equal fingerprints
// imply equal significant-word sets today; it guards against future
// fingerprint changes, not current false positives.
const similarityThreshold = 0.85

// Persists markdown content with YAML front matter in a content-addressed
// directory layout: <dataDir>/<first-2-chars-of-id>/<id>/<source_type>.md.
// The dedup index is rebuilt from disk at construction and updated on every
// write; the filesystem is the single source of truth.
//
// All operations are serialized by a per-process mutex. The store is not
// safe across concurrent processes; it assumes a single writer.
type Store struct {
	mu      sync.Mutex
	dataDir string
	index   dedup.Index
}

// Creates a Store rooted at dataDir and rebuilds the dedup index by
// scanning every persisted record's front matter.
func New(dataDir string, index dedup.Index) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dataDir, err)
	}

	s := &Store{
		dataDir: dataDir,
		index:   index,
	}
	s.rebuildIndex()
	return s, nil
}

// Populates the dedup index from the on-disk records. Cost is one file read
// per record; acceptable at newsletter volumes.
func (s *Store) rebuildIndex() {
	start := time.Now()
	count := 0

	s.walkRecords(func(id string, meta models.Metadata, _ string) {
		urlHash := meta.String(models.KeyURLHash)
		if urlHash == "" {
			// Older records may predate the url_hash field.
			if url := meta.String(models.KeyURL); url != "" {
				urlHash = dedup.URLHash(url)
			}
		}
		s.index.Add(urlHash, meta.String(models.KeyFingerprint), id)
		count++
	})

	metrics.IndexRebuildLatency.Observe(time.Since(start).Seconds())
	logger.Log.Info("Rebuilt deduplication index",
		zap.Int("records", count),
		zap.Duration("elapsed", time.Since(start)))
}

// Stores content, deduplicating first by normalized URL and then by content
// fingerprint with a similarity confirmation. Returns the content ID of
// either the new record or the duplicate it resolved to.
func (s *Store) Store(content string, metadata models.Metadata) (string, error) {
	url := metadata.String(models.KeyURL)
	if url == "" {
		return "", &ValidationError{Field: models.KeyURL}
	}
	sourceType := metadata.String(models.KeySourceType)
	if sourceType == "" {
		return "", &ValidationError{Field: models.KeySourceType}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	urlHash := dedup.URLHash(url)
	if id, found := s.index.LookupURL(urlHash); found {
		logger.Log.Info("Found duplicate URL",
			zap.String("url", url),
			zap.String("content_id", id))
		metrics.URLDuplicates.Inc()
		return id, nil
	}

	fingerprint := dedup.Fingerprint(content, metadata.String(models.KeyTitle))
	if id, found := s.index.LookupFingerprint(fingerprint); found {
		existing, err := s.readBody(id)
		if err != nil {
			// Dangling index entry; store as new rather than fail the ingest.
			logger.Log.Warn("Fingerprint match is unreadable, storing as new",
				zap.String("content_id", id), zap.Error(err))
		} else if similarity := dedup.Similarity(content, existing); similarity >= similarityThreshold {
			logger.Log.Info("Found similar content",
				zap.String("content_id", id),
				zap.Float64("similarity", similarity))
			metrics.FingerprintDuplicates.Inc()
			return id, nil
		}
	}

	id := uuid.NewString()
	meta := metadata.Clone()
	meta[models.KeyContentID] = id
	meta[models.KeyURLHash] = urlHash
	meta[models.KeyFingerprint] = fingerprint
	if meta.String(models.KeyDateAdded) == "" {
		meta[models.KeyDateAdded] = time.Now().UTC().Format(time.RFC3339)
	}
	if meta.String(models.KeyStatus) == "" {
		meta[models.KeyStatus] = models.StatusPendingAI
	}

	path := s.recordPath(id, sourceType)
	if err := s.writeRecord(path, meta, content); err != nil {
		return "", err
	}

	s.index.Add(urlHash, fingerprint, id)
	metrics.ContentStored.Inc()
	logger.Log.Info("Stored content",
		zap.String("content_id", id),
		zap.String("path", path))
	return id, nil
}

// Returns the body of a record.
func (s *Store) Get(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readBody(id)
}

// Returns the metadata of a record.
func (s *Store) GetMetadata(id string) (models.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordFile(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}
	meta, _ := decodeRecord(raw)
	return meta, nil
}

// Merges patch into a record's metadata and rewrites the file. Patch keys
// overwrite, other fields and the body are untouched.
func (s *Store) UpdateMetadata(id string, patch models.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordFile(id)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading record %s: %w", path, err)
	}

	meta, body := decodeRecord(raw)
	for k, v := range patch {
		meta[k] = v
	}

	if err := s.writeRecord(path, meta, body); err != nil {
		return err
	}
	logger.Log.Info("Updated metadata", zap.String("content_id", id))
	return nil
}

// Enumerates all records as a content ID to metadata mapping. Unreadable
// records are logged and skipped.
func (s *Store) List() map[string]models.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]models.Metadata)
	s.walkRecords(func(id string, meta models.Metadata, _ string) {
		result[id] = meta
	})
	return result
}

// Calls fn once per record with its id, metadata, and file path. One .md
// file is read per content ID. Unreadable files are counted and skipped so
// a single bad record never takes down a scan.
func (s *Store) walkRecords(fn func(id string, meta models.Metadata, path string)) {
	prefixes, err := os.ReadDir(s.dataDir)
	if err != nil {
		logger.Log.Warn("Failed to read data dir", zap.String("dir", s.dataDir), zap.Error(err))
		return
	}

	for _, prefix := range prefixes {
		if !prefix.IsDir() || len(prefix.Name()) != 2 {
			continue
		}
		prefixPath := filepath.Join(s.dataDir, prefix.Name())

		idDirs, err := os.ReadDir(prefixPath)
		if err != nil {
			logger.Log.Warn("Failed to read shard dir", zap.String("dir", prefixPath), zap.Error(err))
			continue
		}

		for _, idDir := range idDirs {
			if !idDir.IsDir() || !strings.HasPrefix(idDir.Name(), prefix.Name()) {
				continue
			}
			recordDir := filepath.Join(prefixPath, idDir.Name())

			files, err := os.ReadDir(recordDir)
			if err != nil {
				logger.Log.Warn("Failed to read record dir", zap.String("dir", recordDir), zap.Error(err))
				metrics.CorruptRecordsSkipped.Inc()
				continue
			}

			for _, file := range files {
				if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
					continue
				}
				path := filepath.Join(recordDir, file.Name())
				raw, err := os.ReadFile(path)
				if err != nil {
					logger.Log.Warn("Skipping unreadable record", zap.String("path", path), zap.Error(err))
					metrics.CorruptRecordsSkipped.Inc()
					break
				}
				meta, _ := decodeRecord(raw)
				fn(idDir.Name(), meta, path)
				break // one file per content ID
			}
		}
	}
}

// Reads a record body without taking the mutex; callers hold it.
func (s *Store) readBody(id string) (string, error) {
	path, err := s.recordFile(id)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading record %s: %w", path, err)
	}
	_, body := decodeRecord(raw)
	return body, nil
}

// Resolves a content ID to its record file path.
func (s *Store) recordFile(id string) (string, error) {
	if len(id) < 2 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dir := filepath.Join(s.dataDir, id[:2], id)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Builds the content-addressed path for a record.
func (s *Store) recordPath(id, sourceType string) string {
	return filepath.Join(s.dataDir, id[:2], id, sourceType+".md")
}

// Writes a record atomically: serialize, write a temp file in the same
// directory, rename over the destination. A crash mid-write leaves at worst
// a stale temp file that the rebuild scan ignores.
func (s *Store) writeRecord(path string, meta models.Metadata, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		metrics.WriteFailures.Inc()
		return fmt.Errorf("creating record dir for %s: %w", path, err)
	}

	data, err := encodeRecord(meta, body)
	if err != nil {
		metrics.WriteFailures.Inc()
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		metrics.WriteFailures.Inc()
		logger.Log.Error("Failed to write record", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("writing record %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		metrics.WriteFailures.Inc()
		os.Remove(tmp)
		logger.Log.Error("Failed to rename record into place", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("renaming record %s: %w", path, err)
	}
	return nil
}
