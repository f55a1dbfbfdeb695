package dedup

import "sync"

// Defines the fast duplicate-lookup index kept alongside the store: one map
// from URL hash to content ID and one from content fingerprint to content ID.
// The index is a cache only. It must always be reconstructible by rescanning
// the store, which remains the single source of truth.
type Index interface {
	LookupURL(urlHash string) (string, bool)
	LookupFingerprint(fingerprint string) (string, bool)
	Add(urlHash, fingerprint, contentID string)
	Remove(urlHash, fingerprint string)
}

// The default in-memory implementation of Index.
type memoryIndex struct {
	mu            sync.RWMutex
	byURLHash     map[string]string
	byFingerprint map[string]string
}

// Creates a new Index backed by in-memory maps.
func NewMemoryIndex() Index {
	return &memoryIndex{
		byURLHash:     make(map[string]string),
		byFingerprint: make(map[string]string),
	}
}

// Looks up a content ID by URL hash.
func (idx *memoryIndex) LookupURL(urlHash string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, found := idx.byURLHash[urlHash]
	return id, found
}

// Looks up a content ID by content fingerprint.
func (idx *memoryIndex) LookupFingerprint(fingerprint string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, found := idx.byFingerprint[fingerprint]
	return id, found
}

// Records both lookup entries for a stored record.
func (idx *memoryIndex) Add(urlHash, fingerprint, contentID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if urlHash != "" {
		idx.byURLHash[urlHash] = contentID
	}
	if fingerprint != "" {
		idx.byFingerprint[fingerprint] = contentID
	}
}

// Evicts both lookup entries for a deleted record.
func (idx *memoryIndex) Remove(urlHash, fingerprint string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.byURLHash, urlHash)
	delete(idx.byFingerprint, fingerprint)
}
