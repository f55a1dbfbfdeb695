package models

// Free-form metadata attached to a stored record. The store requires the
// "url" and "source_type" keys; everything else is opaque pass-through for
// collaborators (AI enrichment writes category, summary, tags, relevance).
type Metadata map[string]any

// Metadata keys managed by the store itself.
const (
	KeyContentID   = "content_id"
	KeyURL         = "url"
	KeyURLHash     = "url_hash"
	KeyFingerprint = "content_fingerprint"
	KeySourceType  = "source_type"
	KeyTitle       = "title"
	KeyDateAdded   = "date_added"
	KeyStatus      = "status"
)

// Default lifecycle status stamped on newly stored content.
const StatusPendingAI = "pending_ai"

// A unit of markdown content waiting to be gated and stored.
type IngestItem struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// A fully resolved stored record, as exposed over the HTTP API.
type Record struct {
	ID       string   `json:"id"`
	Metadata Metadata `json:"metadata"`
	Body     string   `json:"body,omitempty"`
}

// Returns the metadata value for key if it is a string, else "".
func (m Metadata) String(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Returns a shallow copy so callers can stamp fields without
// mutating the caller-owned map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
