package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
)

// Query parameters stripped during URL normalization. These carry tracking
// state only and make otherwise identical URLs hash differently.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"source":       {},
	"ref":          {},
	"fbclid":       {},
	"gclid":        {},
	"ocid":         {},
	"mc_cid":       {},
	"mc_eid":       {},
}

// Canonicalizes a URL for stable hashing: lower-cases the scheme and host,
// drops the fragment, and strips tracking query parameters while preserving
// the order and encoding of whatever remains. The scheme is kept as-is, so
// http:// and https:// variants of the same page normalize differently.
// On any parse failure the input is returned unchanged.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		logger.Log.Warn("Failed to parse URL, keeping as-is", zap.String("url", raw), zap.Error(err))
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.RawQuery = stripTrackingParams(parsed.RawQuery)

	return parsed.String()
}

// Filters tracking parameters out of a raw query string. Segments are kept
// verbatim so the encoding and ordering of surviving parameters survive the
// round trip.
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		key := segment
		if i := strings.Index(segment, "="); i >= 0 {
			key = segment[:i]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if _, tracking := trackingParams[key]; tracking {
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, "&")
}

// Generates a consistent hash for a URL after normalization. Two URLs that
// normalize to the same string always hash identically.
func URLHash(raw string) string {
	sum := sha256.Sum256([]byte(NormalizeURL(raw)))
	return hex.EncodeToString(sum[:])
}
