package dedup

import (
	"testing"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
)

func init() {
	logger.Log = zap.NewNop() // Set up a no-op logger to avoid nil pointer dereferences in tests.
}

// Tests that tracking parameters, fragments, and case differences are
// removed while everything else survives.
func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tracking params and fragment dropped",
			input:    "https://EXAMPLE.com/a?utm_source=x&id=5#frag",
			expected: "https://example.com/a?id=5",
		},
		{
			name:     "all tracking params dropped",
			input:    "https://example.com/post?utm_medium=email&fbclid=abc&gclid=def",
			expected: "https://example.com/post",
		},
		{
			name:     "remaining params keep order and encoding",
			input:    "https://example.com/search?q=hello%20world&ref=newsletter&page=2",
			expected: "https://example.com/search?q=hello%20world&page=2",
		},
		{
			name:     "path case preserved",
			input:    "HTTPS://Example.COM/Path/To/Page",
			expected: "https://example.com/Path/To/Page",
		},
		{
			name:     "no query untouched",
			input:    "https://example.com/article",
			expected: "https://example.com/article",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeURL(tc.input)
			if got != tc.expected {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

// An unparseable URL must come back unchanged, never error.
func TestNormalizeURLParseFailure(t *testing.T) {
	raw := "http://[::1]:namedport"
	if got := NormalizeURL(raw); got != raw {
		t.Errorf("expected unparseable URL to pass through, got %q", got)
	}
}

// http and https variants of the same page are intentionally distinct.
func TestNormalizeURLSchemePreserved(t *testing.T) {
	httpHash := URLHash("http://example.com/a")
	httpsHash := URLHash("https://example.com/a")
	if httpHash == httpsHash {
		t.Error("expected http and https variants to hash differently")
	}
}

// Tests that equal normalized forms hash identically.
func TestURLHashStable(t *testing.T) {
	a := URLHash("https://Example.com/a?utm_source=x&id=5#frag")
	b := URLHash("https://example.com/a?id=5")
	if a != b {
		t.Errorf("expected equal hashes, got %q and %q", a, b)
	}

	c := URLHash("https://example.com/b?id=5")
	if a == c {
		t.Error("expected different URLs to hash differently")
	}
}
