package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Tokens shorter than this are not significant.
const minWordLength = 4

// Cap on the significant-word set. When a document exceeds it, the
// lexicographically first maxSignificantWords are kept, so the cap is
// deterministic rather than a sample.
const maxSignificantWords = 1000

// Words too common to distinguish one document from another.
var stopwords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "this": {},
	"that": {}, "from": {}, "what": {}, "have": {}, "been": {},
}

// Extracts the significant words of a text: whitespace tokens of length >= 4,
// lower-cased, minus stopwords, deduplicated, sorted, capped. The returned
// slice is sorted and free of duplicates.
func SignificantWords(text string) []string {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if len(word) < minWordLength {
			continue
		}
		lower := strings.ToLower(word)
		if _, stop := stopwords[lower]; stop {
			continue
		}
		set[lower] = struct{}{}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)

	if len(words) > maxSignificantWords {
		words = words[:maxSignificantWords]
	}
	return words
}

// Generates a fingerprint of content that is resistant to reordering and
// duplication: a SHA-256 over the sorted significant-word set of the
// lower-cased title and content. Identical significant-word sets always
// yield identical fingerprints.
func Fingerprint(content, title string) string {
	combined := strings.ToLower(title + " " + content)
	joined := strings.Join(SignificantWords(combined), " ")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}

// Calculates the Jaccard similarity of two texts over their significant-word
// sets. Returns a score in [0.0, 1.0]; 0.0 when both sets are empty.
func Similarity(a, b string) float64 {
	wordsA := SignificantWords(strings.ToLower(a))
	wordsB := SignificantWords(strings.ToLower(b))

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}

	intersection := 0
	for _, w := range wordsB {
		if _, ok := setA[w]; ok {
			intersection++
		}
	}

	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
