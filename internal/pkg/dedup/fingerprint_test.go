package dedup

import (
	"fmt"
	"strings"
	"testing"
)

// The fingerprint must be invariant under word reordering.
func TestFingerprintOrderInvariance(t *testing.T) {
	a := Fingerprint("alpha beta gamma delta", "")
	b := Fingerprint("delta gamma beta alpha", "")
	if a != b {
		t.Errorf("expected equal fingerprints for reordered words, got %q and %q", a, b)
	}
}

// Repeating words must not change the fingerprint.
func TestFingerprintDuplicationInvariance(t *testing.T) {
	a := Fingerprint("alpha beta gamma", "")
	b := Fingerprint("alpha alpha beta beta gamma gamma gamma", "")
	if a != b {
		t.Errorf("expected equal fingerprints for duplicated words, got %q and %q", a, b)
	}
}

// Case folding and the title both feed into the fingerprint.
func TestFingerprintCaseAndTitle(t *testing.T) {
	a := Fingerprint("Alpha BETA gamma", "")
	b := Fingerprint("alpha beta gamma", "")
	if a != b {
		t.Error("expected fingerprint to be case-insensitive")
	}

	withTitle := Fingerprint("alpha beta gamma", "epsilon")
	if withTitle == a {
		t.Error("expected title words to change the fingerprint")
	}
}

// Stopwords and short tokens must not contribute.
func TestSignificantWordsFiltering(t *testing.T) {
	words := SignificantWords("the cat sat with this shiny marble from here")
	// "the", "cat", "sat", "with", "this", "from" and "here"? "here" is 4 chars
	// and not a stopword, so it stays.
	expected := []string{"here", "marble", "shiny"}
	if len(words) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, words)
	}
	for i, w := range expected {
		if words[i] != w {
			t.Errorf("expected word %d to be %q, got %q", i, w, words[i])
		}
	}
}

// The cap keeps the lexicographically first 1000 words, deterministically.
func TestSignificantWordsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1500; i++ {
		fmt.Fprintf(&sb, "word%04d ", i)
	}

	words := SignificantWords(sb.String())
	if len(words) != maxSignificantWords {
		t.Fatalf("expected %d words, got %d", maxSignificantWords, len(words))
	}
	if words[0] != "word0000" {
		t.Errorf("expected first word to be 'word0000', got %q", words[0])
	}
	if words[len(words)-1] != "word0999" {
		t.Errorf("expected last word to be 'word0999', got %q", words[len(words)-1])
	}

	// Same input twice yields the same fingerprint.
	if Fingerprint(sb.String(), "") != Fingerprint(sb.String(), "") {
		t.Error("expected capped fingerprint to be deterministic")
	}
}

// Jaccard similarity bounds.
func TestSimilarity(t *testing.T) {
	if sim := Similarity("hello world", "hello world"); sim != 1.0 {
		t.Errorf("expected similarity 1.0 for identical texts, got %f", sim)
	}
	if sim := Similarity("alpha", "zulu"); sim != 0.0 {
		t.Errorf("expected similarity 0.0 for disjoint texts, got %f", sim)
	}
	if sim := Similarity("", ""); sim != 0.0 {
		t.Errorf("expected similarity 0.0 for empty texts, got %f", sim)
	}

	sim := Similarity("alpha beta gamma delta", "alpha beta gamma epsilon")
	if sim <= 0.0 || sim >= 1.0 {
		t.Errorf("expected partial overlap strictly between 0 and 1, got %f", sim)
	}
}

// Records sharing a fingerprint necessarily have similarity 1.0, which is why
// the similarity confirmation after a fingerprint match can never reject.
func TestFingerprintMatchImpliesFullSimilarity(t *testing.T) {
	a := "breaking analysis language models shipped today"
	b := "today shipped language models analysis breaking breaking"

	if Fingerprint(a, "") != Fingerprint(b, "") {
		t.Fatal("expected reordered texts to share a fingerprint")
	}
	if sim := Similarity(a, b); sim != 1.0 {
		t.Errorf("expected similarity 1.0 for equal word sets, got %f", sim)
	}
}
