package spamdetector

import (
	"testing"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
)

func init() {
	logger.Log = zap.NewNop() // Set up a no-op logger to avoid nil pointer dereferences in tests.
}

// Clean editorial text scores zero.
func TestDetectSpamCleanText(t *testing.T) {
	sd := NewSpamDetector(10)

	result := sd.DetectSpam("A thoughtful essay about distributed systems and their failure modes.")
	if result.Score != 0 {
		t.Errorf("Expected score 0 for clean text, got %d", result.Score)
	}
	if result.IsHighSpam {
		t.Error("Expected clean text not to be flagged")
	}
}

// Heavily promotional text crosses the block threshold.
func TestDetectSpamPromotionalText(t *testing.T) {
	sd := NewSpamDetector(10)

	text := "ACT NOW! Limited time offer! Claim your prize at our online casino. Double your bitcoin, risk free!"
	result := sd.DetectSpam(text)
	if result.Score < 10 {
		t.Errorf("Expected a high spam score, got %d", result.Score)
	}
	if !result.IsHighSpam {
		t.Error("Expected promotional text to be flagged as high spam")
	}
}

// Matching is case-insensitive.
func TestDetectSpamCaseInsensitive(t *testing.T) {
	sd := NewSpamDetector(100)

	lower := sd.DetectSpam("cheap viagra for sale")
	upper := sd.DetectSpam("CHEAP VIAGRA FOR SALE")
	if lower.Score != upper.Score {
		t.Errorf("Expected case-insensitive scores to match, got %d and %d", lower.Score, upper.Score)
	}
	if lower.Score == 0 {
		t.Error("Expected spam phrase to score")
	}
}

// Empty text is never spam.
func TestDetectSpamEmptyText(t *testing.T) {
	sd := NewSpamDetector(1)

	result := sd.DetectSpam("")
	if result.Score != 0 || result.IsHighSpam {
		t.Errorf("Expected empty text to score 0, got %+v", result)
	}
}
