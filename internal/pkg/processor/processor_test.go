package processor

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/models"
	"newsletter/internal/pkg/processor/languagedetector"
)

func init() {
	logger.Log = zap.NewNop() // Set up a no-op logger to avoid nil pointer dereferences in tests.
}

func gateItem(content string) *models.IngestItem {
	return &models.IngestItem{
		Content: content,
		Metadata: models.Metadata{
			"url":         "https://example.com/article",
			"source_type": "html",
		},
	}
}

// An ordinary English article passes the gate and picks up annotations.
func TestProcessAcceptsEnglishContent(t *testing.T) {
	p := NewProcessor(10)

	item := gateItem("The maintainers released a new version of the scheduler this week, fixing a long-standing race in the shutdown path and improving startup latency on large clusters.")
	if err := p.Process(item); err != nil {
		t.Fatalf("Expected clean content to pass, got %v", err)
	}
	if item.Metadata.String("language") != "en" {
		t.Errorf("Expected language annotation 'en', got %q", item.Metadata.String("language"))
	}
	if _, ok := item.Metadata["spam_score"]; !ok {
		t.Error("Expected spam_score annotation")
	}
}

// The gate never rewrites the body; stored bytes must round-trip.
func TestProcessLeavesContentUntouched(t *testing.T) {
	p := NewProcessor(10)

	content := "Original   spacing and CASE must survive the quality gate untouched, including trailing whitespace.  "
	item := gateItem(content)
	if err := p.Process(item); err != nil {
		t.Fatalf("Expected content to pass, got %v", err)
	}
	if item.Content != content {
		t.Errorf("Content was modified:\nwant %q\ngot  %q", content, item.Content)
	}
}

func TestProcessRejectsEmptyContent(t *testing.T) {
	p := NewProcessor(10)

	if err := p.Process(gateItem("   \n\t ")); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestProcessRejectsNonEnglishContent(t *testing.T) {
	p := NewProcessor(10)

	item := gateItem("Die Bundesregierung hat heute ein neues Gesetz zur Förderung erneuerbarer Energien verabschiedet, das ab dem kommenden Jahr gelten soll.")
	if err := p.Process(item); !errors.Is(err, languagedetector.ErrNotEnglish) {
		t.Errorf("Expected ErrNotEnglish, got %v", err)
	}
}

func TestProcessRejectsHighSpamContent(t *testing.T) {
	p := NewProcessor(10)

	item := gateItem("ACT NOW! Limited time offer at our online casino. Double your bitcoin today, completely risk free, claim your prize!")
	if err := p.Process(item); !errors.Is(err, ErrHighSpam) {
		t.Errorf("Expected ErrHighSpam, got %v", err)
	}
}

// Texts too short for reliable detection pass with an unknown language.
func TestProcessShortContentPasses(t *testing.T) {
	p := NewProcessor(10)

	item := gateItem("Short note.")
	if err := p.Process(item); err != nil {
		t.Fatalf("Expected short content to pass, got %v", err)
	}
	if item.Metadata.String("language") != "unknown" {
		t.Errorf("Expected language 'unknown', got %q", item.Metadata.String("language"))
	}
}
