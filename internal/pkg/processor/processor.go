package processor

import (
	"errors"
	"strings"
	"time"

	"github.com/pemistahl/lingua-go"
	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
	"newsletter/internal/pkg/models"
	"newsletter/internal/pkg/processor/languagedetector"
	"newsletter/internal/pkg/processor/spamdetector"
)

// Returned when the spam gate rejects an item.
var ErrHighSpam = errors.New("high spam content detected, skipping")

// Returned when an item has no usable content.
var ErrEmptyContent = errors.New("empty content")

// Defines the quality gate applied to ingest items before they reach the
// content store. The gate annotates metadata (language, spam score) but
// never rewrites the body; stored content must round-trip verbatim.
type Processor interface {
	Process(item *models.IngestItem) error
}

// The default implementation of Processor.
type processor struct {
	spamDetector *spamdetector.SpamDetector
}

// Creates a new Processor instance and wires in the sub-components.
func NewProcessor(spamBlockThreshold int) Processor {
	return &processor{
		spamDetector: spamdetector.NewSpamDetector(spamBlockThreshold),
	}
}

// Global language detector singleton to avoid repeated initialization
var languageDetector lingua.LanguageDetector

// Initializes the language detector once
func init() {
	// Build the detector with preloaded models for better performance
	languageDetector = lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithPreloadedLanguageModels().
		Build()
}

// Runs the ingest gate: content presence, language detection, spam scoring.
func (processor *processor) Process(item *models.IngestItem) error {
	if strings.TrimSpace(item.Content) == "" {
		return ErrEmptyContent
	}
	if item.Metadata == nil {
		item.Metadata = models.Metadata{}
	}

	if err := processor.detectLanguage(item); err != nil {
		return err
	}
	if err := processor.detectSpam(item); err != nil {
		return err
	}

	return nil
}

// Detects the language of the content and records it in the metadata.
func (processor *processor) detectLanguage(item *models.IngestItem) error {
	start := time.Now()

	lang, err := languagedetector.DetectLanguage(languageDetector, item.Content)

	metrics.LanguageDetectionLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, languagedetector.ErrNotEnglish) {
			logger.Log.Info("Skipping non-English content",
				zap.String("url", item.Metadata.String(models.KeyURL)),
				zap.String("detected_language", lang))
			return err
		}
		logger.Log.Warn("Language detection failed", zap.Error(err))
		item.Metadata["language"] = "unknown"
		return nil
	}

	item.Metadata["language"] = lang
	return nil
}

// Scores the content for spam and rejects items over the block threshold.
func (processor *processor) detectSpam(item *models.IngestItem) error {
	result := processor.spamDetector.DetectSpam(item.Content)
	metrics.SpamScoreHistogram.Observe(float64(result.Score))

	logger.Log.Debug("Spam detection result",
		zap.String("url", item.Metadata.String(models.KeyURL)),
		zap.Int("spam_score", result.Score),
		zap.Bool("is_high_spam", result.IsHighSpam))

	if result.IsHighSpam {
		metrics.SpamItemsSkipped.Inc()
		logger.Log.Info("Skipping high spam content",
			zap.String("url", item.Metadata.String(models.KeyURL)),
			zap.Int("spam_score", result.Score))
		return ErrHighSpam
	}

	item.Metadata["spam_score"] = result.Score
	return nil
}
