package languagedetector

import (
	"errors"

	"github.com/pemistahl/lingua-go"
	"go.uber.org/zap"

	"newsletter/internal/pkg/logger"
	"newsletter/internal/pkg/metrics"
)

// Returned when the detected language rules an item out of the newsletter.
var ErrNotEnglish = errors.New("not English content, skipping")

// Detects the language of a given text and returns the ISO 639-1 code.
// Short texts are assumed acceptable since there is too little signal to
// reject them.
func DetectLanguage(languageDetector lingua.LanguageDetector, text string) (string, error) {
	const minTextLength = 20
	if len(text) < minTextLength {
		return "unknown", nil
	}

	detectedLang, exists := languageDetector.DetectLanguageOf(text)
	if !exists {
		metrics.LanguageDetectionFailures.Inc()
		return "", errors.New("language detection failed")
	}

	// Get confidence values for all languages
	confidenceValues := languageDetector.ComputeLanguageConfidenceValues(text)
	var englishConfidence float64
	for _, conf := range confidenceValues {
		if conf.Language() == lingua.English {
			englishConfidence = conf.Value()
			break
		}
	}

	logger.Log.Debug("Language detection result",
		zap.String("detected_language", detectedLang.String()),
		zap.Float64("english_confidence", englishConfidence))

	if detectedLang == lingua.English {
		return "en", nil
	} else if englishConfidence > 0.33 {
		return detectedLang.IsoCode639_1().String(), nil
	}

	// The newsletter is English-only; skip everything else.
	metrics.NonEnglishItemsSkipped.Inc()
	return detectedLang.IsoCode639_1().String(), ErrNotEnglish
}
