// Package detector guesses the language of returned OCR text. The invoice
// parser's fingerprints are English-specific, so a non-English detection is
// worth a warning before parsing inevitably rejects the document.
package detector

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

// candidateLanguages covers the languages invoices realistically arrive in
// from current vendors. A narrow set keeps detection accurate on the short,
// noisy text OCR produces.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the detected language name (e.g. "English") and
// whether detection was confident enough to report anything. Building the
// lingua models is expensive, so the detector is created once and reused.
func DetectLanguage(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}

// IsEnglish reports whether the text is detected as English. Undetectable
// text counts as English so the advisory warning never blocks processing.
func IsEnglish(text string) bool {
	lang, ok := DetectLanguage(text)
	if !ok {
		return true
	}
	return lang == lingua.English.String()
}
