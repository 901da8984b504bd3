// Package detector guesses the natural language of a corpus.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultSampleLines is how many non-blank lines Detect looks at.
const DefaultSampleLines = 200

// candidates keeps the detector small; lingua loads one model per language.
var candidates = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Latin,
}

// Detector wraps a lingua language detector.
type Detector struct {
	detector    lingua.LanguageDetector
	sampleLines int
}

// New builds a Detector over the candidate languages.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			WithLowAccuracyMode().
			Build(),
		sampleLines: DefaultSampleLines,
	}
}

// Sample joins up to n non-blank lines from the start of the corpus.
func Sample(lines []string, n int) string {
	var sb strings.Builder
	taken := 0
	for _, line := range lines {
		if taken >= n {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		taken++
	}
	return sb.String()
}

// Detect returns the most likely language of the corpus. ok is false when
// the sample is empty or too ambiguous to call.
func (d *Detector) Detect(lines []string) (lang lingua.Language, ok bool) {
	sample := Sample(lines, d.sampleLines)
	if sample == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(sample)
}

// IsEnglish reports whether lang is English.
func IsEnglish(lang lingua.Language) bool {
	return lang == lingua.English
}
