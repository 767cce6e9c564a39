package features

import (
	"strings"
	"unicode"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/textproc"
)

// Flagged-term lexicons. Matching is case-insensitive and runs on the raw
// tokenization, not the cleaned text, so uppercase headlines like
// "SHOCKING:" still count.
var (
	sensationalTerms = []string{
		"shocking", "unbelievable", "amazing", "secret", "miracle",
		"exposed", "breaking", "urgent", "alert",
	}
	emotionalTerms = []string{
		"hate", "love", "fear", "angry", "happy", "sad",
	}
)

// LexicalExtractor computes the interpretable scalar signals surfaced in
// every detection result. Pure and deterministic.
type LexicalExtractor struct {
	sensational map[string]struct{}
	emotional   map[string]struct{}
}

// NewLexicalExtractor builds an extractor over the fixed lexicons.
func NewLexicalExtractor() *LexicalExtractor {
	return &LexicalExtractor{
		sensational: termSet(sensationalTerms),
		emotional:   termSet(emotionalTerms),
	}
}

// Extract counts lexicon hits on the raw text and measures the cleaned
// text that feeds the vectorizer. Empty input yields zero counts.
func (e *LexicalExtractor) Extract(rawText, cleanedText string) domain.LexicalFeatures {
	feats := domain.LexicalFeatures{
		ExclamationCount: strings.Count(rawText, "!"),
		QuestionCount:    strings.Count(rawText, "?"),
		CapitalRatio:     capitalRatio(rawText),
	}

	for _, tok := range textproc.Tokenize(rawText) {
		if _, ok := e.sensational[tok]; ok {
			feats.SensationalCount++
		}
		if _, ok := e.emotional[tok]; ok {
			feats.EmotionalCount++
		}
	}

	if cleanedText != "" {
		feats.WordCount = len(strings.Fields(cleanedText))
	}

	return feats
}

func capitalRatio(text string) float64 {
	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}
