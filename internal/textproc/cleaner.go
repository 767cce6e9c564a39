package textproc

import (
	"regexp"
	"strings"
)

var (
	// URL stripping runs before lowercasing, so it must match any casing
	// itself; likewise punctuation stripping must not eat capitals.
	urlExpr   = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	htmlExpr  = regexp.MustCompile(`<[^>]*>`)
	emailExpr = regexp.MustCompile(`\S+@\S+`)
	punctExpr = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	digitExpr = regexp.MustCompile(`\d+`)
	wordExpr  = regexp.MustCompile(`[a-z]+`)
)

// Options toggles individual cleaning steps. Use DefaultOptions for the
// full pipeline; the zero value disables everything.
type Options struct {
	StripURLs        bool
	StripHTML        bool
	StripEmails      bool
	Lowercase        bool
	StripPunctuation bool
	StripDigits      bool
	RemoveStopwords  bool
	MinTokenLen      int
}

// DefaultOptions enables every cleaning step.
func DefaultOptions() Options {
	return Options{
		StripURLs:        true,
		StripHTML:        true,
		StripEmails:      true,
		Lowercase:        true,
		StripPunctuation: true,
		StripDigits:      true,
		RemoveStopwords:  true,
		MinTokenLen:      3,
	}
}

// Cleaner normalizes raw article text into the canonical form consumed by
// feature extraction. Clean is pure and deterministic.
type Cleaner struct {
	opts      Options
	stopwords map[string]struct{}
}

// NewCleaner builds a cleaner with the given step toggles.
func NewCleaner(opts Options) *Cleaner {
	return &Cleaner{opts: opts, stopwords: stopwordSet()}
}

// Clean applies the configured steps in order: URLs, HTML tags, e-mail
// addresses, lowercasing, punctuation, digits, whitespace collapsing and
// stopword removal. Degenerate input yields an empty string, never an
// error.
func (c *Cleaner) Clean(text string) string {
	if c.opts.StripURLs {
		text = urlExpr.ReplaceAllString(text, " ")
	}
	if c.opts.StripHTML {
		text = htmlExpr.ReplaceAllString(text, " ")
	}
	if c.opts.StripEmails {
		text = emailExpr.ReplaceAllString(text, " ")
	}
	if c.opts.Lowercase {
		text = strings.ToLower(text)
	}
	if c.opts.StripPunctuation {
		text = punctExpr.ReplaceAllString(text, " ")
	}
	if c.opts.StripDigits {
		text = digitExpr.ReplaceAllString(text, " ")
	}

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, tok := range tokens {
		if c.opts.MinTokenLen > 0 && len(tok) < c.opts.MinTokenLen {
			continue
		}
		if c.opts.RemoveStopwords {
			if _, ok := c.stopwords[tok]; ok {
				continue
			}
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// Tokenize lowercases the text and returns its alphabetic tokens. It runs
// on raw input, before any cleaning, so lexicon matching sees signal words
// that punctuation stripping could otherwise alter.
func Tokenize(text string) []string {
	return wordExpr.FindAllString(strings.ToLower(text), -1)
}
