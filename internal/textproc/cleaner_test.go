package textproc

import (
	"reflect"
	"testing"
)

func TestCleanDefaultPipeline(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner(DefaultOptions())

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"url stripped", "Check https://example.com/path today", "check today"},
		{"www url stripped", "see www.example.com for details", "see details"},
		{"uppercase url stripped", "Read the report at HTTP://EXAMPLE.COM/NEWS today", "read report today"},
		{"uppercase www url stripped", "visit WWW.FAKESITE.COM now", "visit"},
		{"html tags stripped", "<p>Hello <b>World</b></p>", "hello world"},
		{"email stripped", "Contact me at john@example.com please", "contact please"},
		{"punctuation stripped", "Breaking!!! News??? Today...", "breaking news today"},
		{"stopwords removed", "The quick brown fox and the lazy dog", "quick brown fox lazy dog"},
		{"digits removed", "123 456 abc7def", "abc def"},
		{"whitespace collapsed", "  lots    of   space  ", "lots space"},
		{"short tokens dropped", "an ox is by me", ""},
		{"empty input", "", ""},
		{"whitespace only", "   \n\t  ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := cleaner.Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanDeterministic(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner(DefaultOptions())
	in := "SHOCKING: Scientists discover <b>miracle</b> cure at https://clickbait.example!"

	first := cleaner.Clean(in)
	second := cleaner.Clean(in)
	if first != second {
		t.Fatalf("Clean is not deterministic: %q vs %q", first, second)
	}
}

func TestCleanStepsToggleable(t *testing.T) {
	t.Parallel()

	// Only lowercasing enabled: markup and punctuation must survive.
	cleaner := NewCleaner(Options{Lowercase: true})
	if got := cleaner.Clean("<b>KEEP</b>"); got != "<b>keep</b>" {
		t.Fatalf("expected markup kept, got %q", got)
	}

	// Stopword removal disabled keeps "the".
	opts := DefaultOptions()
	opts.RemoveStopwords = false
	cleaner = NewCleaner(opts)
	if got := cleaner.Clean("The Fox"); got != "the fox" {
		t.Fatalf("expected stopwords kept, got %q", got)
	}

	// Punctuation stripping alone must not eat capital letters.
	cleaner = NewCleaner(Options{StripPunctuation: true})
	if got := cleaner.Clean("Hello, World!"); got != "Hello World" {
		t.Fatalf("expected capitals kept without lowercasing, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("SHOCKING: It's a miracle!")
	want := []string{"shocking", "it", "s", "a", "miracle"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}

	if toks := Tokenize(""); len(toks) != 0 {
		t.Fatalf("expected no tokens for empty input, got %v", toks)
	}
}
