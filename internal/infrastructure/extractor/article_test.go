package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractParagraphs(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `<html><head>
		<script>var tracking = "should never appear";</script>
		<style>p { color: red }</style>
	</head><body>
		<p>The committee published its findings on Tuesday after a lengthy review process.</p>
		<p>Officials said the report   would inform
		policy decisions next quarter.</p>
		<noscript>enable javascript</noscript>
	</body></html>`)

	text, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "The committee published its findings on Tuesday after a lengthy review process. " +
		"Officials said the report would inform policy decisions next quarter."
	if text != want {
		t.Fatalf("Extract = %q, want %q", text, want)
	}
}

func TestExtractScriptContentDropped(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `<html><body>
		<p>A perfectly ordinary paragraph of article text long enough to pass the length check without falling back.</p>
		<script>var secret = "tracking payload";</script>
	</body></html>`)

	text, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if strings.Contains(text, "tracking payload") {
		t.Fatalf("script content leaked into extraction: %q", text)
	}
}

func TestExtractArticleFallback(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `<html><body>
		<article>Markup without paragraph tags still yields the article body text.</article>
	</body></html>`)

	text, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "Markup without paragraph tags still yields the article body text." {
		t.Fatalf("Extract = %q", text)
	}
}

func TestExtractNoText(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, `<html><body><div></div></body></html>`)

	if _, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for a page without article text")
	}
}

func TestExtractNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusNotFound, "gone")

	if _, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestExtractSetsUserAgent(t *testing.T) {
	t.Parallel()

	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<p>A paragraph long enough to be treated as the extracted article body without any fallback.</p>`))
	}))
	t.Cleanup(srv.Close)

	if _, err := NewHTTPExtractor(srv.Client()).Extract(context.Background(), srv.URL); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if agent != "NewsGuard/1.0" {
		t.Fatalf("User-Agent = %q, want NewsGuard/1.0", agent)
	}
}
