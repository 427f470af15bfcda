package capture

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/microcosm-cc/bluemonday"
)

const maxPageBytes = 10 << 20

var _ Invoker = (*ReadabilityInvoker)(nil)

// ReadabilityInvoker captures a page in-process: fetch, strip scripts,
// extract the article body and write it as a standalone HTML document.
type ReadabilityInvoker struct {
	httpClient *http.Client
	userAgent  string
	sanitizer  *bluemonday.Policy
}

func NewReadabilityInvoker(httpClient *http.Client, userAgent string) *ReadabilityInvoker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &ReadabilityInvoker{
		httpClient: httpClient,
		userAgent:  userAgent,
		sanitizer:  p,
	}
}

func (r *ReadabilityInvoker) Invoke(ctx context.Context, spec CommandSpec) (Outcome, error) {
	start := time.Now()

	content, err := r.extract(ctx, spec.URL)
	if err != nil {
		slog.Debug("Readability extraction failed", "url", spec.URL, "error", err)
		return Outcome{
			ExitCode:    1,
			Duration:    time.Since(start),
			Stderr:      tail(err.Error()),
			Interrupted: ctx.Err() != nil,
		}, nil
	}

	if err := os.WriteFile(spec.OutputPath, []byte(document(spec.URL, content)), 0o644); err != nil {
		return Outcome{}, fmt.Errorf("%w: failed to write output file: %v", ErrLaunch, err)
	}

	return Outcome{Duration: time.Since(start)}, nil
}

func (r *ReadabilityInvoker) extract(ctx context.Context, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("content type is not HTML: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	sanitized := r.sanitizer.Sanitize(string(body))

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(sanitized), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return "", fmt.Errorf("no content extracted from %s", pageURL)
	}

	return content, nil
}

func document(pageURL, content string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<base href=\"%s\">\n", html.EscapeString(pageURL))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(content)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
