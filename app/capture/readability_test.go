package capture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleSentence = "The archivist keeps a durable offline copy of every page worth reading later."

func articlePage() string {
	paragraph := "<p>" + strings.Repeat(articleSentence+" ", 6) + "</p>\n"
	return `<!DOCTYPE html>
<html>
<head><title>Offline copies</title><script>window.tracker = true;</script></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Offline copies</h1>
` + strings.Repeat(paragraph, 5) + `
</article>
<footer>Copyright</footer>
</body>
</html>`
}

func TestReadabilityInvoker_WritesArticle(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage()))
	}))
	defer server.Close()

	out := filepath.Join(t.TempDir(), "a.html")
	invoker := NewReadabilityInvoker(server.Client(), "feed-archiver/test")

	outcome, err := invoker.Invoke(context.Background(), CommandSpec{Tool: "readability", URL: server.URL + "/post", OutputPath: out})

	require.NoError(t, err)
	assert.True(t, outcome.Success(), outcome.Stderr)
	assert.Equal(t, "feed-archiver/test", userAgent)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "durable offline copy")
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.NotContains(t, string(data), "window.tracker")
}

func TestReadabilityInvoker_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	out := filepath.Join(t.TempDir(), "a.html")
	outcome, err := NewReadabilityInvoker(server.Client(), "").Invoke(context.Background(), CommandSpec{Tool: "readability", URL: server.URL, OutputPath: out})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ExitCode)
	assert.Contains(t, outcome.Stderr, "404")
	assert.NoFileExists(t, out)
}

func TestReadabilityInvoker_NotHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer server.Close()

	out := filepath.Join(t.TempDir(), "a.html")
	outcome, err := NewReadabilityInvoker(server.Client(), "").Invoke(context.Background(), CommandSpec{Tool: "readability", URL: server.URL, OutputPath: out})

	require.NoError(t, err)
	assert.False(t, outcome.Success())
	assert.Contains(t, outcome.Stderr, "content type is not HTML")
	assert.NoFileExists(t, out)
}
