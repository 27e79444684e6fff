package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out := string(RenderMarkdown("# Title\n\nsome **bold** text"))

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hello <script>alert(1)</script> world"))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "hello")
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	out := string(RenderMarkdown("```go\nfmt.Println(\"hi\")\n```"))

	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "fmt.Println")
}

func TestRenderMarkdownImageHardening(t *testing.T) {
	out := string(RenderMarkdown("![shot](https://example.com/a.png)"))

	assert.Contains(t, out, "referrerpolicy=\"no-referrer\"")
	assert.Contains(t, out, "loading=\"lazy\"")
}

func TestRenderMarkdownLinksOpenInNewTab(t *testing.T) {
	out := string(RenderMarkdown("[docs](https://example.com/docs)"))

	assert.Contains(t, out, "target=\"_blank\"")
	assert.True(t, strings.Contains(out, "noreferrer") || strings.Contains(out, "noopener"))
}

func TestEnhanceHTMLContentEmpty(t *testing.T) {
	assert.Empty(t, string(EnhanceHTMLContent("")))
}
