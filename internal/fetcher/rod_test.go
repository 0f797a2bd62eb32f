package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ArticlePage(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head>
	<title> Planning Guide </title>
	<meta property="og:image" content="https://example.com/preview.png">
	<meta name="description" content="A short description.">
</head>
<body>
	<article>
		<h1>Planning Guide</h1>
		<p>` + strings.Repeat("Planning a software project takes structure and patience. ", 20) + `</p>
		<p>` + strings.Repeat("Break the work down into phases before writing code. ", 20) + `</p>
	</article>
</body>
</html>`

	content, err := extract("https://example.com/guide", html)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/guide", content.URL)
	assert.Equal(t, "Planning Guide", content.Title)
	assert.Equal(t, "https://example.com/preview.png", content.ThumbnailURL)
	assert.Contains(t, content.Text, "structure and patience")
}

func TestExtract_FallsBackToMetaDescription(t *testing.T) {
	html := `<html>
<head>
	<title>Sparse Tool Page</title>
	<meta name="description" content="A tool landing page with no article body.">
</head>
<body></body>
</html>`

	content, err := extract("https://example.com/tool", html)
	require.NoError(t, err)

	assert.Equal(t, "Sparse Tool Page", content.Title)
	assert.Equal(t, "A tool landing page with no article body.", content.Text)
	assert.Empty(t, content.ThumbnailURL)
}

func TestExtract_EmptyPage(t *testing.T) {
	content, err := extract("https://example.com/empty", "<html><head></head><body></body></html>")
	require.NoError(t, err)

	assert.Empty(t, content.Title)
	assert.Empty(t, content.Text)
	assert.Empty(t, content.ThumbnailURL)
}
