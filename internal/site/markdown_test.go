package site

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	got := string(RenderMarkdown(`## Co se mění

První odstavec s [zdroj](http://example.com/a?x=1&y=2).

### Detail

Druhý odstavec s <script>.`))

	require.Contains(t, got, "<h2>Co se mění</h2>")
	require.Contains(t, got, "<h3>Detail</h3>")
	require.Contains(t, got, `<a href="http://example.com/a?x=1&amp;y=2" target="_blank" rel="noopener">zdroj</a>`)
	require.Contains(t, got, "&lt;script&gt;")
	require.NotContains(t, got, "<script>")
}

func TestRenderMarkdown_Empty(t *testing.T) {
	require.Empty(t, string(RenderMarkdown("")))
	require.Empty(t, string(RenderMarkdown("  \n\n  ")))
}

func TestRenderSocialPost(t *testing.T) {
	got := string(renderSocialPost("Jednatel (formální):\nSledujeme vývoj <novely>."))
	require.Equal(t, "<strong>Jednatel (formální):</strong> Sledujeme vývoj &lt;novely&gt;.", got)

	// single-line post has no heading to bold
	got = string(renderSocialPost("jen text"))
	require.Equal(t, "jen text", got)
}
