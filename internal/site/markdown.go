package site

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	paragraphSplitRE = regexp.MustCompile(`\n\s*\n`)
	markdownLinkRE   = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)
)

// RenderMarkdown converts the small markdown subset the generation prompts
// ask for (blank-line paragraphs, ##/### headings, inline links) into HTML.
// All model text is escaped; only the markup produced here is trusted.
func RenderMarkdown(text string) template.HTML {
	var blocks []string
	for _, part := range paragraphSplitRE.Split(strings.TrimSpace(text), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, "### "):
			blocks = append(blocks, "<h3>"+html.EscapeString(strings.TrimSpace(part[4:]))+"</h3>")
		case strings.HasPrefix(part, "## "):
			blocks = append(blocks, "<h2>"+html.EscapeString(strings.TrimSpace(part[3:]))+"</h2>")
		default:
			blocks = append(blocks, "<p>"+linkify(html.EscapeString(part))+"</p>")
		}
	}
	return template.HTML(strings.Join(blocks, "\n  "))
}

// linkify rewrites [text](url) into anchors. It runs on escaped text, so an
// &amp; inside the URL is already correct for an href attribute.
func linkify(escaped string) string {
	return markdownLinkRE.ReplaceAllString(escaped, `<a href="$2" target="_blank" rel="noopener">$1</a>`)
}

// renderSocialPost bolds the variant heading (first line) the social prompt
// asks for and escapes everything.
func renderSocialPost(post string) template.HTML {
	heading, body, found := strings.Cut(post, "\n")
	if !found {
		return template.HTML(html.EscapeString(post))
	}
	return template.HTML("<strong>" + html.EscapeString(heading) + "</strong> " + html.EscapeString(body))
}
