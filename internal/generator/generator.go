// Package generator produces the blog article and social-post variants for
// items that passed the appeal filter.
package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/springwalk/lexwatch/internal/llm"
	"github.com/springwalk/lexwatch/internal/types"
)

// ErrBadSocialFormat marks a social-post response that did not contain the
// three delimited variants the prompt asks for.
var ErrBadSocialFormat = errors.New("generator: expected 3 social post variants")

const socialPostCount = 3

var socialDelimRE = regexp.MustCompile(`(?m)^\s*---\s*$`)

// Generator turns one selected item into publishable content.
type Generator struct {
	provider    llm.Provider
	advisoryURL string
}

func New(provider llm.Provider, advisoryURL string) *Generator {
	return &Generator{provider: provider, advisoryURL: advisoryURL}
}

// Generate makes the two model calls for one item. Either call failing fails
// the whole item, so partial content is never published.
func (g *Generator) Generate(ctx context.Context, item types.ScoredItem) (*types.GeneratedContent, error) {
	blog, err := g.provider.Complete(ctx, llm.Request{
		System:      blogSystemPrompt,
		Prompt:      buildBlogPrompt(item.Item, g.advisoryURL),
		Temperature: 0.5,
		MaxTokens:   900,
	})
	if err != nil {
		return nil, fmt.Errorf("blog article for %s: %w", item.Item.Link, err)
	}
	if strings.TrimSpace(blog.Text) == "" {
		return nil, fmt.Errorf("blog article for %s: empty model response", item.Item.Link)
	}

	social, err := g.provider.Complete(ctx, llm.Request{
		System:      socialSystemPrompt,
		Prompt:      buildSocialPrompt(item.Item),
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		return nil, fmt.Errorf("social posts for %s: %w", item.Item.Link, err)
	}

	posts, err := splitSocialPosts(social.Text)
	if err != nil {
		return nil, fmt.Errorf("social posts for %s: %w", item.Item.Link, err)
	}

	return &types.GeneratedContent{
		BlogArticle: strings.TrimSpace(blog.Text),
		SocialPosts: posts,
	}, nil
}

// splitSocialPosts parses the "---" delimited variants. Each variant keeps
// its heading on the first line and the flattened body after it. Fewer than
// three real variants is a generation failure, not padded output.
func splitSocialPosts(raw string) ([]string, error) {
	var posts []string
	for _, block := range socialDelimRE.Split(strings.TrimSpace(raw), -1) {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		heading := lines[0]
		body := strings.Join(lines[1:], " ")
		posts = append(posts, strings.TrimSpace(heading+"\n"+body))
	}

	if len(posts) < socialPostCount {
		return nil, fmt.Errorf("%w, got %d", ErrBadSocialFormat, len(posts))
	}
	return posts[:socialPostCount], nil
}
