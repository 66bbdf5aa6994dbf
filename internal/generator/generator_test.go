package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/springwalk/lexwatch/internal/llm"
	"github.com/springwalk/lexwatch/internal/types"
)

const goodSocialResponse = `---
Společnost Spring Walk:
Novela přináší změny pro zaměstnavatele.
Doporučujeme se s nimi seznámit včas.
---
Jednatel (formální):
Sledujeme vývoj novely zákoníku práce.
---
Jednatel (hravý):
Zákoník práce se zase mění, držte si klobouky!
---`

// fakeProvider routes by system prompt: one answer for the blog call, one
// for the social call.
type fakeProvider struct {
	blogText   string
	blogErr    error
	socialText string
	socialErr  error
	calls      []string
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if strings.Contains(req.System, "copywriter") {
		f.calls = append(f.calls, "blog")
		if f.blogErr != nil {
			return nil, f.blogErr
		}
		return &llm.Response{Text: f.blogText}, nil
	}
	f.calls = append(f.calls, "social")
	if f.socialErr != nil {
		return nil, f.socialErr
	}
	return &llm.Response{Text: f.socialText}, nil
}

func scoredItem() types.ScoredItem {
	return types.ScoredItem{
		Item: types.FeedItem{
			Title:   "Novela zákoníku práce",
			Summary: "Shrnutí novely.",
			Link:    "http://example.com/novela",
		},
		Appeal: 4,
	}
}

func TestGenerate_Success(t *testing.T) {
	provider := &fakeProvider{
		blogText:   "## Co se mění\n\nPrvní odstavec.\n\nDruhý odstavec.",
		socialText: goodSocialResponse,
	}
	g := New(provider, "https://example.com/poradenstvi")

	content, err := g.Generate(context.Background(), scoredItem())
	require.NoError(t, err)
	require.Equal(t, []string{"blog", "social"}, provider.calls)
	require.Contains(t, content.BlogArticle, "Co se mění")

	require.Len(t, content.SocialPosts, 3)
	require.True(t, strings.HasPrefix(content.SocialPosts[0], "Společnost Spring Walk:"))
	require.True(t, strings.HasPrefix(content.SocialPosts[1], "Jednatel (formální):"))
	require.True(t, strings.HasPrefix(content.SocialPosts[2], "Jednatel (hravý):"))
	require.Contains(t, content.SocialPosts[0], "Doporučujeme se s nimi seznámit včas.")
}

func TestGenerate_BlogFailureSkipsSocialCall(t *testing.T) {
	provider := &fakeProvider{blogErr: errors.New("timeout")}
	g := New(provider, "https://example.com/poradenstvi")

	content, err := g.Generate(context.Background(), scoredItem())
	require.Error(t, err)
	require.Nil(t, content)
	require.Equal(t, []string{"blog"}, provider.calls)
}

func TestGenerate_SocialFailureYieldsNoPartialContent(t *testing.T) {
	provider := &fakeProvider{
		blogText:  "Hotový článek.",
		socialErr: errors.New("timeout"),
	}
	g := New(provider, "https://example.com/poradenstvi")

	content, err := g.Generate(context.Background(), scoredItem())
	require.Error(t, err)
	require.Nil(t, content)
}

func TestGenerate_TooFewSocialVariants(t *testing.T) {
	provider := &fakeProvider{
		blogText:   "Hotový článek.",
		socialText: "---\nSpolečnost Spring Walk:\njen jeden\n---",
	}
	g := New(provider, "https://example.com/poradenstvi")

	_, err := g.Generate(context.Background(), scoredItem())
	require.ErrorIs(t, err, ErrBadSocialFormat)
}

func TestSplitSocialPosts(t *testing.T) {
	posts, err := splitSocialPosts(goodSocialResponse)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// extra variants beyond three are dropped, not an error
	posts, err = splitSocialPosts(goodSocialResponse + "\n---\nJednatel (čtvrtý):\nnavíc\n---")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	_, err = splitSocialPosts("")
	require.ErrorIs(t, err, ErrBadSocialFormat)
}

func TestBuildBlogPrompt_IncludesLinks(t *testing.T) {
	prompt := buildBlogPrompt(scoredItem().Item, "https://example.com/poradenstvi")
	require.Contains(t, prompt, "[zdroj](http://example.com/novela)")
	require.Contains(t, prompt, "https://example.com/poradenstvi")
	require.Contains(t, prompt, "Titulek: Novela zákoníku práce")
}
