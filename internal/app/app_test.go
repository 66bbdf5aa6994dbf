package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/springwalk/lexwatch/internal/config"
	"github.com/springwalk/lexwatch/internal/llm"
)

const socialResponse = `---
Společnost Spring Walk:
Novela přináší změny pro zaměstnavatele.
---
Jednatel (formální):
Sledujeme vývoj novely.
---
Jednatel (hravý):
Zase se nám mění pravidla hry!
---`

// pipelineProvider plays all three roles. Classification answers are routed
// by title substring in the prompt; a title listed in blogFail makes the
// blog call error.
type pipelineProvider struct {
	mu       sync.Mutex
	scores   map[string]string
	blogFail map[string]bool
	calls    int
}

func (p *pipelineProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	usage := llm.Usage{InputTokens: 100, OutputTokens: 10}

	switch {
	case strings.Contains(req.System, "číslem"):
		for title, score := range p.scores {
			if strings.Contains(req.Prompt, title) {
				return &llm.Response{Text: score, Usage: usage}, nil
			}
		}
		return &llm.Response{Text: "1", Usage: usage}, nil
	case strings.Contains(req.System, "copywriter"):
		for title := range p.blogFail {
			if strings.Contains(req.Prompt, title) {
				return nil, errors.New("model overloaded")
			}
		}
		return &llm.Response{Text: "## Shrnutí\n\nText článku.", Usage: usage}, nil
	default:
		return &llm.Response{Text: socialResponse, Usage: usage}, nil
	}
}

func feedServer(t *testing.T, titles ...string) *httptest.Server {
	t.Helper()
	var items strings.Builder
	pub := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC1123Z)
	for i, title := range titles {
		fmt.Fprintf(&items, `<item><title>%s</title><description>Popis.</description><pubDate>%s</pubDate><link>http://example.com/%d</link></item>`, title, pub, i)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Kanál</title>%s</channel></rss>`, items.String())
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, feedURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Feeds.Sources = []string{feedURL}
	cfg.Feeds.LookbackDays = 7
	cfg.Site.OutputDir = filepath.Join(t.TempDir(), "site")
	cfg.LLM.MaxAttempts = 1
	cfg.Store.Path = ""
	cfg.Email = config.EmailConfig{}
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	server := feedServer(t, "Velká novela", "Drobnost", "Rozbitý článek")
	cfg := testConfig(t, server.URL)

	provider := &pipelineProvider{
		scores:   map[string]string{"Velká novela": "5", "Drobnost": "2", "Rozbitý článek": "4"},
		blogFail: map[string]bool{"Rozbitý článek": true},
	}

	a, err := New(cfg, provider)
	require.NoError(t, err)
	defer a.Close()

	stats, err := a.Run(context.Background())
	require.NoError(t, err, "per-item failures must not fail the run")

	require.Equal(t, 3, stats.Fetched)
	require.Equal(t, 2, stats.Selected)
	require.Equal(t, 1, stats.Generated)
	require.Equal(t, 1, stats.Failed)
	require.Greater(t, stats.InputTokens, 0)
	require.Greater(t, stats.CostUSD, 0.0)

	index, err := os.ReadFile(a.IndexPath())
	require.NoError(t, err)
	require.Contains(t, string(index), "Velká novela")
	require.NotContains(t, string(index), "Drobnost", "items below threshold stay off the site")
	require.NotContains(t, string(index), "Rozbitý článek", "failed items stay off the site")

	posts, err := os.ReadDir(filepath.Join(cfg.Site.OutputDir, "posts"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestRun_StoreSkipsKnownItems(t *testing.T) {
	server := feedServer(t, "Velká novela")
	cfg := testConfig(t, server.URL)
	cfg.Store.Path = filepath.Join(t.TempDir(), "lexwatch.db")

	provider := &pipelineProvider{scores: map[string]string{"Velká novela": "5"}}

	run := func() (gen int) {
		a, err := New(cfg, provider)
		require.NoError(t, err)
		defer a.Close()

		stats, err := a.Run(context.Background())
		require.NoError(t, err)
		return stats.Generated
	}

	require.Equal(t, 1, run())
	firstCalls := provider.calls

	require.Equal(t, 0, run(), "already generated items are skipped")
	require.Equal(t, firstCalls, provider.calls, "no model calls on the second run")

	// prior articles stay on the index even when nothing new was generated
	index, err := os.ReadFile(filepath.Join(cfg.Site.OutputDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "Velká novela")
}

func TestRun_AllFeedsDownIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(t, server.URL)
	a, err := New(cfg, &pipelineProvider{})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Run(context.Background())
	require.Error(t, err)
}
