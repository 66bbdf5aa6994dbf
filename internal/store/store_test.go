package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lexwatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestArticleRoundTrip(t *testing.T) {
	s := openTestStore(t)

	exists, err := s.HasArticle("http://example.com/novela")
	require.NoError(t, err)
	require.False(t, exists)

	article := Article{
		Link:        "http://example.com/novela",
		Title:       "Novela zákoníku práce",
		Source:      "Testovací kanál",
		Appeal:      4,
		Slug:        "novela-zakoniku-prace",
		PublishedAt: time.Now().Add(-24 * time.Hour).UTC(),
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, s.SaveArticle(article))

	exists, err = s.HasArticle(article.Link)
	require.NoError(t, err)
	require.True(t, exists)

	// re-saving the same link is an upsert, not a second row
	article.Appeal = 5
	require.NoError(t, s.SaveArticle(article))

	articles, err := s.Articles()
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, 5, articles[0].Appeal)
	require.Equal(t, "novela-zakoniku-prace", articles[0].Slug)
}

func TestArticlesOrderedByPublished(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC()

	for i, link := range []string{"http://example.com/a", "http://example.com/b"} {
		require.NoError(t, s.SaveArticle(Article{
			Link:        link,
			Title:       link,
			Appeal:      3,
			Slug:        fmt.Sprintf("clanek-%d", i),
			PublishedAt: now.Add(time.Duration(i) * time.Hour),
			GeneratedAt: now,
		}))
	}

	articles, err := s.Articles()
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "http://example.com/b", articles[0].Link)
}

func TestSaveRun(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveRun(Run{
		StartedAt:    time.Now().Add(-time.Minute).UTC(),
		FinishedAt:   time.Now().UTC(),
		Fetched:      60,
		Selected:     24,
		Generated:    23,
		Failed:       1,
		InputTokens:  33_600,
		OutputTokens: 22_140,
		CostUSD:      0.018,
	}))
}
