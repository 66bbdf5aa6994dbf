// Package feed pulls items from the configured RSS sources.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/springwalk/lexwatch/internal/logger"
	"github.com/springwalk/lexwatch/internal/types"
)

// ErrUnavailable is returned when every configured source failed to fetch.
// A subset of sources failing is logged and tolerated.
var ErrUnavailable = errors.New("feed: no source available")

// Ingestor fetches and filters the configured feeds.
type Ingestor struct {
	sources []string
	parser  *gofeed.Parser
}

func NewIngestor(sources []string) *Ingestor {
	return &Ingestor{
		sources: sources,
		parser:  gofeed.NewParser(),
	}
}

// FetchSince returns deduplicated items published at or after cutoff, in the
// order the sources list them. Items without a parseable date are kept with a
// zero PublishedAt; the renderer sorts them last. Items without a title or
// link are dropped.
func (in *Ingestor) FetchSince(ctx context.Context, cutoff time.Time) ([]types.FeedItem, error) {
	seen := make(map[string]bool)
	var items []types.FeedItem
	failed := 0

	for _, source := range in.sources {
		log := logger.Log.WithField("feed", source)

		parsed, err := in.parser.ParseURLWithContext(source, ctx)
		if err != nil {
			failed++
			log.Errorf("Fetch failed: %v", err)
			continue
		}

		sourceName := strings.TrimSpace(parsed.Title)
		if sourceName == "" {
			sourceName = source
		}

		kept := 0
		for _, entry := range parsed.Items {
			link := strings.TrimSpace(entry.Link)
			if link == "" || seen[link] {
				continue
			}
			title := strings.TrimSpace(entry.Title)
			if title == "" {
				continue
			}
			published := entryTime(entry)
			if !published.IsZero() && published.Before(cutoff) {
				continue
			}

			seen[link] = true
			items = append(items, types.FeedItem{
				Title:       title,
				Summary:     entrySummary(entry),
				Link:        link,
				Source:      sourceName,
				PublishedAt: published,
			})
			kept++
		}

		log.WithField("items", len(parsed.Items)).WithField("kept", kept).Info("Parsed feed")
	}

	if len(in.sources) > 0 && failed == len(in.sources) {
		return nil, fmt.Errorf("%w: all %d sources failed", ErrUnavailable, failed)
	}
	return items, nil
}

func entryTime(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC()
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC()
	}
	return time.Time{}
}

// entrySummary prefers the description and falls back to the full content.
func entrySummary(entry *gofeed.Item) string {
	raw := entry.Description
	if strings.TrimSpace(raw) == "" {
		raw = entry.Content
	}
	return StripTags(raw)
}

// StripTags reduces an HTML fragment to its text content with normalized
// whitespace. Feed descriptions routinely arrive wrapped in markup.
func StripTags(fragment string) string {
	text := fragment
	if strings.Contains(fragment, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err == nil {
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
