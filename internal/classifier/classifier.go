// Package classifier rates each feed item's appeal on the 1-5 scale.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/springwalk/lexwatch/internal/llm"
	"github.com/springwalk/lexwatch/internal/logger"
	"github.com/springwalk/lexwatch/internal/types"
)

// ErrBadScore marks a model response with no usable 1-5 rating. The item is
// excluded (appeal 0), never silently coerced to a default score.
var ErrBadScore = errors.New("classifier: no valid 1-5 score in model response")

var intRE = regexp.MustCompile(`-?\d+`)

// Classifier scores feed items through the language model.
type Classifier struct {
	provider llm.Provider
	limit    int
}

// New creates a classifier. maxConcurrent bounds simultaneous model calls.
func New(provider llm.Provider, maxConcurrent int) *Classifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Classifier{provider: provider, limit: maxConcurrent}
}

// Score classifies a single item. The first integer token in the response is
// the rating; anything missing or outside 1-5 is a classification failure.
func (c *Classifier) Score(ctx context.Context, item types.FeedItem) (int, error) {
	resp, err := c.provider.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(item),
		Temperature: 0,
		MaxTokens:   8,
	})
	if err != nil {
		return 0, fmt.Errorf("classify %s: %w", item.Link, err)
	}

	token := intRE.FindString(resp.Text)
	if token == "" {
		return 0, fmt.Errorf("classify %s: %w (response %.80q)", item.Link, ErrBadScore, resp.Text)
	}
	score, err := strconv.Atoi(token)
	if err != nil || score < 1 || score > 5 {
		return 0, fmt.Errorf("classify %s: %w (got %s)", item.Link, ErrBadScore, token)
	}
	return score, nil
}

// ScoreAll classifies items concurrently under the configured limit. Results
// are positioned by input index, so the returned order matches the input
// regardless of completion order. A failed classification is logged and
// leaves the item at appeal 0; it never aborts the other items.
func (c *Classifier) ScoreAll(ctx context.Context, items []types.FeedItem) []types.ScoredItem {
	scored := make([]types.ScoredItem, len(items))

	var g errgroup.Group
	g.SetLimit(c.limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			appeal, err := c.Score(ctx, item)
			if err != nil {
				logger.Log.WithField("item", item.Link).Errorf("Classification failed: %v", err)
				appeal = 0
			}
			scored[i] = types.ScoredItem{Item: item, Appeal: appeal}
			return nil
		})
	}

	g.Wait()
	return scored
}
