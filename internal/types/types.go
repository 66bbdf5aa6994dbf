package types

import "time"

// FeedItem is a single entry pulled from one of the configured RSS sources.
// Items are immutable once fetched.
type FeedItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// ScoredItem pairs a feed item with its appeal score. Appeal is 1-5 once
// classification succeeds; 0 means the model response could not be parsed
// and the item is excluded from generation.
type ScoredItem struct {
	Item   FeedItem `json:"item"`
	Appeal int      `json:"appeal"`
}

// Selected reports whether the item scored high enough to generate content.
func (s ScoredItem) Selected() bool {
	return s.Appeal >= 3
}

// GeneratedContent holds everything produced for one selected item.
// BlogArticle is the raw model output (markdown subset); SocialPosts always
// has exactly 3 entries when generation succeeded.
type GeneratedContent struct {
	BlogArticle string   `json:"blog_article"`
	SocialPosts []string `json:"social_posts"`
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Fetched      int       `json:"fetched"`
	Selected     int       `json:"selected"`
	Generated    int       `json:"generated"`
	Failed       int       `json:"failed"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CostUSD      float64   `json:"cost_usd"`
}
