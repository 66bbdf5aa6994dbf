package store

import "time"

// Article is one generated article as persisted between runs.
type Article struct {
	Link        string    `json:"link"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Appeal      int       `json:"appeal"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Run is one recorded pipeline run.
type Run struct {
	ID           int64     `json:"id"`
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
