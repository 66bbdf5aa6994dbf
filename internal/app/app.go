// Package app wires the pipeline together and runs it end to end:
// fetch -> classify -> filter -> generate -> render.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/springwalk/lexwatch/internal/classifier"
	"github.com/springwalk/lexwatch/internal/config"
	"github.com/springwalk/lexwatch/internal/cost"
	"github.com/springwalk/lexwatch/internal/feed"
	"github.com/springwalk/lexwatch/internal/generator"
	"github.com/springwalk/lexwatch/internal/llm"
	"github.com/springwalk/lexwatch/internal/logger"
	"github.com/springwalk/lexwatch/internal/notifier"
	"github.com/springwalk/lexwatch/internal/site"
	"github.com/springwalk/lexwatch/internal/store"
	"github.com/springwalk/lexwatch/internal/types"
)

// App holds one run's wired components.
type App struct {
	cfg        *config.Config
	ingestor   *feed.Ingestor
	classifier *classifier.Classifier
	generator  *generator.Generator
	renderer   *site.Renderer
	store      *store.Store       // nil when persistence is disabled
	notifier   *notifier.Notifier // nil unless email is configured
	meter      *llm.Meter
}

// New builds the application around the given provider. The provider is
// wrapped with retry and usage metering here so every model call shares both.
func New(cfg *config.Config, provider llm.Provider) (*App, error) {
	meter := &llm.Meter{}
	provider = llm.Metered(llm.WithRetry(provider, cfg.LLM.MaxAttempts), meter)

	renderer, err := site.NewRenderer(cfg.Site.OutputDir, cfg.Site.Title, cfg.Feeds.LookbackDays)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		ingestor:   feed.NewIngestor(cfg.Feeds.Sources),
		classifier: classifier.New(provider, cfg.LLM.MaxConcurrent),
		generator:  generator.New(provider, cfg.Site.AdvisoryURL),
		renderer:   renderer,
		meter:      meter,
	}

	if cfg.Store.Path != "" {
		a.store, err = store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Email.Enabled() {
		a.notifier, err = notifier.NewFromConfig(cfg.Email)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// IndexPath returns the path of the rendered index page.
func (a *App) IndexPath() string {
	return a.renderer.IndexPath()
}

// Run executes one full pipeline pass. Individual item failures are logged
// and counted, never fatal; an error return means the run as a whole failed
// (feeds unreachable, site not writable) and no site was published.
func (a *App) Run(ctx context.Context) (*types.RunStats, error) {
	stats := &types.RunStats{StartedAt: time.Now().UTC()}
	log := logger.Log.WithField("component", "pipeline")

	cutoff := stats.StartedAt.AddDate(0, 0, -a.cfg.Feeds.LookbackDays)
	items, err := a.ingestor.FetchSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fetch feeds: %w", err)
	}
	stats.Fetched = len(items)

	items, skipped, err := a.skipKnown(items)
	if err != nil {
		return nil, err
	}
	log.WithField("fetched", stats.Fetched).WithField("skipped", skipped).Info("Collected feed items")

	a.logEstimate(log, len(items))

	scored := a.classifier.ScoreAll(ctx, items)

	var selected []types.ScoredItem
	for _, s := range scored {
		if s.Appeal == 0 {
			stats.Failed++
			continue
		}
		if s.Selected() {
			selected = append(selected, s)
		}
	}
	stats.Selected = len(selected)
	log.WithField("selected", stats.Selected).Info("Classified feed items")

	var pages []site.Page
	for _, item := range selected {
		content, err := a.generator.Generate(ctx, item)
		if err != nil {
			stats.Failed++
			log.WithField("item", item.Item.Link).Errorf("Generation failed: %v", err)
			continue
		}
		pages = append(pages, site.Page{Item: item, Content: content})
	}
	stats.Generated = len(pages)

	prior, err := a.priorEntries()
	if err != nil {
		return nil, err
	}
	if err := a.renderer.WriteSite(pages, prior); err != nil {
		return nil, err
	}
	log.WithField("pages", len(pages)).WithField("dir", a.renderer.OutputDir()).Info("Rendered site")

	usage := a.meter.Total()
	actual := cost.Actual(usage.InputTokens, usage.OutputTokens,
		a.cfg.Cost.InputPricePerToken, a.cfg.Cost.OutputPricePerToken)
	stats.InputTokens = usage.InputTokens
	stats.OutputTokens = usage.OutputTokens
	stats.CostUSD = actual.CostUSD
	stats.FinishedAt = time.Now().UTC()
	log.WithField("input_tokens", usage.InputTokens).
		WithField("output_tokens", usage.OutputTokens).
		WithField("cost_usd", fmt.Sprintf("%.4f", actual.CostUSD)).
		Info("Run cost")

	a.record(log, stats, pages)

	if a.notifier != nil && stats.Generated > 0 {
		if err := a.notifier.SendRunReport(*stats, pages); err != nil {
			log.Errorf("Run report email failed: %v", err)
		}
	}

	return stats, nil
}

// skipKnown drops items already generated in earlier runs.
func (a *App) skipKnown(items []types.FeedItem) ([]types.FeedItem, int, error) {
	if a.store == nil {
		return items, 0, nil
	}

	fresh := items[:0]
	skipped := 0
	for _, item := range items {
		known, err := a.store.HasArticle(item.Link)
		if err != nil {
			return nil, 0, fmt.Errorf("check article history: %w", err)
		}
		if known {
			skipped++
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh, skipped, nil
}

// priorEntries lists earlier runs' articles for the index.
func (a *App) priorEntries() ([]site.IndexEntry, error) {
	if a.store == nil {
		return nil, nil
	}

	articles, err := a.store.Articles()
	if err != nil {
		return nil, fmt.Errorf("load article history: %w", err)
	}
	entries := make([]site.IndexEntry, 0, len(articles))
	for _, article := range articles {
		entries = append(entries, site.IndexEntry{
			Title:       article.Title,
			Slug:        article.Slug,
			Appeal:      article.Appeal,
			Source:      article.Source,
			PublishedAt: article.PublishedAt,
		})
	}
	return entries, nil
}

// logEstimate prints the predicted spend for this run before any generation
// call is made, using the configured averages and assumed selection rate.
func (a *App) logEstimate(log *logger.Entry, itemCount int) {
	est, err := cost.Predict(cost.Params{
		Items:            itemCount,
		SelectedFraction: a.cfg.Cost.AssumedSelected,
		Averages: cost.Averages{
			ClassifyIn:  a.cfg.Cost.ClassifyInTokens,
			ClassifyOut: a.cfg.Cost.ClassifyOutTokens,
			BlogIn:      a.cfg.Cost.BlogInTokens,
			BlogOut:     a.cfg.Cost.BlogOutTokens,
			SocialIn:    a.cfg.Cost.SocialInTokens,
			SocialOut:   a.cfg.Cost.SocialOutTokens,
		},
		InputPrice:  a.cfg.Cost.InputPricePerToken,
		OutputPrice: a.cfg.Cost.OutputPricePerToken,
	})
	if err != nil {
		log.Warnf("Cost estimate unavailable: %v", err)
		return
	}
	log.WithField("items", itemCount).
		WithField("est_input_tokens", int(est.InputTokens)).
		WithField("est_output_tokens", int(est.OutputTokens)).
		WithField("est_cost_usd", fmt.Sprintf("%.4f", est.CostUSD)).
		Info("Pre-run cost estimate")
}

// record persists run results; store failures are logged, not fatal, since
// the site has already been published.
func (a *App) record(log *logger.Entry, stats *types.RunStats, pages []site.Page) {
	if a.store == nil {
		return
	}

	for _, page := range pages {
		err := a.store.SaveArticle(store.Article{
			Link:        page.Item.Item.Link,
			Title:       page.Item.Item.Title,
			Source:      page.Item.Item.Source,
			Appeal:      page.Item.Appeal,
			Slug:        page.Slug,
			PublishedAt: page.Item.Item.PublishedAt,
			GeneratedAt: stats.FinishedAt,
		})
		if err != nil {
			log.WithField("item", page.Item.Item.Link).Errorf("Persist article failed: %v", err)
		}
	}

	err := a.store.SaveRun(store.Run{
		StartedAt:    stats.StartedAt,
		FinishedAt:   stats.FinishedAt,
		Fetched:      stats.Fetched,
		Selected:     stats.Selected,
		Generated:    stats.Generated,
		Failed:       stats.Failed,
		InputTokens:  stats.InputTokens,
		OutputTokens: stats.OutputTokens,
		CostUSD:      stats.CostUSD,
	})
	if err != nil {
		log.Errorf("Persist run stats failed: %v", err)
	}
}
