// Package site renders the generated content as a static website: one page
// per article plus an index.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/springwalk/lexwatch/internal/types"
)

// Page is one generated article ready for publishing. Slug is assigned
// during WriteSite when left empty.
type Page struct {
	Item    types.ScoredItem
	Content *types.GeneratedContent
	Slug    string
}

// IndexEntry is one line on the index page. Articles generated in earlier
// runs, whose pages already exist on disk, are passed in as extra entries so
// the index stays complete.
type IndexEntry struct {
	Title       string
	Slug        string
	Appeal      int
	Source      string
	PublishedAt time.Time
}

// Renderer writes the static site into its output directory.
type Renderer struct {
	outputDir string
	title     string
	lookback  int
	postTmpl  *template.Template
	indexTmpl *template.Template
}

func NewRenderer(outputDir, title string, lookbackDays int) (*Renderer, error) {
	postTmpl, err := template.New("post").Parse(postTemplate)
	if err != nil {
		return nil, fmt.Errorf("site: parse post template: %w", err)
	}
	indexTmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("site: parse index template: %w", err)
	}
	return &Renderer{
		outputDir: outputDir,
		title:     title,
		lookback:  lookbackDays,
		postTmpl:  postTmpl,
		indexTmpl: indexTmpl,
	}, nil
}

// OutputDir returns the directory the site is written into.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// IndexPath returns the path of the rendered index page.
func (r *Renderer) IndexPath() string {
	return filepath.Join(r.outputDir, "index.html")
}

type postData struct {
	Title       string
	Appeal      int
	SourceURL   string
	Published   string
	Article     template.HTML
	SocialPosts []template.HTML
}

type indexData struct {
	Title        string
	LookbackDays int
	Updated      string
	Items        []indexItem
}

type indexItem struct {
	Title     string
	Href      string
	Appeal    int
	Source    string
	Published string
}

// WriteSite renders every page and the index. Slugs are assigned here, with
// a numeric suffix on collisions, and written back into pages so callers can
// persist them. Zero pages still produces a valid empty index.
func (r *Renderer) WriteSite(pages []Page, prior []IndexEntry) error {
	postsDir := filepath.Join(r.outputDir, "posts")
	if err := os.MkdirAll(postsDir, 0755); err != nil {
		return fmt.Errorf("site: create output dir: %w", err)
	}

	taken := make(map[string]bool, len(prior))
	for _, entry := range prior {
		taken[entry.Slug] = true
	}

	entries := make([]IndexEntry, 0, len(pages)+len(prior))
	for i := range pages {
		page := &pages[i]
		if page.Slug == "" {
			page.Slug = uniqueSlug(Slugify(page.Item.Item.Title), taken)
		}
		taken[page.Slug] = true

		if err := r.writePost(postsDir, page); err != nil {
			return err
		}
		entries = append(entries, IndexEntry{
			Title:       page.Item.Item.Title,
			Slug:        page.Slug,
			Appeal:      page.Item.Appeal,
			Source:      page.Item.Item.Source,
			PublishedAt: page.Item.Item.PublishedAt,
		})
	}
	entries = append(entries, prior...)

	return r.writeIndex(entries)
}

func (r *Renderer) writePost(postsDir string, page *Page) error {
	socialPosts := make([]template.HTML, 0, len(page.Content.SocialPosts))
	for _, post := range page.Content.SocialPosts {
		socialPosts = append(socialPosts, renderSocialPost(post))
	}

	data := postData{
		Title:       page.Item.Item.Title,
		Appeal:      page.Item.Appeal,
		SourceURL:   page.Item.Item.Link,
		Published:   formatDate(page.Item.Item.PublishedAt),
		Article:     RenderMarkdown(page.Content.BlogArticle),
		SocialPosts: socialPosts,
	}

	path := filepath.Join(postsDir, page.Slug+".html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("site: create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.postTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("site: render %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) writeIndex(entries []IndexEntry) error {
	// Newest first; undated entries sort last.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].PublishedAt, entries[j].PublishedAt
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})

	items := make([]indexItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, indexItem{
			Title:     entry.Title,
			Href:      "posts/" + entry.Slug + ".html",
			Appeal:    entry.Appeal,
			Source:    entry.Source,
			Published: formatDate(entry.PublishedAt),
		})
	}

	data := indexData{
		Title:        r.title,
		LookbackDays: r.lookback,
		Updated:      formatDate(time.Now()),
		Items:        items,
	}

	f, err := os.Create(r.IndexPath())
	if err != nil {
		return fmt.Errorf("site: create index: %w", err)
	}
	defer f.Close()

	if err := r.indexTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("site: render index: %w", err)
	}
	return nil
}

func uniqueSlug(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

var prague = loadLocation("Europe/Prague")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// formatDate renders timestamps the way the site displays them (Prague
// local time, day and month without padding).
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "neznámo"
	}
	return t.In(prague).Format("2. 1. 2006 15:04")
}
