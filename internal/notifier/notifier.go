// Package notifier mails a short report after a pipeline run.
package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/springwalk/lexwatch/internal/config"
	"github.com/springwalk/lexwatch/internal/notifier/providers"
	"github.com/springwalk/lexwatch/internal/site"
	"github.com/springwalk/lexwatch/internal/types"
)

// Sender delivers one message.
type Sender interface {
	Send(to, subject, htmlBody, plainBody string) error
}

// Notifier builds and sends run reports.
type Notifier struct {
	sender Sender
	to     string
}

// New creates a notifier with the given sender.
func New(sender Sender, to string) *Notifier {
	return &Notifier{sender: sender, to: to}
}

// NewFromConfig creates a notifier based on configuration.
func NewFromConfig(cfg config.EmailConfig) (*Notifier, error) {
	switch cfg.Provider {
	case "smtp", "":
		sender := providers.NewSMTPSender(providers.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.FromAddr,
		})
		return New(sender, cfg.ToAddr), nil
	default:
		return nil, fmt.Errorf("notifier: unknown email provider: %s", cfg.Provider)
	}
}

// SendRunReport mails the outcome of one run: what was generated, what
// failed, and what it cost.
func (n *Notifier) SendRunReport(stats types.RunStats, pages []site.Page) error {
	subject := fmt.Sprintf("lexwatch: %d nových článků", stats.Generated)
	return n.sender.Send(n.to, subject, buildHTMLReport(stats, pages), buildPlainReport(stats, pages))
}

func buildPlainReport(stats types.RunStats, pages []site.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Načteno %d položek, vybráno %d, vygenerováno %d, selhalo %d.\n",
		stats.Fetched, stats.Selected, stats.Generated, stats.Failed)
	fmt.Fprintf(&b, "Tokeny: %d vstupních, %d výstupních. Cena: $%.4f\n\n",
		stats.InputTokens, stats.OutputTokens, stats.CostUSD)

	for i, page := range pages {
		fmt.Fprintf(&b, "%d. %s (%d/5)\n   %s\n", i+1, page.Item.Item.Title, page.Item.Appeal, page.Item.Item.Link)
	}
	return b.String()
}

func buildHTMLReport(stats types.RunStats, pages []site.Page) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Načteno %d položek, vybráno %d, vygenerováno %d, selhalo %d.</p>",
		stats.Fetched, stats.Selected, stats.Generated, stats.Failed)
	fmt.Fprintf(&b, "<p>Tokeny: %d vstupních, %d výstupních. Cena: $%.4f</p>",
		stats.InputTokens, stats.OutputTokens, stats.CostUSD)

	b.WriteString("<ul>")
	for _, page := range pages {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> (%d/5)</li>`,
			html.EscapeString(page.Item.Item.Link), html.EscapeString(page.Item.Item.Title), page.Item.Appeal)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}
