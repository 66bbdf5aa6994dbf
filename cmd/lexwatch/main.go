// Command lexwatch fetches legal-news feeds, scores each item with an LLM,
// generates blog and LinkedIn drafts for the promising ones and renders a
// static HTML site. With no subcommand it performs one full run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/pkg/browser"

	"github.com/springwalk/lexwatch/internal/app"
	"github.com/springwalk/lexwatch/internal/config"
	"github.com/springwalk/lexwatch/internal/cost"
	"github.com/springwalk/lexwatch/internal/llm"
	"github.com/springwalk/lexwatch/internal/logger"
	"github.com/springwalk/lexwatch/internal/scheduler"
)

func main() {
	logger.Init()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "estimate":
			runEstimate(os.Args[2:])
			return
		case "schedule":
			runSchedule(os.Args[2:])
			return
		case "open":
			runOpen(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	runOnce(os.Args[1:])
}

func printUsage() {
	fmt.Println("Usage: lexwatch [command] [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  (none)     Run the pipeline once and exit")
	fmt.Println("  estimate   Print a cost estimate without calling the model")
	fmt.Println("  schedule   Run the pipeline on the configured cron schedule")
	fmt.Println("  open site  Open the rendered index page")
	fmt.Println("  open config  Open the config file location")
}

// runFlags are the overrides shared by the run and schedule commands.
func runFlags(fs *flag.FlagSet) (configPath, model *string, days *int) {
	configPath = fs.String("config", "", "path to config file")
	model = fs.String("model", "", "override the configured model")
	days = fs.Int("days", 0, "override the feed lookback window in days")
	return
}

func loadConfig(configPath, model string, days int) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if model != "" {
		cfg.LLM.Model = model
	}
	if days > 0 {
		cfg.Feeds.LookbackDays = days
	}
	return cfg, nil
}

func runOnce(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath, model, days := runFlags(fs)
	siteDir := fs.String("site", "", "override the site output directory")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath, *model, *days)
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}
	if *siteDir != "" {
		cfg.Site.OutputDir = *siteDir
	}

	provider, err := llm.New(cfg.LLM)
	if err != nil {
		logger.Log.Fatalf("LLM setup error: %v", err)
	}

	a, err := app.New(cfg, provider)
	if err != nil {
		logger.Log.Fatalf("Setup error: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := a.Run(ctx)
	if err != nil {
		logger.Log.Fatalf("Run failed: %v", err)
	}

	logger.Log.WithField("fetched", stats.Fetched).
		WithField("selected", stats.Selected).
		WithField("generated", stats.Generated).
		WithField("failed", stats.Failed).
		Infof("Done, site written to %s", a.IndexPath())
}

func runSchedule(args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	configPath, model, days := runFlags(fs)
	fs.Parse(args)

	cfg, err := loadConfig(*configPath, *model, *days)
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}

	provider, err := llm.New(cfg.LLM)
	if err != nil {
		logger.Log.Fatalf("LLM setup error: %v", err)
	}

	a, err := app.New(cfg, provider)
	if err != nil {
		logger.Log.Fatalf("Setup error: %v", err)
	}
	defer a.Close()

	sched, err := scheduler.New(cfg.Schedule.Timezone)
	if err != nil {
		logger.Log.Fatalf("Scheduler setup error: %v", err)
	}
	err = sched.AddJob("pipeline", cfg.Schedule.Cron, func(ctx context.Context) error {
		_, err := a.Run(ctx)
		return err
	})
	if err != nil {
		logger.Log.Fatalf("Invalid cron schedule %q: %v", cfg.Schedule.Cron, err)
	}

	sched.Start()
	logger.Log.Infof("Scheduled pipeline: %s (%s)", cfg.Schedule.Cron, cfg.Schedule.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	<-sched.Stop().Done()
	logger.Log.Info("Scheduler stopped")
}

// runEstimate mirrors the pipeline's cost model without touching the network:
// N items classified, N*p of them generated into a blog post plus social
// variants, priced with per-token rates.
func runEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	n := fs.Int("n", 0, "number of feed items expected per run")
	p := fs.Float64("p", -1, "assumed selected fraction in [0,1] (default from config)")
	inPrice := fs.Float64("input-price", -1, "USD per input token (default from config)")
	outPrice := fs.Float64("output-price", -1, "USD per output token (default from config)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}

	params := cost.Params{
		Items:            *n,
		SelectedFraction: cfg.Cost.AssumedSelected,
		Averages: cost.Averages{
			ClassifyIn:  cfg.Cost.ClassifyInTokens,
			ClassifyOut: cfg.Cost.ClassifyOutTokens,
			BlogIn:      cfg.Cost.BlogInTokens,
			BlogOut:     cfg.Cost.BlogOutTokens,
			SocialIn:    cfg.Cost.SocialInTokens,
			SocialOut:   cfg.Cost.SocialOutTokens,
		},
		InputPrice:  cfg.Cost.InputPricePerToken,
		OutputPrice: cfg.Cost.OutputPricePerToken,
	}
	if *p >= 0 {
		params.SelectedFraction = *p
	}
	if *inPrice >= 0 {
		params.InputPrice = *inPrice
	}
	if *outPrice >= 0 {
		params.OutputPrice = *outPrice
	}

	est, err := cost.Predict(params)
	if err != nil {
		logger.Log.Fatalf("Estimate error: %v", err)
	}

	fmt.Printf("Items per run:    %s\n", formatThousands(params.Items))
	fmt.Printf("Selected (p=%.2f): %s\n", params.SelectedFraction, formatThousands(int(float64(params.Items)*params.SelectedFraction)))
	fmt.Printf("Input tokens:     %s\n", formatThousands(int(est.InputTokens)))
	fmt.Printf("Output tokens:    %s\n", formatThousands(int(est.OutputTokens)))
	fmt.Printf("Estimated cost:   $%.4f / run\n", est.CostUSD)
}

func runOpen(args []string) {
	target := "site"
	if len(args) > 0 {
		target = args[0]
	}

	var path string
	var err error
	switch target {
	case "site":
		var cfg *config.Config
		cfg, err = config.Load("")
		if err == nil {
			path = filepath.Join(cfg.Site.OutputDir, "index.html")
		}
	case "config":
		path, err = config.ConfigPath()
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		logger.Log.Fatalf("Failed to get path: %v", err)
	}
	if err := browser.OpenFile(path); err != nil {
		logger.Log.Fatalf("Failed to open %s: %v", path, err)
	}
}

// formatThousands renders 33600 as "33,600".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
