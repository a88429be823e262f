// Package main provides the jobscout command-line job search assistant.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobscout/internal/app"
	"jobscout/internal/config"
)

func main() {
	configFile := flag.String("config", config.DefaultPath, "Path to YAML configuration file")
	storagePath := flag.String("storage", "", "Vacancies JSON file (overrides config)")
	searchKeyword := flag.String("search", "", "Fetch vacancies for a keyword and store them")
	topN := flag.Int("top", 0, "Print the N best paid stored vacancies")
	filterKeyword := flag.String("filter", "", "Print stored vacancies mentioning a keyword")
	minSalary := flag.Int("min", 0, "Lower salary bound for range filtering")
	maxSalary := flag.Int("max", 0, "Upper salary bound for range filtering (0 means none)")
	deleteID := flag.String("delete", "", "Delete stored vacancies with this id")
	dedup := flag.Bool("dedup", false, "Drop duplicate ids from the store, keeping the latest")
	watch := flag.Bool("watch", false, "Re-run the configured searches on the schedule until interrupted")
	table := flag.Bool("table", false, "Print results as a table")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}

	a, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize: %v\n", err)
	}

	defer func() {
		_ = a.Log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	salaryRange := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min" || f.Name == "max" {
			salaryRange = true
		}
	})

	ran := false

	if *searchKeyword != "" {
		ran = true

		n, err := a.Service.Search(ctx, *searchKeyword)
		if err != nil {
			log.Fatalf("❌ Search failed: %v\n", err)
		}

		fmt.Printf("✅ Stored %d vacancies for %q\n", n, *searchKeyword)
	}

	if *deleteID != "" {
		ran = true

		if err := a.Service.Delete(*deleteID); err != nil {
			log.Fatalf("❌ Delete failed: %v\n", err)
		}

		fmt.Printf("🗑️  Deleted vacancies with id %s\n", *deleteID)
	}

	if *dedup {
		ran = true

		removed, err := a.Service.Dedup()
		if err != nil {
			log.Fatalf("❌ Dedup failed: %v\n", err)
		}

		fmt.Printf("✅ Removed %d duplicate vacancies\n", removed)
	}

	if *topN > 0 {
		ran = true

		printVacancies(os.Stdout, a.Service.Top(*topN), *table, cfg.Display.MaxColumnWidth)
	}

	if *filterKeyword != "" {
		ran = true

		printVacancies(os.Stdout, a.Service.FilterByKeyword(*filterKeyword), *table, cfg.Display.MaxColumnWidth)
	}

	if salaryRange {
		ran = true

		printVacancies(os.Stdout, a.Service.FilterBySalary(*minSalary, *maxSalary), *table, cfg.Display.MaxColumnWidth)
	}

	if *watch {
		runWatch(ctx, a)

		return
	}

	if ran {
		return
	}

	newMenu(a.Service, os.Stdin, os.Stdout, cfg.Display.MaxColumnWidth, cfg.Display.TopN, *table).run(ctx)
}

func runWatch(ctx context.Context, a *app.App) {
	sched, err := a.NewScheduler()
	if err != nil {
		log.Fatalf("❌ Failed to create scheduler: %v\n", err)
	}

	if err := sched.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v\n", err)
	}

	fmt.Printf("👀 Watching %v on %q, press Ctrl+C to stop\n", a.Config.Schedule.Keywords, a.Config.Schedule.Spec)

	<-ctx.Done()
	sched.Stop()
}

func printUsage() {
	fmt.Println(`jobscout - HeadHunter job search assistant

USAGE:
  jobscout [flags]

Without action flags an interactive menu is started.

FLAGS:
  -config <path>    YAML configuration file (default: configs/jobscout.yaml)
  -storage <path>   Vacancies JSON file (overrides config)
  -search <text>    Fetch vacancies for a keyword and store them
  -top <n>          Print the n best paid stored vacancies
  -filter <text>    Print stored vacancies mentioning a keyword
  -min <n>          Lower salary bound for range filtering
  -max <n>          Upper salary bound (0 means none)
  -delete <id>      Delete stored vacancies with this id
  -dedup            Drop duplicate ids, keeping the latest
  -watch            Re-run schedule.keywords on schedule.spec until interrupted
                    (requires schedule.enabled: true)
  -table            Print results as a table
  -help             Show this help

EXAMPLES:
  jobscout -search python
  jobscout -top 5 -table
  jobscout -min 100000 -max 200000`)
}
