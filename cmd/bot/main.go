package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FilingSentinel/internal/collector"
	"FilingSentinel/internal/config"
	"FilingSentinel/internal/model"
	"FilingSentinel/internal/notifier"
	"FilingSentinel/internal/pipeline"
	"FilingSentinel/internal/recorder"
	"FilingSentinel/internal/scheduler"
)

// Exit codes: 0 = full success, 1 = partial delivery failure,
// 2 = fatal configuration error.
const (
	exitOK          = 0
	exitPartial     = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FilingSentinel starting...")

	daemon := flag.Bool("daemon", false, "run on the configured cron schedule instead of once")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[FATAL] load config: %v", err)
		return exitConfigError
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[FATAL] config validation: %v", err)
		return exitConfigError
	}

	// Init fetcher and collector
	fetcher := collector.NewSecAPIFetcher(collector.DefaultEndpoint, cfg.SecAPI.APIKey, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Report.LookbackDays, cfg.Report.MaxFilingsPerFiler)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := pipeline.New(col, tn, rec, cfg.Filers, cfg.Report.MaxMessageLength)

	if *daemon {
		runDaemon(p, tn, cfg.Schedule.DailyCron)
		return exitOK
	}

	// Default mode: one run, then exit.
	result := p.Run()
	if result.Status != model.RunSuccess {
		return exitPartial
	}
	return exitOK
}

// runDaemon keeps the process alive, running the pipeline on the cron
// schedule and answering Telegram commands, until SIGINT/SIGTERM.
func runDaemon(p *pipeline.Pipeline, tn *notifier.TelegramNotifier, dailyCron string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(p)
	if err := sched.Register(dailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report now")
		go sched.RunNow()
	}

	log.Println("[INFO] FilingSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FilingSentinel stopped")
}
