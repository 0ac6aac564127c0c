package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/reports"
	"github.com/fortuna/courtside/internal/scrape"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	log.Infof("Starting %s v%s report batch", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	var cache *nba.FileCache
	if cfg.CacheDir != "" {
		cache, err = nba.NewFileCache(cfg.CacheDir, 0)
		if err != nil {
			log.WithError(err).Fatal("initializing response cache")
		}
		log.WithField("dir", cfg.CacheDir).Info("response cache enabled")
	}

	writer, err := report.NewWriter(cfg.ReportsDir, log)
	if err != nil {
		log.WithError(err).Fatal("preparing reports directory")
	}

	statsClient := nba.NewClient(cfg.NBABaseURL, cfg.RequestDelay, cache, log)
	scraper := scrape.NewClient(cfg.RequestDelay, log)
	generator := reports.NewGenerator(cfg, statsClient, scraper, writer, log)
	runner := reports.NewRunner(cfg.RequestDelay, log)

	// Interrupts stop the batch between jobs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("interrupt received, finishing current job")
		cancel()
	}()

	summary := runner.Run(ctx, generator.Jobs())
	log.WithFields(logrus.Fields{
		"succeeded": len(summary.Succeeded),
		"failed":    len(summary.Failed),
	}).Info("batch finished")
	if len(summary.Failed) > 0 {
		log.WithField("jobs", summary.Failed).Warn("some report jobs failed")
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
