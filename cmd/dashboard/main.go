package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/dashboard"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if _, err := os.Stat(cfg.ReportsDir); err != nil {
		log.WithField("dir", cfg.ReportsDir).Warn("reports directory missing, pages will be empty until the batch runs")
	}

	teamServer := dashboard.TeamServer(cfg, log)
	playerServer := dashboard.PlayerServer(cfg, log)

	go func() {
		if err := teamServer.Start(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("team dashboard stopped")
		}
	}()
	go func() {
		if err := playerServer.Start(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("player dashboard stopped")
		}
	}()

	log.WithFields(logrus.Fields{
		"team":   cfg.TeamDashPort,
		"player": cfg.PlayerDashPort,
	}).Info("dashboards running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down dashboards")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := teamServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("team dashboard shutdown")
	}
	if err := playerServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("player dashboard shutdown")
	}
}
