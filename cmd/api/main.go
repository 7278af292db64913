package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lm16688/AI-DAILY/internal/api"
	"github.com/lm16688/AI-DAILY/internal/app"
	"github.com/lm16688/AI-DAILY/internal/config"
	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/scheduler"
)

func main() {
	cfg := config.Load()
	l := logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(ctx, cfg, l)
	if err != nil {
		l.Error("init service failed", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	s, err := scheduler.New(cfg.CronSpec, svc, l)
	if err != nil {
		l.Error("init scheduler failed", "cron", cfg.CronSpec, "error", err)
		os.Exit(1)
	}
	s.Start()
	defer s.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	api.NewServer(svc, l).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		l.Info("starting api server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server exit", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Warn("server shutdown", "error", err)
	}
}
