package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lm16688/AI-DAILY/internal/app"
	"github.com/lm16688/AI-DAILY/internal/config"
	"github.com/lm16688/AI-DAILY/internal/logger"
)

// 执行一轮采集并发布后退出；CI 定时任务调用此入口。
// 只有主输出写入失败才以非零状态退出，来源失败与兜底运行都算成功。
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

	if err := svc.RunOnce(ctx); err != nil {
		l.Error("collect run failed", "error", err)
		_ = svc.Close()
		os.Exit(1)
	}
	if err := svc.Close(); err != nil {
		l.Warn("close store", "error", err)
	}
}
