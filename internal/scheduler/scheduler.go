package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/robfig/cron/v3"
)

// 延迟执行首轮采集，避免与服务启动争抢资源
const DefaultStartupDelay = 15 * time.Second

// Runner 执行一轮完整的采集与发布
type Runner interface {
	RunOnce(ctx context.Context) error
}

type Scheduler struct {
	cron         *cron.Cron
	runner       Runner
	logger       *slog.Logger
	startupDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(spec string, runner Runner, l *slog.Logger) (*Scheduler, error) {
	l = logger.OrDefault(l)
	cl := cronLogger{l}
	c := cron.New(cron.WithChain(
		cron.Recover(cl),
		// 上一轮尚未结束时跳过本轮，避免两轮同时写输出
		cron.SkipIfStillRunning(cl),
	))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:         c,
		runner:       runner,
		logger:       l,
		startupDelay: DefaultStartupDelay,
		ctx:          ctx,
		cancel:       cancel,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// SetStartupDelay 为 0 时启动后立即执行首轮
func (s *Scheduler) SetStartupDelay(d time.Duration) {
	s.startupDelay = d
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-time.After(s.startupDelay):
			s.runOnce()
		case <-s.ctx.Done():
		}
	}()
}

// Stop 停止调度并等待进行中的任务结束
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发采集
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runner.RunOnce(ctx)
}

func (s *Scheduler) runOnce() {
	s.logger.Info("start collect job")
	start := time.Now()
	if err := s.runner.RunOnce(s.ctx); err != nil {
		s.logger.Error("collect job failed", "error", err, "elapsed", time.Since(start).Round(time.Millisecond))
		return
	}
	s.logger.Info("collect job done", "elapsed", time.Since(start).Round(time.Millisecond))
}

// cronLogger 把 cron 的日志接到 slog
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
