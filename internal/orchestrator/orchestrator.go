// Package orchestrator 并发调用全部数据源并汇总返回结果
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lm16688/AI-DAILY/internal/collector"
	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 20 * time.Second

// 每个来源一次调用的结果状态
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// SourceReport 记录单个来源本轮的表现，失败与“成功但为空”对下游没有区别
type SourceReport struct {
	Source   string
	Kind     string
	Status   string
	Items    int
	Duration time.Duration
	Err      error
}

// Result 是一次 fan-out/fan-in 的汇总
type Result struct {
	Items   []collector.RawItem
	Reports []SourceReport
}

// Failed 返回失败的来源数量
func (r Result) Failed() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Status != StatusOK {
			n++
		}
	}
	return n
}

type Orchestrator struct {
	connectors []collector.Connector
	timeout    time.Duration
	logger     *slog.Logger
}

func New(connectors []collector.Connector, timeout time.Duration, l *slog.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{
		connectors: connectors,
		timeout:    timeout,
		logger:     logger.OrDefault(l),
	}
}

// Sources 返回已配置的数据源名称
func (o *Orchestrator) Sources() []string {
	names := make([]string, 0, len(o.connectors))
	for _, c := range o.connectors {
		names = append(names, c.Name())
	}
	return names
}

// FetchAll 并发调用全部连接器，每个调用有独立超时；任何来源的失败都不会返回给调用方。
// 结果按连接器注册顺序拼接，但下游不依赖这个顺序。
func (o *Orchestrator) FetchAll(ctx context.Context) Result {
	batches := make([][]collector.RawItem, len(o.connectors))
	reports := make([]SourceReport, len(o.connectors))

	var g errgroup.Group
	for i, c := range o.connectors {
		i, c := i, c
		g.Go(func() error {
			batches[i], reports[i] = o.fetchOne(ctx, c)
			return nil // 单个来源失败不影响其他来源
		})
	}
	_ = g.Wait()

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	items := make([]collector.RawItem, 0, total)
	for _, b := range batches {
		items = append(items, b...)
	}

	res := Result{Items: items, Reports: reports}
	o.logger.Info("fetch round done",
		"sources", len(o.connectors),
		"failed", res.Failed(),
		"items", len(items))
	return res
}

type fetchResult struct {
	items []collector.RawItem
	err   error
}

func (o *Orchestrator) fetchOne(parent context.Context, c collector.Connector) ([]collector.RawItem, SourceReport) {
	ctx, cancel := context.WithTimeout(parent, o.timeout)
	defer cancel()

	start := time.Now()
	rep := SourceReport{Source: c.Name(), Kind: c.Kind()}

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		items, err := c.Fetch(ctx)
		done <- fetchResult{items: items, err: err}
	}()

	var items []collector.RawItem
	select {
	case r := <-done:
		items, rep.Err = r.items, r.err
	case <-ctx.Done():
		// 超时即放弃，连接器 goroutine 自行退出，结果写入带缓冲的 channel 后被丢弃
		rep.Err = ctx.Err()
	}
	rep.Duration = time.Since(start)

	switch {
	case rep.Err == nil:
		rep.Status = StatusOK
	case errors.Is(rep.Err, context.DeadlineExceeded):
		rep.Status = StatusTimeout
	default:
		rep.Status = StatusError
	}

	if rep.Err != nil {
		items = nil
		o.logger.Warn("source fetch failed",
			"source", rep.Source,
			"kind", rep.Kind,
			"status", rep.Status,
			"elapsed", rep.Duration.Round(time.Millisecond),
			"error", rep.Err)
	} else {
		o.logger.Debug("source fetched", "source", rep.Source, "items", len(items), "elapsed", rep.Duration.Round(time.Millisecond))
	}
	rep.Items = len(items)
	metrics.RecordFetch(rep.Source, rep.Status, rep.Items)
	return items, rep
}
