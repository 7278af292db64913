// Package pipeline 执行一轮完整采集：抓取、归一化、去重、打分、分类并生成 digest
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lm16688/AI-DAILY/internal/classifier"
	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/metrics"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/orchestrator"
	"github.com/lm16688/AI-DAILY/internal/processor"
	"github.com/lm16688/AI-DAILY/internal/ranking"
)

const DefaultMaxItems = 25

// Fetcher 是编排器对流水线暴露的能力
type Fetcher interface {
	FetchAll(ctx context.Context) orchestrator.Result
}

type Config struct {
	MaxItems int
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

type Pipeline struct {
	fetcher    Fetcher
	processor  *processor.Processor
	scorer     *ranking.Scorer
	classifier *classifier.Classifier

	maxItems int
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

func New(f Fetcher, p *processor.Processor, s *ranking.Scorer, c *classifier.Classifier, cfg Config) *Pipeline {
	pl := &Pipeline{
		fetcher:    f,
		processor:  p,
		scorer:     s,
		classifier: c,
		maxItems:   cfg.MaxItems,
		loc:        cfg.Location,
		now:        cfg.Now,
		logger:     logger.OrDefault(cfg.Logger),
	}
	if pl.maxItems <= 0 {
		pl.maxItems = DefaultMaxItems
	}
	if pl.loc == nil {
		pl.loc = time.UTC
	}
	if pl.now == nil {
		pl.now = time.Now
	}
	if pl.processor == nil {
		pl.processor = processor.NewProcessor(processor.WithClock(pl.now), processor.WithLocation(pl.loc))
	}
	if pl.scorer == nil {
		pl.scorer = ranking.NewDefaultScorer()
	}
	if pl.classifier == nil {
		pl.classifier = classifier.NewDefault()
	}
	return pl
}

// Run 执行一轮完整流程。来源失败只会减少产出；全部为空时整体替换为兜底集合。
// 仅在 ctx 被取消时返回错误。
func (p *Pipeline) Run(ctx context.Context) (*news.Digest, error) {
	start := time.Now()

	res := p.fetcher.FetchAll(ctx)
	if err := ctx.Err(); err != nil {
		metrics.RecordRun("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	now := p.now()
	articles := p.processor.Process(res.Items)

	var (
		items    []news.ClassifiedArticle
		fallback bool
	)
	if len(articles) == 0 {
		fallback = true
		items = FallbackArticles(now)
		p.logger.Warn("no organic items, using curated fallback set",
			"raw_items", len(res.Items),
			"failed_sources", res.Failed(),
			"sources", len(res.Reports))
	} else {
		ranked := p.scorer.Rank(articles, now, p.maxItems)
		items = p.classifier.ClassifyAll(ranked)
	}

	digest := news.NewDigest(items, now, p.loc, fallback)

	result := "organic"
	if fallback {
		result = "fallback"
	}
	elapsed := time.Since(start)
	metrics.RecordRun(result, elapsed.Seconds())
	p.logger.Info("pipeline run done",
		"result", result,
		"raw_items", len(res.Items),
		"articles", len(articles),
		"published", digest.Meta.Total,
		"failed_sources", res.Failed(),
		"elapsed", elapsed.Round(time.Millisecond))
	logStats(p.logger, digest)
	return digest, nil
}
