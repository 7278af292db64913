// Package app 根据配置组装可运行的采集服务
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lm16688/AI-DAILY/internal/classifier"
	"github.com/lm16688/AI-DAILY/internal/collector"
	"github.com/lm16688/AI-DAILY/internal/config"
	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/orchestrator"
	"github.com/lm16688/AI-DAILY/internal/pipeline"
	"github.com/lm16688/AI-DAILY/internal/processor"
	"github.com/lm16688/AI-DAILY/internal/publisher"
	"github.com/lm16688/AI-DAILY/internal/ranking"
	"github.com/lm16688/AI-DAILY/internal/storage"
)

// Runner 产出一轮 digest
type Runner interface {
	Run(ctx context.Context) (*news.Digest, error)
}

// Service 组合流水线与发布链；一次 RunOnce 即一次完整运行
type Service struct {
	runner    Runner
	publisher publisher.Publisher
	files     *publisher.FilePublisher
	store     *storage.Store
	logger    *slog.Logger
}

// New 根据配置构造全部组件；可选镜像初始化失败只告警
func New(ctx context.Context, cfg *config.Config, l *slog.Logger) (*Service, error) {
	l = logger.OrDefault(l)
	loc := cfg.Location()

	connectors := collector.BuildAll(cfg.Sources, collector.Options{
		Client: &http.Client{Timeout: cfg.FetchTimeout},
		Logger: l,
	})
	if len(connectors) == 0 {
		l.Warn("no usable sources configured; every run will use the fallback set")
	}
	orch := orchestrator.New(connectors, cfg.FetchTimeout, l)
	l.Info("sources ready", "count", len(connectors), "names", orch.Sources())

	pl := pipeline.New(
		orch,
		processor.NewProcessor(processor.WithLocation(loc), processor.WithDedupPrefix(cfg.DedupPrefix)),
		ranking.NewDefaultScorer(),
		classifier.NewDefault(),
		pipeline.Config{MaxItems: cfg.MaxItems, Location: loc, Logger: l},
	)

	files := publisher.NewFilePublisher(cfg.OutputDir, cfg.LatestFile, cfg.ArchiveDir)
	store := openStore(cfg, l)

	var mirrors []publisher.Publisher
	if store.HasDB() {
		mirrors = append(mirrors, publisher.NewFunc("postgres", store.ReplaceSnapshot))
	}
	if store.HasCache() {
		mirrors = append(mirrors, publisher.NewFunc("redis", store.SetLatest))
	}
	if cfg.S3Bucket != "" {
		s3p, err := publisher.NewS3Publisher(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix)
		if err != nil {
			l.Warn("s3 mirror disabled", "bucket", cfg.S3Bucket, "error", err)
		} else {
			mirrors = append(mirrors, s3p)
		}
	}

	return &Service{
		runner:    pl,
		publisher: publisher.NewChain(files, l, mirrors...),
		files:     files,
		store:     store,
		logger:    l,
	}, nil
}

func openStore(cfg *config.Config, l *slog.Logger) *storage.Store {
	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr, l)
	if err == nil {
		return store
	}
	l.Warn("postgres mirror disabled", "error", err)
	store, err = storage.NewStore("", cfg.RedisAddr, l)
	if err != nil {
		l.Warn("redis mirror disabled", "error", err)
		store, _ = storage.NewStore("", "", l)
	}
	return store
}

// RunOnce 运行流水线并发布；只有主输出写入失败会返回错误
func (s *Service) RunOnce(ctx context.Context) error {
	d, err := s.runner.Run(ctx)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, d); err != nil {
		return err
	}
	s.logger.Info("digest published",
		"path", s.files.LatestPath(),
		"date", d.Meta.Date,
		"total", d.Meta.Total,
		"fallback", d.Meta.IsFallback)
	return nil
}

// Latest 优先读缓存/数据库镜像，再读本地文件
func (s *Service) Latest(ctx context.Context) (*news.Digest, error) {
	if s.store.HasCache() || s.store.HasDB() {
		d, err := s.store.Latest(ctx)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, storage.ErrEmpty) {
			s.logger.Warn("mirror read failed, reading file", "error", err)
		}
	}
	d, err := s.files.Latest(ctx)
	if err != nil {
		if errors.Is(err, publisher.ErrNoDigest) {
			return nil, err
		}
		return nil, fmt.Errorf("read latest file: %w", err)
	}
	return d, nil
}

func (s *Service) Close() error {
	return s.store.Close()
}
