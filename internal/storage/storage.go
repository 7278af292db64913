package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotConfigured 表示对应的镜像没有配置（DSN 或地址为空）
var ErrNotConfigured = errors.New("storage: backend not configured")

// ErrEmpty 表示后端可用但还没有写入过快照
var ErrEmpty = errors.New("storage: no snapshot stored yet")

// Store 持有可选的 Postgres 与 Redis；两者只保存最近一次运行的结果
type Store struct {
	DB     *gorm.DB
	Redis  *redis.Client
	logger *slog.Logger
}

// NewStore dsn 或 redisAddr 为空时对应后端关闭
func NewStore(dsn, redisAddr string, l *slog.Logger) (*Store, error) {
	s := &Store{logger: logger.OrDefault(l)}

	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.AutoMigrate(&Snapshot{}, &News{}); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s.DB = db
	}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			s.logger.Warn("redis ping failed", "addr", redisAddr, "error", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

func (s *Store) HasDB() bool { return s != nil && s.DB != nil }

func (s *Store) HasCache() bool { return s != nil && s.Redis != nil }

// Latest 先查 Redis，未命中再查数据库快照
func (s *Store) Latest(ctx context.Context) (*news.Digest, error) {
	if s.HasCache() {
		d, err := s.GetLatest(ctx)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis read failed, falling back to db", "error", err)
		}
	}
	if s.HasDB() {
		return s.LoadSnapshot(ctx)
	}
	if s.HasCache() {
		return nil, ErrEmpty
	}
	return nil, ErrNotConfigured
}

func (s *Store) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
