package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lm16688/AI-DAILY/internal/news"
)

const (
	latestKey = "ainews:digest:latest"
	// 略长于一天，调度中断一两轮时仍有数据可读
	latestTTL = 26 * time.Hour
)

// SetLatest 覆盖缓存中的最新 digest
func (s *Store) SetLatest(ctx context.Context, d *news.Digest) error {
	if !s.HasCache() {
		return ErrNotConfigured
	}
	bs, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, latestKey, bs, latestTTL).Err()
}

// GetLatest 未命中时返回 redis.Nil
func (s *Store) GetLatest(ctx context.Context) (*news.Digest, error) {
	if !s.HasCache() {
		return nil, ErrNotConfigured
	}
	bs, err := s.Redis.Get(ctx, latestKey).Bytes()
	if err != nil {
		return nil, err
	}
	var d news.Digest
	if err := json.Unmarshal(bs, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
