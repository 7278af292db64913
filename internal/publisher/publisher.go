// Package publisher 负责持久化 digest。文件输出为主输出，
// 其余输出只镜像最近一轮结果，失败仅告警。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/metrics"
	"github.com/lm16688/AI-DAILY/internal/news"
)

// ErrNoDigest 表示还没有任何一次运行产出结果
var ErrNoDigest = errors.New("publisher: no digest published yet")

type Publisher interface {
	Name() string
	Publish(ctx context.Context, d *news.Digest) error
}

// Func 把普通函数适配为 Publisher
type Func struct {
	name string
	fn   func(ctx context.Context, d *news.Digest) error
}

func NewFunc(name string, fn func(ctx context.Context, d *news.Digest) error) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string { return f.name }

func (f *Func) Publish(ctx context.Context, d *news.Digest) error { return f.fn(ctx, d) }

// Chain 先写主输出，失败即返回；镜像失败只记录告警
type Chain struct {
	primary Publisher
	mirrors []Publisher
	logger  *slog.Logger
}

func NewChain(primary Publisher, l *slog.Logger, mirrors ...Publisher) *Chain {
	return &Chain{primary: primary, mirrors: mirrors, logger: logger.OrDefault(l)}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Publish(ctx context.Context, d *news.Digest) error {
	if d == nil {
		return fmt.Errorf("publish: nil digest")
	}
	if err := c.primary.Publish(ctx, d); err != nil {
		metrics.RecordPublishError(c.primary.Name())
		return fmt.Errorf("publish %s: %w", c.primary.Name(), err)
	}
	for _, m := range c.mirrors {
		if err := m.Publish(ctx, d); err != nil {
			metrics.RecordPublishError(m.Name())
			c.logger.Warn("mirror publish failed", "sink", m.Name(), "error", err)
			continue
		}
		c.logger.Debug("mirror published", "sink", m.Name())
	}
	return nil
}

// Encode 以稳定格式序列化 digest；不转义 URL 中的 &
func Encode(d *news.Digest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode 解析 Encode 的输出
func Decode(data []byte) (*news.Digest, error) {
	var d news.Digest
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
