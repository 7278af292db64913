package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RawItem 是连接器抽取出的原始记录，只在连接器与 Normalizer 之间短暂存在。
// 无法确定的字段保持零值，不做猜测。
type RawItem struct {
	Title       string
	URL         string
	Description string
	Source      string
	// PublishedAt 由提供数值时间戳的来源填写；Published 保留文本时间交给 Normalizer 解析
	PublishedAt time.Time
	Published   string
	Language    string
	Popularity  *float64
	RawData     map[string]any
}

// Connector 抽象每一个数据源：产出有限条 RawItem，失败时返回错误由编排器吞掉
type Connector interface {
	Name() string
	Kind() string
	Fetch(ctx context.Context) ([]RawItem, error)
}

var (
	ErrMissingCredential = errors.New("collector: required credential not set")
	ErrUnknownKind       = errors.New("collector: unknown source kind")
	ErrUnexpectedShape   = errors.New("collector: unexpected response shape")
)

const (
	defaultMaxResponseBytes = 2 << 20 // 2MB
	userAgent               = "AI-DAILY-Bot/1.0 (+https://github.com/lm16688/AI-DAILY)"
)

// getBody 发起 GET 请求并读取有限大小的响应体，非 200 视为失败
func getBody(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, defaultMaxResponseBytes))
}

func popularity(v float64) *float64 {
	if v < 0 {
		v = 0
	}
	return &v
}
