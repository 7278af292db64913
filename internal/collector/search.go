package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lm16688/AI-DAILY/internal/keyword"
	"golang.org/x/time/rate"
)

const (
	minQueryDelay      = time.Second
	searchDefaultLimit = 10
	searchMaxLimit     = 50
)

// SearchProvider 的实现见 search_providers.go
const (
	ProviderAlgolia = "algolia"
	ProviderGitHub  = "github"
	ProviderNewsAPI = "newsapi"
)

type searchHit struct {
	id   string
	item RawItem
}

type searchFunc func(ctx context.Context, c *SearchConnector, query string) ([]searchHit, error)

// SearchConnector 串行执行多个固定查询；上一个查询结束到下一个查询开始至少间隔 minQueryDelay
type SearchConnector struct {
	name       string
	provider   string
	queries    []string
	limit      int
	credential string
	baseURL    string
	client     *http.Client
	topic      *keyword.Matcher
	interval   time.Duration
	search     searchFunc
	logger     *slog.Logger
}

// NewSearchConnector 对需要凭证的 provider 在凭证缺失时返回 ErrMissingCredential
func NewSearchConnector(name, provider string, queries []string, limit int, credential string, client *http.Client, topic *keyword.Matcher, logger *slog.Logger) (*SearchConnector, error) {
	c := &SearchConnector{
		name:       name,
		provider:   provider,
		queries:    queries,
		limit:      limit,
		credential: credential,
		client:     client,
		topic:      topic,
		interval:   minQueryDelay,
		logger:     logger,
	}
	if c.limit <= 0 {
		c.limit = searchDefaultLimit
	}
	if c.limit > searchMaxLimit {
		c.limit = searchMaxLimit
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	switch provider {
	case ProviderAlgolia:
		c.baseURL, c.search = "https://hn.algolia.com", searchAlgolia
	case ProviderGitHub:
		c.baseURL, c.search = "https://api.github.com", searchGitHub
	case ProviderNewsAPI:
		if credential == "" {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingCredential)
		}
		c.baseURL, c.search = "https://newsapi.org", searchNewsAPI
	default:
		return nil, fmt.Errorf("%s: unknown search provider %q", name, provider)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%s: no queries configured", name)
	}
	return c, nil
}

func (c *SearchConnector) Name() string { return c.name }

func (c *SearchConnector) Kind() string { return "paged-search" }

// Fetch 单个查询失败或响应形状不符只损失该查询的结果
func (c *SearchConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	seen := make(map[string]struct{})
	results := make([]RawItem, 0, c.limit*len(c.queries))
	failed := 0

	var lastEnd time.Time
	for i, q := range c.queries {
		if i > 0 {
			if err := c.pause(ctx, lastEnd); err != nil {
				return results, fmt.Errorf("%s: rate limiter: %w", c.provider, err)
			}
		}

		hits, err := c.search(ctx, c, q)
		lastEnd = time.Now()
		if err != nil {
			failed++
			c.logger.Warn("search query failed", "source", c.name, "provider", c.provider, "query", q, "error", err)
			continue
		}
		if len(hits) > c.limit {
			hits = hits[:c.limit]
		}
		for _, h := range hits {
			if _, ok := seen[h.id]; ok {
				continue
			}
			seen[h.id] = struct{}{}
			if !onTopic(c.topic, h.item.Title, h.item.Description) {
				continue
			}
			results = append(results, h.item)
		}
	}

	if failed == len(c.queries) {
		return nil, fmt.Errorf("%s: all %d queries failed", c.provider, failed)
	}
	return results, nil
}

// pause 等到距上一个查询结束满 interval；令牌在 since 时刻被占用
func (c *SearchConnector) pause(ctx context.Context, since time.Time) error {
	if c.interval <= 0 {
		return nil
	}
	lim := rate.NewLimiter(rate.Every(c.interval), 1)
	lim.ReserveN(since, 1)
	return lim.Wait(ctx)
}

// decodeArrayField 从 JSON 对象中取出数组字段；非对象、字段缺失或不是数组都视为形状错误
func decodeArrayField(body []byte, field string, out any) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	raw, ok := obj[field]
	if !ok || len(raw) == 0 || raw[0] != '[' {
		return fmt.Errorf("%w: field %q is not an array", ErrUnexpectedShape, field)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

func queryURL(base, path string, params url.Values) string {
	return base + path + "?" + params.Encode()
}

func itoa(n int) string { return strconv.Itoa(n) }
