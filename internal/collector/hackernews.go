package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lm16688/AI-DAILY/internal/keyword"
	"golang.org/x/sync/errgroup"
)

const (
	hnBaseURL       = "https://hacker-news.firebaseio.com/v0"
	hnDefaultItems  = 30
	hnMaxItems      = 50
	hnConcurrency   = 10
	hnItemTimeout   = 5 * time.Second
	hnDiscussionURL = "https://news.ycombinator.com/item?id=%d"
)

// HackerNewsConnector 通过官方 Firebase API 枚举排行榜 ID，再逐条拉取详情
type HackerNewsConnector struct {
	name    string
	baseURL string
	list    string
	limit   int
	client  *http.Client
	topic   *keyword.Matcher
}

type hnItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Type        string `json:"type"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// NewHackerNewsConnector list 取 top / best / new，limit 上限 50
func NewHackerNewsConnector(name, list string, limit int, client *http.Client, topic *keyword.Matcher) *HackerNewsConnector {
	switch list {
	case "top", "best", "new":
	default:
		list = "top"
	}
	if limit <= 0 {
		limit = hnDefaultItems
	}
	if limit > hnMaxItems {
		limit = hnMaxItems
	}
	if name == "" {
		name = "Hacker News"
	}
	return &HackerNewsConnector{
		name:    name,
		baseURL: hnBaseURL,
		list:    list,
		limit:   limit,
		client:  client,
		topic:   topic,
	}
}

func (h *HackerNewsConnector) Name() string { return h.name }

func (h *HackerNewsConnector) Kind() string { return "id-enumeration" }

func (h *HackerNewsConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	body, err := getBody(ctx, h.client, fmt.Sprintf("%s/%sstories.json", h.baseURL, h.list), nil)
	if err != nil {
		return nil, fmt.Errorf("hackernews: fetch %s stories: %w", h.list, err)
	}

	var ids []int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("hackernews: %w: %v", ErrUnexpectedShape, err)
	}
	if len(ids) > h.limit {
		ids = ids[:h.limit]
	}

	// 每个 goroutine 只写自己的下标，无需加锁；单条失败直接跳过
	fetched := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hnConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			it, err := h.fetchItem(gctx, id)
			if err != nil {
				return nil
			}
			fetched[i] = it
			return nil
		})
	}
	_ = g.Wait()

	results := make([]RawItem, 0, len(fetched))
	for rank, it := range fetched {
		if it == nil || it.Title == "" || it.Type != "story" || it.Dead || it.Deleted {
			continue
		}
		if !onTopic(h.topic, it.Title, it.Text) {
			continue
		}

		itemURL := it.URL
		if itemURL == "" {
			itemURL = fmt.Sprintf(hnDiscussionURL, it.ID)
		}

		// 缺少 time 时留空，由归一化阶段补当前时间
		var published time.Time
		if it.Time > 0 {
			published = time.Unix(it.Time, 0)
		}

		results = append(results, RawItem{
			Title:       it.Title,
			URL:         itemURL,
			Description: it.Text,
			Source:      h.name,
			PublishedAt: published,
			Popularity:  popularity(float64(it.Score)),
			RawData: map[string]any{
				"hn_id":    it.ID,
				"author":   it.By,
				"comments": it.Descendants,
				"rank":     rank + 1,
			},
		})
	}
	return results, nil
}

func (h *HackerNewsConnector) fetchItem(ctx context.Context, id int) (*hnItem, error) {
	ctx, cancel := context.WithTimeout(ctx, hnItemTimeout)
	defer cancel()

	body, err := getBody(ctx, h.client, fmt.Sprintf("%s/item/%d.json", h.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	var it hnItem
	if err := json.Unmarshal(body, &it); err != nil {
		return nil, err
	}
	return &it, nil
}
