package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lm16688/AI-DAILY/internal/keyword"
	"github.com/lm16688/AI-DAILY/internal/sanitize"
	"github.com/mmcdole/gofeed"
)

const feedDefaultItems = 10

// FeedConnector 拉取一次 RSS/Atom 文本：先交给 gofeed 解析，失败或为空时退回宽松抽取
type FeedConnector struct {
	name        string
	url         string
	limit       int
	language    string
	placeholder string
	client      *http.Client
	topic       *keyword.Matcher
}

// NewFeedConnector topic 为 nil 表示来源本身就是 AI 主题，不再过滤
func NewFeedConnector(name, feedURL string, limit int, language, placeholder string, client *http.Client, topic *keyword.Matcher) (*FeedConnector, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("%s: feed url is required", name)
	}
	if limit <= 0 {
		limit = feedDefaultItems
	}
	if placeholder == "" {
		placeholder = fmt.Sprintf("See %s for details.", name)
	}
	return &FeedConnector{
		name:        name,
		url:         feedURL,
		limit:       limit,
		language:    language,
		placeholder: placeholder,
		client:      client,
		topic:       topic,
	}, nil
}

func (f *FeedConnector) Name() string { return f.name }

func (f *FeedConnector) Kind() string { return "syndication-feed" }

func (f *FeedConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	body, err := getBody(ctx, f.client, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", f.name, err)
	}

	items := f.parseFeed(string(body))
	if len(items) == 0 {
		items = f.parseLenient(string(body))
	}

	results := make([]RawItem, 0, f.limit)
	for _, it := range items {
		if len(results) >= f.limit {
			break
		}
		if !onTopic(f.topic, it.Title, it.Description) {
			continue
		}
		results = append(results, it)
	}
	return results, nil
}

func (f *FeedConnector) parseFeed(body string) []RawItem {
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil || feed == nil {
		return nil
	}

	out := make([]RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		desc := it.Description
		if strings.TrimSpace(desc) == "" {
			desc = it.Content
		}
		raw := f.newItem(it.Title, it.Link, desc, it.Published)
		switch {
		case it.PublishedParsed != nil:
			raw.PublishedAt = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			raw.PublishedAt = *it.UpdatedParsed
		case raw.Published == "":
			raw.Published = it.Updated
		}
		if raw.Title == "" || raw.URL == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

func (f *FeedConnector) parseLenient(body string) []RawItem {
	// 多抽一些，给主题过滤留余量
	records := ExtractRecords(body, f.limit*3)
	out := make([]RawItem, 0, len(records))
	for _, r := range records {
		raw := f.newItem(r.Title, r.Link, r.Description, r.Date)
		if raw.Title == "" || raw.URL == "" {
			continue
		}
		raw.RawData = map[string]any{"lenient": true}
		out = append(out, raw)
	}
	return out
}

func (f *FeedConnector) newItem(title, link, desc, published string) RawItem {
	desc = sanitize.Text(desc)
	if desc == "" {
		desc = f.placeholder
	}
	return RawItem{
		Title:       sanitize.Text(title),
		URL:         strings.TrimSpace(stripCDATA(link)),
		Description: desc,
		Source:      f.name,
		Published:   strings.TrimSpace(published),
		Language:    f.language,
	}
}
