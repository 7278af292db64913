package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/lm16688/AI-DAILY/internal/keyword"
	"github.com/lm16688/AI-DAILY/internal/sanitize"
)

const (
	htmlDefaultItems   = 10
	htmlRequestTimeout = 15 * time.Second
)

// Selectors 描述列表页的 DOM 结构；Link 与 Title 相同时从标题元素取 href
type Selectors struct {
	Item        string
	Title       string
	Link        string
	Description string
	Popularity  string
}

// 内置的页面预设
var htmlPresets = map[string]Selectors{
	"github-trending": {
		Item:        "article.Box-row",
		Title:       "h2 a",
		Link:        "h2 a",
		Description: "p",
		Popularity:  `a[href$="/stargazers"]`,
	},
}

// HTMLListingConnector 用 colly 抓取列表页，按选择器“尽力而为”地解析
type HTMLListingConnector struct {
	name      string
	url       string
	limit     int
	language  string
	selectors Selectors
	topic     *keyword.Matcher
}

func NewHTMLListingConnector(name, pageURL, preset string, custom map[string]string, limit int, language string, topic *keyword.Matcher) (*HTMLListingConnector, error) {
	if pageURL == "" {
		return nil, fmt.Errorf("%s: page url is required", name)
	}
	sel := htmlPresets[preset]
	if v := custom["item"]; v != "" {
		sel.Item = v
	}
	if v := custom["title"]; v != "" {
		sel.Title = v
	}
	if v := custom["link"]; v != "" {
		sel.Link = v
	}
	if v := custom["description"]; v != "" {
		sel.Description = v
	}
	if v := custom["popularity"]; v != "" {
		sel.Popularity = v
	}
	if sel.Item == "" || sel.Title == "" {
		return nil, fmt.Errorf("%s: item and title selectors are required (preset %q)", name, preset)
	}
	if sel.Link == "" {
		sel.Link = sel.Title
	}
	if limit <= 0 {
		limit = htmlDefaultItems
	}
	return &HTMLListingConnector{
		name:      name,
		url:       pageURL,
		limit:     limit,
		language:  language,
		selectors: sel,
		topic:     topic,
	}, nil
}

func (h *HTMLListingConnector) Name() string { return h.name }

func (h *HTMLListingConnector) Kind() string { return "html-listing" }

func (h *HTMLListingConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	timeout := htmlRequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	c.SetRequestTimeout(timeout)
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	results := make([]RawItem, 0, h.limit)
	c.OnHTML(h.selectors.Item, func(e *colly.HTMLElement) {
		if len(results) >= h.limit {
			return
		}
		if it, ok := h.parseElement(e); ok {
			results = append(results, it)
		}
	})

	if err := c.Visit(h.url); err != nil {
		return nil, fmt.Errorf("html %s: %w", h.name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("html %s: %w", h.name, err)
	}
	return results, nil
}

func (h *HTMLListingConnector) parseElement(e *colly.HTMLElement) (RawItem, bool) {
	titleSel := e.DOM.Find(h.selectors.Title).First()
	title := collapseSpace(titleSel.Text())
	if title == "" {
		return RawItem{}, false
	}

	href := strings.TrimSpace(e.ChildAttr(h.selectors.Link, "href"))
	if href == "" {
		return RawItem{}, false
	}
	link := e.Request.AbsoluteURL(href)
	if link == "" {
		return RawItem{}, false
	}

	desc := ""
	if h.selectors.Description != "" {
		desc = sanitize.Text(e.ChildText(h.selectors.Description))
	}
	if desc == "" {
		desc = longestText(e.DOM, title, 20)
	}
	if !onTopic(h.topic, title, desc) {
		return RawItem{}, false
	}

	it := RawItem{
		Title:       title,
		URL:         link,
		Description: desc,
		Source:      h.name,
		Language:    h.language,
	}
	if h.selectors.Popularity != "" {
		text := strings.TrimSpace(e.ChildText(h.selectors.Popularity))
		if n, ok := parseCount(text); ok {
			it.Popularity = popularity(n)
			it.RawData = map[string]any{"popularity_text": text}
		}
	}
	return it, true
}

// collapseSpace 处理 "owner /\n  repo" 这类被换行拆开的标题
func collapseSpace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, " / ", "/")
}

// parseCount 将 "12.3k"、"1,234"、"1.2M" 之类的文本解析为数字
func parseCount(text string) (float64, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0, false
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(text, "k"), strings.HasSuffix(text, "K"):
		multiplier = 1000
		text = text[:len(text)-1]
	case strings.HasSuffix(text, "m"), strings.HasSuffix(text, "M"):
		multiplier = 1000000
		text = text[:len(text)-1]
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f * multiplier, true
}

// longestText 在条目内找非标题的最长文本段，作为描述兜底
func longestText(sel *goquery.Selection, title string, minLen int) string {
	var best string
	sel.Find("p, span, div").Each(func(_ int, s *goquery.Selection) {
		t := collapseSpace(s.Text())
		if t == "" || t == title || len(t) < minLen || strings.Contains(t, title) {
			return
		}
		if len(t) > len(best) {
			best = t
		}
	})
	return best
}
