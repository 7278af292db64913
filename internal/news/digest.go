package news

import (
	"sort"
	"time"
)

// DateLayout 是 meta.date 与 item.date 使用的逻辑日期格式
const DateLayout = "2006-01-02"

// Meta 描述一次运行的元信息
type Meta struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Total       int       `json:"total"`
	IsFallback  bool      `json:"isFallback"`
	Sources     []string  `json:"sources"`
	Date        string    `json:"date"`
}

// Item 是输出文件中的单条新闻
type Item struct {
	ID       int      `json:"id"`
	Category Category `json:"category"`
	Hot      bool     `json:"hot"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Source   string   `json:"source"`
	Date     string   `json:"date"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
	Language Language `json:"language"`
}

// Digest 是交给 Publisher 的完整产物
type Digest struct {
	Meta Meta   `json:"meta"`
	News []Item `json:"news"`
}

// NewDigest 生成一轮运行的输出文档；loc 决定运行与每条新闻的逻辑日期
func NewDigest(items []ClassifiedArticle, generatedAt time.Time, loc *time.Location, fallback bool) *Digest {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		tags := it.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Item{
			ID:       it.ID,
			Category: it.Category,
			Hot:      it.Hot,
			Title:    it.Title,
			Summary:  it.Description,
			Source:   it.Source,
			Date:     it.PublishedAt.In(loc).Format(DateLayout),
			URL:      it.URL,
			Tags:     tags,
			Language: it.Language,
		})
	}

	return &Digest{
		Meta: Meta{
			LastUpdated: generatedAt,
			Total:       len(out),
			IsFallback:  fallback,
			Sources:     distinctSources(out),
			Date:        generatedAt.In(loc).Format(DateLayout),
		},
		News: out,
	}
}

func distinctSources(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	sources := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Source]; ok {
			continue
		}
		seen[it.Source] = struct{}{}
		sources = append(sources, it.Source)
	}
	sort.Strings(sources)
	return sources
}

// Filter 按分类与 hot 标记过滤，category 为空表示不过滤
func (d *Digest) Filter(category Category, hotOnly bool) []Item {
	out := make([]Item, 0, len(d.News))
	for _, it := range d.News {
		if category != "" && it.Category != category {
			continue
		}
		if hotOnly && !it.Hot {
			continue
		}
		out = append(out, it)
	}
	return out
}
