package processor

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/lm16688/AI-DAILY/internal/collector"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/sanitize"
)

const (
	// MaxDescriptionRunes 是描述的最大长度（不含省略号）
	MaxDescriptionRunes = 200
	// DedupPrefixRunes 是去重键使用的标题前缀长度
	DedupPrefixRunes = 30
)

// Processor 把原始条目归一化为 Article 并做标题前缀去重
type Processor struct {
	sanitizer *sanitize.Sanitizer
	now       func() time.Time
	loc       *time.Location
	prefixLen int
}

type Option func(*Processor)

// WithClock 替换“当前时间”，测试用
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithLocation 设置无时区文本时间的解析时区
func WithLocation(loc *time.Location) Option {
	return func(p *Processor) { p.loc = loc }
}

// WithDedupPrefix 设置去重键的标题前缀长度（按 rune 计），非正数保持默认
func WithDedupPrefix(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.prefixLen = n
		}
	}
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		sanitizer: sanitize.New(),
		now:       time.Now,
		loc:       time.UTC,
		prefixLen: DedupPrefixRunes,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process 归一化全部条目并去重；归一化时间在一次调用内固定
func (p *Processor) Process(items []collector.RawItem) []news.Article {
	now := p.now()
	out := make([]news.Article, 0, len(items))
	for _, it := range items {
		if a, ok := p.Normalize(it, now); ok {
			out = append(out, a)
		}
	}
	return Deduplicate(out, p.prefixLen)
}

// Normalize 是无状态的单条转换；标题或链接清洗后为空时返回 false
func (p *Processor) Normalize(it collector.RawItem, now time.Time) (news.Article, bool) {
	title := p.sanitizer.Text(it.Title)
	link := strings.TrimSpace(it.URL)
	if title == "" || link == "" {
		return news.Article{}, false
	}
	desc := truncateRunes(p.sanitizer.Text(it.Description), MaxDescriptionRunes)

	var pop *float64
	if it.Popularity != nil && *it.Popularity >= 0 {
		v := *it.Popularity
		pop = &v
	}

	source := strings.TrimSpace(it.Source)
	return news.Article{
		Title:       title,
		Description: desc,
		URL:         link,
		Source:      source,
		PublishedAt: p.publishedAt(it, now),
		Language:    detectLanguage(it.Language, title, desc),
		Popularity:  pop,
	}, true
}

func (p *Processor) publishedAt(it collector.RawItem, now time.Time) time.Time {
	if !it.PublishedAt.IsZero() {
		return it.PublishedAt
	}
	if s := strings.TrimSpace(it.Published); s != "" {
		if t, err := dateparse.ParseIn(s, p.loc); err == nil && !t.IsZero() {
			return t
		}
	}
	return now
}

// Deduplicate 以标题前 prefixLen 个字符（区分大小写）为键，保留首次出现的条目
func Deduplicate(articles []news.Article, prefixLen int) []news.Article {
	if prefixLen <= 0 {
		prefixLen = DedupPrefixRunes
	}
	seen := make(map[string]struct{}, len(articles))
	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		key := prefixRunes(a.Title, prefixLen)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

func prefixRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// truncateRunes 按字符截断并追加省略号，避免截断半个汉字
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	rs := []rune(s)
	return strings.TrimSpace(string(rs[:limit])) + "…"
}
