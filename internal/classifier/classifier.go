// Package classifier 按有序关键词规则为条目确定分类、标签与热点标记。
// 不保存任何状态，同一条目的分类结果始终一致。
package classifier

import (
	"github.com/lm16688/AI-DAILY/internal/keyword"
	"github.com/lm16688/AI-DAILY/internal/news"
)

type compiledCategory struct {
	category news.Category
	m        *keyword.Matcher
}

type compiledTag struct {
	label string
	m     *keyword.Matcher
}

// Classifier 由 Rules 编译而来，构造后只读，可并发使用
type Classifier struct {
	categories      []compiledCategory
	defaultCategory news.Category

	entities      *keyword.Matcher
	actions       *keyword.Matcher
	flagships     *keyword.Matcher
	hotPopularity float64

	tags    []compiledTag
	maxTags int
}

func New(r Rules) *Classifier {
	c := &Classifier{
		defaultCategory: r.DefaultCategory,
		entities:        keyword.New(r.HotEntities...),
		actions:         keyword.New(r.HotActions...),
		flagships:       keyword.New(r.Flagships...),
		hotPopularity:   r.HotPopularity,
		maxTags:         r.MaxTags,
	}
	if !c.defaultCategory.Valid() {
		c.defaultCategory = news.CategoryNews
	}
	if c.maxTags <= 0 {
		c.maxTags = DefaultMaxTags
	}
	for _, cr := range r.Categories {
		if !cr.Category.Valid() {
			continue
		}
		c.categories = append(c.categories, compiledCategory{cr.Category, keyword.New(cr.Keywords...)})
	}
	for _, tr := range r.Tags {
		if tr.Label == "" {
			continue
		}
		c.tags = append(c.tags, compiledTag{tr.Label, keyword.New(tr.Keywords...)})
	}
	return c
}

func NewDefault() *Classifier {
	return New(DefaultRules())
}

// Classify 返回新的 ClassifiedArticle；ID 由调用方在最终截断后分配
func (c *Classifier) Classify(a news.RankedArticle) news.ClassifiedArticle {
	text := a.Text()
	return news.ClassifiedArticle{
		RankedArticle: a,
		Category:      c.Category(text),
		Tags:          c.Tags(text),
		Hot:           c.Hot(text, a.Popularity),
	}
}

// ClassifyAll 逐条分类并按排名从 1 开始编号
func (c *Classifier) ClassifyAll(ranked []news.RankedArticle) []news.ClassifiedArticle {
	out := make([]news.ClassifiedArticle, 0, len(ranked))
	for i, r := range ranked {
		ca := c.Classify(r)
		ca.ID = i + 1
		out = append(out, ca)
	}
	return out
}

// Category 规则按顺序匹配，先命中者胜出
func (c *Classifier) Category(text string) news.Category {
	for _, cr := range c.categories {
		if cr.m.Match(text) {
			return cr.category
		}
	}
	return c.defaultCategory
}

// Hot 三个条件任一满足即可
func (c *Classifier) Hot(text string, popularity *float64) bool {
	if c.entities.Match(text) && c.actions.Match(text) {
		return true
	}
	if c.flagships.Match(text) {
		return true
	}
	return popularity != nil && c.hotPopularity > 0 && *popularity > c.hotPopularity
}

// Tags 按规则顺序收集标签，去重并截断到 maxTags
func (c *Classifier) Tags(text string) []string {
	tags := make([]string, 0, c.maxTags)
	seen := make(map[string]struct{}, c.maxTags)
	for _, tr := range c.tags {
		if len(tags) >= c.maxTags {
			break
		}
		if _, ok := seen[tr.label]; ok {
			continue
		}
		if tr.m.Match(text) {
			seen[tr.label] = struct{}{}
			tags = append(tags, tr.label)
		}
	}
	return tags
}
