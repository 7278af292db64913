// Package ranking 为来源信号各异的条目统一打分，排序后截断
package ranking

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lm16688/AI-DAILY/internal/keyword"
	"github.com/lm16688/AI-DAILY/internal/news"
)

const (
	RecencyWindowHours = 24.0
	RecencyCoefficient = 0.5

	PopularityScale = 3.0
	PopularityCap   = 10.0

	KeywordIncrement = 2.0
	KeywordCap       = 6.0

	DefaultLimit = 25
)

// SourceWeight 按来源名子串（不区分大小写）匹配权重，先匹配先得
type SourceWeight struct {
	Match  string
	Weight float64
}

// DefaultSourceWeights 越偏技术/一手的来源权重越高
func DefaultSourceWeights() []SourceWeight {
	return []SourceWeight{
		{"arxiv", 5},
		{"hugging face", 5},
		{"openai", 5},
		{"deepmind", 5},
		{"mit technology review", 4},
		{"hacker news", 4},
		{"hn search", 4},
		{"机器之心", 4},
		{"量子位", 4},
		{"github", 3},
		{"techcrunch", 3},
		{"the verge", 2},
		{"r/", 2},
		{"reddit", 2},
	}
}

// SalienceKeywords 是加分用的高显著性词表
func SalienceKeywords() []string {
	return []string{
		"gpt", "llm", "openai", "anthropic", "claude", "gemini", "deepmind",
		"agent", "open source", "open-source", "benchmark", "reasoning", "multimodal",
		"大模型", "开源", "智能体", "推理",
	}
}

// Scorer 的配置在构造时注入，之后只读
type Scorer struct {
	weights  []SourceWeight
	salience *keyword.Matcher
}

func NewScorer(weights []SourceWeight, salience *keyword.Matcher) *Scorer {
	ws := make([]SourceWeight, 0, len(weights))
	for _, w := range weights {
		if w.Match == "" {
			continue
		}
		ws = append(ws, SourceWeight{Match: strings.ToLower(w.Match), Weight: w.Weight})
	}
	return &Scorer{weights: ws, salience: salience}
}

func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultSourceWeights(), keyword.New(SalienceKeywords()...))
}

// Score = 来源权重 + 时效 + 热度 + 关键词
func (s *Scorer) Score(a news.Article, now time.Time) float64 {
	return s.SourceWeight(a.Source) +
		Recency(a.PublishedAt, now) +
		PopularityBonus(a.Popularity) +
		s.KeywordBonus(a.Text())
}

func (s *Scorer) SourceWeight(source string) float64 {
	src := strings.ToLower(source)
	for _, w := range s.weights {
		if strings.Contains(src, w.Match) {
			return w.Weight
		}
	}
	return 0
}

// Recency 超过 24 小时为 0；未来时间按刚发布处理
func Recency(published, now time.Time) float64 {
	hours := now.Sub(published).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Max(0, RecencyWindowHours-hours) * RecencyCoefficient
}

// PopularityBonus 单调递增且饱和；缺失为 0
func PopularityBonus(p *float64) float64 {
	if p == nil || *p <= 0 || math.IsNaN(*p) {
		return 0
	}
	return math.Min(PopularityCap, PopularityScale*math.Log10(1+*p))
}

func (s *Scorer) KeywordBonus(text string) float64 {
	return math.Min(KeywordCap, KeywordIncrement*float64(s.salience.Count(text)))
}

// Rank 打分后稳定排序（分数降序，同分较新者在前），排序后再截断
func (s *Scorer) Rank(articles []news.Article, now time.Time, limit int) []news.RankedArticle {
	ranked := make([]news.RankedArticle, 0, len(articles))
	for _, a := range articles {
		ranked = append(ranked, news.RankedArticle{Article: a, Score: s.Score(a, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
