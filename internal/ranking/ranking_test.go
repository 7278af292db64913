package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRecencyMonotonicWithinWindow(t *testing.T) {
	s := NewDefaultScorer()
	base := news.Article{Title: "Some update", URL: "https://x", Source: "Hacker News"}

	prev := -1.0
	for h := 30; h >= 0; h-- {
		a := base
		a.PublishedAt = now.Add(-time.Duration(h) * time.Hour)
		score := s.Score(a, now)
		assert.GreaterOrEqual(t, score, prev, "hour %d", h)
		prev = score
	}

	assert.Zero(t, Recency(now.Add(-48*time.Hour), now))
	assert.Equal(t, RecencyWindowHours*RecencyCoefficient, Recency(now.Add(time.Hour), now))
}

func TestUnknownSourceOldScoresLowerThanFresh(t *testing.T) {
	s := NewDefaultScorer()
	old := news.Article{Title: "Quiet story", URL: "https://x", Source: "Some Blog", PublishedAt: now.Add(-48 * time.Hour)}
	fresh := old
	fresh.PublishedAt = now.Add(-time.Hour)

	assert.Zero(t, s.SourceWeight("Some Blog"))
	assert.Less(t, s.Score(old, now), s.Score(fresh, now))
}

func TestPopularityBonusSaturates(t *testing.T) {
	assert.Zero(t, PopularityBonus(nil))
	assert.Zero(t, PopularityBonus(news.Float(0)))

	prev := 0.0
	for _, p := range []float64{1, 10, 100, 1000, 1e5, 1e9} {
		b := PopularityBonus(news.Float(p))
		assert.GreaterOrEqual(t, b, prev)
		assert.LessOrEqual(t, b, PopularityCap)
		prev = b
	}
	assert.Equal(t, PopularityCap, PopularityBonus(news.Float(1e9)))
}

func TestKeywordBonusCapped(t *testing.T) {
	s := NewDefaultScorer()
	assert.Zero(t, s.KeywordBonus("a story about gardening"))
	assert.Equal(t, KeywordIncrement, s.KeywordBonus("New LLM released"))
	assert.Equal(t, KeywordCap, s.KeywordBonus("GPT LLM OpenAI Anthropic Claude Gemini agent benchmark"))
}

func TestSourceWeightCaseInsensitive(t *testing.T) {
	s := NewDefaultScorer()
	assert.Equal(t, 5.0, s.SourceWeight("arXiv cs.AI"))
	assert.Equal(t, 2.0, s.SourceWeight("r/LocalLLaMA"))
	assert.Equal(t, 4.0, s.SourceWeight("机器之心"))
}

func TestRankOrdersThenTruncates(t *testing.T) {
	s := NewScorer(nil, nil)
	articles := make([]news.Article, 0, 30)
	for i := 0; i < 30; i++ {
		articles = append(articles, news.Article{
			Title:       fmt.Sprintf("item %d", i),
			URL:         fmt.Sprintf("https://x/%d", i),
			PublishedAt: now.Add(-time.Duration(24+i) * time.Hour),
		})
	}
	// 全部超出时效窗口；最后一条热度最高，截断在排序之后所以必须保留
	articles[29].Popularity = news.Float(1e6)

	ranked := s.Rank(articles, now, 25)
	require.Len(t, ranked, 25)
	assert.Equal(t, "item 29", ranked[0].Title)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankTieBreaksByRecency(t *testing.T) {
	s := NewScorer(nil, nil)
	older := news.Article{Title: "older", PublishedAt: now.Add(-30 * time.Hour)}
	newer := news.Article{Title: "newer", PublishedAt: now.Add(-26 * time.Hour)}

	ranked := s.Rank([]news.Article{older, newer}, now, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, "newer", ranked[0].Title)
}
