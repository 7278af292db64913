package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lm16688/AI-DAILY/internal/collector"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	items []collector.RawItem
}

func (s stubFetcher) FetchAll(ctx context.Context) orchestrator.Result {
	return orchestrator.Result{Items: s.items}
}

var runAt = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func newTestPipeline(items []collector.RawItem, maxItems int) *Pipeline {
	return New(stubFetcher{items: items}, nil, nil, nil, Config{
		MaxItems: maxItems,
		Location: time.FixedZone("CST", 8*3600),
		Now:      func() time.Time { return runAt },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRunFallbackWhenNothingFetched(t *testing.T) {
	d, err := newTestPipeline(nil, 25).Run(context.Background())
	require.NoError(t, err)

	want := FallbackArticles(runAt)
	assert.True(t, d.Meta.IsFallback)
	require.Len(t, d.News, len(want))
	assert.Equal(t, len(want), d.Meta.Total)
	for i, it := range d.News {
		assert.Equal(t, want[i].Category, it.Category)
		assert.Equal(t, want[i].Title, it.Title)
		assert.Equal(t, i+1, it.ID)
	}
	// 逻辑日期使用运行时区：UTC 20 点即东八区次日
	assert.Equal(t, "2024-05-02", d.Meta.Date)
}

func TestRunFallbackWhenEverythingIsInvalid(t *testing.T) {
	d, err := newTestPipeline([]collector.RawItem{{Title: "", URL: "https://x"}}, 25).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, d.Meta.IsFallback)
}

func TestRunOrganic(t *testing.T) {
	items := []collector.RawItem{
		{Title: "Google releases Gemini 2 model", URL: "https://a", Source: "Hacker News", PublishedAt: runAt.Add(-time.Hour), Popularity: news.Float(900)},
		{Title: "Google releases Gemini 2 model today", URL: "https://b", Source: "The Verge", PublishedAt: runAt},
		{Title: "OpenAI launches GPT-5", Description: "OpenAI today announced GPT-5 with major reasoning gains", URL: "https://c", Source: "Hacker News", PublishedAt: runAt},
		{Title: "A quiet blog post", URL: "https://d", Source: "Unknown", PublishedAt: runAt.Add(-72 * time.Hour)},
	}
	d, err := newTestPipeline(items, 25).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, d.Meta.IsFallback)
	require.Len(t, d.News, 3)
	assert.Equal(t, 3, d.Meta.Total)
	assert.Equal(t, []string{"Hacker News", "Unknown"}, d.Meta.Sources)

	for i, it := range d.News {
		assert.Equal(t, i+1, it.ID)
		assert.NotNil(t, it.Tags)
	}
	assert.Equal(t, "A quiet blog post", d.News[2].Title)

	urls := map[string]bool{}
	for _, it := range d.News {
		urls[it.URL] = true
	}
	assert.True(t, urls["https://a"])
	assert.False(t, urls["https://b"], "later duplicate must be dropped")
}

func TestRunCapsOutput(t *testing.T) {
	items := make([]collector.RawItem, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, collector.RawItem{
			Title: fmt.Sprintf("Distinct headline number %02d here", i),
			URL:   fmt.Sprintf("https://x/%d", i),
		})
	}
	d, err := newTestPipeline(items, 25).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.News, 25)
	assert.Equal(t, 25, d.News[24].ID)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPipeline(nil, 25).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallbackArticlesFixedHeadlines(t *testing.T) {
	items := FallbackArticles(runAt)
	require.Len(t, items, 8)

	cats := make([]news.Category, 0, len(items))
	hot := 0
	for _, it := range items {
		cats = append(cats, it.Category)
		if it.Hot {
			hot++
		}
		assert.NotEmpty(t, it.Title)
		assert.NotEmpty(t, it.URL)
		assert.LessOrEqual(t, len(it.Tags), 4)
		assert.Equal(t, news.LanguageZH, it.Language)
	}
	assert.Equal(t, []news.Category{
		news.CategoryNews, news.CategoryTools, news.CategoryResearch, news.CategoryIndustry,
		news.CategorySafety, news.CategoryTools, news.CategoryResearch, news.CategoryNews,
	}, cats)
	assert.Equal(t, 5, hot)

	// 每次返回新切片，修改不影响下一次
	items[0].Tags[0] = "changed"
	assert.Equal(t, "OpenAI", FallbackArticles(runAt)[0].Tags[0])
}

func TestRunLogsCategoryStats(t *testing.T) {
	var buf bytes.Buffer
	p := New(stubFetcher{}, nil, nil, nil, Config{
		Now:    func() time.Time { return runAt },
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	})
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "category=news count=2 zh=2")
	assert.Contains(t, out, "category=industry count=1 zh=1")
	assert.Contains(t, out, "category=safety count=1 zh=1")
	assert.Contains(t, out, "hot=5 zh=8 en=0")
}

func TestSummarizeCountsLanguages(t *testing.T) {
	d := &news.Digest{News: []news.Item{
		{Category: news.CategoryResearch, Language: news.LanguageZH, Hot: true},
		{Category: news.CategoryResearch, Language: news.LanguageEN},
		{Category: news.CategoryTools, Language: news.LanguageEN},
	}}
	st := summarize(d)
	assert.Equal(t, categoryStats{Total: 2, Chinese: 1}, st.Categories[news.CategoryResearch])
	assert.Equal(t, categoryStats{Total: 1}, st.Categories[news.CategoryTools])
	assert.Equal(t, categoryStats{}, st.Categories[news.CategorySafety])
	assert.Equal(t, 1, st.Hot)
	assert.Equal(t, 1, st.Chinese)
	assert.Equal(t, 2, st.English)
}
