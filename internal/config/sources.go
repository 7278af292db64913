package config

// DefaultSources 返回内置数据源列表；每次调用返回新切片，调用方可以随意修改
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "Hacker News", Kind: KindIDEnumeration, List: "top", Limit: 40},
		{
			Name: "HN Search", Kind: KindPagedSearch, Provider: "algolia", Limit: 10,
			Queries: []string{"LLM", "OpenAI", "AI agent"},
		},
		{
			Name: "GitHub", Kind: KindPagedSearch, Provider: "github", Limit: 8,
			Queries:       []string{"llm created:>2024-01-01", "ai agent stars:>500"},
			CredentialEnv: "GITHUB_TOKEN",
		},
		{
			Name: "NewsAPI", Kind: KindPagedSearch, Provider: "newsapi", Limit: 10,
			Queries:       []string{"artificial intelligence"},
			CredentialEnv: "NEWSAPI_KEY",
		},
		{Name: "r/MachineLearning", Kind: KindSyndicationFeed, URL: "https://www.reddit.com/r/MachineLearning/.rss", Limit: 10},
		{Name: "r/artificial", Kind: KindSyndicationFeed, URL: "https://www.reddit.com/r/artificial/.rss", Limit: 10, TopicFilter: true},
		{Name: "r/LocalLLaMA", Kind: KindSyndicationFeed, URL: "https://www.reddit.com/r/LocalLLaMA/.rss", Limit: 10},
		{Name: "arXiv cs.AI", Kind: KindSyndicationFeed, URL: "https://rss.arxiv.org/rss/cs.AI", Limit: 8},
		{Name: "Hugging Face Blog", Kind: KindSyndicationFeed, URL: "https://huggingface.co/blog/feed.xml", Limit: 8},
		{Name: "OpenAI News", Kind: KindSyndicationFeed, URL: "https://openai.com/news/rss.xml", Limit: 8},
		{Name: "MIT Technology Review", Kind: KindSyndicationFeed, URL: "https://www.technologyreview.com/feed/", Limit: 10, TopicFilter: true},
		{Name: "TechCrunch AI", Kind: KindSyndicationFeed, URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Limit: 10},
		{Name: "The Verge", Kind: KindSyndicationFeed, URL: "https://www.theverge.com/rss/index.xml", Limit: 10, TopicFilter: true},
		{Name: "机器之心", Kind: KindSyndicationFeed, URL: "https://www.jiqizhixin.com/rss", Limit: 8, Language: "zh"},
		{Name: "量子位", Kind: KindSyndicationFeed, URL: "https://www.qbitai.com/feed", Limit: 8, Language: "zh"},
		{Name: "即刻AI", Kind: KindSyndicationFeed, URL: "https://rsshub.app/jike/topic/63549b1970208ee92e0ae8a2", Limit: 10, Language: "zh"},
		{Name: "少数派", Kind: KindSyndicationFeed, URL: "https://rsshub.app/sspai/tag/AI", Limit: 10, Language: "zh"},
		{Name: "GitHub Trending", Kind: KindHTMLListing, URL: "https://github.com/trending", Preset: "github-trending", Limit: 10},
	}
}
