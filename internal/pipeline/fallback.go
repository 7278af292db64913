package pipeline

import (
	"time"

	"github.com/lm16688/AI-DAILY/internal/news"
)

type curated struct {
	title, summary, url, source string
	category                    news.Category
	tags                        []string
	hot                         bool
}

// 固定的兜底头条，分类、热点与标签预先给定
var curatedSet = []curated{
	{
		title:    "OpenAI 发布 GPT-4o 多模态更新",
		summary:  "OpenAI 推出 GPT-4o 最新版本，支持更强大的图像理解和实时语音对话，API 价格降低 50%。",
		url:      "https://openai.com/blog",
		source:   "OpenAI Blog",
		category: news.CategoryNews,
		tags:     []string{"OpenAI", "GPT-4o", "多模态"},
		hot:      true,
	},
	{
		title:    "Claude 3.5 Sonnet 正式发布",
		summary:  "Anthropic 发布 Claude 3.5 Sonnet，编码能力超越 GPT-4，支持 Artifacts 实时预览功能。",
		url:      "https://anthropic.com",
		source:   "Anthropic",
		category: news.CategoryTools,
		tags:     []string{"Claude", "Anthropic", "编码助手"},
		hot:      true,
	},
	{
		title:    "Google DeepMind 发布 AlphaFold 3",
		summary:  "新一代蛋白质结构预测模型，能够预测 DNA、RNA 和小分子相互作用，准确度创新高。",
		url:      "https://deepmind.google",
		source:   "Nature",
		category: news.CategoryResearch,
		tags:     []string{"DeepMind", "生物AI", "AlphaFold"},
		hot:      true,
	},
	{
		title:    "Meta 开源 Llama 3.1 405B 参数模型",
		summary:  "Meta 发布最大开源模型 Llama 3.1，4050亿参数，性能接近 GPT-4，允许商用。",
		url:      "https://ai.meta.com",
		source:   "Meta AI",
		category: news.CategoryIndustry,
		tags:     []string{"Meta", "Llama", "开源模型"},
		hot:      true,
	},
	{
		title:    "欧盟 AI 法案正式生效",
		summary:  "全球首部全面监管 AI 的法律生效，高风险 AI 系统需符合严格透明度要求。",
		url:      "https://digital-strategy.ec.europa.eu",
		source:   "EU Commission",
		category: news.CategorySafety,
		tags:     []string{"监管", "欧盟", "AI治理"},
		hot:      true,
	},
	{
		title:    "Cursor 获 6000 万美元融资",
		summary:  "AI 编程工具 Cursor 完成 B 轮融资，估值达 4 亿美元，用户增长迅猛。",
		url:      "https://techcrunch.com",
		source:   "TechCrunch",
		category: news.CategoryTools,
		tags:     []string{"Cursor", "融资", "编程工具"},
	},
	{
		title:    "Mistral AI 发布 Large 2 模型",
		summary:  "法国 AI 公司 Mistral 发布新模型，支持 128K 上下文，代码生成能力突出。",
		url:      "https://mistral.ai",
		source:   "Mistral AI",
		category: news.CategoryResearch,
		tags:     []string{"Mistral", "大模型", "欧洲AI"},
	},
	{
		title:    "苹果智能 Apple Intelligence 延期",
		summary:  "iOS 18.1 将推迟发布 AI 功能，中文支持预计 2025 年上线。",
		url:      "https://apple.com",
		source:   "Apple",
		category: news.CategoryNews,
		tags:     []string{"Apple", "iOS", "端侧AI"},
	},
}

// FallbackArticles 返回兜底集合，编号从 1 开始；每次调用返回新切片
func FallbackArticles(now time.Time) []news.ClassifiedArticle {
	out := make([]news.ClassifiedArticle, 0, len(curatedSet))
	for i, c := range curatedSet {
		tags := make([]string, len(c.tags))
		copy(tags, c.tags)
		out = append(out, news.ClassifiedArticle{
			RankedArticle: news.RankedArticle{Article: news.Article{
				Title:       c.title,
				Description: c.summary,
				URL:         c.url,
				Source:      c.source,
				PublishedAt: now,
				Language:    news.LanguageZH,
			}},
			ID:       i + 1,
			Category: c.category,
			Tags:     tags,
			Hot:      c.hot,
		})
	}
	return out
}
