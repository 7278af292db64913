package classifier

import "github.com/lm16688/AI-DAILY/internal/news"

const (
	DefaultHotPopularity = 500
	DefaultMaxTags       = 4
)

// CategoryRule 命中任一关键词即归入该分类
type CategoryRule struct {
	Category news.Category
	Keywords []string
}

// TagRule 命中任一关键词即追加 Label
type TagRule struct {
	Label    string
	Keywords []string
}

// Rules 是分类器的全部配置；规则顺序即优先级
type Rules struct {
	Categories      []CategoryRule
	DefaultCategory news.Category

	HotEntities   []string
	HotActions    []string
	Flagships     []string
	HotPopularity float64

	Tags    []TagRule
	MaxTags int
}

// DefaultRules 每次返回新值，调用方可以修改后再交给 New
func DefaultRules() Rules {
	return Rules{
		Categories: []CategoryRule{
			{news.CategoryResearch, []string{
				"paper", "arxiv", "research", "researchers", "study", "benchmark", "dataset",
				"reasoning", "state-of-the-art", "sota", "preprint",
				"论文", "研究", "基准", "数据集",
			}},
			{news.CategoryTools, []string{
				"open source", "open-source", "library", "framework", "sdk", "api", "tool",
				"tools", "toolkit", "plugin", "repo", "repository", "github", "cli", "extension",
				"开源", "工具", "框架", "插件",
			}},
			{news.CategoryIndustry, []string{
				"funding", "raises", "raised", "acquire", "acquisition", "valuation", "ipo",
				"revenue", "invest", "startup", "partnership", "deal", "series a", "series b",
				"融资", "收购", "估值", "投资", "营收",
			}},
			{news.CategorySafety, []string{
				"regulation", "regulator", "policy", "law", "lawsuit", "safety", "ethics",
				"ban", "congress", "eu ai act", "government", "copyright", "antitrust",
				"监管", "政策", "法规", "安全", "版权",
			}},
		},
		DefaultCategory: news.CategoryNews,

		HotEntities: []string{
			"openai", "anthropic", "google", "deepmind", "meta", "microsoft", "nvidia",
			"apple", "amazon", "xai", "deepseek", "mistral",
			"百度", "阿里", "腾讯", "字节",
		},
		HotActions: []string{
			"launch", "release", "announce", "unveil", "introduce", "debut", "open-source",
			"发布", "推出", "宣布", "开源",
		},
		Flagships: []string{
			"gpt-5", "gpt-4.5", "gpt-4o", "sora", "claude 4", "claude 3.5", "gemini 2",
			"gemini ultra", "llama 4", "deepseek-r1", "deepseek-v3",
		},
		HotPopularity: DefaultHotPopularity,

		Tags: []TagRule{
			{"OpenAI", []string{"openai", "chatgpt", "gpt-"}},
			{"Anthropic", []string{"anthropic", "claude"}},
			{"Google", []string{"google", "deepmind", "gemini"}},
			{"Meta", []string{"meta", "llama"}},
			{"Microsoft", []string{"microsoft", "copilot"}},
			{"NVIDIA", []string{"nvidia"}},
			{"DeepSeek", []string{"deepseek"}},
			{"Mistral", []string{"mistral"}},
			{"百度", []string{"百度", "文心"}},
			{"阿里", []string{"阿里", "通义", "qwen"}},
			{"LLM", []string{"llm", "large language model", "大模型", "语言模型"}},
			{"Agent", []string{"agent", "智能体"}},
			{"Open Source", []string{"open source", "open-source", "开源"}},
			{"Multimodal", []string{"multimodal", "vision", "多模态"}},
			{"Reasoning", []string{"reasoning", "推理"}},
			{"RAG", []string{"rag", "retrieval"}},
			{"Robotics", []string{"robot", "机器人"}},
			{"Safety", []string{"safety", "alignment", "安全"}},
			{"Funding", []string{"funding", "raises", "融资"}},
		},
		MaxTags: DefaultMaxTags,
	}
}
