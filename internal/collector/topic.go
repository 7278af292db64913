package collector

import "github.com/lm16688/AI-DAILY/internal/keyword"

// TopicKeywords 是判断条目是否与 AI 相关的固定词表
func TopicKeywords() []string {
	return []string{
		"ai", "a.i.", "artificial intelligence", "machine learning", "deep learning",
		"neural", "llm", "language model", "transformer",
		"gpt", "openai", "anthropic", "claude", "gemini", "deepmind", "llama",
		"mistral", "deepseek", "qwen", "copilot", "diffusion",
		"agent", "fine-tun", "inference", "embedding", "multimodal",
		"hugging face", "huggingface", "nvidia", "reinforcement learning", "sora",
		"人工智能", "大模型", "机器学习", "深度学习", "神经网络", "智能体", "生成式", "多模态", "算力",
	}
}

// DefaultTopicFilter 编译默认词表；不区分大小写的子串匹配
func DefaultTopicFilter() *keyword.Matcher {
	return keyword.NewSubstring(TopicKeywords()...)
}

// onTopic 对 nil matcher 视为不过滤
func onTopic(m *keyword.Matcher, texts ...string) bool {
	if m == nil {
		return true
	}
	for _, t := range texts {
		if m.Match(t) {
			return true
		}
	}
	return false
}
