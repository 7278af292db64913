package processor

import (
	"strings"

	"github.com/lm16688/AI-DAILY/internal/news"
)

// detectLanguage 优先使用连接器给出的标签；否则文本中出现任一汉字即判为中文
func detectLanguage(tagged, title, desc string) news.Language {
	switch strings.ToLower(strings.TrimSpace(tagged)) {
	case "zh", "zh-cn", "zh-hans", "cn":
		return news.LanguageZH
	case "en", "en-us", "en-gb":
		return news.LanguageEN
	}
	if containsCJK(title) || containsCJK(desc) {
		return news.LanguageZH
	}
	return news.LanguageEN
}

func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	if r >= 0x4e00 && r <= 0x9fff {
		return true
	}
	if r >= 0x3400 && r <= 0x4dbf {
		return true
	}
	// 中文标点
	if r >= 0x3000 && r <= 0x303f {
		return true
	}
	return false
}
