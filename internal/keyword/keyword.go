// Package keyword 用固定词表匹配自由文本，不区分大小写。
//
// New 构造的 Matcher 要求 ASCII 关键词从单词边界开始，不超过四个字节的短词
// 还要在单词边界结束，因此 "ai" 不会命中 "said"，而 "agent" 仍能命中 "agents"。
// 其他文字的关键词按子串匹配。NewSubstring 完全不检查边界。
package keyword

import (
	"regexp"
	"strings"
)

const shortKeywordLen = 4

type term struct {
	word string
	re   *regexp.Regexp
}

// Matcher 构造后不可变，可并发使用
type Matcher struct {
	terms []term
}

// New 编译词表，忽略空词与重复词
func New(keywords ...string) *Matcher {
	return build(keywords, true)
}

// NewSubstring 构造纯子串匹配的 Matcher，"ai" 也能命中 "GenAI"
func NewSubstring(keywords ...string) *Matcher {
	return build(keywords, false)
}

func build(keywords []string, boundaries bool) *Matcher {
	m := &Matcher{terms: make([]term, 0, len(keywords))}
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		t := term{word: k}
		if boundaries {
			t.re = compile(k)
		}
		m.terms = append(m.terms, t)
	}
	return m
}

func compile(k string) *regexp.Regexp {
	if !isASCIIWord(k[0]) {
		return nil
	}
	pattern := `\b` + regexp.QuoteMeta(k)
	if len(k) <= shortKeywordLen && isASCIIWord(k[len(k)-1]) {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

func isASCIIWord(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func (t term) matchLower(text string) bool {
	if t.re == nil {
		return strings.Contains(text, t.word)
	}
	return t.re.MatchString(text)
}

// Match 判断 text 是否包含任一关键词
func (m *Matcher) Match(text string) bool {
	if m == nil {
		return false
	}
	lower := strings.ToLower(text)
	for _, t := range m.terms {
		if t.matchLower(lower) {
			return true
		}
	}
	return false
}

// Count 返回 text 中出现的不同关键词个数
func (m *Matcher) Count(text string) int {
	if m == nil {
		return 0
	}
	lower := strings.ToLower(text)
	n := 0
	for _, t := range m.terms {
		if t.matchLower(lower) {
			n++
		}
	}
	return n
}

// Len 返回词表大小
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.terms)
}
