// Package news 定义归一化之后在流水线中流转的统一数据结构
package news

import "time"

// Language 是有限的语言标签集合
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

// Category 是分类器输出的封闭集合
type Category string

const (
	CategoryResearch Category = "research"
	CategoryTools    Category = "tools"
	CategoryIndustry Category = "industry"
	CategorySafety   Category = "safety"
	CategoryNews     Category = "news"
)

// Categories 返回全部合法分类（顺序即展示顺序）
func Categories() []Category {
	return []Category{CategoryResearch, CategoryTools, CategoryIndustry, CategorySafety, CategoryNews}
}

// Valid 判断 c 是否属于封闭分类集合
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Article 是归一化后的统一新闻结构，构造后不再修改
type Article struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
	Language    Language
	// Popularity 为 nil 表示来源未提供热度信号
	Popularity *float64
}

// Text 返回用于关键词匹配的标题 + 描述
func (a Article) Text() string {
	if a.Description == "" {
		return a.Title
	}
	return a.Title + " " + a.Description
}

// RankedArticle 在 Article 基础上附加相关度得分
type RankedArticle struct {
	Article
	Score float64
}

// ClassifiedArticle 是最终输出单元；ID 在最终截断后按排名从 1 开始分配
type ClassifiedArticle struct {
	RankedArticle
	ID       int
	Category Category
	Tags     []string
	Hot      bool
}

// Float 用于构造可选的热度值
func Float(v float64) *float64 {
	return &v
}
