package pipeline

import (
	"log/slog"

	"github.com/lm16688/AI-DAILY/internal/news"
)

// categoryStats 是单个分类的条目数及其中的中文条目数
type categoryStats struct {
	Total   int
	Chinese int
}

type digestStats struct {
	Categories map[news.Category]categoryStats
	Hot        int
	Chinese    int
	English    int
}

func summarize(d *news.Digest) digestStats {
	st := digestStats{Categories: make(map[news.Category]categoryStats, len(news.Categories()))}
	for _, c := range news.Categories() {
		st.Categories[c] = categoryStats{}
	}
	for _, it := range d.News {
		cs := st.Categories[it.Category]
		cs.Total++
		if it.Language == news.LanguageZH {
			cs.Chinese++
			st.Chinese++
		} else {
			st.English++
		}
		st.Categories[it.Category] = cs
		if it.Hot {
			st.Hot++
		}
	}
	return st
}

// logStats 输出分类统计：每个分类一行，最后汇总热点与中英文条数
func logStats(l *slog.Logger, d *news.Digest) {
	st := summarize(d)
	for _, c := range news.Categories() {
		cs := st.Categories[c]
		l.Info("category stats", "category", c, "count", cs.Total, "zh", cs.Chinese)
	}
	l.Info("digest stats", "hot", st.Hot, "zh", st.Chinese, "en", st.English)
}
