package collector

import (
	"regexp"
	"strings"
)

// Record 是从半结构化文本中抽出的一条记录。
// Title 与 Link 为必填，其余字段缺失时为空串。
type Record struct {
	Title       string
	Link        string
	Description string
	Date        string
}

var (
	reBlock    = regexp.MustCompile(`(?is)<(?:item|entry)(?:\s[^>]*)?>(.*?)</(?:item|entry)\s*>`)
	reLinkHref = regexp.MustCompile(`(?is)<link\b[^>]*?href\s*=\s*["']([^"']+)["'][^>]*>`)

	titleTags       = []string{"title"}
	linkTags        = []string{"link", "guid", "id"}
	descriptionTags = []string{"description", "summary", "content:encoded", "content"}
	dateTags        = []string{"pubDate", "published", "updated", "dc:date", "a10:updated"}

	fieldPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, group := range [][]string{titleTags, linkTags, descriptionTags, dateTags} {
		for _, tag := range group {
			q := regexp.QuoteMeta(tag)
			fieldPatterns[tag] = regexp.MustCompile(`(?is)<` + q + `(?:\s[^>]*)?>(.*?)</` + q + `\s*>`)
		}
	}
}

// ExtractRecords 用宽松的模式抽取重复出现的 item/entry 块，最多返回 max 条。
// 缺少标题或链接的块被跳过；可选字段缺失不影响整条记录。
func ExtractRecords(text string, max int) []Record {
	if max <= 0 {
		return nil
	}
	blocks := reBlock.FindAllStringSubmatch(text, -1)
	out := make([]Record, 0, min(len(blocks), max))
	for _, b := range blocks {
		if len(out) >= max {
			break
		}
		body := b[1]
		r := Record{
			Title:       firstField(body, titleTags),
			Link:        extractLink(body),
			Description: firstField(body, descriptionTags),
			Date:        firstField(body, dateTags),
		}
		if r.Title == "" || r.Link == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func firstField(body string, tags []string) string {
	for _, tag := range tags {
		if m := fieldPatterns[tag].FindStringSubmatch(body); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// extractLink 兼容 RSS 的 <link>url</link> 与 Atom 的 <link href="url"/>
func extractLink(body string) string {
	for _, tag := range linkTags {
		if m := fieldPatterns[tag].FindStringSubmatch(body); m != nil {
			v := strings.TrimSpace(stripCDATA(m[1]))
			if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
				return v
			}
		}
	}
	if m := reLinkHref.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func stripCDATA(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "<![CDATA[")
	return strings.TrimSuffix(s, "]]>")
}
