// Package sanitize 把带标记的来源文本清洗为纯文本
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var literalMarkers = strings.NewReplacer(
	"<![CDATA[", "",
	"]]>", "",
	`\n`, " ",
	`\r`, " ",
	`\t`, " ",
)

// Sanitizer 去掉全部标签，只保留纯文本
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text 去掉 CDATA 与字面转义符，解码实体，剥离全部标签并压缩空白。
// "&lt;p&gt;" 这类被转义的标签先解码，随后一并剥离。
func (s *Sanitizer) Text(raw string) string {
	if raw == "" {
		return ""
	}
	out := literalMarkers.Replace(raw)
	out = html.UnescapeString(out)
	out = s.policy.Sanitize(out)
	// bluemonday 会重新转义输出中的 & < > 等字符
	out = html.UnescapeString(out)
	return strings.Join(strings.Fields(out), " ")
}

var std = New()

// Text 使用包级默认 Sanitizer
func Text(raw string) string {
	return std.Text(raw)
}
