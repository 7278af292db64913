package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecordsRSSAndAtom(t *testing.T) {
	text := `<rss><channel>
<item>
  <title><![CDATA[GPT-5 benchmark results]]></title>
  <link>https://example.com/gpt5</link>
  <description>Numbers &amp; charts</description>
  <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
</item>
<item><title>No link here</title><description>x</description></item>
<entry>
  <title>Atom entry</title>
  <id>tag:example.com,2024:1</id>
  <link rel="alternate" href="https://example.com/atom"/>
  <updated>2024-05-01T08:00:00Z</updated>
</entry>
<item><title>Guid only</title><guid>https://example.com/guid</guid></item>
</channel>`

	recs := ExtractRecords(text, 10)
	require.Len(t, recs, 3)

	assert.Equal(t, "<![CDATA[GPT-5 benchmark results]]>", recs[0].Title)
	assert.Equal(t, "https://example.com/gpt5", recs[0].Link)
	assert.Equal(t, "Numbers &amp; charts", recs[0].Description)
	assert.Equal(t, "Wed, 01 May 2024 10:00:00 GMT", recs[0].Date)

	assert.Equal(t, "https://example.com/atom", recs[1].Link)
	assert.Equal(t, "2024-05-01T08:00:00Z", recs[1].Date)
	assert.Empty(t, recs[1].Description)

	assert.Equal(t, "https://example.com/guid", recs[2].Link)
}

func TestExtractRecordsLimit(t *testing.T) {
	text := `<item><title>a</title><link>https://a</link></item>
<item><title>b</title><link>https://b</link></item>
<item><title>c</title><link>https://c</link></item>`

	assert.Len(t, ExtractRecords(text, 2), 2)
	assert.Nil(t, ExtractRecords(text, 0))
	assert.Empty(t, ExtractRecords("no blocks at all", 5))
}
