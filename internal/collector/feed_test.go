package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Lab Blog</title>
<item>
  <title>Introducing a new open LLM</title>
  <link>https://lab.example/llm</link>
  <description><![CDATA[<p>Weights are <b>open</b>.</p>]]></description>
  <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Office party photos</title>
  <link>https://lab.example/party</link>
  <description>Cake</description>
</item>
<item>
  <title>Agent benchmark</title>
  <link>https://lab.example/agents</link>
</item>
</channel></rss>`

// 根元素不是 rss/feed，gofeed 无法识别，只能走宽松抽取
const brokenRSS = `<export>
<item><title>Diffusion model tricks</title><link>https://broken.example/1</link><pubDate>2024-05-01</pubDate></item>
<item><title>Second post about AI</title><link>https://broken.example/2</link><description>hi</description></item>
<item><title>broken`

func serveText(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedConnectorParsesValidFeed(t *testing.T) {
	srv := serveText(t, validRSS)
	f, err := NewFeedConnector("Lab", srv.URL, 0, "en", "", srv.Client(), nil)
	require.NoError(t, err)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Introducing a new open LLM", items[0].Title)
	assert.Equal(t, "Weights are open.", items[0].Description)
	assert.Equal(t, 2024, items[0].PublishedAt.Year())
	assert.Equal(t, "Lab", items[0].Source)
	assert.Equal(t, "en", items[0].Language)

	assert.Equal(t, "See Lab for details.", items[2].Description)
	assert.Nil(t, items[0].RawData)
}

func TestFeedConnectorTopicFilterAndCap(t *testing.T) {
	srv := serveText(t, validRSS)
	f, err := NewFeedConnector("Lab", srv.URL, 1, "", "no summary", srv.Client(), DefaultTopicFilter())
	require.NoError(t, err)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Introducing a new open LLM", items[0].Title)

	f.limit = 10
	items, err = f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Agent benchmark", items[1].Title)
	assert.Equal(t, "no summary", items[1].Description)
}

func TestFeedConnectorLenientFallback(t *testing.T) {
	srv := serveText(t, brokenRSS)
	f, err := NewFeedConnector("Broken", srv.URL, 5, "", "", srv.Client(), nil)
	require.NoError(t, err)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Diffusion model tricks", items[0].Title)
	assert.Equal(t, "2024-05-01", items[0].Published)
	assert.True(t, items[0].PublishedAt.IsZero())
	assert.Equal(t, true, items[0].RawData["lenient"])
	assert.Equal(t, "hi", items[1].Description)
}

func TestFeedConnectorHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f, err := NewFeedConnector("Gone", srv.URL, 5, "", "", srv.Client(), nil)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background())
	assert.Error(t, err)

	_, err = NewFeedConnector("NoURL", "", 5, "", "", nil, nil)
	assert.Error(t, err)
}
