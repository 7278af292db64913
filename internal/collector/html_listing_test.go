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

const trendingPage = `<html><body>
<article class="Box-row">
  <h2><a href="/org/agent-kit"> org /
     agent-kit </a></h2>
  <p>Framework for building LLM agents</p>
  <a href="/org/agent-kit/stargazers">12.3k</a>
</article>
<article class="Box-row">
  <h2><a href="/someone/dotfiles">someone / dotfiles</a></h2>
  <p>My personal config</p>
  <a href="/someone/dotfiles/stargazers">1,024</a>
</article>
<article class="Box-row">
  <h2><a href="/lab/tiny-diffusion">lab / tiny-diffusion</a></h2>
  <div><span>A minimal diffusion model you can train on a laptop</span></div>
</article>
<article class="Box-row">
  <h2></h2>
</article>
</body></html>`

func TestHTMLListingConnectorGitHubTrendingPreset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, trendingPage)
	}))
	defer srv.Close()

	h, err := NewHTMLListingConnector("GitHub Trending", srv.URL, "github-trending", nil, 10, "", DefaultTopicFilter())
	require.NoError(t, err)

	items, err := h.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "org/agent-kit", items[0].Title)
	assert.Equal(t, srv.URL+"/org/agent-kit", items[0].URL)
	assert.Equal(t, "Framework for building LLM agents", items[0].Description)
	require.NotNil(t, items[0].Popularity)
	assert.InDelta(t, 12300, *items[0].Popularity, 0.001)

	assert.Equal(t, "lab/tiny-diffusion", items[1].Title)
	assert.Equal(t, "A minimal diffusion model you can train on a laptop", items[1].Description)
	assert.Nil(t, items[1].Popularity)
}

func TestHTMLListingConnectorCustomSelectorsAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<ul>
<li class="n"><a class="t" href="https://x.example/1">One</a></li>
<li class="n"><a class="t" href="https://x.example/2">Two</a></li>
<li class="n"><a class="t" href="https://x.example/3">Three</a></li>
</ul>`)
	}))
	defer srv.Close()

	h, err := NewHTMLListingConnector("List", srv.URL, "", map[string]string{"item": "li.n", "title": "a.t"}, 2, "zh", nil)
	require.NoError(t, err)

	items, err := h.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://x.example/1", items[0].URL)
	assert.Equal(t, "zh", items[1].Language)
}

func TestNewHTMLListingConnectorValidation(t *testing.T) {
	_, err := NewHTMLListingConnector("x", "", "github-trending", nil, 0, "", nil)
	assert.Error(t, err)
	_, err = NewHTMLListingConnector("x", "https://x.example", "unknown-preset", nil, 0, "", nil)
	assert.Error(t, err)
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234", 1234, true},
		{"12.3k", 12300, true},
		{"1.5M", 1500000, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"stars", 0, false},
		{"-5", 0, false},
	}
	for _, c := range cases {
		got, ok := parseCount(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.InDelta(t, c.want, got, 0.001, c.in)
	}
}
