package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/publisher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	d   *news.Digest
	err error
}

func (s staticSource) Latest(ctx context.Context) (*news.Digest, error) { return s.d, s.err }

func newRouter(src DigestSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewServer(src, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r
}

func digest() *news.Digest {
	return &news.Digest{
		Meta: news.Meta{Total: 3, Date: "2024-05-01", Sources: []string{"HN"}},
		News: []news.Item{
			{ID: 1, Category: news.CategoryResearch, Hot: true, Title: "a"},
			{ID: 2, Category: news.CategoryTools, Title: "b"},
			{ID: 3, Category: news.CategoryResearch, Title: "c"},
		},
	}
}

type envelope struct {
	Code string          `json:"code"`
	Data json.RawMessage `json:"data"`
}

func get(t *testing.T, r http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestListNewsFilters(t *testing.T) {
	r := newRouter(staticSource{d: digest()})

	cases := []struct {
		path string
		ids  []int
	}{
		{"/api/v1/news", []int{1, 2, 3}},
		{"/api/v1/news?category=research", []int{1, 3}},
		{"/api/v1/news?category=research&hot=true", []int{1}},
		{"/api/v1/news?limit=2", []int{1, 2}},
	}
	for _, c := range cases {
		w, env := get(t, r, c.path)
		require.Equal(t, http.StatusOK, w.Code, c.path)
		var items []news.Item
		require.NoError(t, json.Unmarshal(env.Data, &items))
		ids := make([]int, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		assert.Equal(t, c.ids, ids, c.path)
	}

	w, _ := get(t, r, "/api/v1/news?category=sports")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeta(t *testing.T) {
	w, env := get(t, newRouter(staticSource{d: digest()}), "/api/v1/meta")
	require.Equal(t, http.StatusOK, w.Code)
	var m news.Meta
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, "2024-05-01", m.Date)
}

func TestLatestErrors(t *testing.T) {
	w, env := get(t, newRouter(staticSource{err: publisher.ErrNoDigest}), "/api/v1/news")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", env.Code)

	w, _ = get(t, newRouter(staticSource{err: errors.New("boom")}), "/api/v1/meta")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(staticSource{d: digest()})
	w, _ := get(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = get(t, r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}
