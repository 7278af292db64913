package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lm16688/AI-DAILY/internal/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	name  string
	items []collector.RawItem
	err   error
	delay time.Duration
	panic bool
}

func (f *fakeConnector) Name() string { return f.name }
func (f *fakeConnector) Kind() string { return "fake" }

func (f *fakeConnector) Fetch(ctx context.Context) ([]collector.RawItem, error) {
	if f.panic {
		panic("connector bug")
	}
	if f.delay > 0 {
		// 故意忽略 ctx，模拟不响应取消的连接器
		time.Sleep(f.delay)
	}
	return f.items, f.err
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	conns := []collector.Connector{
		&fakeConnector{name: "a", items: []collector.RawItem{{Title: "a1", URL: "https://a/1"}, {Title: "a2", URL: "https://a/2"}}},
		&fakeConnector{name: "broken", err: errors.New("connection refused")},
		&fakeConnector{name: "slow", delay: 2 * time.Second, items: []collector.RawItem{{Title: "late", URL: "https://slow"}}},
		&fakeConnector{name: "panicky", panic: true},
		&fakeConnector{name: "b", items: []collector.RawItem{{Title: "b1", URL: "https://b/1"}}},
	}
	o := New(conns, 100*time.Millisecond, quiet())

	start := time.Now()
	res := o.FetchAll(context.Background())
	assert.Less(t, time.Since(start), time.Second, "slow source must be abandoned at its timeout")

	require.Len(t, res.Items, 3)
	require.Len(t, res.Reports, 5)
	assert.Equal(t, 3, res.Failed())

	byName := map[string]SourceReport{}
	for _, r := range res.Reports {
		byName[r.Source] = r
	}
	assert.Equal(t, StatusOK, byName["a"].Status)
	assert.Equal(t, 2, byName["a"].Items)
	assert.Equal(t, StatusError, byName["broken"].Status)
	assert.Equal(t, StatusTimeout, byName["slow"].Status)
	assert.Equal(t, 0, byName["slow"].Items)
	assert.Equal(t, StatusError, byName["panicky"].Status)
	assert.Equal(t, StatusOK, byName["b"].Status)
}

func TestFetchAllNoConnectors(t *testing.T) {
	res := New(nil, 0, quiet()).FetchAll(context.Background())
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Reports)
}

func TestFetchAllRunsConcurrently(t *testing.T) {
	conns := make([]collector.Connector, 0, 5)
	for _, n := range []string{"s1", "s2", "s3", "s4", "s5"} {
		conns = append(conns, &fakeConnector{name: n, delay: 150 * time.Millisecond, items: []collector.RawItem{{Title: n, URL: "https://" + n}}})
	}
	o := New(conns, time.Second, quiet())
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, o.Sources())

	start := time.Now()
	res := o.FetchAll(context.Background())
	assert.Less(t, time.Since(start), 600*time.Millisecond)
	assert.Len(t, res.Items, 5)
	assert.Zero(t, res.Failed())
}
