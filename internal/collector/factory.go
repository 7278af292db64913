package collector

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lm16688/AI-DAILY/internal/config"
	"github.com/lm16688/AI-DAILY/internal/keyword"
)

// Options 是所有连接器共享的依赖
type Options struct {
	Client *http.Client
	// Topic 为空时使用 DefaultTopicFilter
	Topic  *keyword.Matcher
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: 20 * time.Second}
	}
	if o.Topic == nil {
		o.Topic = DefaultTopicFilter()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Build 根据单个数据源配置构造连接器
func Build(src config.SourceConfig, opts Options) (Connector, error) {
	opts = opts.withDefaults()

	// 是否按主题过滤由来源性质决定：排行榜类与综合科技站点需要，垂直来源不需要
	var topic *keyword.Matcher
	if src.TopicFilter {
		topic = opts.Topic
	}

	switch src.Kind {
	case config.KindIDEnumeration:
		return NewHackerNewsConnector(src.Name, src.List, src.Limit, opts.Client, opts.Topic), nil
	case config.KindPagedSearch:
		return NewSearchConnector(src.Name, src.Provider, src.Queries, src.Limit, src.Credential, opts.Client, topic, opts.Logger)
	case config.KindSyndicationFeed:
		return NewFeedConnector(src.Name, src.URL, src.Limit, src.Language, src.Placeholder, opts.Client, topic)
	case config.KindHTMLListing:
		return NewHTMLListingConnector(src.Name, src.URL, src.Preset, src.Selectors, src.Limit, src.Language, opts.Topic)
	default:
		return nil, fmt.Errorf("%s: %w %q", src.Name, ErrUnknownKind, src.Kind)
	}
}

// BuildAll 跳过被禁用、缺少凭证或配置有误的数据源，只记录日志，不中断
func BuildAll(sources []config.SourceConfig, opts Options) []Connector {
	opts = opts.withDefaults()
	connectors := make([]Connector, 0, len(sources))
	for _, src := range sources {
		if !src.IsEnabled() {
			opts.Logger.Debug("source disabled", "source", src.Name)
			continue
		}
		c, err := Build(src, opts)
		if err != nil {
			if errors.Is(err, ErrMissingCredential) {
				opts.Logger.Warn("source skipped: credential not set", "source", src.Name, "env", src.CredentialEnv)
			} else {
				opts.Logger.Warn("source skipped: invalid config", "source", src.Name, "kind", src.Kind, "error", err)
			}
			continue
		}
		connectors = append(connectors, c)
	}
	return connectors
}
