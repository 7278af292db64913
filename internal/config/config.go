package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 支持的连接器类型
const (
	KindIDEnumeration   = "id-enumeration"
	KindPagedSearch     = "paged-search"
	KindSyndicationFeed = "syndication-feed"
	KindHTMLListing     = "html-listing"
)

type Config struct {
	AppPort  string
	CronSpec string
	LogLevel string

	SourcesFile string
	Sources     []SourceConfig

	MaxItems     int
	DedupPrefix  int
	FetchTimeout time.Duration
	Timezone     string

	OutputDir  string
	LatestFile string
	ArchiveDir string

	// 以下镜像均为可选，为空即关闭
	PostgresDSN string
	RedisAddr   string
	S3Bucket    string
	S3Region    string
	S3Prefix    string
}

// SourceConfig 描述一个数据源；不同 kind 使用不同字段
type SourceConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Enabled *bool  `yaml:"enabled"`

	URL      string   `yaml:"url"`
	Provider string   `yaml:"provider"`
	Queries  []string `yaml:"queries"`
	List     string   `yaml:"list"`
	Limit    int      `yaml:"limit"`
	Language string   `yaml:"language"`

	TopicFilter bool              `yaml:"topicFilter"`
	Preset      string            `yaml:"preset"`
	Selectors   map[string]string `yaml:"selectors"`
	Placeholder string            `yaml:"placeholder"`

	CredentialEnv string `yaml:"credentialEnv"`
	// Credential 在加载时从环境变量解析，不写入配置文件
	Credential string `yaml:"-"`
}

// IsEnabled 未显式配置 enabled 时默认启用
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

func Load() *Config {
	// .env 不存在是常态，忽略错误
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "9000"),
		CronSpec:     getEnv("CRON_SPEC", "0 */6 * * *"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SourcesFile:  getEnv("SOURCES_FILE", "configs/sources.yaml"),
		MaxItems:     getEnvInt("MAX_ITEMS", 25),
		DedupPrefix:  getEnvInt("DEDUP_PREFIX", 30),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 20*time.Second),
		Timezone:     getEnv("TIMEZONE", "Asia/Shanghai"),
		OutputDir:    getEnv("OUTPUT_DIR", "data"),
		LatestFile:   getEnv("LATEST_FILE", "news.json"),
		ArchiveDir:   getEnv("ARCHIVE_DIR", "archive"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     os.Getenv("S3_REGION"),
		S3Prefix:     getEnv("S3_PREFIX", "ai-daily"),
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.LogLevel = "debug"
	}

	cfg.Sources = loadSources(cfg.SourcesFile)
	resolveCredentials(cfg.Sources)

	slog.Info("config loaded",
		"sources", len(cfg.Sources),
		"max_items", cfg.MaxItems,
		"fetch_timeout", cfg.FetchTimeout,
		"cron", cfg.CronSpec)
	return cfg
}

// Location 解析逻辑日期所用时区，失败时退回固定东八区
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || loc == nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}

func loadSources(path string) []SourceConfig {
	if path == "" {
		return DefaultSources()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Info("sources file not readable, using built-in sources", "path", path, "error", err)
		return DefaultSources()
	}
	sources, err := ParseSources(raw)
	if err != nil {
		slog.Warn("sources file not parsable, using built-in sources", "path", path, "error", err)
		return DefaultSources()
	}
	if len(sources) == 0 {
		return DefaultSources()
	}
	return sources
}

// ParseSources 解析 YAML 格式的数据源列表
func ParseSources(raw []byte) ([]SourceConfig, error) {
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f.Sources, nil
}

func resolveCredentials(sources []SourceConfig) {
	for i := range sources {
		if env := sources[i].CredentialEnv; env != "" {
			sources[i].Credential = strings.TrimSpace(os.Getenv(env))
		}
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
