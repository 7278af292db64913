// Package metrics 定义采集流水线的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ainews"

var (
	// SourceFetchTotal 按结果（ok|error|timeout）统计数据源调用次数
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetch_total",
			Help:      "Total number of source fetch attempts",
		},
		[]string{"source", "status"},
	)

	// SourceItems 记录每个数据源最近一次抓取的原始条目数
	SourceItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_items",
			Help:      "Raw items returned by the most recent fetch of each source",
		},
		[]string{"source"},
	)

	// PipelineRunsTotal 按结果（organic|fallback|error）统计运行次数
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"result"},
	)

	// PipelineDuration 记录从并发抓取到生成 digest 的整轮耗时
	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	// PublishErrorsTotal 按输出目标统计写入失败次数
	PublishErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total number of publish failures",
		},
		[]string{"sink"},
	)
)

// RecordFetch 记录一次数据源调用
func RecordFetch(source, status string, items int) {
	SourceFetchTotal.WithLabelValues(source, status).Inc()
	SourceItems.WithLabelValues(source).Set(float64(items))
}

// RecordRun 记录一轮结束的运行
func RecordRun(result string, seconds float64) {
	PipelineRunsTotal.WithLabelValues(result).Inc()
	PipelineDuration.Observe(seconds)
}

// RecordPublishError 记录一次输出失败
func RecordPublishError(sink string) {
	PublishErrorsTotal.WithLabelValues(sink).Inc()
}
