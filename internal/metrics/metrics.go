package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 模板创建数
	templatesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "templates_created_total",
			Help: "Total number of templates created",
		},
	)

	// .env 文件生成数（按结果区分: success / missing_required）
	envFilesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "env_files_generated_total",
			Help: "Total number of .env files generated",
		},
		[]string{"result"},
	)

	// ZIP 导出数
	zipExportsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zip_exports_total",
			Help: "Total number of ZIP exports",
		},
	)

	// 导入分析数
	importAnalysesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "import_analyses_total",
			Help: "Total number of bulk import analyses",
		},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var (
	once sync.Once
)

func init() {
	// 注册指标
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(templatesCreatedTotal)
	prometheus.MustRegister(envFilesGeneratedTotal)
	prometheus.MustRegister(zipExportsTotal)
	prometheus.MustRegister(importAnalysesTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)

	// 注册 Go 运行时指标（只注册一次）
	once.Do(func() {
		// 尝试注册 Go 运行时指标,如果已注册则忽略错误
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordTemplateCreated 记录模板创建
func RecordTemplateCreated() {
	templatesCreatedTotal.Inc()
}

// RecordEnvGenerated 记录 .env 文件生成
func RecordEnvGenerated(result string) {
	envFilesGeneratedTotal.WithLabelValues(result).Inc()
}

// RecordZipExport 记录 ZIP 导出
func RecordZipExport() {
	zipExportsTotal.Inc()
}

// RecordImportAnalysis 记录导入分析
func RecordImportAnalysis() {
	importAnalysesTotal.Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}
