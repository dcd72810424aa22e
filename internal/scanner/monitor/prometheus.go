package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// ScanRequests 扫描请求相关
	ScanRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_scan_requests_total",
			Help: "Total number of compliance scan requests.",
		},
		[]string{"source"},
	)
	ScanRecordsProduced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compliance_scan_records_total",
			Help: "Total number of audit records produced.",
		},
	)
	ScanCombinationsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compliance_scan_combinations_skipped_total",
			Help: "Total number of (chain, symbol) combinations skipped as unsupported.",
		},
	)
	ScanCombinationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compliance_scan_combinations_failed_total",
			Help: "Total number of combinations whose price fetch failed.",
		},
	)
	BreachesDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_breaches_detected_total",
			Help: "Total number of compliance breaches detected.",
		},
		[]string{"symbol"},
	)

	// PriceFetchDuration 外部行情源耗时
	PriceFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_fetch_duration_seconds",
			Help:    "Time taken to fetch one quote from the price source.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
	)

	// ActivityRequests 交易活动分析相关
	ActivityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_analysis_requests_total",
			Help: "Total number of wallet activity analysis requests.",
		},
	)
	TransactionsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_transactions_fetched_total",
			Help: "Total number of transactions returned by the transaction source.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		// 扫描指标
		ScanRequests,
		ScanRecordsProduced,
		ScanCombinationsSkipped,
		ScanCombinationsFailed,
		BreachesDetected,
		PriceFetchDuration,

		// 活动分析指标
		ActivityRequests,
		TransactionsFetched,
	)
}
