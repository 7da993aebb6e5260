package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                         sync.Once
	metricsRouter                *chi.Mux
	operationDurationHistogram   *prometheus.HistogramVec
	operationErrorCounter        *prometheus.CounterVec
	zeroElapsedCounter           *prometheus.CounterVec
	concurrentUpdateCounter      *prometheus.CounterVec
	custodyPublishErrorCounter   prometheus.Counter
	custodyPublishLatency        *prometheus.HistogramVec
	pollerDurationHistogram      *prometheus.HistogramVec
	settledStakesCounter         prometheus.Counter
	httpRequestDurationHistogram *prometheus.HistogramVec
	dbLatency                    *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

	operationDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounting_operation_duration_seconds",
			Help:    "Histogram of accounting operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	operationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_operation_error_count",
			Help: "Number of rejected accounting operations split by error code",
		},
		[]string{"operation", "error_code"},
	)

	// weight updates that covered no elapsed time
	zeroElapsedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_zero_elapsed_update_count",
			Help: "Number of weight updates that covered zero elapsed time",
		},
		[]string{"operation"},
	)

	concurrentUpdateCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_concurrent_update_retry_count",
			Help: "Number of retries caused by concurrent writes",
		},
		[]string{"operation"},
	)

	custodyPublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "custody_publish_error_count",
			Help: "The total number of errors when publishing custody signals",
		},
	)

	custodyPublishLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "custody_publish_latency_seconds",
			Help:    "Histogram of custody publish durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"event_type", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	settledStakesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "settled_stakes_count",
			Help: "Number of stakes caught up by the settlement job",
		},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		operationDurationHistogram,
		operationErrorCounter,
		zeroElapsedCounter,
		concurrentUpdateCounter,
		custodyPublishErrorCounter,
		custodyPublishLatency,
		pollerDurationHistogram,
		settledStakesCounter,
		httpRequestDurationHistogram,
		dbLatency,
	)
}

// metrics may be recorded from tests or commands that never called Init
func initialized() bool {
	return dbLatency != nil
}

func status(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordOperation(d time.Duration, operation string, errorCode string) {
	if !initialized() {
		return
	}
	operationDurationHistogram.WithLabelValues(operation, status(errorCode != "").String()).Observe(d.Seconds())
	if errorCode != "" {
		operationErrorCounter.WithLabelValues(operation, errorCode).Inc()
	}
}

func IncZeroElapsedUpdate(operation string) {
	if !initialized() {
		return
	}
	zeroElapsedCounter.WithLabelValues(operation).Inc()
}

func IncConcurrentUpdateRetry(operation string) {
	if !initialized() {
		return
	}
	concurrentUpdateCounter.WithLabelValues(operation).Inc()
}

func RecordCustodyPublish(d time.Duration, eventType string, failure bool) {
	if !initialized() {
		return
	}
	custodyPublishLatency.WithLabelValues(eventType, status(failure).String()).Observe(d.Seconds())
	if failure {
		custodyPublishErrorCounter.Inc()
	}
}

func ObservePollerDuration(pollerName string, d time.Duration, failure bool) {
	if !initialized() {
		return
	}
	pollerDurationHistogram.WithLabelValues(pollerName, status(failure).String()).Observe(d.Seconds())
}

func AddSettledStakes(count int) {
	if !initialized() {
		return
	}
	settledStakesCounter.Add(float64(count))
}

// StartHttpRequestDurationTimer starts a timer to measure http request duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		if !initialized() {
			return
		}
		httpRequestDurationHistogram.WithLabelValues(
			endpoint,
			fmt.Sprintf("%d", statusCode),
		).Observe(time.Since(startTime).Seconds())
	}
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if !initialized() {
		return
	}
	dbLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}
