package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Registry holds every collector this service exports.
var Registry = prometheus.NewRegistry()

var (
	FeedItemsParsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sortiment_feed_items_parsed_total",
			Help: "Items decoded from the assortment feed",
		},
	)
	StoreRowsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sortiment_store_rows_loaded_total",
			Help: "Item rows written to the store",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortiment_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		},
		[]string{"method", "route", "code"},
	)
	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sortiment_query_duration_seconds",
			Help:    "Time spent listing items from the store",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	Registry.MustRegister(
		FeedItemsParsed,
		StoreRowsLoaded,
		HTTPRequests,
		QueryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the metrics in Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Start exposes /metrics on its own port in the background. It is meant for
// one-shot processes that have no HTTP server of their own.
func Start(port string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics listener stopped", zap.Error(err))
		}
	}()
	return srv
}
