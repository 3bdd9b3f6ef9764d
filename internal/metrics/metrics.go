package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tuberank/internal/db"
)

var (
	trackedVideosDesc = prometheus.NewDesc(
		"tuberank_tracked_videos",
		"Number of active tracked videos",
		nil,
		nil,
	)
	rankRecordsDesc = prometheus.NewDesc(
		"tuberank_rank_records_total",
		"Total rank history records",
		nil,
		nil,
	)
	recentChecksDesc = prometheus.NewDesc(
		"tuberank_rank_checks_recent",
		"Rank checks performed in the last 24 hours",
		nil,
		nil,
	)

	researchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuberank_research_requests_total",
			Help: "Keyword research requests by outcome",
		},
		[]string{"outcome"},
	)
	rankChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuberank_rank_checks_total",
			Help: "Individual rank checks by outcome",
		},
		[]string{"outcome"},
	)
)

// TrackerCollector is a custom Prometheus collector that reads tracker
// aggregates from the database on each scrape.
type TrackerCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *TrackerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- trackedVideosDesc
	ch <- rankRecordsDesc
	ch <- recentChecksDesc
}

// Collect queries the database for tracker aggregates and emits them.
func (c *TrackerCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	tracked, err := c.db.CountActiveTrackedVideos(ctx)
	if err != nil {
		slog.Error("failed to collect tracked video metrics", "error", err)
		return
	}
	records, err := c.db.CountRankHistory(ctx)
	if err != nil {
		slog.Error("failed to collect rank record metrics", "error", err)
		return
	}
	recent, err := c.db.CountRankHistorySince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		slog.Error("failed to collect recent check metrics", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(trackedVideosDesc, prometheus.GaugeValue, float64(tracked))
	ch <- prometheus.MustNewConstMetric(rankRecordsDesc, prometheus.CounterValue, float64(records))
	ch <- prometheus.MustNewConstMetric(recentChecksDesc, prometheus.GaugeValue, float64(recent))
}

var initOnce sync.Once

// Init registers the custom collector and the request counters.
// Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&TrackerCollector{db: database})
		prometheus.MustRegister(researchRequests, rankChecks)
	})
}

// RecordResearch records the outcome of one research request.
func RecordResearch(outcome string) {
	researchRequests.WithLabelValues(outcome).Inc()
}

// RecordRankCheck records the outcome of one rank check.
func RecordRankCheck(outcome string) {
	rankChecks.WithLabelValues(outcome).Inc()
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on the given address and exposes /metrics.
func Start(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
