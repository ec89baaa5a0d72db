package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jellyfish/api/colors"
)

var (
	BatchesMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jellyfish_batches_matched_total",
		Help: "Total number of color batches matched",
	})
	ColorsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jellyfish_colors_matched_total",
		Help: "Total number of target colors matched",
	})
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jellyfish_batch_duration_seconds",
		Help:    "Time spent matching one batch of colors",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jellyfish_http_requests_total",
		Help: "Total number of HTTP requests by route and status code",
	}, []string{"route", "code"})
)

// BatchHook records batch counts and durations
type BatchHook struct{}

func (BatchHook) StartBatch(size int) func() {
	start := time.Now()
	return func() {
		BatchesMatched.Inc()
		ColorsMatched.Add(float64(size))
		BatchDuration.Observe(time.Since(start).Seconds())
	}
}

// RegisterCache exposes the hit and miss counts of cache
func RegisterCache(reg prometheus.Registerer, cache *colors.Cache) error {
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "jellyfish_match_cache_hits_total",
		Help: "Total number of matches answered from the cache",
	}, func() float64 {
		h, _ := cache.Stats()
		return float64(h)
	})
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "jellyfish_match_cache_misses_total",
		Help: "Total number of matches computed because the cache had no entry",
	}, func() float64 {
		_, m := cache.Stats()
		return float64(m)
	})
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "jellyfish_match_cache_entries",
		Help: "Number of cached matches",
	}, func() float64 {
		return float64(cache.Len())
	})

	for _, c := range []prometheus.Collector{hits, misses, entries} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
