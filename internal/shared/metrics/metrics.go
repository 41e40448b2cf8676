package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recommendationStartedTotal   atomic.Uint64
	recommendationCompletedTotal atomic.Uint64
	recommendationFallbackTotal  atomic.Uint64
	credentialMissingTotal       atomic.Uint64

	upstreamDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncRecommendationStarted increments the started counter.
func IncRecommendationStarted() {
	recommendationStartedTotal.Add(1)
}

// IncRecommendationCompleted counts requests answered by the provider.
func IncRecommendationCompleted() {
	recommendationCompletedTotal.Add(1)
}

// IncRecommendationFallback counts requests answered with the fallback set.
func IncRecommendationFallback() {
	recommendationFallbackTotal.Add(1)
}

// IncCredentialMissing counts requests rejected for lack of a credential.
func IncCredentialMissing() {
	credentialMissingTotal.Add(1)
}

// ObserveUpstreamDurationMs records a completion call duration in milliseconds.
func ObserveUpstreamDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	upstreamDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommendation_started_total", "Total recommendation requests sent upstream", recommendationStartedTotal.Load())
	writeCounter(&buf, "recommendation_completed_total", "Total recommendation requests answered by the provider", recommendationCompletedTotal.Load())
	writeCounter(&buf, "recommendation_fallback_total", "Total recommendation requests answered with the fallback set", recommendationFallbackTotal.Load())
	writeCounter(&buf, "credential_missing_total", "Total recommendation requests without a credential", credentialMissingTotal.Load())
	writeHistogram(&buf, "upstream_duration_ms", "Completion call duration in milliseconds", upstreamDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound it does not exceed.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
