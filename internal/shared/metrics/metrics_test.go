package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}

	if got := formatFloat(snap.sum); got != "555" {
		t.Fatalf("expected sum 555, got %s", got)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "test_ms", "test", snap)
	if !strings.Contains(buf.String(), "test_ms_bucket{le=\"100\"} 2\n") {
		t.Fatalf("expected cumulative bucket count 2, got:\n%s", buf.String())
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	IncRecommendationFallback()
	text := Render()
	for _, name := range []string{
		"recommendation_started_total",
		"recommendation_completed_total",
		"recommendation_fallback_total",
		"credential_missing_total",
		"upstream_duration_ms_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(text, name) {
			t.Fatalf("expected %s in rendered metrics", name)
		}
	}
}
