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
	draftSavedTotal       atomic.Uint64
	finalSubmittedTotal   atomic.Uint64
	validationFailedTotal atomic.Uint64

	saveDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncDraftSaved increments the draft-save counter.
func IncDraftSaved() {
	draftSavedTotal.Add(1)
}

// IncFinalSubmitted increments the final-submission counter.
func IncFinalSubmitted() {
	finalSubmittedTotal.Add(1)
}

// IncValidationFailed increments the rejected-submission counter.
func IncValidationFailed() {
	validationFailedTotal.Add(1)
}

// ObserveSaveDurationMs records a storage save duration in milliseconds.
func ObserveSaveDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	saveDuration.Observe(value)
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
	writeCounter(&buf, "draft_saved_total", "Total intermediate draft saves", draftSavedTotal.Load())
	writeCounter(&buf, "final_submitted_total", "Total validated final submissions", finalSubmittedTotal.Load())
	writeCounter(&buf, "validation_failed_total", "Total submissions rejected by validation", validationFailedTotal.Load())
	writeHistogram(&buf, "save_duration_ms", "Storage save duration in milliseconds", saveDuration.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
	h.sum += value
	h.count++
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	buckets := make([]float64, len(h.buckets))
	copy(buckets, h.buckets)
	return histogramSnapshot{
		buckets: buckets,
		counts:  counts,
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
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'g', -1, 64), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %g\n", name, snap.sum)
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}
