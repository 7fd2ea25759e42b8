package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request and paystub-pipeline counters with atomics; safe
// for concurrent use without locking.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	rendersPDF      uint64
	rendersHTML     uint64
	certifyFailures uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordRender(format string) {
	if format == "html" {
		atomic.AddUint64(&c.rendersHTML, 1)
		return
	}
	atomic.AddUint64(&c.rendersPDF, 1)
}

func (c *Collector) RecordCertifyFailure() {
	atomic.AddUint64(&c.certifyFailures, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":   total,
		"errorsTotal":     atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":   avg,
		"rendersPdf":      atomic.LoadUint64(&c.rendersPDF),
		"rendersHtml":     atomic.LoadUint64(&c.rendersHTML),
		"certifyFailures": atomic.LoadUint64(&c.certifyFailures),
	}
}
