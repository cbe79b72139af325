// Package telemetry collects in-process counters and timers for one
// embedding run. The pipeline records into a Collector and logs a summary
// when the run completes; nothing is exported over the network.
package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric names recorded by the batch pipeline.
const (
	MetricPapersEmbedded  = "pipeline.papers_embedded"
	MetricBatchesComplete = "pipeline.batches_complete"
	MetricCommits         = "pipeline.commits"
	MetricEncodeTime      = "pipeline.encode_time"
	MetricStoreWriteTime  = "pipeline.store_write_time"
)

// Collector is a thread-safe sink for counters and duration samples.
type Collector struct {
	mu       sync.Mutex
	counters map[string]int64
	timers   map[string][]time.Duration
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		counters: make(map[string]int64),
		timers:   make(map[string][]time.Duration),
	}
}

// Add increments a named counter.
func (c *Collector) Add(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[name] += delta
}

// Observe records one duration sample for a named timer.
func (c *Collector) Observe(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers[name] = append(c.timers[name], d)
}

// Time runs fn and records its duration under name.
func (c *Collector) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.Observe(name, time.Since(start))
	return err
}

// Counter returns the current value of a counter.
func (c *Collector) Counter(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

// TimerTotal returns the sum of all samples for a timer.
func (c *Collector) TimerTotal(name string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.timers[name] {
		total += d
	}
	return total
}

// Summary renders all recorded metrics as a single log-friendly line.
func (c *Collector) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := make([]string, 0, len(c.counters)+len(c.timers))
	for name, v := range c.counters {
		parts = append(parts, fmt.Sprintf("%s=%d", name, v))
	}
	for name, samples := range c.timers {
		var total time.Duration
		for _, d := range samples {
			total += d
		}
		avg := time.Duration(0)
		if len(samples) > 0 {
			avg = total / time.Duration(len(samples))
		}
		parts = append(parts, fmt.Sprintf("%s.total=%s %s.avg=%s", name, total.Round(time.Millisecond), name, avg.Round(time.Millisecond)))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
