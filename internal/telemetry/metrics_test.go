package telemetry

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCounters(t *testing.T) {
	c := NewCollector()
	c.Add(MetricPapersEmbedded, 32)
	c.Add(MetricPapersEmbedded, 33)
	c.Add(MetricBatchesComplete, 1)

	if got := c.Counter(MetricPapersEmbedded); got != 65 {
		t.Errorf("papers embedded = %d, want 65", got)
	}
	if got := c.Counter(MetricBatchesComplete); got != 1 {
		t.Errorf("batches = %d, want 1", got)
	}
	if got := c.Counter("unknown"); got != 0 {
		t.Errorf("unknown counter = %d, want 0", got)
	}
}

func TestTimers(t *testing.T) {
	c := NewCollector()
	c.Observe(MetricEncodeTime, 100*time.Millisecond)
	c.Observe(MetricEncodeTime, 300*time.Millisecond)

	if got := c.TimerTotal(MetricEncodeTime); got != 400*time.Millisecond {
		t.Errorf("timer total = %v, want 400ms", got)
	}
}

func TestTimePassesThroughError(t *testing.T) {
	c := NewCollector()
	sentinel := errors.New("boom")

	err := c.Time(MetricEncodeTime, func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("Time swallowed the error: %v", err)
	}
	if got := c.TimerTotal(MetricEncodeTime); got <= 0 {
		t.Errorf("duration not recorded")
	}
}

func TestSummary(t *testing.T) {
	c := NewCollector()
	c.Add(MetricCommits, 2)
	c.Observe(MetricStoreWriteTime, time.Millisecond)

	s := c.Summary()
	if !strings.Contains(s, "pipeline.commits=2") {
		t.Errorf("summary missing counter: %s", s)
	}
	if !strings.Contains(s, "pipeline.store_write_time") {
		t.Errorf("summary missing timer: %s", s)
	}
}
