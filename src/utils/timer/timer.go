// Package timer measures the stages of a command run.
package timer

import (
	"sync"
	"time"

	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// Total is the field name of the whole run duration.
const Total = "total"

// Timer is a stop watch splitting a run into named consecutive stages.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	start  time.Time
	last   time.Time
	stages map[string]time.Duration
	order  []string
}

// NewTimer starts a new stop watch.
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	t := now()
	return &Timer{now: now, start: t, last: t, stages: make(map[string]time.Duration)}
}

// Stage ends the stage called name and returns its duration. Ending a stage twice adds up.
func (t *Timer) Stage(name string) (d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	d = now.Sub(t.last)
	t.last = now
	if _, ok := t.stages[name]; !ok {
		t.order = append(t.order, name)
	}
	t.stages[name] += d
	return
}

// Stages returns the stage names in the order they first ended.
func (t *Timer) Stages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// ToMap returns every stage duration plus Total, the time until the last stage ended.
func (t *Timer) ToMap() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := make(map[string]time.Duration, len(t.stages)+1)
	for k, v := range t.stages {
		m[k] = v
	}
	m[Total] = t.last.Sub(t.start)
	return m
}

// ToLogFields returns ToMap as log fields.
func (t *Timer) ToLogFields() log.Fields {
	f := log.Fields{}
	for k, v := range t.ToMap() {
		f[k] = v
	}
	return f
}
