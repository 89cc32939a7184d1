package monitor

import (
	"sync/atomic"
	"time"
)

// Operation names a backend operation being monitored
type Operation string

const (
	OperationDiscover   Operation = "discover"
	OperationViralIdeas Operation = "viral_ideas"
	OperationAnalyze    Operation = "analyze"
)

// Operations lists the monitored operations in report order
func Operations() []Operation {
	return []Operation{OperationDiscover, OperationViralIdeas, OperationAnalyze}
}

// OperationMetrics holds the timings of one operation
type OperationMetrics struct {
	Operation    Operation     `json:"operation"`
	Count        int64         `json:"count"`
	SuccessCount int64         `json:"success_count"`
	ErrorCount   int64         `json:"error_count"`
	TotalTime    time.Duration `json:"total_time_ns"`
	MinTime      time.Duration `json:"min_time_ns"`
	MaxTime      time.Duration `json:"max_time_ns"`
	AvgTime      time.Duration `json:"avg_time_ns"`
}

// Timer is a thread-safe duration recorder
type Timer struct {
	count     int64
	errors    int64
	totalTime int64
	minTime   int64
	maxTime   int64
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{minTime: int64(^uint64(0) >> 1)}
}

// Record adds one observation
func (t *Timer) Record(d time.Duration, failed bool) {
	nanos := d.Nanoseconds()
	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)
	if failed {
		atomic.AddInt64(&t.errors, 1)
	}

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}
	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Metrics returns the recorded values for op
func (t *Timer) Metrics(op Operation) OperationMetrics {
	m := OperationMetrics{
		Operation:  op,
		Count:      atomic.LoadInt64(&t.count),
		ErrorCount: atomic.LoadInt64(&t.errors),
		TotalTime:  time.Duration(atomic.LoadInt64(&t.totalTime)),
		MaxTime:    time.Duration(atomic.LoadInt64(&t.maxTime)),
	}
	m.SuccessCount = m.Count - m.ErrorCount
	if m.Count > 0 {
		m.MinTime = time.Duration(atomic.LoadInt64(&t.minTime))
		m.AvgTime = m.TotalTime / time.Duration(m.Count)
	}
	return m
}
