// Package metrics 统计表达式求值的结果分布与耗时。
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"yqhp/calculator/internal/expression"
)

// 耗时以微秒记录，上限 60 秒，3 位有效数字。
const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(60 * time.Second / time.Microsecond)
	significantFigs  = 3
)

// Recorder 线程安全地收集求值次数与耗时分布。
type Recorder struct {
	mu        sync.Mutex
	latency   *hdrhistogram.Histogram
	outcomes  map[expression.Outcome]int64
	errors    map[string]int64
	startTime time.Time
}

// Snapshot 某一时刻的统计快照。
type Snapshot struct {
	Total     int64            `json:"total"`
	Empty     int64            `json:"empty"`
	Value     int64            `json:"value"`
	NoResult  int64            `json:"no_result"`
	Errors    map[string]int64 `json:"errors"`
	Latency   LatencySnapshot  `json:"latency"`
	Uptime    time.Duration    `json:"uptime"`
	StartTime time.Time        `json:"start_time"`
}

// LatencySnapshot 耗时统计，单位微秒。
type LatencySnapshot struct {
	Min  int64   `json:"min_us"`
	Max  int64   `json:"max_us"`
	Mean float64 `json:"mean_us"`
	P50  int64   `json:"p50_us"`
	P90  int64   `json:"p90_us"`
	P99  int64   `json:"p99_us"`
}

// NewRecorder 创建一个新的统计收集器。
func NewRecorder() *Recorder {
	return &Recorder{
		latency:   hdrhistogram.New(minLatencyMicros, maxLatencyMicros, significantFigs),
		outcomes:  make(map[expression.Outcome]int64),
		errors:    make(map[string]int64),
		startTime: time.Now(),
	}
}

// Record 记录一次求值结果及其耗时。
func (r *Recorder) Record(result expression.Result, elapsed time.Duration) {
	micros := elapsed.Microseconds()
	if micros > maxLatencyMicros {
		micros = maxLatencyMicros
	}
	if micros < 0 {
		micros = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes[result.Outcome]++
	if result.Outcome == expression.OutcomeNoResult {
		r.errors[expression.ErrorKind(result.Err)]++
	}
	_ = r.latency.RecordValue(micros)
}

// Snapshot 返回当前统计。
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	errs := make(map[string]int64, len(r.errors))
	for k, v := range r.errors {
		errs[k] = v
	}

	snap := Snapshot{
		Total:     r.latency.TotalCount(),
		Empty:     r.outcomes[expression.OutcomeEmpty],
		Value:     r.outcomes[expression.OutcomeValue],
		NoResult:  r.outcomes[expression.OutcomeNoResult],
		Errors:    errs,
		Uptime:    time.Since(r.startTime),
		StartTime: r.startTime,
	}
	if snap.Total > 0 {
		snap.Latency = LatencySnapshot{
			Min:  r.latency.Min(),
			Max:  r.latency.Max(),
			Mean: r.latency.Mean(),
			P50:  r.latency.ValueAtQuantile(50),
			P90:  r.latency.ValueAtQuantile(90),
			P99:  r.latency.ValueAtQuantile(99),
		}
	}
	return snap
}

// Reset 清空所有统计。
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latency.Reset()
	r.outcomes = make(map[expression.Outcome]int64)
	r.errors = make(map[string]int64)
	r.startTime = time.Now()
}
