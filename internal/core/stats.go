// Request counters and timings for the generation session
package core

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Stats tracks what happened to every generation request
type Stats struct {
	mu sync.Mutex

	issued        int
	completed     int
	failed        int
	decodeFailed  int
	stale         int
	skipped       int
	encodeTimes   []time.Duration
	lastEncodeDur time.Duration
}

// StatsSnapshot is a copy of the counters, safe to keep
type StatsSnapshot struct {
	Issued        int
	Completed     int
	Failed        int
	DecodeFailed  int
	Stale         int
	Skipped       int
	LastEncode    time.Duration
	AverageEncode time.Duration
}

// maxEncodeSamples caps the rolling window used for the average
const maxEncodeSamples = 64

func NewStats() *Stats {
	return &Stats{
		encodeTimes: make([]time.Duration, 0, maxEncodeSamples),
	}
}

func (st *Stats) recordIssued() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.issued++
}

func (st *Stats) recordSkipped() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.skipped++
}

func (st *Stats) recordStale() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stale++
}

func (st *Stats) recordCompleted(d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.completed++
	st.addSampleUnsafe(d)
}

func (st *Stats) recordFailed(d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.failed++
	st.addSampleUnsafe(d)
}

func (st *Stats) recordDecodeFailed(d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.decodeFailed++
	st.addSampleUnsafe(d)
}

func (st *Stats) addSampleUnsafe(d time.Duration) {
	if len(st.encodeTimes) == maxEncodeSamples {
		copy(st.encodeTimes, st.encodeTimes[1:])
		st.encodeTimes = st.encodeTimes[:maxEncodeSamples-1]
	}
	st.encodeTimes = append(st.encodeTimes, d)
	st.lastEncodeDur = d
}

func (st *Stats) Snapshot() StatsSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	snap := StatsSnapshot{
		Issued:       st.issued,
		Completed:    st.completed,
		Failed:       st.failed,
		DecodeFailed: st.decodeFailed,
		Stale:        st.stale,
		Skipped:      st.skipped,
		LastEncode:   st.lastEncodeDur,
	}
	if len(st.encodeTimes) > 0 {
		var total time.Duration
		for _, d := range st.encodeTimes {
			total += d
		}
		snap.AverageEncode = total / time.Duration(len(st.encodeTimes))
	}
	return snap
}

func (s StatsSnapshot) Fields() logrus.Fields {
	return logrus.Fields{
		"issued":         s.Issued,
		"completed":      s.Completed,
		"failed":         s.Failed,
		"decode_failed":  s.DecodeFailed,
		"stale":          s.Stale,
		"skipped":        s.Skipped,
		"avg_encode_ms":  s.AverageEncode.Milliseconds(),
		"last_encode_ms": s.LastEncode.Milliseconds(),
	}
}
