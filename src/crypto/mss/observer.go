// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/crypto/mss/observer.go
package mss

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sphinx-core/hashsig/src/common"
	"github.com/sphinx-core/hashsig/src/crypto/merkle"
	"github.com/sphinx-core/hashsig/src/crypto/ots"
	logger "github.com/sphinx-core/hashsig/src/log"
)

// Observer receives key store and verifier events. Implementations must be
// safe for concurrent use.
type Observer interface {
	KeyGenStarted(scheme ots.Scheme, leaves int)
	KeyGenDone(scheme ots.Scheme, leaves int, elapsed time.Duration)
	TreeBuilt(root common.Digest, height int, elapsed time.Duration)
	TreeInconsistent(err error)
	Signed(root common.Digest, index int)
	Verified(scheme ots.Scheme, valid, cached bool)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) KeyGenStarted(ots.Scheme, int) {}
func (NopObserver) KeyGenDone(ots.Scheme, int, time.Duration) {}
func (NopObserver) TreeBuilt(common.Digest, int, time.Duration) {}
func (NopObserver) TreeInconsistent(error) {}
func (NopObserver) Signed(common.Digest, int) {}
func (NopObserver) Verified(ots.Scheme, bool, bool) {}

// LogObserver writes events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver logs through l, or the process-wide logger when l is nil.
func NewLogObserver(l *zap.Logger) *LogObserver {
	if l == nil {
		l = logger.L()
	}
	return &LogObserver{log: l.Named("mss")}
}

func (o *LogObserver) KeyGenStarted(scheme ots.Scheme, leaves int) {
	o.log.Info("Generating OTS keys", zap.Stringer("scheme", scheme), zap.Int("leaves", leaves))
}

func (o *LogObserver) KeyGenDone(scheme ots.Scheme, leaves int, elapsed time.Duration) {
	o.log.Info("OTS keys generated",
		zap.Stringer("scheme", scheme), zap.Int("leaves", leaves), zap.Duration("elapsed", elapsed))
}

func (o *LogObserver) TreeBuilt(root common.Digest, height int, elapsed time.Duration) {
	o.log.Info("Merkle tree built",
		zap.String("root", root.Hex()), zap.Int("height", height), zap.Duration("elapsed", elapsed))
}

func (o *LogObserver) TreeInconsistent(err error) {
	o.log.Error("Merkle tree inconsistency", zap.Error(err))
}

func (o *LogObserver) Signed(root common.Digest, index int) {
	o.log.Debug("Message signed", zap.String("root", common.ShortHex(root[:], 8)), zap.Int("index", index))
}

func (o *LogObserver) Verified(scheme ots.Scheme, valid, cached bool) {
	o.log.Debug("Signature verified", zap.Stringer("scheme", scheme), zap.Bool("valid", valid), zap.Bool("cached", cached))
}

// Metrics exports key store and verifier events to Prometheus.
type Metrics struct {
	KeyGenDuration   *prometheus.HistogramVec
	TreeBuildLatency prometheus.Histogram
	TreeHeight       prometheus.Gauge
	Inconsistencies  prometheus.Counter
	SignCount        prometheus.Counter
	VerifyCount      *prometheus.CounterVec
	CacheHits        prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		KeyGenDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mss_keygen_duration_seconds",
				Help:    "Time spent generating the OTS key pairs of a key store",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scheme"},
		),
		TreeBuildLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mss_tree_build_seconds",
			Help:    "Time spent building the Merkle tree and its authentication paths",
			Buckets: prometheus.DefBuckets,
		}),
		TreeHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mss_tree_height",
			Help: "Layer count of the most recently built tree",
		}),
		Inconsistencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mss_tree_inconsistency_count",
			Help: "Number of authentication paths that did not match the tree layers",
		}),
		SignCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mss_sign_count",
			Help: "Number of signatures issued",
		}),
		VerifyCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mss_verify_count",
				Help: "Number of signature verifications",
			},
			[]string{"scheme", "result"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mss_verify_cache_hits",
			Help: "Number of verifications answered from the cache",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.KeyGenDuration, m.TreeBuildLatency, m.TreeHeight,
			m.Inconsistencies, m.SignCount, m.VerifyCount, m.CacheHits)
	}
	return m
}

func (m *Metrics) KeyGenStarted(ots.Scheme, int) {}

func (m *Metrics) KeyGenDone(scheme ots.Scheme, _ int, elapsed time.Duration) {
	m.KeyGenDuration.WithLabelValues(scheme.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) TreeBuilt(_ common.Digest, height int, elapsed time.Duration) {
	m.TreeBuildLatency.Observe(elapsed.Seconds())
	m.TreeHeight.Set(float64(height))
}

func (m *Metrics) TreeInconsistent(error) {
	m.Inconsistencies.Inc()
}

func (m *Metrics) Signed(common.Digest, int) {
	m.SignCount.Inc()
}

func (m *Metrics) Verified(scheme ots.Scheme, valid, cached bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.VerifyCount.WithLabelValues(scheme.String(), result).Inc()
	if cached {
		m.CacheHits.Inc()
	}
}

// MultiObserver fans every event out to each member.
type MultiObserver []Observer

func (mo MultiObserver) KeyGenStarted(scheme ots.Scheme, leaves int) {
	for _, o := range mo {
		o.KeyGenStarted(scheme, leaves)
	}
}

func (mo MultiObserver) KeyGenDone(scheme ots.Scheme, leaves int, elapsed time.Duration) {
	for _, o := range mo {
		o.KeyGenDone(scheme, leaves, elapsed)
	}
}

func (mo MultiObserver) TreeBuilt(root common.Digest, height int, elapsed time.Duration) {
	for _, o := range mo {
		o.TreeBuilt(root, height, elapsed)
	}
}

func (mo MultiObserver) TreeInconsistent(err error) {
	for _, o := range mo {
		o.TreeInconsistent(err)
	}
}

func (mo MultiObserver) Signed(root common.Digest, index int) {
	for _, o := range mo {
		o.Signed(root, index)
	}
}

func (mo MultiObserver) Verified(scheme ots.Scheme, valid, cached bool) {
	for _, o := range mo {
		o.Verified(scheme, valid, cached)
	}
}

// reportTreeError forwards tree inconsistencies to o before the error
// reaches the caller.
func reportTreeError(o Observer, err error) {
	if errors.Is(err, merkle.ErrInconsistentTree) {
		o.TreeInconsistent(err)
	}
}
