//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2026 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package volatileindex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LookupOutcome labels a completed Lookup call for the lookups_total
// counter. It never distinguishes *which* error occurred — only whether
// one did — since the errors themselves are never inspected or logged by
// this package.
type LookupOutcome string

const (
	LookupHit     LookupOutcome = "hit"
	LookupMiss    LookupOutcome = "miss"
	LookupFailure LookupOutcome = "failure"
)

// Metrics contains a set of functions invoked at build and lookup time.
// Both fields are called unconditionally, so neither may be nil.
// NewMetrics(nil) returns a Metrics whose functions are no-ops, and a nil
// BuildConfig.Metrics is replaced by one, so instrumentation can be wired
// in without every call site branching on whether a registry was
// configured.
type Metrics struct {
	OnBuild  func(variant string, elements int, distinctKeys int, failures int, took time.Duration)
	OnLookup func(variant string, outcome LookupOutcome, took time.Duration)
}

// NewMetrics registers the volatileindex_* series against reg. Passing a
// nil Registerer yields a Metrics whose callbacks do nothing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{
			OnBuild:  func(string, int, int, int, time.Duration) {},
			OnLookup: func(string, LookupOutcome, time.Duration) {},
		}
	}

	buildDuration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volatileindex",
		Name:      "build_duration_seconds",
		Help:      "Time spent draining the source and populating buckets",
	}, []string{"variant"})

	buildElements := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volatileindex",
		Name:      "build_elements",
		Help:      "Number of source elements observed during a build",
	}, []string{"variant"})

	buildDistinctKeys := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volatileindex",
		Name:      "build_distinct_keys",
		Help:      "Number of distinct keys produced during a build",
	}, []string{"variant"})

	buildFailures := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volatileindex",
		Name:      "build_key_failures",
		Help:      "Number of key-selector failures observed during a build",
	}, []string{"variant"})

	lookupTotal := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "volatileindex",
		Name:      "lookups_total",
		Help:      "Total number of Lookup calls, by variant and outcome",
	}, []string{"variant", "outcome"})

	lookupDuration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volatileindex",
		Name:      "lookup_duration_seconds",
		Help:      "Time spent inside a single Lookup call",
	}, []string{"variant"})

	return &Metrics{
		OnBuild: func(variant string, elements, distinctKeys, failures int, took time.Duration) {
			buildDuration.WithLabelValues(variant).Observe(took.Seconds())
			buildElements.WithLabelValues(variant).Observe(float64(elements))
			buildDistinctKeys.WithLabelValues(variant).Observe(float64(distinctKeys))
			buildFailures.WithLabelValues(variant).Observe(float64(failures))
		},
		OnLookup: func(variant string, outcome LookupOutcome, took time.Duration) {
			lookupTotal.WithLabelValues(variant, string(outcome)).Inc()
			lookupDuration.WithLabelValues(variant).Observe(took.Seconds())
		},
	}
}

func noopMetrics() *Metrics {
	return NewMetrics(nil)
}
