package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oarkflow/chainpurge/nlp/ngram"
)

// runMetrics holds the counters of a single purge. They are exported once,
// in the text format read by the node exporter textfile collector.
type runMetrics struct {
	reg       *prometheus.Registry
	events    *prometheus.CounterVec
	words     prometheus.Counter
	chainKeys prometheus.Gauge
	lastRun   prometheus.Gauge
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		reg: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainpurge_events_total",
				Help: "Chain edits made by the last purge, by action.",
			},
			[]string{"action"},
		),
		words: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chainpurge_words_total",
				Help: "Words read from the purged message.",
			},
		),
		chainKeys: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chainpurge_chain_keys",
				Help: "Prefix keys left in the chain after the purge.",
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chainpurge_last_run_timestamp_seconds",
				Help: "Unix time of the last successful purge.",
			},
		),
	}
	for _, a := range []ngram.Action{ngram.Decrement, ngram.DeleteWord, ngram.DeleteKey} {
		m.events.WithLabelValues(a.String())
	}
	m.reg.MustRegister(m.events, m.words, m.chainKeys, m.lastRun)
	return m
}

func (m *runMetrics) Report(e ngram.Event) {
	m.events.WithLabelValues(e.Action.String()).Inc()
}

func (m *runMetrics) observe(stats ngram.Stats, keys int) {
	m.words.Add(float64(stats.Words))
	m.chainKeys.Set(float64(keys))
	m.lastRun.SetToCurrentTime()
}

func (m *runMetrics) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
