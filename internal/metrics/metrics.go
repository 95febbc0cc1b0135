// Package metrics counts search effort per event family on a private
// prometheus registry.
package metrics

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/litescript/ls-almanac/internal/search"
)

const namespace = "almanac"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	evaluations *prometheus.CounterVec
	iterations  *prometheus.CounterVec
	events      *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "function_evaluations_total",
			Help:      "Evaluations of searched functions, labelled by event family.",
		}, []string{"family"}),
		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_iterations_total",
			Help:      "Root and extremum refinement steps, labelled by event family.",
		}, []string{"family"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_found_total",
			Help:      "Events returned to callers, labelled by event family.",
		}, []string{"family"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_failures_total",
			Help:      "Searches that ended in an error, labelled by event family.",
		}, []string{"family"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of one search command, labelled by event family.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"family"}),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// familyCounter adapts the vectors to search.Counter for one family.
type familyCounter struct {
	evaluations prometheus.Counter
	iterations  prometheus.Counter
}

func (c familyCounter) Evaluation() { c.evaluations.Inc() }
func (c familyCounter) Iteration()  { c.iterations.Inc() }

// ForFamily returns a search.Counter that records under family.
func (m *Metrics) ForFamily(family string) search.Counter {
	return familyCounter{
		evaluations: m.evaluations.WithLabelValues(family),
		iterations:  m.iterations.WithLabelValues(family),
	}
}

// ObserveSearch records the outcome of one search command.
func (m *Metrics) ObserveSearch(family string, elapsed time.Duration, found int, err error) {
	m.duration.WithLabelValues(family).Observe(elapsed.Seconds())
	m.events.WithLabelValues(family).Add(float64(found))
	if err != nil {
		m.failures.WithLabelValues(family).Inc()
	}
}

// FamilyStats is the gathered total for one event family.
type FamilyStats struct {
	Family      string
	Evaluations float64
	Iterations  float64
	Events      float64
	Failures    float64
	Searches    uint64
	Seconds     float64
}

// Summary gathers the registry into per-family totals, sorted by family.
func (m *Metrics) Summary() ([]FamilyStats, error) {
	mfs, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	byFamily := make(map[string]*FamilyStats)
	get := func(metric *dto.Metric) *FamilyStats {
		name := familyLabel(metric)
		s, ok := byFamily[name]
		if !ok {
			s = &FamilyStats{Family: name}
			byFamily[name] = s
		}
		return s
	}

	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			s := get(metric)
			switch mf.GetName() {
			case namespace + "_function_evaluations_total":
				s.Evaluations = metric.GetCounter().GetValue()
			case namespace + "_search_iterations_total":
				s.Iterations = metric.GetCounter().GetValue()
			case namespace + "_events_found_total":
				s.Events = metric.GetCounter().GetValue()
			case namespace + "_search_failures_total":
				s.Failures = metric.GetCounter().GetValue()
			case namespace + "_search_duration_seconds":
				s.Searches = metric.GetHistogram().GetSampleCount()
				s.Seconds = metric.GetHistogram().GetSampleSum()
			}
		}
	}

	out := make([]FamilyStats, 0, len(byFamily))
	for _, s := range byFamily {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b FamilyStats) int {
		switch {
		case a.Family < b.Family:
			return -1
		case a.Family > b.Family:
			return 1
		}
		return 0
	})
	return out, nil
}

func familyLabel(metric *dto.Metric) string {
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == "family" {
			return lp.GetValue()
		}
	}
	return ""
}

// WriteSummary prints the per-family totals as a small table.
func (m *Metrics) WriteSummary(w io.Writer) error {
	stats, err := m.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-14s %8s %8s %6s %6s %10s\n", "Family", "Evals", "Iters", "Found", "Fail", "Time")
	for _, s := range stats {
		fmt.Fprintf(w, "%-14s %8.0f %8.0f %6.0f %6.0f %10s\n",
			s.Family, s.Evaluations, s.Iterations, s.Events, s.Failures,
			time.Duration(s.Seconds*float64(time.Second)).Round(time.Microsecond))
	}
	return nil
}
