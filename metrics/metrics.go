package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives client events. Implementations must be safe for concurrent use.
type Recorder interface {
	Admitted(wait time.Duration)
	WaitInterrupted()
	Waiting(delta int)
	WindowReset()
	RequestCompleted(statusCode int, duration time.Duration)
	RequestFailed(kind string)
}

// Noop discards every event
type Noop struct{}

func (Noop) Admitted(time.Duration)              {}
func (Noop) WaitInterrupted()                    {}
func (Noop) Waiting(int)                         {}
func (Noop) WindowReset()                        {}
func (Noop) RequestCompleted(int, time.Duration) {}
func (Noop) RequestFailed(string)                {}

// Prometheus records client events as Prometheus collectors
type Prometheus struct {
	admissions   prometheus.Counter
	interrupted  prometheus.Counter
	waiting      prometheus.Gauge
	resets       prometheus.Counter
	admitWait    prometheus.Histogram
	requests     *prometheus.CounterVec
	requestTime  prometheus.Histogram
	requestFails *prometheus.CounterVec
}

// NewPrometheus creates the collectors under namespace and registers them on reg
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		return nil, fmt.Errorf("prometheus registerer cannot be nil")
	}

	p := &Prometheus{
		admissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_total",
			Help:      "Callers admitted through the quota gate.",
		}),
		interrupted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admission_interrupted_total",
			Help:      "Callers whose context ended while waiting for quota.",
		}),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "admission_waiting",
			Help:      "Callers currently blocked waiting for quota.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_resets_total",
			Help:      "Quota window resets.",
		}),
		admitWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admission_wait_seconds",
			Help:      "Time spent waiting for quota before admission.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Completed document submissions by HTTP status code.",
		}, []string{"code"}),
		requestTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of the HTTP exchange with the registry.",
			Buckets:   prometheus.DefBuckets,
		}),
		requestFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Document submissions that failed before a response was received.",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{
		p.admissions, p.interrupted, p.waiting, p.resets,
		p.admitWait, p.requests, p.requestTime, p.requestFails,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return p, nil
}

func (p *Prometheus) Admitted(wait time.Duration) {
	p.admissions.Inc()
	p.admitWait.Observe(wait.Seconds())
}

func (p *Prometheus) WaitInterrupted() {
	p.interrupted.Inc()
}

func (p *Prometheus) Waiting(delta int) {
	p.waiting.Add(float64(delta))
}

func (p *Prometheus) WindowReset() {
	p.resets.Inc()
}

func (p *Prometheus) RequestCompleted(statusCode int, duration time.Duration) {
	p.requests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	p.requestTime.Observe(duration.Seconds())
}

func (p *Prometheus) RequestFailed(kind string) {
	p.requestFails.WithLabelValues(kind).Inc()
}
