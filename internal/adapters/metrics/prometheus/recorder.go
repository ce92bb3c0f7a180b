package prometheus

import (
	"time"

	"github.com/bnema/trajectory-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trajectory"

// Recorder exports prediction request metrics.
type Recorder struct {
	started  prometheus.Counter
	inFlight prometheus.Gauge
	finished *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ ports.RequestMetrics = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_requests_started_total",
			Help:      "Prediction requests submitted to the service.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prediction_requests_in_flight",
			Help:      "Prediction requests awaiting a response.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_requests_finished_total",
			Help:      "Prediction requests by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_request_duration_seconds",
			Help:      "Time from submit to completion.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{r.started, r.inFlight, r.finished, r.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) RequestStarted() {
	r.started.Inc()
	r.inFlight.Inc()
}

func (r *Recorder) RequestFinished(outcome ports.RequestOutcome, elapsed time.Duration) {
	r.inFlight.Dec()
	r.finished.WithLabelValues(string(outcome)).Inc()
	r.latency.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}
