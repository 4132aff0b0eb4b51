package production

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/realtime"
)

// Metrics observes a Store and a Runtime with Prometheus collectors.
type Metrics struct {
	reductions   *prometheus.CounterVec
	listenerRuns prometheus.Counter
	advances     prometheus.Counter
	delivered    prometheus.Counter
	uptime       prometheus.Gauge
}

var (
	_ tickx.Observer    = (*Metrics)(nil)
	_ realtime.Observer = (*Metrics)(nil)
)

// newTickxCounter creates a counter with the standard tickx namespace.
func newTickxCounter(subsystem, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tickx",
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

// NewMetrics creates the collectors and registers them with registerer.
// A nil registerer uses prometheus.DefaultRegisterer. Collectors already
// registered under the same name are reused, so several runtimes can share
// one registry.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	var err error
	m := &Metrics{}
	if m.reductions, err = registerOrReuse(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tickx",
		Subsystem: "store",
		Name:      "reductions_total",
		Help:      "Reduction passes over all slots, by whether any slot changed",
	}, []string{"changed"})); err != nil {
		return nil, err
	}
	if m.listenerRuns, err = registerOrReuse(registerer,
		newTickxCounter("store", "listener_runs_total", "Listener invocations after changing dispatches")); err != nil {
		return nil, err
	}
	if m.advances, err = registerOrReuse(registerer,
		newTickxCounter("runtime", "advances_total", "Calls to Advance")); err != nil {
		return nil, err
	}
	if m.delivered, err = registerOrReuse(registerer,
		newTickxCounter("runtime", "timeouts_delivered_total", "Timeouts fired")); err != nil {
		return nil, err
	}
	if m.uptime, err = registerOrReuse(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tickx",
		Subsystem: "runtime",
		Name:      "uptime_ticks",
		Help:      "Current logical clock value",
	})); err != nil {
		return nil, err
	}
	return m, nil
}

func registerOrReuse[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	err := registerer.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *Metrics) Dispatched(changed bool) {
	m.reductions.WithLabelValues(strconv.FormatBool(changed)).Inc()
}

func (m *Metrics) Notified(listeners int) {
	m.listenerRuns.Add(float64(listeners))
}

func (m *Metrics) Advanced(uptime realtime.Tick) {
	m.advances.Inc()
	m.uptime.Set(float64(uptime))
}

func (m *Metrics) Delivered(timeouts int) {
	m.delivered.Add(float64(timeouts))
}
