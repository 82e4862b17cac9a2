package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"telegram-relay-bot/internal/domain"
	"telegram-relay-bot/internal/ports"
)

const metricsNamespace = "relay"

// Metrics - набор Prometheus-метрик ретранслятора. Нулевой указатель допустим:
// все методы в этом случае ничего не делают.
type Metrics struct {
	events    *prometheus.CounterVec
	forwarded prometheus.Counter
	replied   prometheus.Counter
	failures  *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg. Если store не nil, дополнительно
// регистрируется gauge с текущим размером хранилища соответствий.
func NewMetrics(reg prometheus.Registerer, store ports.RelayStore) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Inbound events by sender role.",
		}, []string{"role"}),
		forwarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forwarded_total",
			Help:      "Correspondent messages forwarded to the operator.",
		}),
		replied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "replied_total",
			Help:      "Operator replies delivered to correspondents.",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "failures_total",
			Help:      "Reported failures by kind.",
		}, []string{"kind"}),
	}

	if store != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mappings",
			Help:      "Relayed message mappings currently held in memory.",
		}, func() float64 { return float64(store.Len()) })
	}

	return m
}

func (m *Metrics) observeEvent(role domain.Role) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(role.String()).Inc()
}

func (m *Metrics) observeForwarded() {
	if m == nil {
		return
	}
	m.forwarded.Inc()
}

func (m *Metrics) observeReplied() {
	if m == nil {
		return
	}
	m.replied.Inc()
}

func (m *Metrics) observeFailure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}
