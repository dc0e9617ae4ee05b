package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SubsystemImport   = "import"
	SubsystemTransfer = "transfer"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Metrics struct {
	MessagesTotal        *prometheus.CounterVec
	TransactionsImported prometheus.Counter
	TransfersTotal       *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the ledger collectors on a fresh registry.
func New(namespace string) (*Metrics, error) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: SubsystemImport,
			Name:      "messages_total",
			Help:      "SMS messages read during imports, by classification outcome.",
		}, []string{"outcome"}),
		TransactionsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: SubsystemImport,
			Name:      "transactions_imported_total",
			Help:      "Transactions stored by imports.",
		}),
		TransfersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: SubsystemTransfer,
			Name:      "transfers_total",
			Help:      "Direct transfers attempted, by result.",
		}, []string{"result"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.MessagesTotal, m.TransactionsImported, m.TransfersTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Nop returns collectors that are never exposed.
func Nop() *Metrics {
	m, _ := New("nop")
	return m
}

func (m *Metrics) ObserveMessage(outcome string) {
	m.MessagesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveImported(count int) {
	m.TransactionsImported.Add(float64(count))
}

func (m *Metrics) ObserveTransfer(err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.TransfersTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
