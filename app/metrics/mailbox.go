package metrics

import (
	"fmt"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hyperlane"

// MailboxMetrics counts messages going through mailboxes.
type MailboxMetrics struct {
	dispatched *prometheus.CounterVec
	processed  *prometheus.CounterVec
	rejected   *prometheus.CounterVec
}

// NewMailboxMetrics creates the counters and registers them with registerer.
// A nil registerer uses the default prometheus registry.
func NewMailboxMetrics(registerer prometheus.Registerer) (*MailboxMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &MailboxMetrics{
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mailbox",
				Name:      "dispatched_messages_total",
				Help:      "Messages dispatched, by mailbox and destination domain",
			},
			[]string{"mailbox", "destination"},
		),
		processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mailbox",
				Name:      "processed_messages_total",
				Help:      "Messages delivered, by mailbox and origin domain",
			},
			[]string{"mailbox", "origin"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mailbox",
				Name:      "rejected_messages_total",
				Help:      "Dispatch and process calls that failed, by mailbox and error",
			},
			[]string{"mailbox", "reason"},
		),
	}

	for _, collector := range []prometheus.Collector{m.dispatched, m.processed, m.rejected} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MailboxMetrics) MessageDispatched(mailboxId util.HexAddress, destination uint32) {
	m.dispatched.WithLabelValues(mailboxId.String(), fmt.Sprint(destination)).Inc()
}

func (m *MailboxMetrics) MessageProcessed(mailboxId util.HexAddress, origin uint32) {
	m.processed.WithLabelValues(mailboxId.String(), fmt.Sprint(origin)).Inc()
}

func (m *MailboxMetrics) MessageRejected(mailboxId util.HexAddress, reason string) {
	m.rejected.WithLabelValues(mailboxId.String(), reason).Inc()
}
