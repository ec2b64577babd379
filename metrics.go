// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmchan

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a thin wrapper around a handful of Prometheus counters. It is
// entirely optional: a Sender/Receiver built without WithMetrics never
// touches this type.
type Metrics struct {
	MessagesSent     prometheus.Counter
	MessagesReceived prometheus.Counter
	MessagesAborted  prometheus.Counter
	BytesTransferred prometheus.Counter
}

// NewMetrics constructs and registers the channel's counters under the
// "shmchan" namespace. Pass a prometheus.Registerer such as
// prometheus.DefaultRegisterer, or a fresh prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmchan",
			Name:      "messages_sent_total",
			Help:      "Messages successfully sent.",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmchan",
			Name:      "messages_received_total",
			Help:      "Messages successfully received.",
		}),
		MessagesAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmchan",
			Name:      "messages_aborted_total",
			Help:      "Messages aborted by a failing send or receive callback.",
		}),
		BytesTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shmchan",
			Name:      "bytes_transferred_total",
			Help:      "Payload bytes transferred, excluding chunk headers.",
		}),
	}
	for _, c := range []prometheus.Collector{m.MessagesSent, m.MessagesReceived, m.MessagesAborted, m.BytesTransferred} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
