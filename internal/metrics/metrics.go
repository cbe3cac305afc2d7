// Package metrics registers the prometheus instruments for the polling and
// streaming subsystems. All metrics are registered at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Polling task metrics
var (
	// PollerActiveTasks tracks the number of live per-queue polling tasks.
	PollerActiveTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "poller_active_tasks",
			Help: "Number of active per-queue polling tasks",
		},
	)

	// PollerReceivesTotal tracks long-poll receive calls by queue and status.
	PollerReceivesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_receives_total",
			Help: "Total long-poll receive calls by queue and status",
		},
		[]string{"queue", "status"},
	)

	// PollerMessagesReceivedTotal tracks messages pulled from the emulator by queue.
	PollerMessagesReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_messages_received_total",
			Help: "Total messages received from the emulator by queue",
		},
		[]string{"queue"},
	)
)

// Broadcaster metrics
var (
	// StreamActiveQueues tracks the number of queues with at least one subscriber.
	StreamActiveQueues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_active_queues",
			Help: "Number of queues with at least one connected WebSocket client",
		},
	)

	// StreamConnectedClients tracks connected WebSocket clients across all queues.
	StreamConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_connected_clients",
			Help: "Total connected WebSocket clients across all queues",
		},
	)

	// StreamMessagesSentTotal tracks envelopes handed to client writers.
	StreamMessagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_messages_sent_total",
			Help: "Total message envelopes enqueued to WebSocket clients",
		},
	)

	// StreamClientsEvictedTotal tracks clients pruned after a failed delivery.
	StreamClientsEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_clients_evicted_total",
			Help: "Total WebSocket clients removed after a failed or slow delivery",
		},
	)
)
