package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/wmachuca/localstack-studio/internal/domain"
	"github.com/wmachuca/localstack-studio/internal/metrics"
)

// Envelope is the JSON frame pushed to streaming clients.
type Envelope struct {
	Queue   string         `json:"queue"`
	Message domain.Message `json:"message"`
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	queue string
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	queue string
	conn  *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdDeliver struct {
	queue string
	data  []byte
}

func (cmdDeliver) hubCmd() {}

type cmdHasInterest struct {
	queue   string
	replyCh chan bool
}

func (cmdHasInterest) hubCmd() {}

type cmdClientCount struct {
	queue   string
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// Hub owns the connection registry and fans received messages out to every
// client interested in the message's source queue. All state is confined to
// the single run goroutine; the public API communicates over the command
// channel, so command order is delivery order.
type Hub struct {
	cmdCh              chan hubCmd
	clients            map[string]map[*websocket.Conn]*clientWriter
	clock              clockwork.Clock
	maxClientsPerQueue int
	done               chan struct{}
}

// NewHub creates the hub and starts its actor goroutine.
func NewHub(maxClientsPerQueue int, clock clockwork.Clock) *Hub {
	h := &Hub{
		cmdCh:              make(chan hubCmd, 256),
		clients:            make(map[string]map[*websocket.Conn]*clientWriter),
		clock:              clock,
		maxClientsPerQueue: maxClientsPerQueue,
		done:               make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.queue, c.conn)
		case cmdDeliver:
			h.handleDeliver(c)
		case cmdHasInterest:
			c.replyCh <- len(h.clients[c.queue]) > 0
		case cmdClientCount:
			c.replyCh <- len(h.clients[c.queue])
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	clients, exists := h.clients[c.queue]
	if !exists {
		clients = make(map[*websocket.Conn]*clientWriter)
		h.clients[c.queue] = clients
		metrics.StreamActiveQueues.Set(float64(len(h.clients)))
	}

	// Idempotent per connection identity.
	if _, registered := clients[c.conn]; registered {
		c.errCh <- nil
		return
	}

	if len(clients) >= h.maxClientsPerQueue {
		slog.Warn("Rejecting client: max clients reached", "queue", c.queue, "max_clients", h.maxClientsPerQueue)
		c.conn.Close()
		c.errCh <- fmt.Errorf("max clients per queue (%d) reached", h.maxClientsPerQueue)
		return
	}

	cw := newClientWriter(c.conn, h.clock)
	clients[c.conn] = cw
	metrics.StreamConnectedClients.Inc()

	slog.Debug("Client registered", "queue", c.queue, "client_id", cw.id.String(), "total_clients", len(clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(queue string, conn *websocket.Conn) {
	clients, exists := h.clients[queue]
	if !exists {
		return
	}

	cw, exists := clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(clients, conn)
	metrics.StreamConnectedClients.Dec()

	if len(clients) == 0 {
		delete(h.clients, queue)
		metrics.StreamActiveQueues.Set(float64(len(h.clients)))
		slog.Info("Last client disconnected", "queue", queue)
	} else {
		slog.Debug("Client unregistered", "queue", queue, "remaining_clients", len(clients))
	}
}

func (h *Hub) handleDeliver(c cmdDeliver) {
	clients, exists := h.clients[c.queue]
	if !exists {
		return
	}

	var failed []*websocket.Conn
	for conn, cw := range clients {
		select {
		case cw.sendChannel <- c.data:
			metrics.StreamMessagesSentTotal.Inc()
		default:
			// writer queue full: client is slow or gone
			failed = append(failed, conn)
		}
	}

	// Pruning is deferred to after the iteration so one bad client cannot
	// affect delivery to the others in the same pass.
	for _, conn := range failed {
		slog.Warn("Disconnecting unresponsive client", "queue", c.queue)
		metrics.StreamClientsEvictedTotal.Inc()
		h.handleUnregister(c.queue, conn)
	}
}

func (h *Hub) handleStop() {
	for queue, clients := range h.clients {
		for _, cw := range clients {
			cw.stopGraceful("Server shutting down")
		}
		delete(h.clients, queue)
	}
	metrics.StreamActiveQueues.Set(0)
}

// --- Public API ---

// Register adds a connection to a queue's interest set. Registering the same
// connection twice is a no-op. Returns an error when the per-queue client
// limit is reached.
func (h *Hub) Register(queue string, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{queue: queue, conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a connection. Safe to call for connections that were
// never registered or were already pruned.
func (h *Hub) Unregister(queue string, conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{queue: queue, conn: conn}
}

// Deliver fans one received message out to every client interested in the
// queue. Best-effort and at-most-once per client; failed clients are pruned.
func (h *Hub) Deliver(queue string, msg domain.Message) {
	data, err := json.Marshal(Envelope{Queue: queue, Message: msg})
	if err != nil {
		slog.Error("Failed to marshal stream envelope", "queue", queue, "error", err)
		return
	}
	h.cmdCh <- cmdDeliver{queue: queue, data: data}
}

// HasInterest reports whether any registered connection targets the queue.
func (h *Hub) HasInterest(queue string) bool {
	replyCh := make(chan bool, 1)
	h.cmdCh <- cmdHasInterest{queue: queue, replyCh: replyCh}
	return <-replyCh
}

// ClientCount returns the number of connections registered for the queue.
func (h *Hub) ClientCount(queue string) int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{queue: queue, replyCh: replyCh}
	return <-replyCh
}

// Stop closes every client connection and shuts the actor down.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
	<-h.done
}
