package stream

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/wmachuca/localstack-studio/internal/domain"
)

// Manager orchestrates the hub and the per-queue polling tasks. Constructed
// once at startup and handed to the transport layer; Stop tears everything
// down on shutdown.
type Manager struct {
	hub      *Hub
	client   domain.QueueClient
	settings PollSettings
	clock    clockwork.Clock

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pollers map[string]struct{}
}

// NewManager wires the hub and the queue client together.
func NewManager(client domain.QueueClient, settings PollSettings, maxClientsPerQueue int, clock clockwork.Clock) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		hub:      NewHub(maxClientsPerQueue, clock),
		client:   client,
		settings: settings,
		clock:    clock,
		ctx:      ctx,
		cancel:   cancel,
		pollers:  make(map[string]struct{}),
	}
}

// Connect registers an upgraded connection for a queue and makes sure a
// polling task for that queue is running.
func (m *Manager) Connect(queue string, conn *websocket.Conn) error {
	if err := m.hub.Register(queue, conn); err != nil {
		return err
	}
	m.ensurePoller(queue)
	return nil
}

// Disconnect removes a connection. The queue's polling task is not stopped
// eagerly: it observes the loss of interest at the top of its next cycle.
func (m *Manager) Disconnect(queue string, conn *websocket.Conn) {
	m.hub.Unregister(queue, conn)
}

// PollerCount returns the number of live polling tasks.
func (m *Manager) PollerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pollers)
}

// HasPoller reports whether a polling task is currently recorded for a queue.
func (m *Manager) HasPoller(queue string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.pollers[queue]
	return exists
}

// ClientCount returns the number of connections registered for a queue.
func (m *Manager) ClientCount(queue string) int {
	return m.hub.ClientCount(queue)
}

// Stop cancels all polling tasks, waits for them to exit, and closes every
// client connection.
func (m *Manager) Stop() {
	m.cancel()
	m.wg.Wait()
	m.hub.Stop()
}

// ensurePoller spawns a polling task for the queue unless one is already
// recorded. The task table guarantees at most one task per queue name.
func (m *Manager) ensurePoller(queue string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return
	}
	if _, exists := m.pollers[queue]; exists {
		return
	}

	m.pollers[queue] = struct{}{}
	p := newPoller(queue, m.client, m.hub, m, m.clock, m.settings)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		p.run(m.ctx)
	}()
}

// tryRelease removes the queue's task table entry unless interest reappeared
// since the poller's check. Returns true when the poller may exit.
func (m *Manager) tryRelease(queue string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the table lock: a new subscriber may have registered
	// after the poller observed no interest. ensurePoller would have found
	// this poller still recorded and not spawned a second one.
	if m.hub.HasInterest(queue) {
		return false
	}

	delete(m.pollers, queue)
	return true
}

// release unconditionally clears the queue's task table entry (shutdown path).
func (m *Manager) release(queue string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pollers, queue)
}
