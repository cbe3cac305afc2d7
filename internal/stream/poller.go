package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"

	"github.com/wmachuca/localstack-studio/internal/domain"
	"github.com/wmachuca/localstack-studio/internal/metrics"
)

// PollSettings tunes the per-queue long-poll loop.
type PollSettings struct {
	MaxMessages       int32
	WaitSeconds       int32
	VisibilityTimeout int32

	// IdleDelay is the pause between successful poll cycles.
	IdleDelay time.Duration

	// ErrorBackoff is the fixed pause after a failed receive. Deliberately
	// constant rather than exponential: a transient emulator outage should
	// self-heal promptly once connectivity returns.
	ErrorBackoff time.Duration
}

// poller is one background polling task for a single queue. It terminates
// only when no connection is interested in its queue anymore; receive errors
// are logged and retried after the fixed backoff.
type poller struct {
	queue    string
	client   domain.QueueClient
	hub      *Hub
	manager  *Manager
	clock    clockwork.Clock
	settings PollSettings
	retry    backoff.BackOff
	log      *slog.Logger
}

func newPoller(queue string, client domain.QueueClient, hub *Hub, manager *Manager, clock clockwork.Clock, settings PollSettings) *poller {
	return &poller{
		queue:    queue,
		client:   client,
		hub:      hub,
		manager:  manager,
		clock:    clock,
		settings: settings,
		retry:    backoff.NewConstantBackOff(settings.ErrorBackoff),
		log:      slog.Default().With("queue", queue),
	}
}

func (p *poller) run(ctx context.Context) {
	p.log.Info("Started polling queue")
	metrics.PollerActiveTasks.Inc()
	defer metrics.PollerActiveTasks.Dec()

	for {
		if ctx.Err() != nil {
			p.manager.release(p.queue)
			p.log.Info("Polling stopped: shutting down")
			return
		}

		// Loss of interest is the only regular termination condition.
		if !p.hub.HasInterest(p.queue) {
			if p.manager.tryRelease(p.queue) {
				p.log.Info("No subscribers left, stopping polling")
				return
			}
			// A subscriber raced in between the interest check and the
			// release; keep polling.
			continue
		}

		messages, err := p.client.ReceiveMessages(ctx, p.queue, p.settings.MaxMessages, p.settings.WaitSeconds, p.settings.VisibilityTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			metrics.PollerReceivesTotal.WithLabelValues(p.queue, "error").Inc()
			p.log.Error("Failed to receive messages, backing off", "error", err, "backoff", p.settings.ErrorBackoff)
			p.sleep(ctx, p.retry.NextBackOff())
			continue
		}
		p.retry.Reset()
		metrics.PollerReceivesTotal.WithLabelValues(p.queue, "ok").Inc()

		if len(messages) > 0 {
			metrics.PollerMessagesReceivedTotal.WithLabelValues(p.queue).Add(float64(len(messages)))
		}

		// Hand off in the order the emulator returned the batch.
		for _, msg := range messages {
			p.hub.Deliver(p.queue, msg)
		}

		p.sleep(ctx, p.settings.IdleDelay)
	}
}

func (p *poller) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := p.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.Chan():
	case <-ctx.Done():
	}
}
