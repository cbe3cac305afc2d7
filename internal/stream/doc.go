// Package stream implements the WebSocket fan-out and queue-polling core.
//
// A single hub goroutine owns the connection registry and handles delivery
// commands (no mutexes on the hot path); per-connection writer goroutines
// isolate slow or dead clients. The Manager spawns one polling goroutine per
// subscribed queue; a poller long-polls the emulator and hands each received
// message to the hub in order. A poller stops only when no connection is
// interested in its queue anymore, observed at the top of its next cycle.
package stream
