// Package server implements the HTTP and WebSocket surface using Echo.
//
// REST routes proxy queue and table operations to the emulator clients;
// /ws/messages/:queue upgrades to a stream fed by the polling core.
// Handlers split by concern: handlers_sqs.go, handlers_dynamo.go,
// handlers_ws.go, handlers_health.go.
package server
