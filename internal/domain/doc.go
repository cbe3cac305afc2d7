// Package domain holds the core types and service boundaries.
//
// Defines the emulator-facing views (messages, queues, tables) and the interfaces
// the HTTP layer and the streaming core consume. No AWS SDK types leak out of here.
package domain
