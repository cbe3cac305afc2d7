package domain

import "errors"

var (
	// ErrQueueNotFound indicates the named queue does not exist on the emulator.
	ErrQueueNotFound = errors.New("queue not found")

	// ErrTableNotFound indicates the named table does not exist on the emulator.
	ErrTableNotFound = errors.New("table not found")

	// ErrItemNotFound indicates a table item lookup matched nothing.
	ErrItemNotFound = errors.New("item not found")
)
