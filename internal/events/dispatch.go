package events

import "time"

// DispatchStart is emitted before a document is sent to a backend.
type DispatchStart struct {
	Query         string
	OperationName string
	OperationType string
}

// DispatchFinish is emitted after the backend call completes.
type DispatchFinish struct {
	Query         string
	OperationName string
	OperationType string
	State         string
	Err           error
	Duration      time.Duration
}
