package events

import "time"

// BatchStart is emitted when a batch run begins, before its documents are
// merged.
type BatchStart struct {
	Name string
	Size int
}

// BatchFinish is emitted after a batch run completes, whether or not the
// merge or dispatch succeeded.
type BatchFinish struct {
	Name     string
	Size     int
	Err      error
	Duration time.Duration
}
