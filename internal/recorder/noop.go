package recorder

import "context"

// NoopRecorder is used when no history database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(context.Context, RunRecord) error { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
