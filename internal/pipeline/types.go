// Package pipeline lowers batches of input files and reports progress.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageDecode covers reading and decoding the AST export.
	StageDecode Stage = "decode"
	// StageLower is the lowering stage.
	StageLower Stage = "lower"
	// StageWrite writes the generated script.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration

	// Set on StatusDone.
	Units    int  // top-level declarations lowered
	Warnings int  // diagnostics at warning severity or above
	Cached   bool // output came from the disk cache
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; files report from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageDecode, Status: StatusQueued})
	}
}
