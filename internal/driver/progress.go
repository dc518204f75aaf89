package driver

import "time"

// Stage describes a pipeline phase.
type Stage string

const (
	StageLoad     Stage = "load"
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	// StatusCached means the result was taken from the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for a file (or for the overall run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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

func (o Options) emit(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}
