// Package pipeline runs recipe-driven generation sessions. Each recipe
// gets its own engine session; sessions are independent and run in
// parallel under a bounded errgroup. Progress is reported per recipe and
// stage through a ProgressSink.
package pipeline

import "time"

// Stage describes a high-level phase of one generation session.
type Stage string

const (
	// StageConfigure covers recipe application and session setup.
	StageConfigure Stage = "configure"
	// StageGenerate covers auxiliary and constant emission.
	StageGenerate Stage = "generate"
	// StageRender covers section assembly.
	StageRender Stage = "render"
	// StageWrite covers writing the artifacts to disk.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the session is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the session is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the session is done.
	StatusDone Status = "done"
	// StatusSkipped indicates the session was skipped via the cache.
	StatusSkipped Status = "skipped"
	// StatusError indicates the session encountered an error.
	StatusError Status = "error"
)

// Event reports progress for one recipe.
type Event struct {
	Recipe  string
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
