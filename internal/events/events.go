// Package events defines the progress sink consumed by every long-running
// installer operation. It generalizes the teacher's ad hoc
// progressChan/callback pairing (internal/download.Manager's progress
// channel, internal/launch.Launcher's statusChan) into one interface that
// every component in this module accepts, matching the source's single
// synchronous callback shape.
package events

import "fmt"

// DownloadState mirrors the closed set the download primitive can report.
type DownloadState string

const (
	StateExists         DownloadState = "exists"
	StateExistsUnchecked DownloadState = "exists_unchecked"
	StateDownload       DownloadState = "download"
	StateDownloadChecked DownloadState = "download_checked"
	StateFailed         DownloadState = "failed"
)

// Event is the sum type emitted to a Sink. Exactly one field is meaningful
// per Kind.
type Event struct {
	Kind     EventKind
	Message  string        // Status, Error
	URL      string        // Download
	State    DownloadState // Download
	Current  int           // Progress
	Max      int           // Progress
}

type EventKind int

const (
	KindError EventKind = iota
	KindStatus
	KindDownload
	KindProgress
)

func (e Event) String() string {
	switch e.Kind {
	case KindError:
		return fmt.Sprintf("error: %s", e.Message)
	case KindStatus:
		return fmt.Sprintf("status: %s", e.Message)
	case KindDownload:
		return fmt.Sprintf("download[%s]: %s", e.State, e.URL)
	case KindProgress:
		return fmt.Sprintf("progress: %d/%d", e.Current, e.Max)
	default:
		return "unknown event"
	}
}

func Error(msg string) Event             { return Event{Kind: KindError, Message: msg} }
func Status(msg string) Event            { return Event{Kind: KindStatus, Message: msg} }
func Download(state DownloadState, url string) Event {
	return Event{Kind: KindDownload, State: state, URL: url}
}
func Progress(current, max int) Event { return Event{Kind: KindProgress, Current: current, Max: max} }

// Sink is the capability interface every worker emits through. It must be
// safe to call concurrently from multiple goroutines, since the
// bounded worker pool (see internal/download) may call Emit from any
// in-flight download.
type Sink interface {
	Emit(Event)
}

// Func adapts a plain function to a Sink, mirroring the source's bare
// function-pointer Callback type.
type Func func(Event)

func (f Func) Emit(e Event) { f(e) }

// Discard is a Sink that ignores every event.
var Discard Sink = Func(func(Event) {})
