// Package notify carries user-facing notices (the terminal counterpart of a
// toast) from library code to whatever front end is running it.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices.
type Notifier interface {
	Notify(Notice)
}

// Error is shorthand for an error-level notice.
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// Success is shorthand for a success-level notice.
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

// Info is shorthand for an info-level notice.
func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// WriterNotifier prints notices as prefixed lines and mirrors them to a logger.
type WriterNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	log *zap.Logger
}

// NewWriterNotifier returns a notifier printing to w. log may be nil.
func NewWriterNotifier(w io.Writer, log *zap.Logger) *WriterNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &WriterNotifier{w: w, log: log}
}

// Notify implements Notifier.
func (n *WriterNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefix := "info"
	switch notice.Level {
	case LevelError:
		prefix = "error"
		n.log.Debug("notice", zap.String("level", string(notice.Level)), zap.String("message", notice.Message))
	case LevelSuccess:
		prefix = "ok"
	}
	fmt.Fprintf(n.w, "%s: %s\n", prefix, notice.Message)
}

// Recorder keeps notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(notice Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, notice)
	r.mu.Unlock()
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice and whether there was one.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
