// Package timer records focused study time against assignments.
package timer

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/studyplanner/internal/store"
)

// State is the recorder's position in its Idle → Running → Paused cycle.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	}
	return "IDLE"
}

// Presets are the durations offered for preloading the counter.
var Presets = []time.Duration{
	25 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	50 * time.Minute,
}

// SessionSaver persists a finished session. *store.Store satisfies it.
type SessionSaver interface {
	SaveStudySession(store.StudySession)
}

// Recorder counts elapsed seconds one Tick at a time and commits the
// in-flight session on Reset.
type Recorder struct {
	saver SessionSaver
	now   func() time.Time

	state   State
	elapsed int64 // seconds
	session *store.StudySession
}

// New returns an idle recorder. A nil clock means time.Now.
func New(saver SessionSaver, clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{saver: saver, now: clock}
}

// Start begins or resumes counting. A new session is opened only when none
// is in flight; resuming keeps the original session and its assignment.
func (r *Recorder) Start(assignmentID string) {
	if r.session == nil {
		r.session = &store.StudySession{
			ID:           uuid.NewString(),
			AssignmentID: assignmentID,
			Date:         r.now(),
			Type:         store.SessionFocused,
			Productivity: 5,
		}
	}
	r.state = Running
}

func (r *Recorder) Pause() {
	if r.state != Running {
		return
	}
	r.state = Paused
}

// Toggle pauses a running recorder and resumes a paused one.
func (r *Recorder) Toggle(assignmentID string) {
	if r.state == Running {
		r.Pause()
		return
	}
	r.Start(assignmentID)
}

// Tick advances the counter by one second. Ticks outside Running are ignored.
func (r *Recorder) Tick() {
	if r.state == Running {
		r.elapsed++
	}
}

// Reset commits the in-flight session with the elapsed time as its duration
// and returns it. With nothing in flight it only zeroes the counter.
func (r *Recorder) Reset() *store.StudySession {
	defer func() {
		r.state = Idle
		r.elapsed = 0
		r.session = nil
	}()

	if r.session == nil {
		return nil
	}
	committed := *r.session
	committed.Duration = r.elapsed
	if r.saver != nil {
		r.saver.SaveStudySession(committed)
	}
	return &committed
}

// Preload sets the counter to d without changing state.
func (r *Recorder) Preload(d time.Duration) {
	r.elapsed = int64(d / time.Second)
}

func (r *Recorder) Elapsed() int64 {
	return r.elapsed
}

func (r *Recorder) State() State {
	return r.state
}

func (r *Recorder) Running() bool {
	return r.state == Running
}

// Session returns a copy of the in-flight session, or nil.
func (r *Recorder) Session() *store.StudySession {
	if r.session == nil {
		return nil
	}
	s := *r.session
	s.Duration = r.elapsed
	return &s
}
