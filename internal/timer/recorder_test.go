package timer

import (
	"testing"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type fakeSaver struct {
	saved []store.StudySession
}

func (f *fakeSaver) SaveStudySession(s store.StudySession) {
	f.saved = append(f.saved, s)
}

func newTestRecorder() (*Recorder, *fakeSaver) {
	saver := &fakeSaver{}
	return New(saver, func() time.Time { return fixedNow }), saver
}

func TestStartTickReset(t *testing.T) {
	r, saver := newTestRecorder()

	r.Start("a1")
	for i := 0; i < 3; i++ {
		r.Tick()
	}
	got := r.Reset()

	if len(saver.saved) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(saver.saved))
	}
	s := saver.saved[0]
	if s.Duration != 3 {
		t.Errorf("expected duration 3, got %d", s.Duration)
	}
	if s.AssignmentID != "a1" || s.Type != store.SessionFocused || s.Productivity != 5 || s.Distractions != 0 {
		t.Errorf("unexpected session: %+v", s)
	}
	if !s.Date.Equal(fixedNow) || s.ID == "" {
		t.Errorf("expected id and date stamp, got %+v", s)
	}
	if got == nil || got.ID != s.ID {
		t.Errorf("Reset should return the committed session")
	}
	if r.State() != Idle || r.Elapsed() != 0 || r.Session() != nil {
		t.Errorf("expected cleared recorder, state=%v elapsed=%d", r.State(), r.Elapsed())
	}
}

func TestTickIgnoredUnlessRunning(t *testing.T) {
	r, _ := newTestRecorder()
	r.Tick()
	if r.Elapsed() != 0 {
		t.Fatal("idle tick should not count")
	}

	r.Start("")
	r.Tick()
	r.Pause()
	r.Tick()
	r.Tick()
	if r.Elapsed() != 1 {
		t.Fatalf("expected 1, got %d", r.Elapsed())
	}
	if r.State() != Paused {
		t.Fatalf("expected paused, got %v", r.State())
	}
}

func TestResumeKeepsSession(t *testing.T) {
	r, saver := newTestRecorder()
	r.Start("a1")
	r.Tick()
	id := r.Session().ID

	r.Pause()
	r.Start("a2")
	r.Tick()

	if r.Session().ID != id {
		t.Error("resume should not open a new session")
	}
	r.Reset()
	if saver.saved[0].AssignmentID != "a1" || saver.saved[0].Duration != 2 {
		t.Errorf("unexpected session: %+v", saver.saved[0])
	}
}

func TestResetWithoutSession(t *testing.T) {
	r, saver := newTestRecorder()
	r.Preload(25 * time.Minute)
	if got := r.Reset(); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if len(saver.saved) != 0 {
		t.Fatal("nothing should be saved")
	}
	if r.Elapsed() != 0 {
		t.Fatalf("expected counter zeroed, got %d", r.Elapsed())
	}
}

func TestPreloadKeepsState(t *testing.T) {
	r, saver := newTestRecorder()
	r.Start("")
	r.Preload(Presets[0])
	if r.State() != Running {
		t.Fatalf("expected running, got %v", r.State())
	}
	if r.Elapsed() != 1500 {
		t.Fatalf("expected 1500, got %d", r.Elapsed())
	}
	r.Tick()
	r.Reset()
	if saver.saved[0].Duration != 1501 {
		t.Errorf("expected 1501, got %d", saver.saved[0].Duration)
	}
}

func TestToggle(t *testing.T) {
	r, _ := newTestRecorder()
	r.Toggle("a1")
	if !r.Running() {
		t.Fatal("expected running")
	}
	r.Toggle("a1")
	if r.State() != Paused {
		t.Fatalf("expected paused, got %v", r.State())
	}
}

func TestRecorderWithStore(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	r := New(s, nil)
	r.Start("a1")
	r.Tick()
	r.Tick()
	r.Reset()

	sessions := s.StudySessions()
	if len(sessions) != 1 || sessions[0].Duration != 2 {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}
