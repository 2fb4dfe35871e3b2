package reminder

import (
	"sync"
	"testing"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type notification struct {
	title, body, tag string
}

type fakeNotifier struct {
	mu   sync.Mutex
	perm Permission
	sent chan notification
}

func newFakeNotifier(perm Permission) *fakeNotifier {
	return &fakeNotifier{perm: perm, sent: make(chan notification, 8)}
}

func (f *fakeNotifier) RequestPermission() Permission {
	return f.Permission()
}

func (f *fakeNotifier) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perm
}

func (f *fakeNotifier) Notify(title, body, tag string) {
	f.sent <- notification{title, body, tag}
}

func newTestScheduler(t *testing.T, perm Permission) (*Scheduler, *fakeNotifier) {
	t.Helper()
	n := newFakeNotifier(perm)
	s := NewScheduler(n, DefaultLead).WithClock(func() time.Time { return fixedNow })
	t.Cleanup(s.Stop)
	return s, n
}

func reminderAssignment(due time.Time) store.Assignment {
	return store.Assignment{
		ID:          "a1",
		Title:       "Essay",
		Subject:     "English",
		DueDate:     due,
		ReminderSet: true,
	}
}

// ============================================================
// Fire time
// ============================================================

func TestFireTimeDefaultsToLeadBeforeDue(t *testing.T) {
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))
	if got := FireTime(a, DefaultLead); !got.Equal(fixedNow.Add(48 * time.Hour)) {
		t.Errorf("expected due minus 24h, got %v", got)
	}
}

func TestFireTimePrefersReminderTime(t *testing.T) {
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))
	at := fixedNow.Add(time.Hour)
	a.ReminderTime = &at
	if got := FireTime(a, DefaultLead); !got.Equal(at) {
		t.Errorf("expected reminder time, got %v", got)
	}
}

func TestNotificationText(t *testing.T) {
	a := reminderAssignment(fixedNow)
	if got := Body(a); got != "Essay is due tomorrow in English" {
		t.Errorf("got %q", got)
	}
	if Tag("a1") != "assignment-a1" {
		t.Errorf("got %q", Tag("a1"))
	}
}

// ============================================================
// Scheduling rules
// ============================================================

func TestScheduleAccepted(t *testing.T) {
	s, _ := newTestScheduler(t, Granted)
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))

	at, ok := s.Schedule(a)
	if !ok {
		t.Fatal("expected reminder to be scheduled")
	}
	if !at.Equal(fixedNow.Add(48 * time.Hour)) {
		t.Errorf("unexpected fire time %v", at)
	}
	if p, ok := s.Pending("a1"); !ok || !p.Equal(at) {
		t.Errorf("expected pending entry at %v, got %v %v", at, p, ok)
	}
}

func TestScheduleRejected(t *testing.T) {
	tests := []struct {
		name   string
		perm   Permission
		mutate func(*store.Assignment)
	}{
		{"reminder not set", Granted, func(a *store.Assignment) { a.ReminderSet = false }},
		{"permission denied", Denied, func(a *store.Assignment) {}},
		{"permission default", Default, func(a *store.Assignment) {}},
		{"fire time passed", Granted, func(a *store.Assignment) { a.DueDate = fixedNow.Add(12 * time.Hour) }},
		{"fire time now", Granted, func(a *store.Assignment) { a.DueDate = fixedNow.Add(DefaultLead) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScheduler(t, tt.perm)
			a := reminderAssignment(fixedNow.Add(72 * time.Hour))
			tt.mutate(&a)
			if _, ok := s.Schedule(a); ok {
				t.Fatal("expected reminder to be skipped")
			}
			if _, ok := s.Pending(a.ID); ok {
				t.Fatal("no entry should be pending")
			}
		})
	}
}

func TestRescheduleReplaces(t *testing.T) {
	s, _ := newTestScheduler(t, Granted)
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))
	s.Schedule(a)

	a.DueDate = fixedNow.Add(96 * time.Hour)
	at, _ := s.Schedule(a)
	if p, _ := s.Pending("a1"); !p.Equal(at) {
		t.Errorf("expected replaced entry at %v, got %v", at, p)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("expected 1 cron entry, got %d", n)
	}

	a.ReminderSet = false
	s.Schedule(a)
	if _, ok := s.Pending("a1"); ok {
		t.Error("turning the reminder off should cancel it")
	}
}

func TestCancel(t *testing.T) {
	s, _ := newTestScheduler(t, Granted)
	s.Schedule(reminderAssignment(fixedNow.Add(72 * time.Hour)))
	s.Cancel("a1")
	if _, ok := s.Pending("a1"); ok {
		t.Fatal("expected no pending reminder")
	}
	s.Cancel("missing")
}

func TestScheduleAll(t *testing.T) {
	s, _ := newTestScheduler(t, Granted)
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))
	b := a
	b.ID = "b"
	b.ReminderSet = false
	if n := s.ScheduleAll([]store.Assignment{a, b}); n != 1 {
		t.Errorf("expected 1, got %d", n)
	}
}

// ============================================================
// Delivery
// ============================================================

func TestReminderFires(t *testing.T) {
	n := newFakeNotifier(Granted)
	s := NewScheduler(n, time.Hour)
	defer s.Stop()

	at := time.Now().Add(150 * time.Millisecond)
	a := reminderAssignment(time.Now().Add(48 * time.Hour))
	a.ReminderTime = &at
	if _, ok := s.Schedule(a); !ok {
		t.Fatal("expected reminder to be scheduled")
	}

	select {
	case got := <-n.sent:
		if got.title != Title || got.body != "Essay is due tomorrow in English" || got.tag != "assignment-a1" {
			t.Errorf("unexpected notification %+v", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reminder did not fire")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Pending("a1"); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("fired reminder should no longer be pending")
}

func TestReminderFiresImmediately(t *testing.T) {
	n := newFakeNotifier(Granted)
	s := NewScheduler(n, time.Hour)
	defer s.Stop()

	for i := 0; i < 5; i++ {
		at := time.Now().Add(2 * time.Millisecond)
		a := reminderAssignment(time.Now().Add(48 * time.Hour))
		a.ReminderTime = &at
		if _, ok := s.Schedule(a); !ok {
			continue
		}

		select {
		case <-n.sent:
		case <-time.After(3 * time.Second):
			t.Fatal("reminder did not fire")
		}

		deadline := time.Now().Add(time.Second)
		for {
			if _, ok := s.Pending("a1"); !ok {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("fired reminder should no longer be pending")
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestStaleFireKeepsReplacement(t *testing.T) {
	s, _ := newTestScheduler(t, Granted)
	a := reminderAssignment(fixedNow.Add(72 * time.Hour))

	if _, ok := s.Schedule(a); !ok {
		t.Fatal("expected reminder to be scheduled")
	}
	s.mu.Lock()
	old := s.entries[Tag(a.ID)]
	s.mu.Unlock()

	a.DueDate = fixedNow.Add(96 * time.Hour)
	want, ok := s.Schedule(a)
	if !ok {
		t.Fatal("expected reschedule to be accepted")
	}

	s.fired(Tag(a.ID), old)
	got, ok := s.Pending(a.ID)
	if !ok || !got.Equal(want) {
		t.Fatalf("replacement should stay pending, got %v %v", got, ok)
	}
}
