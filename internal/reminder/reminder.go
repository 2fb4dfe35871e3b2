// Package reminder fires one-shot notifications ahead of assignment due dates.
package reminder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sadopc/studyplanner/internal/store"
)

// DefaultLead is how long before the due date a reminder fires when the
// assignment has no explicit reminder time.
const DefaultLead = 24 * time.Hour

const Title = "Assignment Due Tomorrow"

type Permission string

const (
	Granted Permission = "granted"
	Denied  Permission = "denied"
	Default Permission = "default"
)

// Notifier delivers reminders to the user.
type Notifier interface {
	RequestPermission() Permission
	Permission() Permission
	Notify(title, body, tag string)
}

// Tag identifies the reminder for an assignment; rescheduling replaces the
// pending reminder with the same tag.
func Tag(assignmentID string) string {
	return "assignment-" + assignmentID
}

func Body(a store.Assignment) string {
	return fmt.Sprintf("%s is due tomorrow in %s", a.Title, a.Subject)
}

// FireTime returns the explicit reminder time when set, otherwise the due
// date minus lead.
func FireTime(a store.Assignment, lead time.Duration) time.Time {
	if a.ReminderTime != nil {
		return *a.ReminderTime
	}
	return a.DueDate.Add(-lead)
}

// once is a cron.Schedule that activates a single time.
type once struct {
	at time.Time
}

func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// Scheduler keeps at most one pending reminder per assignment.
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier
	lead     time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*pending
}

type pending struct {
	id cron.EntryID
	at time.Time
}

// NewScheduler starts a scheduler that delivers through n.
func NewScheduler(n Notifier, lead time.Duration) *Scheduler {
	if lead <= 0 {
		lead = DefaultLead
	}
	s := &Scheduler{
		cron:     cron.New(),
		notifier: n,
		lead:     lead,
		now:      time.Now,
		entries:  make(map[string]*pending),
	}
	s.cron.Start()
	return s
}

// WithClock replaces the clock used to decide whether a fire time has passed.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Schedule arranges a reminder for a. It does nothing and returns false
// unless the assignment wants a reminder, permission is granted and the
// fire time is still ahead. A previously scheduled reminder for the same
// assignment is replaced either way.
func (s *Scheduler) Schedule(a store.Assignment) (time.Time, bool) {
	s.Cancel(a.ID)

	if !a.ReminderSet || s.notifier.Permission() != Granted {
		return time.Time{}, false
	}
	at := FireTime(a, s.lead)
	if !at.After(s.now()) {
		return time.Time{}, false
	}

	tag := Tag(a.ID)
	title, body := Title, Body(a)

	// The job may run before Schedule returns; fired waits on mu until the
	// entry is registered.
	p := &pending{at: at}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.id = s.cron.Schedule(once{at: at}, cron.FuncJob(func() {
		s.fired(tag, p)
		s.notifier.Notify(title, body, tag)
	}))
	s.entries[tag] = p
	log.Printf("reminder: %s scheduled for %s", tag, at.Format(time.RFC3339))
	return at, true
}

// ScheduleAll schedules every assignment and reports how many were accepted.
func (s *Scheduler) ScheduleAll(list []store.Assignment) int {
	n := 0
	for _, a := range list {
		if _, ok := s.Schedule(a); ok {
			n++
		}
	}
	return n
}

// Cancel drops the pending reminder for the assignment, if any.
func (s *Scheduler) Cancel(assignmentID string) {
	tag := Tag(assignmentID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.entries[tag]; ok {
		s.cron.Remove(p.id)
		delete(s.entries, tag)
	}
}

// Pending returns the fire time of the assignment's pending reminder.
func (s *Scheduler) Pending(assignmentID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.entries[Tag(assignmentID)]
	if !ok {
		return time.Time{}, false
	}
	return p.at, true
}

// Stop halts the scheduler and waits for running deliveries to finish.
// Pending reminders are discarded.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()

	s.mu.Lock()
	s.entries = make(map[string]*pending)
	s.mu.Unlock()
}

// fired drops p unless a reschedule has already replaced it.
func (s *Scheduler) fired(tag string, p *pending) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.entries[tag]; ok && cur == p {
		s.cron.Remove(cur.id)
		delete(s.entries, tag)
	}
}
