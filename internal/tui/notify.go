package tui

import (
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
)

// Notifier delivers reminders as in-app status messages. Permission follows
// the assignments notification setting.
type Notifier struct {
	store *store.Store

	mu      sync.Mutex
	program *tea.Program
}

func NewNotifier(s *store.Store) *Notifier {
	return &Notifier{store: s}
}

// Attach routes future notifications into p.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

func (n *Notifier) Permission() reminder.Permission {
	if n.store.Settings().Notifications.Assignments {
		return reminder.Granted
	}
	return reminder.Denied
}

func (n *Notifier) RequestPermission() reminder.Permission {
	return n.Permission()
}

func (n *Notifier) Notify(title, body, tag string) {
	log.Printf("reminder %s: %s: %s", tag, title, body)

	n.mu.Lock()
	p := n.program
	n.mu.Unlock()
	if p != nil {
		p.Send(reminderMsg{title: title, body: body, tag: tag})
	}
}
