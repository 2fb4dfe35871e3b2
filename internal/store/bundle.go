package store

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Bundle is the interchange document produced by ExportSnapshot.
type Bundle struct {
	Assignments   []Assignment   `json:"assignments"`
	Subjects      []Subject      `json:"subjects"`
	StudySessions []StudySession `json:"studySessions"`
	StudyGoals    []StudyGoal    `json:"studyGoals"`
	Settings      UserSettings   `json:"settings"`
	ExportedAt    time.Time      `json:"exportedAt"`
}

// Snapshot collects every collection into a Bundle stamped with the store clock.
func (s *Store) Snapshot() Bundle {
	return Bundle{
		Assignments:   s.Assignments(),
		Subjects:      s.Subjects(),
		StudySessions: s.StudySessions(),
		StudyGoals:    s.StudyGoals(),
		Settings:      s.Settings(),
		ExportedAt:    s.now().UTC(),
	}
}

// ExportSnapshot serialises every collection as indented JSON.
func (s *Store) ExportSnapshot() string {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		s.fail(fmt.Errorf("encode export: %w", err))
		return "{}"
	}
	return string(data)
}

// ImportSnapshot replaces each collection whose key is present in text.
// Keys missing from the document keep their current contents. It returns
// false without writing anything when text is not valid JSON or is null.
func (s *Store) ImportSnapshot(text string) bool {
	if !json.Valid([]byte(text)) {
		log.Printf("store: import failed: not valid JSON")
		return false
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		// Valid JSON that is not an object carries no collections.
		return true
	}
	if doc == nil {
		log.Printf("store: import failed: document is null")
		return false
	}

	importCollection[Assignment](s, doc, KeyAssignments)
	importCollection[Subject](s, doc, KeySubjects)
	importCollection[StudySession](s, doc, KeyStudySessions)
	importCollection[StudyGoal](s, doc, KeyStudyGoals)

	if raw, ok := present(doc, KeySettings); ok {
		var settings UserSettings
		if err := json.Unmarshal(raw, &settings); err != nil {
			log.Printf("store: import %s skipped: %v", KeySettings, err)
		} else {
			s.SaveSettings(settings)
		}
	}
	return true
}

func importCollection[T any](s *Store, doc map[string]json.RawMessage, key string) {
	raw, ok := present(doc, key)
	if !ok {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("store: import %s skipped: %v", key, err)
		return
	}
	writeCollection(s, key, items)
}

func present(doc map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// Clear removes every planner key from the substrate.
func (s *Store) Clear() {
	for _, key := range allKeys {
		s.remove(key)
	}
}
