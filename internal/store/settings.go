package store

import (
	"encoding/json"
	"fmt"
)

// DefaultSettings is used whenever no settings have been stored yet or the
// stored value cannot be parsed.
func DefaultSettings() UserSettings {
	return UserSettings{
		Theme: "dark",
		Notifications: NotificationSettings{
			Assignments:    true,
			StudyReminders: true,
			Goals:          true,
		},
		StudyPreferences: StudyPreferences{
			PomodoroLength:   25,
			ShortBreakLength: 5,
			LongBreakLength:  15,
		},
		DefaultView:  "dashboard",
		TimeFormat:   "12h",
		WeekStartsOn: 0,
		Language:     "en",
	}
}

func (s *Store) Settings() UserSettings {
	raw, ok := s.getRaw(KeySettings)
	if !ok {
		return DefaultSettings()
	}
	var settings UserSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.fail(fmt.Errorf("parse %s: %w", KeySettings, err))
		return DefaultSettings()
	}
	return settings
}

func (s *Store) SaveSettings(settings UserSettings) {
	data, err := json.Marshal(settings)
	if err != nil {
		s.fail(fmt.Errorf("encode %s: %w", KeySettings, err))
		return
	}
	s.setRaw(KeySettings, string(data))
}
