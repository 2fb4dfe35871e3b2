package store

func (s *Store) StudySessions() []StudySession {
	return readCollection[StudySession](s, KeyStudySessions)
}

// SaveStudySession appends session. Sessions are never revised once saved.
func (s *Store) SaveStudySession(session StudySession) {
	writeCollection(s, KeyStudySessions, append(s.StudySessions(), session))
}
