package store

func subjectID(sub Subject) string { return sub.ID }

func (s *Store) Subjects() []Subject {
	return readCollection[Subject](s, KeySubjects)
}

// SaveSubject upserts sub by id. No timestamp is stamped here.
func (s *Store) SaveSubject(sub Subject) {
	items, _ := upsert(s.Subjects(), sub, subjectID)
	writeCollection(s, KeySubjects, items)
}

// DeleteSubject removes the subject only. Assignments that reference it by
// name are left as they are.
func (s *Store) DeleteSubject(id string) {
	writeCollection(s, KeySubjects, without(s.Subjects(), id, subjectID))
}

// SubjectByName returns the first subject whose name equals name.
func (s *Store) SubjectByName(name string) (Subject, bool) {
	for _, sub := range s.Subjects() {
		if sub.Name == name {
			return sub, true
		}
	}
	return Subject{}, false
}
