package store

func assignmentID(a Assignment) string { return a.ID }

// Assignments returns a snapshot of every stored assignment.
func (s *Store) Assignments() []Assignment {
	return readCollection[Assignment](s, KeyAssignments)
}

// SaveAssignment upserts a by id. Replacing an existing record refreshes
// its UpdatedAt; a new record is appended as given.
func (s *Store) SaveAssignment(a Assignment) {
	items := s.Assignments()
	for i := range items {
		if items[i].ID == a.ID {
			a.UpdatedAt = s.now().UTC()
			items[i] = a
			writeCollection(s, KeyAssignments, items)
			return
		}
	}
	writeCollection(s, KeyAssignments, append(items, a))
}

func (s *Store) DeleteAssignment(id string) {
	writeCollection(s, KeyAssignments, without(s.Assignments(), id, assignmentID))
}

// GetAssignment looks an assignment up by id in the current snapshot.
func (s *Store) GetAssignment(id string) (Assignment, bool) {
	for _, a := range s.Assignments() {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}
