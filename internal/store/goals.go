package store

func goalID(g StudyGoal) string { return g.ID }

func (s *Store) StudyGoals() []StudyGoal {
	return readCollection[StudyGoal](s, KeyStudyGoals)
}

func (s *Store) SaveStudyGoal(g StudyGoal) {
	items, _ := upsert(s.StudyGoals(), g, goalID)
	writeCollection(s, KeyStudyGoals, items)
}

func (s *Store) DeleteStudyGoal(id string) {
	writeCollection(s, KeyStudyGoals, without(s.StudyGoals(), id, goalID))
}
