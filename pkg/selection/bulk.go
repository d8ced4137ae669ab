package selection

// Toggler flips the completion state of a task.
type Toggler interface {
	Toggle(id string)
}

// Deleter removes a task.
type Deleter interface {
	Delete(id string)
}

// CompleteSelected toggles every selected task, in selection order, then
// clears the set. It returns how many tasks were toggled.
func (s *Set) CompleteSelected(t Toggler) int {
	ids := s.IDs()
	for _, id := range ids {
		t.Toggle(id)
	}
	s.Clear()
	return len(ids)
}

// DeleteSelected deletes every selected task, in selection order, then
// clears the set. It returns how many deletes were issued.
func (s *Set) DeleteSelected(d Deleter) int {
	ids := s.IDs()
	for _, id := range ids {
		d.Delete(id)
	}
	s.Clear()
	return len(ids)
}
