package cmdtree

// siblingSet indexes the commands sharing one parent by name and keeps them
// in registration order. A nil *siblingSet is an empty set for lookups.
type siblingSet struct {
	index map[string]int // name -> arena slot
	order []int
}

func newSiblingSet() *siblingSet {
	return &siblingSet{index: make(map[string]int)}
}

func (s *siblingSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *siblingSet) lookup(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	slot, ok := s.index[name]
	return slot, ok
}

func (s *siblingSet) add(name string, slot int) {
	s.index[name] = slot
	s.order = append(s.order, slot)
}

func (s *siblingSet) remove(name string) {
	if s == nil {
		return
	}
	slot, ok := s.index[name]
	if !ok {
		return
	}
	delete(s.index, name)
	for i, v := range s.order {
		if v == slot {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *siblingSet) orderOrNil() []int {
	if s == nil {
		return nil
	}
	return s.order
}
