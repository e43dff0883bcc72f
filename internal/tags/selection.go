package tags

import "slices"

// Selection is an ordered set of chosen tag names. Insertion order is
// display order.
type Selection struct {
	names []string
}

// NewSelection returns a selection seeded with names, duplicates dropped.
func NewSelection(names ...string) *Selection {
	s := &Selection{}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add appends name unless it is already present. Reports whether it was added.
func (s *Selection) Add(name string) bool {
	if name == "" || s.Contains(name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

// Remove deletes name, keeping the order of the rest.
func (s *Selection) Remove(name string) bool {
	idx := slices.Index(s.names, name)
	if idx < 0 {
		return false
	}
	s.names = slices.Delete(s.names, idx, idx+1)
	return true
}

// RemoveLast drops the most recently added name.
func (s *Selection) RemoveLast() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	last := s.names[len(s.names)-1]
	s.names = s.names[:len(s.names)-1]
	return last, true
}

func (s *Selection) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

func (s *Selection) Len() int {
	return len(s.names)
}

// Names returns a copy of the selected names in display order.
func (s *Selection) Names() []string {
	return append([]string(nil), s.names...)
}

// Resolve maps names to candidate ids. Names without a candidate are dropped.
func Resolve(names []string, candidates []Tag) []int {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		for _, tag := range candidates {
			if tag.Name == name {
				ids = append(ids, tag.ID)
				break
			}
		}
	}
	return ids
}
