package world

import "math/rand"

// openSet is a set of linear cell ids supporting O(1) membership, removal
// and uniform random sampling.
type openSet struct {
	ids []int
	pos []int // pos[id] is the index of id in ids, -1 when absent
}

func newOpenSet(size int) *openSet {
	pos := make([]int, size)
	for i := range pos {
		pos[i] = -1
	}
	return &openSet{
		ids: make([]int, 0, size),
		pos: pos,
	}
}

func (s *openSet) add(id int) {
	if s.pos[id] >= 0 {
		return
	}
	s.pos[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *openSet) has(id int) bool {
	return id >= 0 && id < len(s.pos) && s.pos[id] >= 0
}

// remove swaps the last element into the removed slot.
func (s *openSet) remove(id int) {
	i := s.pos[id]
	if i < 0 {
		return
	}
	last := s.ids[len(s.ids)-1]
	s.ids[i] = last
	s.pos[last] = i
	s.ids = s.ids[:len(s.ids)-1]
	s.pos[id] = -1
}

func (s *openSet) len() int {
	return len(s.ids)
}

func (s *openSet) random(rng *rand.Rand) int {
	return s.ids[rng.Intn(len(s.ids))]
}
