package puzzle

// SolvedSet accumulates the coordinates of found words. It keeps insertion
// order and ignores coordinates it already holds. It only ever grows.
//
// A SolvedSet is not safe for concurrent writers; callers searching in
// parallel merge into it from a single goroutine.
type SolvedSet struct {
	order []Coord
	index map[Coord]struct{}
}

// NewSolvedSet creates an empty accumulator.
func NewSolvedSet() *SolvedSet {
	return &SolvedSet{index: make(map[Coord]struct{})}
}

// Add records coords. Coordinates already present keep their original
// position.
func (s *SolvedSet) Add(coords ...Coord) {
	if s.index == nil {
		s.index = make(map[Coord]struct{})
	}
	for _, c := range coords {
		if _, ok := s.index[c]; ok {
			continue
		}
		s.index[c] = struct{}{}
		s.order = append(s.order, c)
	}
}

// Contains reports whether c has been recorded. A nil set contains nothing.
func (s *SolvedSet) Contains(c Coord) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[c]
	return ok
}

// Len returns the number of distinct coordinates recorded.
func (s *SolvedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Coords returns a copy of the recorded coordinates in insertion order.
func (s *SolvedSet) Coords() []Coord {
	if s == nil {
		return nil
	}
	out := make([]Coord, len(s.order))
	copy(out, s.order)
	return out
}
