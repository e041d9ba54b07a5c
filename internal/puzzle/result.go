package puzzle

// FindResult is the outcome of searching for one word.
type FindResult struct {
	Word      string    `json:"word"`
	Found     bool      `json:"found"`
	Direction Direction `json:"direction"`
	// Coords holds one coordinate per letter, first letter first.
	Coords []Coord `json:"coords,omitempty"`
}

// NotFound returns the result for a word that is absent from the grid.
func NotFound(word string) FindResult {
	return FindResult{Word: word}
}

// Solution ties a grid to the results of searching it.
type Solution struct {
	Grid    *Grid
	Results []FindResult
	Solved  *SolvedSet
}

// IsSolved reports whether the cell belongs to any found word.
func (s *Solution) IsSolved(row, col int) bool {
	return s.Solved.Contains(Coord{Row: row, Col: col})
}

// Lookup returns the first result recorded for word.
func (s *Solution) Lookup(word string) (FindResult, bool) {
	for _, r := range s.Results {
		if r.Word == word {
			return r, true
		}
	}
	return FindResult{}, false
}

// Missing returns the words that were not found, in word-list order.
func (s *Solution) Missing() []string {
	var out []string
	for _, r := range s.Results {
		if !r.Found {
			out = append(out, r.Word)
		}
	}
	return out
}

// FoundCount returns how many results are matches.
func (s *Solution) FoundCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Found {
			n++
		}
	}
	return n
}
