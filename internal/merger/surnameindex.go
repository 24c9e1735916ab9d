package merger

import "sort"

// TwigID identifies one previously-registered twig (weakly-connected
// component) tracked by the Merger across a run.
type TwigID int

// SurnameIndex maps a standardized surname to every registered twig that
// contains at least one Person bearing that surname, grounded on the
// surname_index state described for twig candidate selection ("surname
// -> set of twig ids"). This is a refinement
// over the original prototype's birth_merge.py, which compared every new
// component against every previously processed one unconditionally.
type SurnameIndex struct {
	bySurname map[string]map[TwigID]bool
}

func newSurnameIndex() *SurnameIndex {
	return &SurnameIndex{bySurname: make(map[string]map[TwigID]bool)}
}

// Register adds a twig's surnames to the index.
func (idx *SurnameIndex) Register(id TwigID, surnames []string) {
	for _, s := range surnames {
		if s == "" {
			continue
		}
		if idx.bySurname[s] == nil {
			idx.bySurname[s] = make(map[TwigID]bool)
		}
		idx.bySurname[s][id] = true
	}
}

// Candidates returns every registered twig id sharing at least one
// surname with the given list, deduplicated and sorted by registration
// order for determinism.
func (idx *SurnameIndex) Candidates(surnames []string) []TwigID {
	seen := make(map[TwigID]bool)
	for _, s := range surnames {
		for id := range idx.bySurname[s] {
			seen[id] = true
		}
	}
	out := make([]TwigID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
