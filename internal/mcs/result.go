package mcs

// Ambiguous reports whether more than one maximal common subgraph tied for
// the best score (§7 MultipleMaximalMatches).
func (r *Result) Ambiguous() bool {
	return len(r.MaximalCommonSubgraphs) > 1
}

// Empty reports whether no consistent assignment was found at all.
func (r *Result) Empty() bool {
	return len(r.MaximalCommonSubgraphs) == 0
}

// Unique returns the sole maximal common subgraph and true, or a nil map
// and false if the result is empty or ambiguous.
func (r *Result) Unique() (map[Node]Node, bool) {
	if len(r.MaximalCommonSubgraphs) != 1 {
		return nil, false
	}
	return r.MaximalCommonSubgraphs[0], true
}

// MatchedNodeCount returns how many g1-nodes received a non-null
// assignment in a given maximal common subgraph.
func MatchedNodeCount(m map[Node]Node) int {
	return len(m)
}
