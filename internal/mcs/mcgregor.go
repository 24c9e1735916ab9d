// Package mcs implements McGregor's branch-and-bound backtrack algorithm
// for finding maximum common subgraphs between two labeled directed
// graphs. It is consulted by internal/merger but knows nothing about
// Persons or Relationships: callers supply opaque node identifiers plus
// compatibility predicates, grounded on the teacher's convention of
// keeping algorithmic packages free of domain imports (cf.
// internal/repository's separation from internal/domain).
package mcs

import "github.com/google/uuid"

// Node is the opaque node identifier type the engine operates over.
type Node = uuid.UUID

// Graph is a directed simple graph: a fixed node set plus directed-edge
// membership.
type Graph struct {
	Nodes   []Node
	HasEdge func(u, w Node) bool // true if a directed edge u->w exists
}

// NodePred reports whether u (in g1) and v (in g2) are compatible
// candidates for assignment. A nil NodePred means every pair is
// compatible and optional null-matching is disabled (§4.C Setup).
type NodePred func(u, v Node) bool

// EdgePred reports whether the edge (u1,u2) in g1 and its candidate image
// (v1,v2) in g2 are compatible.
type EdgePred func(u1, u2, v1, v2 Node) bool

// Result is the outcome of Run: every maximal common subgraph tying for
// the best score, plus the bound counters that decided it (§4.C Output).
type Result struct {
	MaximalCommonSubgraphs []map[Node]Node
	EdgesInMaximalSubgraph int
	MaximalNodesRemoved    int
	MaximalEdgesRemoved    int
}

// Run executes the McGregor backtrack search matching g1 into g2. Callers
// should pass the smaller graph as g1 to minimize the branching factor
// (§4.D); Run itself does not reorder its arguments, so the match maps it
// returns are always keyed g1-node -> g2-node.
func Run(g1, g2 Graph, nodePred NodePred, edgePred EdgePred) *Result {
	s := &search{
		g1:                 g1,
		g2:                 g2,
		nodePred:           nodePred,
		edgePred:           edgePred,
		candidates:         make(map[Node][]Node, len(g1.Nodes)),
		forcedNull:         make(map[Node]bool, len(g1.Nodes)),
		nullMatchesAllowed: nodePred != nil,
		usedG2:             make(map[Node]bool, len(g2.Nodes)),
		assign:             make(map[Node]Node, len(g1.Nodes)),
		bestNodesRemoved:   len(g1.Nodes) + 1,
		bestEdgesRemoved:   1 << 30,
	}

	for _, u := range g1.Nodes {
		var cands []Node
		for _, v := range g2.Nodes {
			if nodePred == nil || nodePred(u, v) {
				cands = append(cands, v)
			}
		}
		s.candidates[u] = cands
		s.forcedNull[u] = len(cands) == 0
	}

	s.assignNext(0, 0, 0, 0)

	return &Result{
		MaximalCommonSubgraphs: s.results,
		EdgesInMaximalSubgraph: s.bestEdgesAdded,
		MaximalNodesRemoved:    s.bestNodesRemoved,
		MaximalEdgesRemoved:    s.bestEdgesRemoved,
	}
}

type search struct {
	g1, g2             Graph
	nodePred           NodePred
	edgePred           EdgePred
	candidates         map[Node][]Node // C[u]
	forcedNull         map[Node]bool
	nullMatchesAllowed bool

	usedG2 map[Node]bool
	assign map[Node]Node

	bestEdgesAdded   int
	bestNodesRemoved int
	bestEdgesRemoved int
	results          []map[Node]Node
}

// assignNext processes g1.Nodes[idx..], given the cumulative edge/node
// counters accrued by the branch so far.
func (s *search) assignNext(idx, edgesAdded, edgesRemoved, nodesRemoved int) {
	if idx == len(s.g1.Nodes) {
		s.leaf(edgesAdded, edgesRemoved, nodesRemoved)
		return
	}
	u := s.g1.Nodes[idx]

	if !s.forcedNull[u] {
		for _, v := range s.candidates[u] {
			if s.usedG2[v] {
				continue
			}
			added, removed := s.edgeDelta(u, v)
			if edgesRemoved+removed > s.bestEdgesRemoved {
				continue // bound violation: prune
			}
			s.assign[u] = v
			s.usedG2[v] = true
			s.assignNext(idx+1, edgesAdded+added, edgesRemoved+removed, nodesRemoved)
			delete(s.assign, u)
			s.usedG2[v] = false
		}
	}

	if s.forcedNull[u] || (s.nullMatchesAllowed && nodesRemoved+1 <= s.bestNodesRemoved) {
		s.assignNext(idx+1, edgesAdded, edgesRemoved, nodesRemoved+1)
	}
}

// edgeDelta computes, for the tentative assignment u -> v, how many of u's
// edges to already-assigned g1 nodes are preserved ("added") versus broken
// ("removed") by this assignment (§4.C Recursion steps 1-2).
func (s *search) edgeDelta(u, v Node) (added, removed int) {
	for w, vPrime := range s.assign {
		if s.g1.HasEdge(u, w) {
			if s.g2.HasEdge(v, vPrime) && (s.edgePred == nil || s.edgePred(u, w, v, vPrime)) {
				added++
			} else {
				removed++
			}
		}
		if s.g1.HasEdge(w, u) {
			if s.g2.HasEdge(vPrime, v) && (s.edgePred == nil || s.edgePred(w, u, vPrime, v)) {
				added++
			} else {
				removed++
			}
		}
	}
	return added, removed
}

// leaf records a complete assignment against the running best (§4.C Leaf).
func (s *search) leaf(edgesAdded, edgesRemoved, nodesRemoved int) {
	switch {
	case edgesAdded > s.bestEdgesAdded || nodesRemoved < s.bestNodesRemoved:
		s.bestEdgesAdded = edgesAdded
		s.bestNodesRemoved = nodesRemoved
		s.results = []map[Node]Node{cloneAssignment(s.assign)}
	case edgesAdded == s.bestEdgesAdded && nodesRemoved == s.bestNodesRemoved:
		s.results = append(s.results, cloneAssignment(s.assign))
	}
	if edgesRemoved < s.bestEdgesRemoved {
		s.bestEdgesRemoved = edgesRemoved
	}
}

func cloneAssignment(m map[Node]Node) map[Node]Node {
	out := make(map[Node]Node, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
