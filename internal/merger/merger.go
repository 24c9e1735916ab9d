// Package merger implements the incremental twig reconciliation pipeline:
// it groups the live subgraph into weakly-connected components
// ("twigs"), finds structural alignments between same-surname twigs with
// internal/mcs, and merges matched Persons when the alignment is large
// enough and unique. Grounded on original_source/birth_merge.py's main()
// loop, restructured around explicit result types and the teacher's
// handler-struct orchestration idiom (internal/command/merge_commands.go).
package merger

import (
	"io"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/NumerousHats/twig-graft/internal/domain"
	"github.com/NumerousHats/twig-graft/internal/graph"
	"github.com/NumerousHats/twig-graft/internal/mcs"
	"github.com/NumerousHats/twig-graft/internal/oracle"
)

// Summary totals what a Run did, returned for a verbose CLI report.
type Summary struct {
	TwigsRegistered  int
	MatchesAttempted int
	MatchesApplied   int
	PersonsMerged    int
	PairsSkipped     int
}

// Merger owns one Graph for the duration of a run: single owner, no
// locking.
type Merger struct {
	graph   *graph.Graph
	options Options
	logger  *log.Logger

	index    *SurnameIndex
	twigs    map[TwigID]*twig
	nextTwig TwigID
	summary  Summary
}

type twig struct {
	id      TwigID
	members []uuid.UUID
}

// New constructs a Merger over g. A nil logger discards all log output.
func New(g *graph.Graph, options Options, logger *log.Logger) *Merger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Merger{
		graph:   g,
		options: options,
		logger:  logger,
		index:   newSurnameIndex(),
		twigs:   make(map[TwigID]*twig),
	}
}

// Run executes the full driver procedure over the Merger's Graph and
// returns a Summary of what happened. It mutates the Graph in place.
func (m *Merger) Run() (Summary, error) {
	if err := m.options.Validate(); err != nil {
		return Summary{}, err
	}
	if err := m.graph.CheckInvariants(); err != nil {
		return Summary{}, err
	}

	queue := m.buildQueue()
	for len(queue) > 0 {
		members := queue[0]
		queue = queue[1:]

		// §4.D step 2a: "pop a twig T; if |T| < minimum_match_size,
		// terminate (the remaining twigs are all smaller)". That
		// justification only holds when the queue pops largest-first:
		// sizes are then non-increasing, so once one twig falls below
		// the floor, every twig still queued is at least as small and
		// can never itself produce a qualifying match, as the new twig
		// or as a future candidate. Under the default
		// QueueSmallestFirst the popped sizes climb, not fall, so the
		// same short-circuit would abandon the run just as it reaches
		// the twigs most likely to matter; see DESIGN.md.
		if m.options.Order == QueueLargestFirst && len(members) < m.options.MinimumMatchSize {
			break
		}
		m.processTwig(members)
	}

	return m.summary, nil
}

// buildQueue computes the live weakly-connected components and orders
// them per Options.Order.
func (m *Merger) buildQueue() [][]uuid.UUID {
	components := graph.WeaklyConnectedComponents(m.graph, m.graph.LivePersonIDs())
	queue := make([][]uuid.UUID, len(components))
	for i, c := range components {
		queue[i] = []uuid.UUID(c)
	}
	ascending := m.options.Order == QueueSmallestFirst
	sort.Slice(queue, func(i, j int) bool {
		if ascending {
			return len(queue[i]) < len(queue[j])
		}
		return len(queue[i]) > len(queue[j])
	})
	return queue
}

// processTwig tries to fold one freshly-popped component into an
// already-registered twig, or registers it as a new one if no compatible
// target exists.
func (m *Merger) processTwig(members []uuid.UUID) {
	surnames := surnamesOf(m.graph, members)
	candidates := m.index.Candidates(surnames)
	for _, candidateID := range candidates {
		candidate, ok := m.twigs[candidateID]
		if !ok {
			continue
		}
		m.summary.MatchesAttempted++
		merged, applied := m.tryMatch(candidate, members)
		if applied {
			candidate.members = merged
			m.index.Register(candidate.id, surnamesOf(m.graph, candidate.members))
			m.summary.MatchesApplied++
			return
		}
	}

	// A twig that was compared against at least one same-surname
	// candidate and still didn't merge can, once it is itself below the
	// minimum match size, never produce a qualifying match against any
	// future twig either: the best any alignment with it can reach is
	// its own size. Registering it would only cost later comparisons
	// for no possible benefit, so only a never-before-seen surname
	// (nothing to compare against yet) or a twig that clears the floor
	// on its own gets added to the index.
	if len(candidates) > 0 && len(members) < m.options.MinimumMatchSize {
		return
	}
	m.registerTwig(members, surnames)
}

func (m *Merger) registerTwig(members []uuid.UUID, surnames []string) {
	t := &twig{id: m.nextTwig, members: members}
	m.twigs[t.id] = t
	m.index.Register(t.id, surnames)
	m.nextTwig++
	m.summary.TwigsRegistered++
}

// tryMatch attempts to align incoming against candidate's live members
// with internal/mcs and, if the alignment is unique and large enough,
// performs the merge. It returns candidate's updated member list and
// whether the merge was applied.
func (m *Merger) tryMatch(candidate *twig, incoming []uuid.UUID) ([]uuid.UUID, bool) {
	a, b := candidate.members, incoming
	flipped := false
	if len(b) < len(a) {
		a, b = b, a
		flipped = true
	}

	nodePred, edgePred := m.buildPredicates()
	result := mcs.Run(
		mcs.Graph{Nodes: a, HasEdge: m.hasEdge},
		mcs.Graph{Nodes: b, HasEdge: m.hasEdge},
		nodePred, edgePred,
	)

	match, ok := result.Unique()
	if !ok {
		if result.Empty() {
			m.logger.Printf("merger: no compatible alignment between twigs, skipping")
		} else {
			m.logger.Printf("merger: ambiguous alignment (%d tied matches), skipping", len(result.MaximalCommonSubgraphs))
		}
		m.summary.PairsSkipped++
		return candidate.members, false
	}
	if mcs.MatchedNodeCount(match) < m.options.MinimumMatchSize {
		m.logger.Printf("merger: alignment too small (%d < %d), skipping", mcs.MatchedNodeCount(match), m.options.MinimumMatchSize)
		m.summary.PairsSkipped++
		return candidate.members, false
	}

	// Normalize to incoming-node -> candidate-node regardless of which
	// side played g1, remembering which way the match was flipped.
	normalized := make(map[uuid.UUID]uuid.UUID, len(match))
	// mcs.Run keys its match g1-node -> g2-node; g1 is the candidate
	// unless flipped.
	if flipped {
		for iNode, cNode := range match {
			normalized[iNode] = cNode
		}
	} else {
		for cNode, iNode := range match {
			normalized[iNode] = cNode
		}
	}

	memberSet := make(map[uuid.UUID]bool, len(candidate.members)+len(incoming))
	for _, id := range candidate.members {
		memberSet[id] = true
	}
	for incomingID, candidateID := range normalized {
		mergedID, ok := m.mergePair(incomingID, candidateID)
		if !ok {
			// This pair's merge failed pre-flight checks; leave both
			// Persons live and unmerged, independent of every other
			// pair in this alignment (all-or-nothing per pair).
			memberSet[incomingID] = true
			continue
		}
		delete(memberSet, candidateID)
		memberSet[mergedID] = true
	}
	for _, id := range incoming {
		if _, wasMatched := normalized[id]; !wasMatched {
			memberSet[id] = true
		}
	}

	out := make([]uuid.UUID, 0, len(memberSet))
	for id := range memberSet {
		out = append(out, id)
	}
	return out, true
}

func (m *Merger) hasEdge(u, w uuid.UUID) bool {
	_, ok := m.graph.RelationshipBetween(u, w)
	return ok
}

func (m *Merger) buildPredicates() (mcs.NodePred, mcs.EdgePred) {
	nodePred := func(u, v mcs.Node) bool {
		pu, ok1 := m.graph.Person(u)
		pv, ok2 := m.graph.Person(v)
		if !ok1 || !ok2 {
			return false
		}
		return !oracle.PersonMismatch(&pu, &pv, m.graph.HasLiveSpouse)
	}
	edgePred := func(u1, u2, v1, v2 mcs.Node) bool {
		ru, ok1 := m.graph.RelationshipBetween(u1, u2)
		rv, ok2 := m.graph.RelationshipBetween(v1, v2)
		if !ok1 || !ok2 {
			return false
		}
		return oracle.RelationTypeEqual(&ru, &rv)
	}
	return nodePred, edgePred
}

// mergePair performs the two-phase pre-flight/commit merge (§4.D's merge
// procedure, §5, §8 scenario 5): Person.Merge re-runs the compatibility
// oracle before any graph state changes, as a guard against the node
// predicate's verdict having gone stale since the alignment was
// computed; planRewire then tentatively folds every shared-neighbor edge
// without touching the graph, so that if any shared Relationship.Merge
// conflicts, this pair is abandoned with the graph byte-for-byte
// unchanged, and the next pair in the alignment is unaffected.
func (m *Merger) mergePair(id1, id2 uuid.UUID) (uuid.UUID, bool) {
	p1, ok1 := m.graph.Person(id1)
	p2, ok2 := m.graph.Person(id2)
	if !ok1 || !ok2 || p1.Merged || p2.Merged {
		m.summary.PairsSkipped++
		return uuid.Nil, false
	}

	mismatch := func(a, b *domain.Person) bool {
		return oracle.PersonMismatch(a, b, m.graph.HasLiveSpouse)
	}
	pm, r1, r2, err := p1.Merge(&p2, mismatch)
	if err != nil {
		m.logger.Printf("merger: skipping merge of %s/%s: %v", id1, id2, err)
		m.summary.PairsSkipped++
		return uuid.Nil, false
	}

	plan, err := m.planRewire(id1, id2, pm.ID)
	if err != nil {
		m.logger.Printf("merger: aborting merge of %s/%s: %v", id1, id2, err)
		m.summary.PairsSkipped++
		return uuid.Nil, false
	}

	p1.Merged = true
	p2.Merged = true
	m.graph.SetPerson(p1)
	m.graph.SetPerson(p2)
	m.graph.AddPerson(pm)
	_ = m.graph.AddRelationship(r1)
	_ = m.graph.AddRelationship(r2)
	plan.apply(m.graph)

	m.summary.PersonsMerged++
	return pm.ID, true
}

// surnamesOf collects the distinct standardized (or raw, if unstandardized)
// surnames carried by any Name on any Person in members.
func surnamesOf(g *graph.Graph, members []uuid.UUID) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range members {
		p, ok := g.Person(id)
		if !ok {
			continue
		}
		for _, n := range p.Names {
			s := n.EffectiveSurname()
			if s != "" && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
