package graph

import "github.com/google/uuid"

// Component is an ordered list of Person-ids forming one weakly-connected
// component of the live subgraph (a "twig" in §2/§4.D terminology). Order
// is insertion order of the breadth-first scan, stable across runs for a
// fixed adjacency iteration order.
type Component []uuid.UUID

// WeaklyConnectedComponents partitions the given live node-ids into
// weakly-connected components, treating every Relationship as undirected
// for reachability purposes, grounded on graph_model.py's use of
// networkx.weakly_connected_components.
func WeaklyConnectedComponents(g *Graph, liveIDs []uuid.UUID) []Component {
	live := make(map[uuid.UUID]bool, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = true
	}

	visited := make(map[uuid.UUID]bool, len(liveIDs))
	var components []Component

	for _, start := range liveIDs {
		if visited[start] {
			continue
		}
		var comp Component
		queue := []uuid.UUID{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)

			neighbors := append(g.Successors(cur), g.Predecessors(cur)...)
			for _, n := range neighbors {
				if !live[n] || visited[n] {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
		components = append(components, comp)
	}

	return components
}
