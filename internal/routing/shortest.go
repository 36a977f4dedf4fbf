package routing

import "math"

// Path is the result of FindShortestPath. An unreachable target has no nodes
// and an infinite distance.
type Path struct {
	Nodes    []string
	Distance float64
}

// Found reports whether the path connects start to end.
func (p Path) Found() bool {
	return !math.IsInf(p.Distance, 1) && len(p.Nodes) > 0
}

// FindShortestPath runs Dijkstra with a linear scan for the closest unvisited
// node (O(V²)). Among equally close nodes the first in insertion order is
// taken. The scan stops once end is selected or nothing reachable remains.
func FindShortestPath(start, end string, g *Graph) Path {
	if start == end {
		return Path{Nodes: []string{start}, Distance: 0}
	}
	if g == nil || !g.Has(start) || !g.Has(end) {
		return Path{Distance: math.Inf(1)}
	}

	nodes := g.nodes
	dist := make(map[string]float64, len(nodes))
	prev := make(map[string]string, len(nodes))
	visited := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		dist[n] = math.Inf(1)
	}
	dist[start] = 0

	for {
		current, found := "", false
		best := math.Inf(1)
		for _, n := range nodes {
			if visited[n] {
				continue
			}
			if dist[n] < best {
				best = dist[n]
				current, found = n, true
			}
		}
		if !found || current == end {
			break
		}
		visited[current] = true
		for _, e := range g.edges[current] {
			if alt := dist[current] + e.Weight; alt < dist[e.To] {
				dist[e.To] = alt
				prev[e.To] = current
			}
		}
	}

	if math.IsInf(dist[end], 1) {
		return Path{Distance: math.Inf(1)}
	}
	var rev []string
	for at := end; ; at = prev[at] {
		rev = append(rev, at)
		if at == start {
			break
		}
	}
	out := make([]string, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return Path{Nodes: out, Distance: dist[end]}
}
