// Package routing holds a distribution-network graph and a shortest-path
// search over it. Nothing in the quote path depends on it yet; it exists for
// multi-hub distribution.
package routing

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Edge is a directed, weighted connection.
type Edge struct {
	To     string
	Weight float64
}

// Graph is a directed adjacency list that remembers insertion order of both
// nodes and edges. Iteration order decides ties in FindShortestPath.
type Graph struct {
	nodes []string
	index map[string]struct{}
	edges map[string][]Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]struct{}),
		edges: make(map[string][]Edge),
	}
}

// AddNode registers a node; repeated calls are no-ops.
func (g *Graph) AddNode(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = struct{}{}
	g.nodes = append(g.nodes, name)
}

// AddEdge adds or re-weights the edge from -> to.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	if from == "" || to == "" {
		return errors.New("routing: empty node name")
	}
	if weight < 0 || math.IsNaN(weight) {
		return fmt.Errorf("routing: edge %s->%s has invalid weight %v", from, to, weight)
	}
	g.AddNode(from)
	g.AddNode(to)
	for i, e := range g.edges[from] {
		if e.To == to {
			g.edges[from][i].Weight = weight
			return nil
		}
	}
	g.edges[from] = append(g.edges[from], Edge{To: to, Weight: weight})
	return nil
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Neighbors returns the outgoing edges of a node in insertion order.
func (g *Graph) Neighbors(name string) []Edge {
	out := make([]Edge, len(g.edges[name]))
	copy(out, g.edges[name])
	return out
}

// Has reports whether the node exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// LoadGraph reads a YAML mapping of node -> {neighbor: weight}. Document order
// is kept, so ties resolve the same way on every load.
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	return ParseGraph(data)
}

// ParseGraph decodes the YAML form accepted by LoadGraph.
func ParseGraph(data []byte) (*Graph, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph YAML: %w", err)
	}
	g := NewGraph()
	if len(doc.Content) == 0 {
		return g, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("parsing graph YAML: top level must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		from := root.Content[i].Value
		g.AddNode(from)
		adj := root.Content[i+1]
		if adj.Kind == yaml.ScalarNode && adj.Tag == "!!null" {
			continue
		}
		if adj.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parsing graph YAML: neighbors of %q must be a mapping", from)
		}
		for j := 0; j+1 < len(adj.Content); j += 2 {
			var w float64
			if err := adj.Content[j+1].Decode(&w); err != nil {
				return nil, fmt.Errorf("parsing graph YAML: weight %s->%s: %w", from, adj.Content[j].Value, err)
			}
			if err := g.AddEdge(from, adj.Content[j].Value, w); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
