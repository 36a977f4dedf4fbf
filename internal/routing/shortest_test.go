package routing

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func mustEdge(t *testing.T, g *Graph, from, to string, w float64) {
	t.Helper()
	if err := g.AddEdge(from, to, w); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
}

func hubGraph(t *testing.T) *Graph {
	g := NewGraph()
	mustEdge(t, g, "Lagos", "Ibadan", 130)
	mustEdge(t, g, "Lagos", "Benin", 320)
	mustEdge(t, g, "Ibadan", "Ilorin", 170)
	mustEdge(t, g, "Ilorin", "Abuja", 500)
	mustEdge(t, g, "Benin", "Lokoja", 250)
	mustEdge(t, g, "Lokoja", "Abuja", 300)
	mustEdge(t, g, "Abuja", "Kano", 430)
	return g
}

func TestFindShortestPath(t *testing.T) {
	p := FindShortestPath("Lagos", "Kano", hubGraph(t))
	if !p.Found() {
		t.Fatalf("expected a route")
	}
	want := []string{"Lagos", "Ibadan", "Ilorin", "Abuja", "Kano"}
	if !reflect.DeepEqual(p.Nodes, want) || p.Distance != 1230 {
		t.Fatalf("got %v (%v)", p.Nodes, p.Distance)
	}
}

func TestFindShortestPathTieBreakFollowsInsertionOrder(t *testing.T) {
	g := NewGraph()
	mustEdge(t, g, "A", "B", 1)
	mustEdge(t, g, "A", "C", 1)
	mustEdge(t, g, "B", "D", 1)
	mustEdge(t, g, "C", "D", 1)
	if p := FindShortestPath("A", "D", g); !reflect.DeepEqual(p.Nodes, []string{"A", "B", "D"}) {
		t.Fatalf("got %v", p.Nodes)
	}

	g = NewGraph()
	mustEdge(t, g, "A", "C", 1)
	mustEdge(t, g, "A", "B", 1)
	mustEdge(t, g, "B", "D", 1)
	mustEdge(t, g, "C", "D", 1)
	if p := FindShortestPath("A", "D", g); !reflect.DeepEqual(p.Nodes, []string{"A", "C", "D"}) {
		t.Fatalf("got %v", p.Nodes)
	}
}

func TestFindShortestPathDisconnected(t *testing.T) {
	g := NewGraph()
	mustEdge(t, g, "A", "B", 3)
	mustEdge(t, g, "C", "D", 4)
	p := FindShortestPath("A", "D", g)
	if p.Found() || !math.IsInf(p.Distance, 1) || len(p.Nodes) != 0 {
		t.Fatalf("expected no route, got %+v", p)
	}
	// directed: no way back
	if p := FindShortestPath("B", "A", g); p.Found() {
		t.Fatalf("expected no reverse route, got %+v", p)
	}
}

func TestFindShortestPathUnknownNodes(t *testing.T) {
	g := hubGraph(t)
	if p := FindShortestPath("Atlantis", "Kano", g); p.Found() {
		t.Fatalf("unknown start should not route")
	}
	if p := FindShortestPath("Lagos", "Atlantis", g); p.Found() {
		t.Fatalf("unknown end should not route")
	}
	if p := FindShortestPath("Lagos", "Lagos", g); !p.Found() || p.Distance != 0 || len(p.Nodes) != 1 {
		t.Fatalf("same start and end: %+v", p)
	}
	if p := FindShortestPath("A", "B", nil); p.Found() {
		t.Fatalf("nil graph should not route")
	}
}

func TestAddEdgeRejectsBadWeights(t *testing.T) {
	g := NewGraph()
	if err := g.AddEdge("A", "B", -1); err == nil {
		t.Fatalf("expected error for negative weight")
	}
	if err := g.AddEdge("A", "B", math.NaN()); err == nil {
		t.Fatalf("expected error for NaN weight")
	}
	if err := g.AddEdge("", "B", 1); err == nil {
		t.Fatalf("expected error for empty name")
	}
	mustEdge(t, g, "A", "B", 5)
	mustEdge(t, g, "A", "B", 2)
	if n := g.Neighbors("A"); len(n) != 1 || n[0].Weight != 2 {
		t.Fatalf("expected re-weighted single edge, got %+v", n)
	}
}

func TestLoadGraphKeepsDocumentOrder(t *testing.T) {
	body := `
Lagos:
  Sagamu: 60
  Ibadan: 130
Sagamu:
  Ibadan: 70
Ibadan:
  Ilorin: 170
Ilorin:
`
	path := filepath.Join(t.TempDir(), "hubs.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGraph(path)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"Lagos", "Sagamu", "Ibadan", "Ilorin"}) {
		t.Fatalf("node order %v", got)
	}
	// Lagos->Ibadan direct (130) ties with Lagos->Sagamu->Ibadan (130); the
	// direct edge sets Ibadan first and the later equal path does not replace it.
	p := FindShortestPath("Lagos", "Ilorin", g)
	if !reflect.DeepEqual(p.Nodes, []string{"Lagos", "Ibadan", "Ilorin"}) || p.Distance != 300 {
		t.Fatalf("got %+v", p)
	}
}

func TestParseGraphErrors(t *testing.T) {
	bad := []string{
		"- a\n- b\n",
		"A: 5\n",
		"A:\n  B: far\n",
		"A:\n  B: -3\n",
	}
	for _, b := range bad {
		if _, err := ParseGraph([]byte(b)); err == nil {
			t.Errorf("expected error for %q", b)
		}
	}
	g, err := ParseGraph(nil)
	if err != nil || len(g.Nodes()) != 0 {
		t.Fatalf("empty document: %v %v", g, err)
	}
}
