package network

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

type Node struct {
	PlayerID       string
	X              float64
	Y              float64
	Touches        int
	PassCount      int
	PassesReceived int
	Betweenness    float64
	Eigenvector    float64
}

type Edge struct {
	Source    string
	Target    string
	PassCount int
}

type Metrics struct {
	Nodes           int
	Edges           int
	TotalPasses     int
	Density         float64
	AvgShortestPath opt.Value[float64]
}

// Network is a directed pass graph of one team over one or more matches.
// Nodes are sorted by player ID; edges by pass count, then endpoints.
type Network struct {
	TeamID  string
	Nodes   []Node
	Edges   []Edge
	Metrics Metrics
}

type touchAcc struct {
	sumX, sumY float64
	n          int
	passes     int
	received   int
}

// Build derives the pass network of teamID from events. Fewer than two
// players exchanging a completed pass is ErrEmptyNetwork.
func Build(events []event.Event, teamID string) (Network, error) {
	touches := make(map[string]*touchAcc)
	acc := func(id string) *touchAcc {
		a, ok := touches[id]
		if !ok {
			a = &touchAcc{}
			touches[id] = a
		}
		return a
	}
	counts := make(map[[2]string]int)

	for _, e := range events {
		if e.TeamID != teamID || e.PlayerID == "" || !e.OnBall() {
			continue
		}
		a := acc(e.PlayerID)
		a.sumX += e.X
		a.sumY += e.Y
		a.n++

		if !e.IsCompletedPass() {
			continue
		}
		a.passes++
		recipient, ok := e.RecipientID.Get()
		if !ok || recipient == "" || recipient == e.PlayerID {
			continue
		}
		counts[[2]string{e.PlayerID, recipient}]++

		r := acc(recipient)
		r.received++
		endX, okX := e.EndX.Get()
		endY, okY := e.EndY.Get()
		if okX && okY {
			r.sumX += endX
			r.sumY += endY
			r.n++
		}
	}

	if len(counts) == 0 {
		return Network{}, analytics.ErrEmptyNetwork
	}

	ids := make([]string, 0, len(touches))
	for id, a := range touches {
		if a.n == 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	nw := Network{TeamID: teamID, Nodes: make([]Node, 0, len(ids)), Edges: make([]Edge, 0, len(counts))}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		a := touches[id]
		index[id] = i
		nw.Nodes = append(nw.Nodes, Node{
			PlayerID:       id,
			X:              a.sumX / float64(a.n),
			Y:              a.sumY / float64(a.n),
			Touches:        a.n,
			PassCount:      a.passes,
			PassesReceived: a.received,
		})
	}

	total := 0
	for k, c := range counts {
		if _, ok := index[k[1]]; !ok {
			// recipient without a located touch is not a node
			continue
		}
		nw.Edges = append(nw.Edges, Edge{Source: k[0], Target: k[1], PassCount: c})
		total += c
	}
	if len(nw.Edges) == 0 {
		return Network{}, analytics.ErrEmptyNetwork
	}
	slices.SortFunc(nw.Edges, func(a, b Edge) int {
		if c := cmp.Compare(b.PassCount, a.PassCount); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})

	g := newGraph(len(nw.Nodes), nw.Edges, index)
	between := g.betweenness()
	eigen := g.eigenvector()
	for i := range nw.Nodes {
		nw.Nodes[i].Betweenness = between[i]
		nw.Nodes[i].Eigenvector = eigen[i]
	}

	n := len(nw.Nodes)
	nw.Metrics = Metrics{
		Nodes:           n,
		Edges:           len(nw.Edges),
		TotalPasses:     total,
		Density:         float64(len(nw.Edges)) / float64(n*(n-1)),
		AvgShortestPath: g.avgShortestPath(),
	}
	return nw, nil
}
