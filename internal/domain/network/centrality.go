package network

import (
	"container/heap"
	"math"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const (
	distEpsilon    = 1e-12
	eigenMaxIter   = 200
	eigenTolerance = 1e-10
)

type arc struct {
	to     int
	weight float64
}

type graph struct {
	n   int
	out [][]arc
	sym [][]float64
}

func newGraph(n int, edges []Edge, index map[string]int) *graph {
	g := &graph{n: n, out: make([][]arc, n), sym: make([][]float64, n)}
	for i := range g.sym {
		g.sym[i] = make([]float64, n)
	}
	for _, e := range edges {
		s, t := index[e.Source], index[e.Target]
		g.out[s] = append(g.out[s], arc{to: t, weight: float64(e.PassCount)})
		g.sym[s][t] += float64(e.PassCount)
		g.sym[t][s] += float64(e.PassCount)
	}
	return g
}

// betweenness runs Brandes over Dijkstra with distance 1/passCount, so
// frequent links are short. Scores are normalized by (n-1)(n-2).
func (g *graph) betweenness() []float64 {
	cb := make([]float64, g.n)
	for s := 0; s < g.n; s++ {
		dist := make([]float64, g.n)
		sigma := make([]float64, g.n)
		pred := make([][]int, g.n)
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		dist[s], sigma[s] = 0, 1

		order := make([]int, 0, g.n)
		done := make([]bool, g.n)
		pq := &distQueue{{node: s}}
		for pq.Len() > 0 {
			item := heap.Pop(pq).(distItem)
			v := item.node
			if done[v] || item.dist > dist[v]+distEpsilon {
				continue
			}
			done[v] = true
			order = append(order, v)
			for _, a := range g.out[v] {
				alt := dist[v] + 1/a.weight
				switch {
				case alt < dist[a.to]-distEpsilon:
					dist[a.to] = alt
					sigma[a.to] = sigma[v]
					pred[a.to] = append(pred[a.to][:0], v)
					heap.Push(pq, distItem{node: a.to, dist: alt})
				case math.Abs(alt-dist[a.to]) <= distEpsilon:
					sigma[a.to] += sigma[v]
					pred[a.to] = append(pred[a.to], v)
				}
			}
		}

		delta := make([]float64, g.n)
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	if g.n > 2 {
		norm := float64((g.n - 1) * (g.n - 2))
		for i := range cb {
			cb[i] /= norm
		}
	} else {
		clear(cb)
	}
	return cb
}

// eigenvector runs shifted power iteration on the symmetrized weights and
// returns an L2-normalized vector. The shift keeps bipartite graphs from
// oscillating without changing the leading eigenvector.
func (g *graph) eigenvector() []float64 {
	x := make([]float64, g.n)
	for i := range x {
		x[i] = 1 / math.Sqrt(float64(g.n))
	}
	next := make([]float64, g.n)
	for iter := 0; iter < eigenMaxIter; iter++ {
		for i := 0; i < g.n; i++ {
			sum := x[i]
			for j := 0; j < g.n; j++ {
				sum += g.sym[i][j] * x[j]
			}
			next[i] = sum
		}
		norm := l2(next)
		if norm == 0 {
			return make([]float64, g.n)
		}
		diff := 0.0
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < eigenTolerance {
			break
		}
	}

	// isolated nodes only keep the shift term; zero them
	for i := 0; i < g.n; i++ {
		isolated := true
		for j := 0; j < g.n; j++ {
			if g.sym[i][j] != 0 {
				isolated = false
				break
			}
		}
		if isolated {
			x[i] = 0
		}
	}
	if norm := l2(x); norm > 0 {
		for i := range x {
			x[i] /= norm
		}
	}
	return x
}

// avgShortestPath is the mean hop count over ordered reachable pairs.
func (g *graph) avgShortestPath() opt.Value[float64] {
	var sum, pairs int
	for s := 0; s < g.n; s++ {
		hops := make([]int, g.n)
		for i := range hops {
			hops[i] = -1
		}
		hops[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, a := range g.out[v] {
				if hops[a.to] >= 0 {
					continue
				}
				hops[a.to] = hops[v] + 1
				sum += hops[a.to]
				pairs++
				queue = append(queue, a.to)
			}
		}
	}
	if pairs == 0 {
		return opt.Absent[float64]()
	}
	return opt.Present(float64(sum) / float64(pairs))
}

func l2(v []float64) float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	return math.Sqrt(ss)
}

type distItem struct {
	node int
	dist float64
}

type distQueue []distItem

func (q distQueue) Len() int { return len(q) }
func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)   { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
