package search

import "github.com/domino14/oska/state"

type frontierEntry struct {
	node *state.Node
	f    float64
	seq  uint64
}

// frontier is a min-heap over the total order (f, h, seq). seq is the
// insertion sequence number, so equal f and h pop first-in first-out.
type frontier []*frontierEntry

func (fr frontier) Len() int { return len(fr) }

func (fr frontier) Less(i, j int) bool {
	a, b := fr[i], fr[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.node.H != b.node.H {
		return a.node.H < b.node.H
	}
	return a.seq < b.seq
}

func (fr frontier) Swap(i, j int) { fr[i], fr[j] = fr[j], fr[i] }

func (fr *frontier) Push(x any) {
	*fr = append(*fr, x.(*frontierEntry))
}

func (fr *frontier) Pop() any {
	old := *fr
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*fr = old[:n-1]
	return e
}
