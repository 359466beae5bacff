package dag

import "slices"

// tarjanState carries Tarjan's bookkeeping for one run over a node subset.
type tarjanState struct {
	adj     *adjacency
	member  map[int]bool
	index   map[int]int
	lowlink map[int]int
	onStack map[int]bool
	stack   []int
	next    int
	sccs    [][]int
}

// cycles returns the strongly connected components within nodes that
// contain a cycle: components of two or more nodes, or a single node with a
// self-loop. Members are sorted and components are ordered by their first
// member.
func (a *adjacency) cycles(nodes []int) [][]int {
	st := &tarjanState{
		adj:     a,
		member:  make(map[int]bool, len(nodes)),
		index:   make(map[int]int, len(nodes)),
		lowlink: make(map[int]int, len(nodes)),
		onStack: make(map[int]bool, len(nodes)),
	}
	for _, n := range nodes {
		st.member[n] = true
	}
	for _, n := range nodes {
		if _, visited := st.index[n]; !visited {
			st.strongConnect(n)
		}
	}

	var out [][]int
	for _, scc := range st.sccs {
		if len(scc) == 1 && !slices.Contains(a.outgoing[scc[0]], scc[0]) {
			continue
		}
		slices.Sort(scc)
		out = append(out, scc)
	}
	slices.SortFunc(out, func(x, y []int) int { return x[0] - y[0] })
	return out
}

func (st *tarjanState) strongConnect(v int) {
	st.index[v] = st.next
	st.lowlink[v] = st.next
	st.next++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range st.adj.outgoing[v] {
		if !st.member[w] {
			continue
		}
		if _, visited := st.index[w]; !visited {
			st.strongConnect(w)
			st.lowlink[v] = min(st.lowlink[v], st.lowlink[w])
		} else if st.onStack[w] {
			st.lowlink[v] = min(st.lowlink[v], st.index[w])
		}
	}

	if st.lowlink[v] != st.index[v] {
		return
	}
	var scc []int
	for {
		w := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		st.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	st.sccs = append(st.sccs, scc)
}
