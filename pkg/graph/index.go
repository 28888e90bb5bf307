package graph

// Index maps every vertex to its neighbors. It is derived once from a Graph
// and never mutated.
//
// An edge (u, v) appends v to u's list and u to v's list, so neighbor order
// follows edge-list order. Search algorithms relax neighbors in this order,
// which makes it part of the tie-breaking behavior.
type Index[ID comparable] struct {
	neighbors map[ID][]ID
}

// NewIndex builds the adjacency index of g in O(N + M).
func NewIndex[ID comparable](g *Graph[ID]) *Index[ID] {
	idx := &Index[ID]{neighbors: make(map[ID][]ID, g.N())}
	g.EachEdge(func(_ int, e Edge[ID]) {
		idx.neighbors[e.U] = append(idx.neighbors[e.U], e.V)
		idx.neighbors[e.V] = append(idx.neighbors[e.V], e.U)
	})
	return idx
}

// Neighbors returns the neighbors of id. The returned slice must not be modified.
func (x *Index[ID]) Neighbors(id ID) []ID { return x.neighbors[id] }

// Degree returns the number of edges incident to id, parallel edges included.
func (x *Index[ID]) Degree(id ID) int { return len(x.neighbors[id]) }
