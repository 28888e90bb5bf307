package search

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// entry is one open-set item. seq increases with every push and breaks ties
// between equal f values in push order.
type entry[ID comparable] struct {
	id  ID
	f   float64
	seq uint64
}

// frontier is the A* open set: a min-heap ordered by (f, seq).
type frontier[ID comparable] struct {
	pq  *priorityqueue.Queue
	seq uint64
}

func newFrontier[ID comparable]() *frontier[ID] {
	return &frontier[ID]{pq: priorityqueue.NewWith(byPriority[ID])}
}

func byPriority[ID comparable](a, b interface{}) int {
	x, y := a.(entry[ID]), b.(entry[ID])
	switch {
	case x.f < y.f:
		return -1
	case x.f > y.f:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}
	return 0
}

func (q *frontier[ID]) push(id ID, f float64) {
	q.pq.Enqueue(entry[ID]{id: id, f: f, seq: q.seq})
	q.seq++
}

func (q *frontier[ID]) pop() (entry[ID], bool) {
	v, ok := q.pq.Dequeue()
	if !ok {
		return entry[ID]{}, false
	}
	return v.(entry[ID]), true
}
