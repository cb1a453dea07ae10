package sskel

import "container/heap"

type eventKind uint8

const (
	// edgeEventKind: two adjacent wavefront vertices meet and the contour
	// edge between them collapses.
	edgeEventKind eventKind = iota
	// splitEventKind: a reflex wavefront crashes into a non-adjacent edge
	// and splits the shrinking polygon in two.
	splitEventKind
	// vertexEventKind: two split events coincide; four reflex wavefronts
	// recombine.
	vertexEventKind
)

func (k eventKind) String() string {
	switch k {
	case edgeEventKind:
		return "edge"
	case splitEventKind:
		return "split"
	case vertexEventKind:
		return "vertex"
	}
	return "unknown"
}

// event is the tagged sum of the three event variants. borderA/B/C are the
// contour halfedges whose supporting lines meet at the event:
//
//   - edge event: the three distinct defining borders of the two seeds
//   - split event: the reflex seed's two borders plus the opposite border
//     (borderC is the opposite border)
//   - vertex event: the two distinct borders plus the first shared border;
//     borderD holds the second shared border
//
// The excluded flag is mutable because the priority queue is lazy: superseded
// events are dropped when popped, not removed from the heap.
type event struct {
	id       int
	kind     eventKind
	borderA  int
	borderB  int
	borderC  int
	borderD  int
	seed0    int
	seed1    int
	time     float64
	point    Point
	excluded bool
}

// oppositeBorder is the border split by a reflex wavefront.
func (e *event) oppositeBorder() int { return e.borderC }

// eventHeap is a min-heap of predicted events keyed by propagation time.
// Equal times break ties on event id so that draining is deterministic;
// correctness does not depend on the tie order (coincident events are
// pre-resolved at enqueue time).
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].id < h[j].id
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*event))
}

func (h *eventHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

func (h *eventHeap) push(e *event) {
	heap.Push(h, e)
}

func (h *eventHeap) pop() *event {
	if len(*h) == 0 {
		return nil
	}
	return heap.Pop(h).(*event)
}
