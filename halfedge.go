package sskel

// The half-edge graph is cyclic, so it is modeled with stable indices into
// append-only arenas rather than ownership references. All linkage (twin,
// next, prev, target vertex, incident face) is an index; nilIdx marks a link
// that has not been assigned yet. Erased records stay in the arenas with
// their erased flag set so that ids remain dense and handles stay stable.

// nilIdx marks an unassigned arena link.
const nilIdx = -1

type vertexRec struct {
	point Point
	time  float64
	// halfedge is an incoming halfedge whose target is this vertex.
	halfedge int
	skeleton bool
	erased   bool
}

type halfedgeRec struct {
	twin int
	next int
	prev int
	face int
	// vertex is the target vertex of this halfedge.
	vertex int
	// border is set on the halfedges of the input contour.
	border bool
	erased bool
}

type faceRec struct {
	// halfedge is the contour halfedge whose offset region this face sweeps.
	// For the outer face and hole faces it is any halfedge on the ring.
	halfedge int
	// outer is set on the outer face and on hole faces; these are not offset
	// regions and do not correspond to a contour edge.
	outer bool
}

// graph is the half-edge store under construction. Vertices, halfedges and
// faces are identified by their arena index.
type graph struct {
	verts []vertexRec
	edges []halfedgeRec
	faces []faceRec
}

func (g *graph) newVertex(p Point, time float64, skeleton bool) int {
	g.verts = append(g.verts, vertexRec{
		point:    p,
		time:     time,
		halfedge: nilIdx,
		skeleton: skeleton,
	})
	return len(g.verts) - 1
}

func (g *graph) newFace(outer bool) int {
	g.faces = append(g.faces, faceRec{halfedge: nilIdx, outer: outer})
	return len(g.faces) - 1
}

// newEdgePair creates a new pair of half-edges linked as twins.
// No vertex, face, or ring linkage is assigned; callers compose the
// idempotent mutators below into atomic event updates.
func (g *graph) newEdgePair() (int, int) {
	e := len(g.edges)
	g.edges = append(g.edges,
		halfedgeRec{twin: e + 1, next: nilIdx, prev: nilIdx, face: nilIdx, vertex: nilIdx},
		halfedgeRec{twin: e, next: nilIdx, prev: nilIdx, face: nilIdx, vertex: nilIdx},
	)
	return e, e + 1
}

func (g *graph) twin(h int) int { return g.edges[h].twin }
func (g *graph) next(h int) int { return g.edges[h].next }
func (g *graph) prev(h int) int { return g.edges[h].prev }
func (g *graph) face(h int) int { return g.edges[h].face }

// target returns the target vertex of h, or nilIdx if unassigned.
func (g *graph) target(h int) int { return g.edges[h].vertex }

// source returns the target vertex of h's twin.
func (g *graph) source(h int) int { return g.edges[g.edges[h].twin].vertex }

func (g *graph) setNext(h, n int)   { g.edges[h].next = n }
func (g *graph) setPrev(h, p int)   { g.edges[h].prev = p }
func (g *graph) setFace(h, f int)   { g.edges[h].face = f }
func (g *graph) setVertex(h, v int) { g.edges[h].vertex = v }

// setVertexHalfedge assigns v's incoming halfedge. The caller maintains the
// invariant that the halfedge targets v.
func (g *graph) setVertexHalfedge(v, h int) { g.verts[v].halfedge = h }

// primaryBisector returns the outgoing bisector halfedge on which v's
// wavefront advances: the successor of v's incoming halfedge.
func (g *graph) primaryBisector(v int) int {
	return g.edges[g.verts[v].halfedge].next
}

// definingContourEdge returns the contour halfedge whose supporting line
// defines the offset region h lies inside: the contour halfedge of h's face.
func (g *graph) definingContourEdge(h int) int {
	f := g.edges[h].face
	if f == nilIdx {
		return nilIdx
	}
	return g.faces[f].halfedge
}

// eraseEdgePair marks both halves of h's pair erased. Ring neighbors must
// already have been relinked around the pair.
func (g *graph) eraseEdgePair(h int) {
	g.edges[h].erased = true
	g.edges[g.edges[h].twin].erased = true
}

func (g *graph) eraseVertex(v int) {
	g.verts[v].erased = true
}

// incomingAround calls fn for every halfedge targeting v, starting from v's
// assigned halfedge. Iteration stops early if fn returns false. All incoming
// halfedges must have their next link assigned (the circulation steps
// h -> twin(next(h))).
func (g *graph) incomingAround(v int, fn func(h int) bool) {
	start := g.verts[v].halfedge
	if start == nilIdx {
		return
	}
	h := start
	for {
		if !fn(h) {
			return
		}
		h = g.edges[g.edges[h].next].twin
		if h == start {
			return
		}
	}
}
