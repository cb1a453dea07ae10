package sskel

// Skeleton is the completed half-edge graph: the original contour vertices
// and halfedges, the skeleton vertices tagged with their propagation time,
// the interior bisector halfedges, and one face per contour edge plus the
// exterior faces. Handles index into stable arenas and remain valid for the
// lifetime of the Skeleton.
type Skeleton struct {
	g graph
}

// Vertex is a handle to a skeleton or contour vertex.
type Vertex struct {
	sk  *Skeleton
	idx int
}

// Halfedge is a handle to a contour or bisector halfedge.
type Halfedge struct {
	sk  *Skeleton
	idx int
}

// Face is a handle to a face of the skeleton graph.
type Face struct {
	sk  *Skeleton
	idx int
}

// Vertices returns all live vertices, contour and skeleton.
func (s *Skeleton) Vertices() []Vertex {
	var out []Vertex
	for i := range s.g.verts {
		if !s.g.verts[i].erased {
			out = append(out, Vertex{sk: s, idx: i})
		}
	}
	return out
}

// Halfedges returns all live halfedges, contour and bisector.
func (s *Skeleton) Halfedges() []Halfedge {
	var out []Halfedge
	for i := range s.g.edges {
		if !s.g.edges[i].erased {
			out = append(out, Halfedge{sk: s, idx: i})
		}
	}
	return out
}

// Faces returns all faces: one offset region per contour edge, plus the
// outer face and one face per hole ring.
func (s *Skeleton) Faces() []Face {
	out := make([]Face, 0, len(s.g.faces))
	for i := range s.g.faces {
		out = append(out, Face{sk: s, idx: i})
	}
	return out
}

// SkeletonVertexCount returns the number of interior skeleton vertices.
func (s *Skeleton) SkeletonVertexCount() int {
	n := 0
	for i := range s.g.verts {
		if s.g.verts[i].skeleton && !s.g.verts[i].erased {
			n++
		}
	}
	return n
}

// ContourVertexCount returns the number of input contour vertices.
func (s *Skeleton) ContourVertexCount() int {
	n := 0
	for i := range s.g.verts {
		if !s.g.verts[i].skeleton && !s.g.verts[i].erased {
			n++
		}
	}
	return n
}

// BisectorCount returns the number of interior bisector edges
// (halfedge pairs).
func (s *Skeleton) BisectorCount() int {
	n := 0
	for i := range s.g.edges {
		if !s.g.edges[i].border && !s.g.edges[i].erased {
			n++
		}
	}
	return n / 2
}

// ID returns the vertex's dense arena id.
func (v Vertex) ID() int { return v.idx }

// Point returns the vertex position.
func (v Vertex) Point() Point { return v.sk.g.verts[v.idx].point }

// Time returns the propagation time at which the vertex was created.
// Contour vertices have time 0.
func (v Vertex) Time() float64 { return v.sk.g.verts[v.idx].time }

// IsSkeleton reports whether this is an interior skeleton vertex.
func (v Vertex) IsSkeleton() bool { return v.sk.g.verts[v.idx].skeleton }

// IsContour reports whether this is an input contour vertex.
func (v Vertex) IsContour() bool { return !v.sk.g.verts[v.idx].skeleton }

// Halfedge returns an incoming halfedge targeting this vertex.
func (v Vertex) Halfedge() Halfedge {
	return Halfedge{sk: v.sk, idx: v.sk.g.verts[v.idx].halfedge}
}

// Degree returns the number of halfedges targeting this vertex.
func (v Vertex) Degree() int {
	n := 0
	v.sk.g.incomingAround(v.idx, func(int) bool {
		n++
		return true
	})
	return n
}

// Incoming calls fn for every halfedge targeting this vertex. Iteration
// stops early if fn returns false.
func (v Vertex) Incoming(fn func(Halfedge) bool) {
	v.sk.g.incomingAround(v.idx, func(h int) bool {
		return fn(Halfedge{sk: v.sk, idx: h})
	})
}

// ID returns the halfedge's dense arena id.
func (h Halfedge) ID() int { return h.idx }

// Twin returns the opposite halfedge.
func (h Halfedge) Twin() Halfedge { return Halfedge{sk: h.sk, idx: h.sk.g.edges[h.idx].twin} }

// Next returns the successor around the incident face.
func (h Halfedge) Next() Halfedge { return Halfedge{sk: h.sk, idx: h.sk.g.edges[h.idx].next} }

// Prev returns the predecessor around the incident face.
func (h Halfedge) Prev() Halfedge { return Halfedge{sk: h.sk, idx: h.sk.g.edges[h.idx].prev} }

// Face returns the incident face.
func (h Halfedge) Face() Face { return Face{sk: h.sk, idx: h.sk.g.edges[h.idx].face} }

// Target returns the vertex the halfedge points at.
func (h Halfedge) Target() Vertex { return Vertex{sk: h.sk, idx: h.sk.g.edges[h.idx].vertex} }

// Source returns the vertex the halfedge leaves.
func (h Halfedge) Source() Vertex {
	return Vertex{sk: h.sk, idx: h.sk.g.source(h.idx)}
}

// IsContourEdge reports whether the halfedge lies on the input contour.
func (h Halfedge) IsContourEdge() bool { return h.sk.g.edges[h.idx].border }

// IsBisector reports whether the halfedge is an interior bisector.
func (h Halfedge) IsBisector() bool { return !h.sk.g.edges[h.idx].border }

// DefiningContourEdge returns the contour halfedge whose supporting line
// defines the offset region this halfedge lies inside. For a contour
// halfedge that is the halfedge itself.
func (h Halfedge) DefiningContourEdge() Halfedge {
	return Halfedge{sk: h.sk, idx: h.sk.g.definingContourEdge(h.idx)}
}

// ID returns the face's dense arena id.
func (f Face) ID() int { return f.idx }

// IsOuter reports whether this is the outer face or a hole face rather than
// a contour edge's offset region.
func (f Face) IsOuter() bool { return f.sk.g.faces[f.idx].outer }

// ContourEdge returns the contour halfedge whose offset region this face
// sweeps. For the outer and hole faces it returns a halfedge on the ring.
func (f Face) ContourEdge() Halfedge {
	return Halfedge{sk: f.sk, idx: f.sk.g.faces[f.idx].halfedge}
}

// Boundary returns the face's boundary ring in order, starting from its
// representative halfedge.
func (f Face) Boundary() []Halfedge {
	var out []Halfedge
	start := f.sk.g.faces[f.idx].halfedge
	h := start
	for {
		out = append(out, Halfedge{sk: f.sk, idx: h})
		h = f.sk.g.edges[h].next
		if h == start {
			break
		}
	}
	return out
}
