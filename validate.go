package sskel

import "fmt"

// validateGraph checks the finished half-edge graph for self-consistency:
// twin involution, ring closure of next/prev, face agreement along rings,
// assigned targets, and the Euler relation. A failure means the build went
// wrong somewhere; the caller discards the result.
func (b *Builder) validateGraph() error {
	return b.g.validate()
}

func (g *graph) validate() error {
	activeEdges := 0
	for h := range g.edges {
		e := &g.edges[h]
		if e.erased {
			continue
		}
		activeEdges++

		if e.twin == h || e.twin == nilIdx || g.edges[e.twin].erased {
			return fmt.Errorf("halfedge %d: bad twin", h)
		}
		if g.edges[e.twin].twin != h {
			return fmt.Errorf("halfedge %d: twin not an involution", h)
		}
		if e.next == nilIdx || e.prev == nilIdx {
			return fmt.Errorf("halfedge %d: dangling ring link", h)
		}
		if g.edges[e.next].erased || g.edges[e.prev].erased {
			return fmt.Errorf("halfedge %d: ring link to erased halfedge", h)
		}
		if g.edges[e.next].prev != h {
			return fmt.Errorf("halfedge %d: next/prev mismatch", h)
		}
		if g.edges[e.prev].next != h {
			return fmt.Errorf("halfedge %d: prev/next mismatch", h)
		}
		if e.face == nilIdx {
			return fmt.Errorf("halfedge %d: no face", h)
		}
		if g.edges[e.next].face != e.face {
			return fmt.Errorf("halfedge %d: face changes along ring", h)
		}
		if e.vertex == nilIdx || g.verts[e.vertex].erased {
			return fmt.Errorf("halfedge %d: bad target vertex", h)
		}
	}

	activeVerts := 0
	for v := range g.verts {
		if g.verts[v].erased {
			continue
		}
		activeVerts++

		h := g.verts[v].halfedge
		if h == nilIdx || g.edges[h].erased {
			return fmt.Errorf("vertex %d: bad halfedge", v)
		}
		if g.edges[h].vertex != v {
			return fmt.Errorf("vertex %d: assigned halfedge does not target it", v)
		}
	}

	// Every face ring must close, and every face must be reachable from its
	// representative halfedge.
	activeFaces := 0
	for f := range g.faces {
		rep := g.faces[f].halfedge
		if rep == nilIdx {
			return fmt.Errorf("face %d: no representative halfedge", f)
		}
		activeFaces++

		h := rep
		// A face ring covering the whole halfedge arena means it never closed.
		for steps := 0; ; steps++ {
			if steps > len(g.edges) {
				return fmt.Errorf("face %d: boundary does not close", f)
			}
			if g.edges[h].face != f {
				return fmt.Errorf("face %d: boundary halfedge %d on face %d", f, h, g.edges[h].face)
			}
			h = g.edges[h].next
			if h == rep {
				break
			}
		}
	}

	// Euler relation for a connected planar graph. Hole rings carry their
	// own exterior faces, which keeps every face a topological disk.
	v := activeVerts
	e := activeEdges / 2
	if v-e+activeFaces != 2 {
		return fmt.Errorf("euler relation violated: V=%d E=%d F=%d", v, e, activeFaces)
	}

	return nil
}
