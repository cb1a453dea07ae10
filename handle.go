package sskel

// Event handlers. Each handler composes the half-edge mutators into one
// atomic rewiring of the graph and the LAV rings, then asks updatePQ for the
// follow-up events of any wavefront vertex it created. Newly created
// bisector pairs stay half-linked until the next event ties them off.

// setSkeletonBorders records the three defining contour borders of a
// skeleton vertex, read off the emergent half-edge topology: the contour
// edge of the left face, and the contour edges of the two faces meeting
// across the incoming bisector.
func (b *Builder) setSkeletonBorders(v int) {
	h := b.g.verts[v].halfedge
	in := b.g.twin(h)
	b.sl.setBorderA(v, b.g.definingContourEdge(h))
	b.sl.setBorderB(v, b.g.definingContourEdge(b.g.twin(b.g.prev(in))))
	b.sl.setBorderC(v, b.g.definingContourEdge(b.g.prev(in)))
}

// constructEdgeEventNode creates the skeleton vertex of an edge event, ties
// the two seeds' outgoing bisectors to it, and splices it into the LAV in
// place of the seeds.
func (b *Builder) constructEdgeEventNode(e *event) int {
	lSeed, rSeed := e.seed0, e.seed1

	n := b.g.newVertex(e.point, e.time, true)
	b.sl.push(n)

	lOut := b.g.primaryBisector(lSeed)
	rOut := b.g.primaryBisector(rSeed)
	lIn := b.g.twin(lOut)

	b.g.setVertexHalfedge(n, lOut)
	b.g.setVertex(lOut, n)
	b.g.setVertex(rOut, n)

	b.g.setPrev(lIn, rOut)
	b.g.setNext(rOut, lIn)

	lPrev := b.sl.prevInLAV(lSeed)
	rNext := b.sl.nextInLAV(rSeed)

	b.sl.markProcessed(lSeed)
	b.sl.markProcessed(rSeed)
	b.sl.remove(lSeed)
	b.sl.remove(rSeed)

	b.sl.setPrevInLAV(n, lPrev)
	b.sl.setNextInLAV(lPrev, n)
	b.sl.setNextInLAV(n, rNext)
	b.sl.setPrevInLAV(rNext, n)

	return n
}

// handleEdgeEvent collapses the contour edge between the two seeds into a
// skeleton vertex. If the vertex's onward bisectors do not exist yet, a new
// pair is created for the emerging wavefront and follow-up events are
// enqueued. Otherwise a second event has already hit the same nascent vertex
// (a "multiple node"): only the defining borders are recorded.
func (b *Builder) handleEdgeEvent(e *event) {
	lSeed, rSeed := e.seed0, e.seed1

	n := b.constructEdgeEventNode(e)

	lOut := b.g.primaryBisector(lSeed)
	rOut := b.g.primaryBisector(rSeed)
	rIn := b.g.twin(rOut)

	if b.g.next(lOut) == nilIdx && b.g.prev(rIn) == nilIdx {
		nOut, nIn := b.g.newEdgePair()

		b.g.setPrev(rIn, nIn)
		b.g.setNext(nIn, rIn)

		b.g.setFace(nOut, b.g.face(lOut))
		b.g.setFace(nIn, b.g.face(rIn))
		b.g.setVertex(nIn, n)

		b.g.setNext(lOut, nOut)
		b.g.setPrev(nOut, lOut)

		b.setSkeletonBorders(n)
		b.updatePQ(n)
		return
	}

	b.setSkeletonBorders(n)
}

// handlePotentialSplitEvent re-checks a popped split event against the
// current wavefront. The opposite edge may have vanished or shrunk away from
// the event point, making the event stale; and a simultaneous partner split
// turns the pair into a vertex event.
func (b *Builder) handlePotentialSplitEvent(e *event) {
	oppR := b.lookupOnSLAV(e.oppositeBorder(), e)
	if oppR == nilIdx {
		Logger().Debug("stale split event", "time", e.time)
		return
	}

	if ve := b.findVertexEvent(e); ve != nil {
		b.handleVertexEvent(ve)
		return
	}
	b.handleSplitEvent(e, oppR)
}

// constructSplitEventNodes creates the two skeleton vertices of a split
// event, one per side of the split, and relinks the LAV so the single ring
// through the seed becomes two rings through the new vertices.
func (b *Builder) constructSplitEventNodes(e *event, oppR int) (int, int) {
	oppL := b.sl.prevInLAV(oppR)

	nodeA := b.g.newVertex(e.point, e.time, true)
	nodeB := b.g.newVertex(e.point, e.time, true)
	b.sl.push(nodeA)
	b.sl.push(nodeB)

	seed := e.seed0
	xOut := b.g.primaryBisector(seed)

	b.g.setVertexHalfedge(nodeA, xOut)
	// nodeB's halfedge is assigned by the caller once the new inward
	// bisector on its side exists.
	b.g.setVertex(xOut, nodeA)

	prev := b.sl.prevInLAV(seed)
	next := b.sl.nextInLAV(seed)

	b.sl.markProcessed(seed)
	b.sl.remove(seed)

	b.sl.setNextInLAV(prev, nodeA)
	b.sl.setPrevInLAV(nodeA, prev)

	b.sl.setNextInLAV(nodeA, oppR)
	b.sl.setPrevInLAV(oppR, nodeA)

	b.sl.setNextInLAV(oppL, nodeB)
	b.sl.setPrevInLAV(nodeB, oppL)

	b.sl.setNextInLAV(nodeB, next)
	b.sl.setPrevInLAV(next, nodeB)

	b.splitNodes = append(b.splitNodes, [2]int{nodeA, nodeB})

	return nodeA, nodeB
}

// handleSplitEvent splits the wavefront at the event point: the reflex
// seed's bisector ends there, two new bisector pairs carry the two split
// sides onward, and the opposite edge's face gains both new inward
// halfedges.
func (b *Builder) handleSplitEvent(e *event, oppR int) {
	seed := e.seed0

	nodeA, nodeB := b.constructSplitEventNodes(e, oppR)

	oppBorder := e.oppositeBorder()

	nOutL, nInL := b.g.newEdgePair()
	nOutR, nInR := b.g.newEdgePair()

	b.g.setVertexHalfedge(nodeB, nInL)

	xOut := b.g.primaryBisector(seed)
	xIn := b.g.twin(xOut)

	b.g.setFace(nOutL, b.g.face(xOut))
	b.g.setFace(nInL, b.g.face(oppBorder))
	b.g.setFace(nOutR, b.g.face(oppBorder))
	b.g.setFace(nInR, b.g.face(xIn))

	b.g.setVertex(nInL, nodeB)
	b.g.setVertex(nInR, nodeB)

	b.g.setNext(xOut, nOutL)
	b.g.setPrev(nOutL, xOut)

	b.g.setPrev(xIn, nInR)
	b.g.setNext(nInR, xIn)

	b.g.setNext(nInL, nOutR)
	b.g.setPrev(nOutR, nInL)

	b.setSkeletonBorders(nodeA)
	b.setSkeletonBorders(nodeB)

	b.updatePQ(nodeA)
	b.updatePQ(nodeB)
}

// constructVertexEventNodes creates the two skeleton vertices of a vertex
// event and re-pairs the LAV so that the wavefronts (a,b) and (c,d) crossing
// at the event recombine as (a,d) and (c,b).
func (b *Builder) constructVertexEventNodes(e *event) (int, int) {
	lSeed, rSeed := e.seed0, e.seed1

	nodeL := b.g.newVertex(e.point, e.time, true)
	nodeR := b.g.newVertex(e.point, e.time, true)
	b.sl.push(nodeL)
	b.sl.push(nodeR)

	lOut := b.g.primaryBisector(lSeed)
	rOut := b.g.primaryBisector(rSeed)
	lIn := b.g.twin(lOut)
	rIn := b.g.twin(rOut)

	b.g.setVertexHalfedge(nodeL, lOut)
	b.g.setVertexHalfedge(nodeR, rOut)
	b.g.setVertex(lOut, nodeL)
	b.g.setVertex(rOut, nodeR)

	b.g.setPrev(lIn, rOut)
	b.g.setNext(rOut, lIn)
	b.g.setNext(lOut, rIn)
	b.g.setPrev(rIn, lOut)

	lPrev := b.sl.prevInLAV(lSeed)
	lNext := b.sl.nextInLAV(lSeed)
	rPrev := b.sl.prevInLAV(rSeed)
	rNext := b.sl.nextInLAV(rSeed)

	b.sl.markProcessed(lSeed)
	b.sl.markProcessed(rSeed)
	b.sl.remove(lSeed)
	b.sl.remove(rSeed)

	b.sl.setPrevInLAV(nodeL, lPrev)
	b.sl.setNextInLAV(lPrev, nodeL)
	b.sl.setNextInLAV(nodeL, rNext)
	b.sl.setPrevInLAV(rNext, nodeL)

	b.sl.setPrevInLAV(nodeR, rPrev)
	b.sl.setNextInLAV(rPrev, nodeR)
	b.sl.setNextInLAV(nodeR, lNext)
	b.sl.setPrevInLAV(lNext, nodeR)

	b.splitNodes = append(b.splitNodes, [2]int{nodeL, nodeR})

	return nodeL, nodeR
}

// setupVertexEventNode flags a vertex created by a vertex event as reflex
// when the wedge of its two defining borders turns right or is collinear.
// Returns whether the vertex was flagged.
func (b *Builder) setupVertexEventNode(v, borderA, borderB int) bool {
	p := b.g.verts[b.g.source(borderA)].point
	q := b.g.verts[b.g.target(borderA)].point
	r := b.g.verts[b.g.target(borderB)].point

	if b.orc.collinear(p, q, r) || !b.orc.leftTurn(p, q, r) {
		b.sl.setReflex(v)
		return true
	}
	return false
}

// handleVertexEvent recombines two colliding reflex wavefronts. Two new
// skeleton vertices and two new bisector pairs re-pair the four incident
// offset regions across the event point.
func (b *Builder) handleVertexEvent(e *event) {
	lSeed, rSeed := e.seed0, e.seed1

	nodeL, nodeR := b.constructVertexEventNodes(e)

	nOutL, nInL := b.g.newEdgePair()
	nOutR, nInR := b.g.newEdgePair()

	sOutL := b.g.primaryBisector(lSeed)
	sInL := b.g.twin(sOutL)
	sOutR := b.g.primaryBisector(rSeed)
	sInR := b.g.twin(sOutR)

	b.g.setFace(nOutL, b.g.face(sOutL))
	b.g.setFace(nInL, b.g.face(sInR))
	b.g.setFace(nOutR, b.g.face(sOutR))
	b.g.setFace(nInR, b.g.face(sInL))

	b.g.setVertex(nInL, nodeL)
	b.g.setVertex(nInR, nodeR)

	b.g.setNext(sOutL, nOutL)
	b.g.setPrev(nOutL, sOutL)

	b.g.setPrev(sInL, nInR)
	b.g.setNext(nInR, sInL)

	b.g.setPrev(sInR, nInL)
	b.g.setNext(nInL, sInR)

	b.g.setNext(sOutR, nOutR)
	b.g.setPrev(nOutR, sOutR)

	b.g.setVertexHalfedge(nodeL, sOutL)
	b.g.setVertexHalfedge(nodeR, sOutR)

	// The defining borders of a recombined vertex come off the re-paired
	// topology: the left face's contour edge, then the contour edges of the
	// faces across the new outgoing and old incoming bisectors.
	lA := b.g.definingContourEdge(b.g.verts[nodeL].halfedge)
	lB := b.g.definingContourEdge(b.g.twin(b.g.next(b.g.verts[nodeL].halfedge)))
	lC := b.g.definingContourEdge(b.g.prev(b.g.twin(b.g.verts[nodeL].halfedge)))
	rA := b.g.definingContourEdge(b.g.verts[nodeR].halfedge)
	rB := b.g.definingContourEdge(b.g.twin(b.g.next(b.g.verts[nodeR].halfedge)))
	rC := b.g.definingContourEdge(b.g.prev(b.g.twin(b.g.verts[nodeR].halfedge)))

	b.sl.setBorderA(nodeL, lA)
	b.sl.setBorderB(nodeL, lB)
	b.sl.setBorderC(nodeL, lC)
	b.sl.setBorderA(nodeR, rA)
	b.sl.setBorderB(nodeR, rB)
	b.sl.setBorderC(nodeR, rC)

	if !b.setupVertexEventNode(nodeL, lA, lB) {
		b.setupVertexEventNode(nodeR, rA, rB)
	}

	b.updatePQ(nodeL)
	b.updatePQ(nodeR)
}

// handleSimultaneousEdgeEvent splices two adjacent wavefront vertices whose
// bisectors are coincident: the two edges between them collapse along the
// same line at the same time. The splice completes the collapse directly;
// one of the two coincident bisector pairs becomes dangling and is erased in
// finalization. No new events are enqueued.
func (b *Builder) handleSimultaneousEdgeEvent(aA, aB int) {
	outA := b.g.primaryBisector(aA)
	outB := b.g.primaryBisector(aB)
	inA := b.g.twin(outA)
	inB := b.g.twin(outB)

	b.sl.markProcessed(aA)
	b.sl.markProcessed(aB)
	b.sl.remove(aA)
	b.sl.remove(aB)

	outAPrev := b.g.prev(outA)
	inANext := b.g.next(inA)

	b.g.setNext(outB, inANext)
	b.g.setPrev(inANext, outB)
	b.g.setPrev(inB, outAPrev)
	b.g.setNext(outAPrev, inB)

	b.g.setVertex(outB, aA)

	b.danglingBisectors = append(b.danglingBisectors, outA)

	// The discarded pair may be the assigned halfedge of a split twin vertex
	// sitting at the same point; repoint such vertices at the surviving pair.
	if v := b.g.target(outA); v != nilIdx && v != aA && v != aB {
		b.g.setVertexHalfedge(v, inB)
	}
	if v := b.g.target(inA); v != nilIdx && v != aA && v != aB {
		b.g.setVertexHalfedge(v, outB)
	}
}
