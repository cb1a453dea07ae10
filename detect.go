package sskel

// definingBorders returns the three distinct defining contour edges of the
// adjacent wavefront vertices l and r. As long as vertices are processed in
// order the two share exactly one defining border, leaving three distinct
// contour edges between them.
func (b *Builder) definingBorders(l, r int) (int, int, int) {
	lAL := b.sl.borderA(l)
	lAR := b.sl.borderB(l)
	lBL := b.sl.borderA(r)
	lBR := b.sl.borderB(r)

	third := lBL
	if lAL == lBL || lAR == lBL {
		third = lBR
	}
	return lAL, lAR, third
}

// findEdgeEvent tests for an edge event between the three contour edges
// defining the adjacent vertices l and r. Events in the past of a skeleton
// seed are physically impossible and rejected. Returns nil when no event
// exists.
func (b *Builder) findEdgeEvent(l, r int) *event {
	ba, bb, bc := b.definingBorders(l, r)
	if ba == bb || bb == bc {
		return nil
	}
	if !b.orc.eventExists(ba, bb, bc) {
		return nil
	}
	if b.g.verts[l].skeleton && b.orc.isNewEventInPast(ba, bb, bc, b.g.verts[l].time) {
		return nil
	}
	if b.g.verts[r].skeleton && b.orc.isNewEventInPast(ba, bb, bc, b.g.verts[r].time) {
		return nil
	}

	e := b.newEvent(edgeEventKind, ba, bb, bc, nilIdx, l, r)
	b.setEventTimeAndPoint(e)
	return e
}

// collectSplitEvents tests the reflex wavefront emerging from v against the
// other contour edges in search of split events.
//
// The edges adjacent to the wavefront borders (prev and next on both sides)
// are excluded from the search. For a strictly simple polygon without
// antennas the reflex wavefront cannot split them, and testing them anyway
// can produce an illegal split event, so the exclusion is required.
func (b *Builder) collectSplitEvents(v int) {
	lBorder := b.sl.borderA(v)
	rBorder := b.sl.borderB(v)

	// Contour adjacency comes from the exterior ring, which events never
	// rewire. The exterior ring chains the contour backward, so its next is
	// the preceding contour edge.
	lBorderP := b.g.twin(b.g.next(b.g.twin(lBorder)))
	lBorderN := b.g.twin(b.g.prev(b.g.twin(lBorder)))
	rBorderP := b.g.twin(b.g.next(b.g.twin(rBorder)))
	rBorderN := b.g.twin(b.g.prev(b.g.twin(rBorder)))

	for _, opp := range b.contourHalfedges {
		if opp == lBorder || opp == rBorder ||
			opp == lBorderP || opp == lBorderN ||
			opp == rBorderP || opp == rBorderN {
			continue
		}
		b.collectSplitEvent(v, lBorder, rBorder, opp)
	}
}

// collectSplitEvent tests whether the reflex wavefront (lBorder, rBorder)
// seeded at v splits opp, and enqueues the event if so.
//
// When opp's endpoint is itself reflex, the event is also recorded on the
// seed's reflex-split back-index: two split events colliding at a reflex
// endpoint form a vertex event, and the back-index is what lets the second
// event find the first when it is popped.
func (b *Builder) collectSplitEvent(v, lBorder, rBorder, opp int) {
	if !b.orc.eventExists(lBorder, rBorder, opp) {
		return
	}
	if b.g.verts[v].skeleton && b.orc.isNewEventInPast(lBorder, rBorder, opp, b.g.verts[v].time) {
		return
	}

	e := b.newEvent(splitEventKind, lBorder, rBorder, opp, nilIdx, v, v)
	b.setEventTimeAndPoint(e)

	if b.sl.isReflex(b.g.target(opp)) {
		b.sl.addReflexSplit(v, e)
	}

	b.enqueue(e)
}

// findVertexEvent searches for a split event simultaneous with e0 among the
// reflex-split records of the reflex endpoints of e0's opposite border. Two
// such events recombining four reflex wavefronts form a vertex event.
func (b *Builder) findVertexEvent(e0 *event) *event {
	opp := e0.oppositeBorder()

	ov1 := b.g.target(opp)
	if b.sl.isReflex(ov1) {
		if e := b.findVertexEventAt(e0, ov1); e != nil {
			return e
		}
	}
	ov2 := b.g.source(opp)
	if b.sl.isReflex(ov2) {
		if e := b.findVertexEventAt(e0, ov2); e != nil {
			return e
		}
	}
	return nil
}

func (b *Builder) findVertexEventAt(e0 *event, ov int) *event {
	for _, e1 := range b.sl.reflexSplits(ov) {
		if e1.excluded || !b.orc.eventsSimultaneous(e0, e1) {
			continue
		}

		e0.excluded = true
		e1.excluded = true

		d1, d2, q1, q2, ok := sortTwoDistinctTwoEqual(
			[3]int{e0.borderA, e0.borderB, e0.borderC},
			[3]int{e1.borderA, e1.borderB, e1.borderC},
		)
		if !ok {
			continue
		}

		// Two triples confirm the four-way concurrence.
		if b.orc.eventExists(d1, d2, q1) && b.orc.eventExists(q1, q2, d1) {
			ev := b.newEvent(vertexEventKind, d1, d2, q1, q2, e0.seed0, e1.seed0)
			ev.time, ev.point = e0.time, e0.point
			Logger().Debug("vertex event", "time", ev.time, "x", ev.point.X, "y", ev.point.Y)
			return ev
		}
	}
	return nil
}

// sortTwoDistinctTwoEqual partitions the six borders of two simultaneous
// split events into the two borders appearing in both triples and the two
// appearing in exactly one. ok is false when the triples do not overlap in
// exactly two borders.
func sortTwoDistinctTwoEqual(x, y [3]int) (d1, d2, q1, q2 int, ok bool) {
	inY := func(h int) bool { return h == y[0] || h == y[1] || h == y[2] }
	inX := func(h int) bool { return h == x[0] || h == x[1] || h == x[2] }

	var distinct, equal []int
	for _, h := range x {
		if inY(h) {
			equal = append(equal, h)
		} else {
			distinct = append(distinct, h)
		}
	}
	for _, h := range y {
		if !inX(h) {
			distinct = append(distinct, h)
		}
	}
	if len(distinct) != 2 || len(equal) != 2 {
		return nilIdx, nilIdx, nilIdx, nilIdx, false
	}
	return distinct[0], distinct[1], equal[0], equal[1], true
}

// lookupOnSLAV finds the active vertex at the far end of the current offset
// portion of the contour edge opp, or nilIdx when the split event is stale:
// the opposite edge vanished, or the event point slid off its offset zone.
func (b *Builder) lookupOnSLAV(opp int, e *event) int {
	for _, v := range b.sl.active {
		if b.sl.prevInLAV(v) == nilIdx || b.sl.nextInLAV(v) == nilIdx {
			continue
		}
		if b.sl.borderA(v) != opp {
			continue
		}
		prevBorder := b.sl.borderA(b.sl.prevInLAV(v))
		nextBorder := b.sl.borderB(v)
		if b.orc.isEventInsideOffsetZone(e.borderA, e.borderB, opp, prevBorder, nextBorder) {
			return v
		}
	}
	return nilIdx
}
