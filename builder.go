package sskel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContour is returned by ConstructSkeleton when no contour was entered.
	ErrNoContour = errors.New("sskel: no contour entered")

	// ErrOrientation is returned by EnterContour when the outer contour does
	// not wind counter-clockwise or a hole does not wind clockwise.
	ErrOrientation = errors.New("sskel: wrong contour orientation")

	// ErrDegenerateContour is returned by EnterContour for contours with
	// fewer than three distinct vertices or coincident consecutive vertices.
	ErrDegenerateContour = errors.New("sskel: degenerate contour")

	// ErrInvalidSkeleton is returned by ConstructSkeleton when the finished
	// graph fails the half-edge validity check. No partial result is returned.
	ErrInvalidSkeleton = errors.New("sskel: skeleton failed validation")

	// ErrConstructed is returned when a spent builder is reused.
	ErrConstructed = errors.New("sskel: builder already constructed a skeleton")
)

const defaultEps = 1e-9

// BuilderOption configures a Builder during creation.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	eps      float64
	maxSteps int
	validate bool
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		eps:      defaultEps,
		maxSteps: 0,
		validate: true,
	}
}

// WithEps sets the epsilon used by the geometric oracle's predicates.
// The default is 1e-9, suitable for coordinates of roughly unit scale.
func WithEps(eps float64) BuilderOption {
	return func(o *builderOptions) {
		o.eps = eps
	}
}

// WithMaxSteps bounds the number of processed events. Zero (the default)
// means unbounded. Exceeding the bound aborts construction with an error.
func WithMaxSteps(n int) BuilderOption {
	return func(o *builderOptions) {
		o.maxSteps = n
	}
}

// WithValidation toggles the half-edge validity check that runs after
// finalization. It is on by default; disabling it returns the graph as-built.
func WithValidation(on bool) BuilderOption {
	return func(o *builderOptions) {
		o.validate = on
	}
}

// Builder runs the grassfire propagation for one polygon. Enter the outer
// contour (counter-clockwise) and any holes (clockwise) with EnterContour,
// then call ConstructSkeleton once. A Builder is not safe for concurrent use.
type Builder struct {
	opts builderOptions
	g    graph
	sl   slav
	orc  *oracle
	pq   eventHeap

	// contourHalfedges lists the interior contour halfedges, scanned by the
	// split-event search.
	contourHalfedges []int
	contourVertices  []int
	outerFace        int

	splitNodes        [][2]int
	danglingBisectors []int

	eventID     int
	step        int
	constructed bool
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		opts:      o,
		orc:       newOracle(o.eps),
		outerFace: nilIdx,
	}
}

// EnterContour adds one polygon loop. The first call enters the outer
// contour, which must wind counter-clockwise; subsequent calls enter holes,
// which must wind clockwise. A closing point equal to the first is dropped.
func (b *Builder) EnterContour(points []Point) error {
	if b.constructed {
		return ErrConstructed
	}
	if len(points) > 1 && b.orc.equalPoints(points[0], points[len(points)-1]) {
		points = points[:len(points)-1]
	}
	if len(points) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrDegenerateContour, len(points))
	}
	for i, p := range points {
		if b.orc.equalPoints(p, points[(i+1)%len(points)]) {
			return fmt.Errorf("%w: coincident consecutive vertices", ErrDegenerateContour)
		}
	}

	area := signedArea(points)
	hole := b.outerFace != nilIdx
	if !hole && area <= 0 {
		return fmt.Errorf("%w: outer contour must be counter-clockwise", ErrOrientation)
	}
	if hole && area >= 0 {
		return fmt.Errorf("%w: holes must be clockwise", ErrOrientation)
	}

	// Each ring gets its own exterior face: the outer face for the first
	// contour, a dedicated hole face for each subsequent one. Hole faces keep
	// the Euler relation intact when the outer region is not simply connected.
	ringFace := b.g.newFace(true)
	if b.outerFace == nilIdx {
		b.outerFace = ringFace
	}

	n := len(points)
	verts := make([]int, n)
	for i, p := range points {
		verts[i] = b.g.newVertex(p, 0, false)
		b.sl.ensure(verts[i])
	}

	inner := make([]int, n)
	outer := make([]int, n)
	for i := 0; i < n; i++ {
		e, t := b.g.newEdgePair()
		inner[i], outer[i] = e, t
		b.g.edges[e].border = true
		b.g.edges[t].border = true

		f := b.g.newFace(false)
		b.g.faces[f].halfedge = e
		b.g.setFace(e, f)
		b.g.setFace(t, ringFace)

		b.g.setVertex(e, verts[(i+1)%n])
		b.g.setVertex(t, verts[i])
		b.orc.addLine(e, points[i], points[(i+1)%n])
		b.contourHalfedges = append(b.contourHalfedges, e)
	}
	b.g.faces[ringFace].halfedge = outer[0]

	// The interior ring chains the contour forward, the exterior ring chains
	// it backward. Contour bisectors are spliced into the interior ring by
	// the init phase; the exterior ring is never touched again, so the
	// split-event search can recover contour adjacency from it.
	for i := 0; i < n; i++ {
		b.g.setNext(inner[i], inner[(i+1)%n])
		b.g.setPrev(inner[i], inner[(i-1+n)%n])
		b.g.setNext(outer[i], outer[(i-1+n)%n])
		b.g.setPrev(outer[i], outer[(i+1)%n])
	}

	for i, v := range verts {
		// The assigned halfedge targets the vertex: the incoming contour edge.
		b.g.setVertexHalfedge(v, inner[(i-1+n)%n])
		b.sl.setPrevInLAV(v, verts[(i-1+n)%n])
		b.sl.setNextInLAV(v, verts[(i+1)%n])
		b.sl.setBorderA(v, inner[(i-1+n)%n])
		b.sl.setBorderB(v, inner[i])
		b.contourVertices = append(b.contourVertices, v)
	}

	return nil
}

func signedArea(points []Point) float64 {
	var area float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		area += p.Cross(q)
	}
	return area / 2
}

// ConstructSkeleton runs the init, propagate and finalize phases and returns
// the completed skeleton. Recovery is all-or-nothing: on a geometric failure,
// an exceeded step bound, or a validator rejection, the partial skeleton is
// discarded and a nil skeleton is returned with the error.
func (b *Builder) ConstructSkeleton() (sk *Skeleton, err error) {
	if b.constructed {
		return nil, ErrConstructed
	}
	if len(b.contourHalfedges) == 0 {
		return nil, ErrNoContour
	}
	b.constructed = true

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("construction aborted", "panic", r)
			sk = nil
			err = fmt.Errorf("sskel: construction failed: %v", r)
		}
	}()

	b.initPhase()
	b.propagate()
	b.finishUp()

	if b.opts.validate {
		if verr := b.validateGraph(); verr != nil {
			Logger().Warn("skeleton failed validation", "err", verr)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSkeleton, verr)
		}
	}

	return &Skeleton{g: b.g}, nil
}

// initPhase creates the contour bisectors and seeds the initial events.
func (b *Builder) initPhase() {
	Logger().Info("init phase", "contours", len(b.g.faces)-len(b.contourHalfedges), "vertices", len(b.contourVertices))
	b.createContourBisectors()
	for _, v := range b.contourVertices {
		b.updatePQ(v)
	}
}

// createContourBisectors pushes every contour vertex into the SLAV, flags
// reflex vertices (collinear counts as reflex), and hangs an unattached
// bisector pair off each vertex, wired into the faces of its two incident
// contour edges.
func (b *Builder) createContourBisectors() {
	for _, v := range b.contourVertices {
		b.sl.push(v)

		prev := b.sl.prevInLAV(v)
		next := b.sl.nextInLAV(v)
		p, q, r := b.g.verts[prev].point, b.g.verts[v].point, b.g.verts[next].point
		if b.orc.collinear(p, q, r) || !b.orc.leftTurn(p, q, r) {
			b.sl.setReflex(v)
			Logger().Debug("reflex vertex", "vertex", v)
		}

		out, in := b.g.newEdgePair()

		inBorder := b.g.verts[v].halfedge
		outBorder := b.g.next(inBorder)

		b.g.setFace(out, b.g.face(inBorder))
		b.g.setFace(in, b.g.face(outBorder))
		b.g.setVertex(in, v)

		b.g.setNext(inBorder, out)
		b.g.setPrev(out, inBorder)
		b.g.setPrev(outBorder, in)
		b.g.setNext(in, outBorder)
	}
}

// propagate drains the priority queue. Stale events (excluded, or with a
// processed seed) are silently dropped; each live event's time and point are
// recomputed at pop for accuracy, then the event is dispatched.
func (b *Builder) propagate() {
	Logger().Info("propagating events", "queued", b.pq.Len())

	for b.pq.Len() > 0 {
		e := b.pq.pop()
		if e.excluded || b.sl.isProcessed(e.seed0) || b.sl.isProcessed(e.seed1) {
			continue
		}
		if b.opts.maxSteps > 0 && b.step >= b.opts.maxSteps {
			panic(fmt.Sprintf("step bound %d exceeded", b.opts.maxSteps))
		}

		b.setEventTimeAndPoint(e)
		Logger().Debug("event", "step", b.step, "kind", e.kind, "time", e.time, "x", e.point.X, "y", e.point.Y)

		switch e.kind {
		case edgeEventKind:
			b.handleEdgeEvent(e)
		case splitEventKind:
			b.handlePotentialSplitEvent(e)
		}
		b.step++
	}
}

func (b *Builder) setEventTimeAndPoint(e *event) {
	if t, p, ok := b.orc.eventTimeAndPoint(e.borderA, e.borderB, e.borderC); ok {
		e.time, e.point = t, p
	}
}

func (b *Builder) newEvent(kind eventKind, borderA, borderB, borderC, borderD, seed0, seed1 int) *event {
	e := &event{
		id:      b.eventID,
		kind:    kind,
		borderA: borderA,
		borderB: borderB,
		borderC: borderC,
		borderD: borderD,
		seed0:   seed0,
		seed1:   seed1,
	}
	b.eventID++
	return e
}

func (b *Builder) enqueue(e *event) {
	b.pq.push(e)
}

// areBisectorsCoincident reports whether two bisector halfedges are defined
// by the same unordered pair of contour edges. Such bisectors lie on the
// same line: two simultaneous edge events collapsing onto each other.
func (b *Builder) areBisectorsCoincident(h1, h2 int) bool {
	l1 := b.g.definingContourEdge(h1)
	r1 := b.g.definingContourEdge(b.g.twin(h1))
	l2 := b.g.definingContourEdge(h2)
	r2 := b.g.definingContourEdge(b.g.twin(h2))
	return (l1 == l2 && r1 == r2) || (l1 == r2 && r1 == l2)
}

// updatePQ finds the next events for the wavefront emerging from v. A
// bisector coincident with a LAV neighbor's means two edge events collapsing
// onto one line; that pair is spliced immediately instead of enqueued. This
// is required for correctness, not an optimization: the edge-event oracle
// cannot distinguish the collapsing pair.
func (b *Builder) updatePQ(v int) {
	prev := b.sl.prevInLAV(v)
	next := b.sl.nextInLAV(v)

	cur := b.g.primaryBisector(v)
	switch {
	case b.areBisectorsCoincident(cur, b.g.primaryBisector(prev)):
		b.handleSimultaneousEdgeEvent(v, prev)
	case b.areBisectorsCoincident(cur, b.g.primaryBisector(next)):
		b.handleSimultaneousEdgeEvent(v, next)
	default:
		b.collectNewEvents(v)
	}
}

// collectNewEvents enqueues the potential events of the vertex wavefront
// emerging from v: split events if v is reflex, and edge events against both
// LAV neighbors. Two edge events at the same time are pre-resolved here by
// keeping only the one closer to the seed, so that correctness never depends
// on the heap's ordering of ties.
func (b *Builder) collectNewEvents(v int) {
	prev := b.sl.prevInLAV(v)
	next := b.sl.nextInLAV(v)

	if b.sl.isReflex(v) {
		b.collectSplitEvents(v)
	}

	left := b.findEdgeEvent(prev, v)
	right := b.findEdgeEvent(v, next)

	acceptL := left != nil
	acceptR := right != nil

	if left != nil && right != nil && b.orc.compareEvents(left, right) == 0 {
		if b.orc.compareEventDistanceToSeed(b.g.verts[v].point, left, right) > 0 {
			acceptL = false
		} else {
			acceptR = false
		}
	}

	if acceptL {
		b.enqueue(left)
	}
	if acceptR {
		b.enqueue(right)
	}
}
