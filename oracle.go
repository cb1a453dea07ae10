package sskel

import "math"

// The oracle is the sole source of geometric truth: sign predicates and the
// event-existence, event-time and offset-zone computations. All floating
// point policy (the epsilon, the linear solves) lives here; higher layers
// call only these methods.

// line is the supporting line of a contour edge in offset form: a point x is
// at signed inward distance n·x - c from the line, so the wavefront of the
// edge at time t is the line n·x - c = t.
type line struct {
	n Point
	c float64
}

type oracle struct {
	eps   float64
	lines map[int]line
}

func newOracle(eps float64) *oracle {
	return &oracle{eps: eps, lines: make(map[int]line)}
}

// addLine registers the supporting line of the contour halfedge h running
// from p to q. The inward normal is the left normal of the edge direction,
// which points into a counter-clockwise contour.
func (o *oracle) addLine(h int, p, q Point) {
	d := q.Sub(p).Normalize()
	n := Point{X: -d.Y, Y: d.X}
	o.lines[h] = line{n: n, c: n.Dot(p)}
}

// distance returns the signed inward distance from the supporting line of
// contour halfedge h to x.
func (o *oracle) distance(h int, x Point) float64 {
	l := o.lines[h]
	return l.n.Dot(x) - l.c
}

func (o *oracle) collinear(p, q, r Point) bool {
	return math.Abs(q.Sub(p).Cross(r.Sub(p))) <= o.eps
}

func (o *oracle) leftTurn(p, q, r Point) bool {
	return q.Sub(p).Cross(r.Sub(p)) > o.eps
}

func (o *oracle) equalPoints(p, q Point) bool {
	return p.DistanceSquared(q) <= o.eps*o.eps
}

// eventTimeAndPoint solves for the unique offset distance t and point at
// which the inward-moving supporting lines of contour edges a, b, c are
// concurrent:
//
//	n_i · (x, y) - t = c_i   for i in {a, b, c}
//
// ok is false when the 3x3 system is singular (two lines parallel and moving
// apart, or coincident supporting lines).
func (o *oracle) eventTimeAndPoint(a, b, c int) (t float64, p Point, ok bool) {
	la, lb, lc := o.lines[a], o.lines[b], o.lines[c]

	d := det3(
		la.n.X, la.n.Y, -1,
		lb.n.X, lb.n.Y, -1,
		lc.n.X, lc.n.Y, -1,
	)
	if math.Abs(d) <= o.eps {
		return 0, Point{}, false
	}

	dx := det3(
		la.c, la.n.Y, -1,
		lb.c, lb.n.Y, -1,
		lc.c, lc.n.Y, -1,
	)
	dy := det3(
		la.n.X, la.c, -1,
		lb.n.X, lb.c, -1,
		lc.n.X, lc.c, -1,
	)
	dt := det3(
		la.n.X, la.n.Y, la.c,
		lb.n.X, lb.n.Y, lb.c,
		lc.n.X, lc.n.Y, lc.c,
	)
	return dt / d, Point{X: dx / d, Y: dy / d}, true
}

// eventExists reports whether the three lines supporting contour edges
// a, b, c admit a common offset at strictly positive time.
func (o *oracle) eventExists(a, b, c int) bool {
	t, _, ok := o.eventTimeAndPoint(a, b, c)
	return ok && t > o.eps
}

// compareEvents orders events by time: -1, 0, +1 for less, equal, greater.
func (o *oracle) compareEvents(e1, e2 *event) int {
	switch {
	case math.Abs(e1.time-e2.time) <= o.eps:
		return 0
	case e1.time < e2.time:
		return -1
	}
	return 1
}

// compareEventDistanceToSeed breaks ties between simultaneous events by the
// squared distance from the seed's point to each event's point.
func (o *oracle) compareEventDistanceToSeed(seed Point, e1, e2 *event) int {
	d1 := seed.DistanceSquared(e1.point)
	d2 := seed.DistanceSquared(e2.point)
	switch {
	case math.Abs(d1-d2) <= o.eps:
		return 0
	case d1 < d2:
		return -1
	}
	return 1
}

// eventsSimultaneous reports whether two events share both time and point.
func (o *oracle) eventsSimultaneous(e1, e2 *event) bool {
	return o.compareEvents(e1, e2) == 0 && o.equalPoints(e1.point, e2.point)
}

// isNewEventInPast reports whether the event of the triple (a, b, c) happens
// strictly before seedTime. Used to reject physically impossible events
// against skeleton seeds.
func (o *oracle) isNewEventInPast(a, b, c int, seedTime float64) bool {
	t, _, ok := o.eventTimeAndPoint(a, b, c)
	return ok && t < seedTime-o.eps
}

// isEventInsideOffsetZone reports whether the split point of the reflex
// wavefront (a, b) against opp lies within the wedge of the offset polygon
// bounded by the supporting lines of oppPrev and oppNext. This guards
// against a split event that has "slid off" the shrunk opposite edge by the
// time it is executed.
func (o *oracle) isEventInsideOffsetZone(a, b, opp, oppPrev, oppNext int) bool {
	t, p, ok := o.eventTimeAndPoint(a, b, opp)
	if !ok {
		return false
	}
	return o.distance(oppPrev, p) >= t-o.eps && o.distance(oppNext, p) >= t-o.eps
}

func det3(
	a, b, c,
	d, e, f,
	g, h, i float64,
) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}
