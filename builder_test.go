package sskel

import (
	"errors"
	"math"
	"testing"
)

const testTol = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= testTol
}

func nearPt(p Point, x, y float64) bool {
	return near(p.X, x) && near(p.Y, y)
}

func buildSkeleton(t *testing.T, rings ...[]Point) (*Builder, *Skeleton) {
	t.Helper()
	b := NewBuilder()
	for _, ring := range rings {
		if err := b.EnterContour(ring); err != nil {
			t.Fatalf("EnterContour() error: %v", err)
		}
	}
	sk, err := b.ConstructSkeleton()
	if err != nil {
		t.Fatalf("ConstructSkeleton() error: %v", err)
	}
	return b, sk
}

// checkInvariants verifies the structural invariants that must hold for any
// completed skeleton: three pairwise-distinct defining borders per skeleton
// vertex, equidistance of each skeleton vertex from its defining borders,
// one offset face per contour edge with exactly one contour edge on its
// boundary, creation times non-decreasing, and half-edge validity.
func checkInvariants(t *testing.T, b *Builder, sk *Skeleton) {
	t.Helper()

	lastTime := 0.0
	for v := range sk.g.verts {
		rec := &sk.g.verts[v]
		if rec.erased || !rec.skeleton {
			continue
		}

		ba, bb, bc := b.sl.borderA(v), b.sl.borderB(v), b.sl.borderC(v)
		if ba == nilIdx || bb == nilIdx || bc == nilIdx {
			t.Errorf("skeleton vertex %d: missing defining border", v)
			continue
		}
		if ba == bb || bb == bc || ba == bc {
			t.Errorf("skeleton vertex %d: defining borders not distinct: %d %d %d", v, ba, bb, bc)
		}
		for _, h := range []int{ba, bb, bc} {
			d := b.orc.distance(h, rec.point)
			if math.Abs(d-rec.time) > testTol {
				t.Errorf("skeleton vertex %d: distance %g to border %d, want time %g", v, d, h, rec.time)
			}
		}

		// Skeleton vertices are created in pop order, so their times must be
		// non-decreasing in id order.
		if rec.time < lastTime-testTol {
			t.Errorf("skeleton vertex %d: time %g decreased below %g", v, rec.time, lastTime)
		}
		if rec.time > lastTime {
			lastTime = rec.time
		}
	}

	contourEdges := 0
	for h := range sk.g.edges {
		if sk.g.edges[h].border && !sk.g.edges[h].erased {
			contourEdges++
		}
	}
	contourEdges /= 2

	offsetFaces := 0
	for _, f := range sk.Faces() {
		if f.IsOuter() {
			continue
		}
		offsetFaces++

		onContour := 0
		for _, h := range f.Boundary() {
			if h.IsContourEdge() {
				onContour++
			}
		}
		if onContour != 1 {
			t.Errorf("face %d: %d contour edges on boundary, want 1", f.ID(), onContour)
		}
	}
	if offsetFaces != contourEdges {
		t.Errorf("offset faces = %d, contour edges = %d, want equal", offsetFaces, contourEdges)
	}

	if err := sk.g.validate(); err != nil {
		t.Errorf("validate() error: %v", err)
	}
}

func TestUnitSquare(t *testing.T) {
	b, sk := buildSkeleton(t, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})

	if got := sk.SkeletonVertexCount(); got != 1 {
		t.Fatalf("SkeletonVertexCount() = %d, want 1", got)
	}
	if got := sk.BisectorCount(); got != 4 {
		t.Errorf("BisectorCount() = %d, want 4", got)
	}

	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		if !nearPt(v.Point(), 0.5, 0.5) {
			t.Errorf("skeleton vertex at %v, want (0.5, 0.5)", v.Point())
		}
		if !near(v.Time(), 0.5) {
			t.Errorf("skeleton vertex time %g, want 0.5", v.Time())
		}
		if got := v.Degree(); got != 4 {
			t.Errorf("skeleton vertex degree %d, want 4", got)
		}
	}

	checkInvariants(t, b, sk)
}

func TestRectangle(t *testing.T) {
	b, sk := buildSkeleton(t, []Point{{0, 0}, {4, 0}, {4, 1}, {0, 1}})

	if got := sk.SkeletonVertexCount(); got != 2 {
		t.Fatalf("SkeletonVertexCount() = %d, want 2", got)
	}
	if got := sk.BisectorCount(); got != 5 {
		t.Errorf("BisectorCount() = %d, want 5", got)
	}

	var foundLeft, foundRight bool
	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		if !near(v.Time(), 0.5) {
			t.Errorf("skeleton vertex time %g, want 0.5", v.Time())
		}
		switch {
		case nearPt(v.Point(), 0.5, 0.5):
			foundLeft = true
		case nearPt(v.Point(), 3.5, 0.5):
			foundRight = true
		default:
			t.Errorf("unexpected skeleton vertex at %v", v.Point())
		}
	}
	if !foundLeft || !foundRight {
		t.Errorf("missing skeleton vertices: left=%v right=%v", foundLeft, foundRight)
	}

	// Exactly one internal bisector connects the two skeleton vertices.
	internal := 0
	for _, h := range sk.Halfedges() {
		if h.IsBisector() && h.ID() < h.Twin().ID() &&
			h.Source().IsSkeleton() && h.Target().IsSkeleton() {
			internal++
		}
	}
	if internal != 1 {
		t.Errorf("internal bisectors = %d, want 1", internal)
	}

	checkInvariants(t, b, sk)
}

func TestEquilateralTriangle(t *testing.T) {
	// Vertices on the unit circle; the skeleton collapses to the centroid at
	// the inradius.
	tri := []Point{
		{math.Cos(math.Pi / 2), math.Sin(math.Pi / 2)},
		{math.Cos(math.Pi * 7 / 6), math.Sin(math.Pi * 7 / 6)},
		{math.Cos(math.Pi * 11 / 6), math.Sin(math.Pi * 11 / 6)},
	}
	b, sk := buildSkeleton(t, tri)

	if got := sk.SkeletonVertexCount(); got != 1 {
		t.Fatalf("SkeletonVertexCount() = %d, want 1", got)
	}
	if got := sk.BisectorCount(); got != 3 {
		t.Errorf("BisectorCount() = %d, want 3", got)
	}

	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		if !nearPt(v.Point(), 0, 0) {
			t.Errorf("skeleton vertex at %v, want centroid", v.Point())
		}
		if !near(v.Time(), 0.5) {
			t.Errorf("skeleton vertex time %g, want inradius 0.5", v.Time())
		}
	}

	checkInvariants(t, b, sk)
}

func TestLShape(t *testing.T) {
	b, sk := buildSkeleton(t, []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}})

	if got := sk.SkeletonVertexCount(); got != 3 {
		t.Fatalf("SkeletonVertexCount() = %d, want 3", got)
	}

	degree4 := 0
	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		switch {
		case nearPt(v.Point(), 0.5, 0.5):
			if !near(v.Time(), 0.5) {
				t.Errorf("split vertex time %g, want 0.5", v.Time())
			}
			if got := v.Degree(); got != 4 {
				t.Errorf("split vertex degree %d, want 4", got)
			}
			degree4++
		case nearPt(v.Point(), 1.5, 0.5), nearPt(v.Point(), 0.5, 1.5):
			if !near(v.Time(), 0.5) {
				t.Errorf("arm vertex time %g, want 0.5", v.Time())
			}
		default:
			t.Errorf("unexpected skeleton vertex at %v", v.Point())
		}
	}
	if degree4 != 1 {
		t.Errorf("degree-4 skeleton vertices = %d, want exactly 1", degree4)
	}

	checkInvariants(t, b, sk)
}

func TestHousePentagon(t *testing.T) {
	// Isoceles "house": two simultaneous eave collapses, then the apex line.
	b, sk := buildSkeleton(t, []Point{{0, 0}, {2, 0}, {2, 1}, {1, 2}, {0, 1}})

	if got := sk.SkeletonVertexCount(); got != 3 {
		t.Fatalf("SkeletonVertexCount() = %d, want 3", got)
	}

	s := 1 / math.Sqrt2
	apexT := 2 * (math.Sqrt2 - 1)
	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		switch {
		case nearPt(v.Point(), s, s), nearPt(v.Point(), 2-s, s):
			if !near(v.Time(), s) {
				t.Errorf("eave vertex time %g, want %g", v.Time(), s)
			}
		case nearPt(v.Point(), 1, apexT):
			if !near(v.Time(), apexT) {
				t.Errorf("apex vertex time %g, want %g", v.Time(), apexT)
			}
		default:
			t.Errorf("unexpected skeleton vertex at %v", v.Point())
		}
	}

	checkInvariants(t, b, sk)
}

func TestSquareWithSquareHole(t *testing.T) {
	outer := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	hole := []Point{{3, 3}, {3, 7}, {7, 7}, {7, 3}}
	b, sk := buildSkeleton(t, outer, hole)

	// The annulus collapses onto the mid ring: one degree-4 vertex per
	// corner (two ring edges plus the outer and hole corner diagonals).
	if got := sk.SkeletonVertexCount(); got != 4 {
		t.Fatalf("SkeletonVertexCount() = %d, want 4", got)
	}
	corners := map[[2]float64]bool{
		{1.5, 1.5}: false, {8.5, 1.5}: false, {8.5, 8.5}: false, {1.5, 8.5}: false,
	}
	for _, v := range sk.Vertices() {
		if !v.IsSkeleton() {
			continue
		}
		if !near(v.Time(), 1.5) {
			t.Errorf("skeleton vertex %d time %g, want 1.5", v.ID(), v.Time())
		}
		found := false
		for c := range corners {
			if nearPt(v.Point(), c[0], c[1]) {
				corners[c] = true
				found = true
			}
		}
		if !found {
			t.Errorf("unexpected skeleton vertex at %v", v.Point())
		}
		if got := v.Degree(); got != 4 {
			t.Errorf("skeleton vertex at %v: degree %d, want 4", v.Point(), got)
		}
	}
	for c, seen := range corners {
		if !seen {
			t.Errorf("no skeleton vertex at corner %v", c)
		}
	}

	// The skeleton must connect inner and outer bisectors into one cycle:
	// every skeleton vertex reachable from every other over bisector edges.
	skel := map[int]bool{}
	for _, v := range sk.Vertices() {
		if v.IsSkeleton() {
			skel[v.ID()] = true
		}
	}
	var start int
	for v := range skel {
		start = v
		break
	}
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		Vertex{sk: sk, idx: v}.Incoming(func(h Halfedge) bool {
			src := h.Source().ID()
			if skel[src] && !seen[src] {
				seen[src] = true
				stack = append(stack, src)
			}
			return true
		})
	}
	if len(seen) != len(skel) {
		t.Errorf("skeleton vertices connected = %d, want %d", len(seen), len(skel))
	}

	checkInvariants(t, b, sk)
}

func TestCollinearVertexMarkedReflex(t *testing.T) {
	b := NewBuilder()
	// Midpoint of the bottom edge is collinear with its neighbors.
	if err := b.EnterContour([]Point{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}}); err != nil {
		t.Fatalf("EnterContour() error: %v", err)
	}
	b.createContourBisectors()

	if !b.sl.isReflex(1) {
		t.Errorf("collinear vertex not marked reflex")
	}
	for _, v := range []int{0, 2, 3, 4} {
		if b.sl.isReflex(v) {
			t.Errorf("convex vertex %d marked reflex", v)
		}
	}
}

func TestEnterContourErrors(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   error
	}{
		{
			name:   "too few points",
			points: []Point{{0, 0}, {1, 0}},
			want:   ErrDegenerateContour,
		},
		{
			name:   "coincident consecutive points",
			points: []Point{{0, 0}, {0, 0}, {1, 0}, {1, 1}},
			want:   ErrDegenerateContour,
		},
		{
			name:   "clockwise outer contour",
			points: []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
			want:   ErrOrientation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			if err := b.EnterContour(tt.points); !errors.Is(err, tt.want) {
				t.Errorf("EnterContour() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHoleOrientation(t *testing.T) {
	b := NewBuilder()
	if err := b.EnterContour([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}); err != nil {
		t.Fatalf("EnterContour(outer) error: %v", err)
	}
	// Counter-clockwise hole must be rejected.
	err := b.EnterContour([]Point{{3, 3}, {7, 3}, {7, 7}, {3, 7}})
	if !errors.Is(err, ErrOrientation) {
		t.Errorf("EnterContour(ccw hole) = %v, want %v", err, ErrOrientation)
	}
}

func TestClosingPointDropped(t *testing.T) {
	b, sk := buildSkeleton(t, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}})
	if got := sk.ContourVertexCount(); got != 4 {
		t.Errorf("ContourVertexCount() = %d, want 4", got)
	}
	checkInvariants(t, b, sk)
}

func TestConstructErrors(t *testing.T) {
	b := NewBuilder()
	if _, err := b.ConstructSkeleton(); !errors.Is(err, ErrNoContour) {
		t.Errorf("ConstructSkeleton() = %v, want %v", err, ErrNoContour)
	}

	b = NewBuilder()
	if err := b.EnterContour([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}); err != nil {
		t.Fatalf("EnterContour() error: %v", err)
	}
	if _, err := b.ConstructSkeleton(); err != nil {
		t.Fatalf("ConstructSkeleton() error: %v", err)
	}
	if _, err := b.ConstructSkeleton(); !errors.Is(err, ErrConstructed) {
		t.Errorf("second ConstructSkeleton() = %v, want %v", err, ErrConstructed)
	}
	if err := b.EnterContour([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}); !errors.Is(err, ErrConstructed) {
		t.Errorf("EnterContour() after construct = %v, want %v", err, ErrConstructed)
	}
}

// TestOffsetReproduction samples the small-t offset of convex inputs: the
// inward offset of each contour edge's midpoint must be closest to that
// edge's supporting line, at distance exactly t.
func TestOffsetReproduction(t *testing.T) {
	shapes := map[string][]Point{
		"square": {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		"house":  {{0, 0}, {2, 0}, {2, 1}, {1, 2}, {0, 1}},
	}
	const offset = 0.1

	for name, ring := range shapes {
		t.Run(name, func(t *testing.T) {
			b, _ := buildSkeleton(t, ring)

			for _, e := range b.contourHalfedges {
				src := b.g.verts[b.g.source(e)].point
				dst := b.g.verts[b.g.target(e)].point
				mid := src.Add(dst).Mul(0.5)
				n := b.orc.lines[e].n
				p := mid.Add(n.Mul(offset))

				if d := b.orc.distance(e, p); !near(d, offset) {
					t.Errorf("edge %d: offset point at distance %g, want %g", e, d, offset)
				}
				for _, other := range b.contourHalfedges {
					if other == e {
						continue
					}
					if d := b.orc.distance(other, p); d < offset-testTol {
						t.Errorf("edge %d: offset point inside edge %d's offset band (%g)", e, other, d)
					}
				}
			}
		})
	}
}

func TestConvexPolygonCorpus(t *testing.T) {
	// Regular n-gons collapse to a single center vertex at the apothem.
	for _, n := range []int{5, 6, 7, 8, 12} {
		ring := make([]Point, n)
		for i := range ring {
			a := 2 * math.Pi * float64(i) / float64(n)
			ring[i] = Point{X: math.Cos(a), Y: math.Sin(a)}
		}
		b, sk := buildSkeleton(t, ring)

		apothem := math.Cos(math.Pi / float64(n))
		for _, v := range sk.Vertices() {
			if !v.IsSkeleton() {
				continue
			}
			if !nearPt(v.Point(), 0, 0) {
				t.Errorf("n=%d: skeleton vertex at %v, want center", n, v.Point())
			}
			if !near(v.Time(), apothem) {
				t.Errorf("n=%d: skeleton vertex time %g, want apothem %g", n, v.Time(), apothem)
			}
		}
		if got := sk.SkeletonVertexCount(); got != 1 {
			t.Errorf("n=%d: SkeletonVertexCount() = %d, want 1", n, got)
		}

		checkInvariants(t, b, sk)
	}
}
