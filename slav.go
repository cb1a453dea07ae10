package sskel

// vertexWrapper tracks the propagation state of one vertex: its position in
// the active ring, its reflex and processed flags, and the contour borders
// whose supporting lines define its trajectory. A contour vertex has two
// defining borders; a skeleton vertex has three.
type vertexWrapper struct {
	prevInLAV int
	nextInLAV int
	reflex    bool
	processed bool
	excluded  bool
	borderA   int
	borderB   int
	borderC   int
	// reflexSplits holds the split events seeded at this vertex whose
	// opposite border ends at a reflex vertex. Vertex-event detection scans
	// this back-index when a simultaneous split is popped.
	reflexSplits []*event
}

// slav is the set of lists of active vertices: one wrapper per vertex plus a
// single shared list of active vertex ids. The ring links on each wrapper
// give O(1) neighbor access; the shared list supports the linear scan of the
// split-event opposite-edge lookup.
type slav struct {
	wrap   []vertexWrapper
	active []int
}

// ensure grows the wrapper arena to cover vertex id v.
func (s *slav) ensure(v int) {
	for len(s.wrap) <= v {
		s.wrap = append(s.wrap, vertexWrapper{
			prevInLAV: nilIdx,
			nextInLAV: nilIdx,
			borderA:   nilIdx,
			borderB:   nilIdx,
			borderC:   nilIdx,
		})
	}
}

func (s *slav) push(v int) {
	s.ensure(v)
	s.active = append(s.active, v)
}

func (s *slav) remove(v int) {
	for i, a := range s.active {
		if a == v {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

func (s *slav) prevInLAV(v int) int     { return s.wrap[v].prevInLAV }
func (s *slav) nextInLAV(v int) int     { return s.wrap[v].nextInLAV }
func (s *slav) setPrevInLAV(v, p int)   { s.wrap[v].prevInLAV = p }
func (s *slav) setNextInLAV(v, n int)   { s.wrap[v].nextInLAV = n }
func (s *slav) isReflex(v int) bool     { return s.wrap[v].reflex }
func (s *slav) setReflex(v int)         { s.wrap[v].reflex = true }
func (s *slav) isProcessed(v int) bool  { return s.wrap[v].processed }
func (s *slav) isExcluded(v int) bool   { return s.wrap[v].excluded }
func (s *slav) exclude(v int)           { s.wrap[v].excluded = true }
func (s *slav) borderA(v int) int       { return s.wrap[v].borderA }
func (s *slav) borderB(v int) int       { return s.wrap[v].borderB }
func (s *slav) borderC(v int) int       { return s.wrap[v].borderC }
func (s *slav) setBorderA(v, h int)     { s.wrap[v].borderA = h }
func (s *slav) setBorderB(v, h int)     { s.wrap[v].borderB = h }
func (s *slav) setBorderC(v, h int)     { s.wrap[v].borderC = h }

// markProcessed consumes the vertex: the ring links are dropped and any
// pending reflex-split records die with it.
func (s *slav) markProcessed(v int) {
	w := &s.wrap[v]
	w.processed = true
	w.prevInLAV = nilIdx
	w.nextInLAV = nilIdx
	w.reflexSplits = nil
}

func (s *slav) addReflexSplit(v int, e *event) {
	s.wrap[v].reflexSplits = append(s.wrap[v].reflexSplits, e)
}

func (s *slav) reflexSplits(v int) []*event {
	return s.wrap[v].reflexSplits
}
