package sskel

import "testing"

// squareOracle returns an oracle loaded with the supporting lines of the
// unit square's edges: 0 bottom, 1 right, 2 top, 3 left.
func squareOracle() *oracle {
	o := newOracle(defaultEps)
	o.addLine(0, Pt(0, 0), Pt(1, 0))
	o.addLine(1, Pt(1, 0), Pt(1, 1))
	o.addLine(2, Pt(1, 1), Pt(0, 1))
	o.addLine(3, Pt(0, 1), Pt(0, 0))
	return o
}

func TestPredicates(t *testing.T) {
	o := newOracle(defaultEps)

	tests := []struct {
		name          string
		p, q, r       Point
		wantCollinear bool
		wantLeft      bool
	}{
		{"left turn", Pt(0, 0), Pt(1, 0), Pt(1, 1), false, true},
		{"right turn", Pt(0, 0), Pt(1, 0), Pt(1, -1), false, false},
		{"collinear", Pt(0, 0), Pt(1, 0), Pt(2, 0), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.collinear(tt.p, tt.q, tt.r); got != tt.wantCollinear {
				t.Errorf("collinear() = %v, want %v", got, tt.wantCollinear)
			}
			if got := o.leftTurn(tt.p, tt.q, tt.r); got != tt.wantLeft {
				t.Errorf("leftTurn() = %v, want %v", got, tt.wantLeft)
			}
		})
	}

	if !o.equalPoints(Pt(1, 1), Pt(1, 1)) {
		t.Errorf("equalPoints() = false for identical points")
	}
	if o.equalPoints(Pt(1, 1), Pt(1, 1.001)) {
		t.Errorf("equalPoints() = true for distinct points")
	}
}

func TestEventTimeAndPoint(t *testing.T) {
	o := squareOracle()

	tm, p, ok := o.eventTimeAndPoint(3, 0, 1)
	if !ok {
		t.Fatalf("eventTimeAndPoint(3,0,1) not ok")
	}
	if !near(tm, 0.5) || !nearPt(p, 0.5, 0.5) {
		t.Errorf("eventTimeAndPoint(3,0,1) = %g %v, want 0.5 (0.5, 0.5)", tm, p)
	}

	if !o.eventExists(3, 0, 1) {
		t.Errorf("eventExists(3,0,1) = false, want true")
	}
}

func TestEventExistsDegenerate(t *testing.T) {
	o := squareOracle()
	// Two collinear contour edges share a supporting line: the offset lines
	// coincide forever and no unique meeting point exists.
	o.addLine(4, Pt(-1, 0), Pt(0, 0))
	if o.eventExists(4, 0, 1) {
		t.Errorf("eventExists() = true for coincident supporting lines")
	}
}

func TestIsNewEventInPast(t *testing.T) {
	o := squareOracle()
	if o.isNewEventInPast(3, 0, 1, 0.5) {
		t.Errorf("isNewEventInPast() = true for event at the seed's own time")
	}
	if !o.isNewEventInPast(3, 0, 1, 0.7) {
		t.Errorf("isNewEventInPast() = false for event before the seed")
	}
}

func TestCompareEventDistanceToSeed(t *testing.T) {
	o := squareOracle()
	e1 := &event{time: 0.5, point: Pt(0.5, 0.5)}
	e2 := &event{time: 0.5, point: Pt(2, 0.5)}

	if got := o.compareEvents(e1, e2); got != 0 {
		t.Errorf("compareEvents() = %d, want 0", got)
	}
	if got := o.compareEventDistanceToSeed(Pt(0, 0.5), e1, e2); got != -1 {
		t.Errorf("compareEventDistanceToSeed() = %d, want -1", got)
	}
	if got := o.compareEventDistanceToSeed(Pt(2, 0.5), e1, e2); got != 1 {
		t.Errorf("compareEventDistanceToSeed() = %d, want 1", got)
	}
	if !o.eventsSimultaneous(e1, e1) {
		t.Errorf("eventsSimultaneous() = false for the same event")
	}
	if o.eventsSimultaneous(e1, e2) {
		t.Errorf("eventsSimultaneous() = true for distinct points")
	}
}

func TestIsEventInsideOffsetZone(t *testing.T) {
	o := squareOracle()

	// Event of (left, bottom, right) at (0.5, 0.5): inside the offset zone
	// of the bottom edge bounded by the left and right supporting lines.
	if !o.isEventInsideOffsetZone(3, 1, 0, 3, 1) {
		t.Errorf("isEventInsideOffsetZone() = false, want true")
	}

	// A bounding line just left of the event point, whose inward side faces
	// away from it, pushes it outside.
	o.addLine(5, Pt(0.4, 0), Pt(0.4, 1))
	if o.isEventInsideOffsetZone(3, 1, 0, 5, 1) {
		t.Errorf("isEventInsideOffsetZone() = true past the zone boundary")
	}
}

func TestDistance(t *testing.T) {
	o := squareOracle()
	if d := o.distance(0, Pt(0.3, 0.7)); !near(d, 0.7) {
		t.Errorf("distance(bottom) = %g, want 0.7", d)
	}
	if d := o.distance(1, Pt(0.3, 0.7)); !near(d, 0.7) {
		t.Errorf("distance(right) = %g, want 0.7", d)
	}
	if d := o.distance(0, Pt(0.5, -1)); !near(d, -1) {
		t.Errorf("distance(outside) = %g, want -1", d)
	}
}
