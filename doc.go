// Package sskel constructs the straight skeleton of a simple polygon with holes.
//
// # Overview
//
// The straight skeleton is the trace left by the edges of a polygon as they
// translate inward along their angle bisectors at uniform speed (the
// "grassfire" propagation). At discrete moments the shrinking boundary
// changes topology; sskel detects these moments as events, resolves their
// geometric effects, and emits a planar graph embedded with the original
// contour as a half-edge data structure.
//
// # Quick Start
//
//	import "github.com/gogpu/sskel"
//
//	b := sskel.NewBuilder()
//	b.EnterContour([]sskel.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
//
//	sk, err := b.ConstructSkeleton()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sk.SkeletonVertexCount()) // 1, the square's center
//
// The outer contour must wind counter-clockwise; holes wind clockwise and are
// entered with additional EnterContour calls.
//
// # Architecture
//
// The engine is organized into:
//   - Public API: Builder, Skeleton, Point, and the Vertex/Halfedge/Face views
//   - Core: event detection, the active-vertex rings (SLAV), event handlers
//   - Numeric: all floating-point policy lives behind the geometric oracle
//
// Propagation is event driven: a priority queue of predicted edge and split
// events is drained in time order, each event rewiring the half-edge graph
// and enqueueing follow-up events, until the boundary has fully collapsed.
// A finalization pass merges coincident skeleton nodes and prunes dangling
// bisectors before the result is validated and returned.
//
// # Coordinate System
//
// Coordinates are plain Cartesian float64 pairs. The inward side of a
// counter-clockwise contour is its left side. Skeleton vertices carry the
// propagation time at which they were created; contour vertices have time 0.
//
// # Concurrency
//
// A Builder is single-threaded: one ConstructSkeleton call owns all state.
// Separate Builder instances are independent and may run concurrently.
package sskel
