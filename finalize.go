package sskel

// Finalization: merge the twin vertices recorded by split and vertex events,
// erase the bisector pairs left dangling by simultaneous-edge splices, then
// merge any remaining coincident skeleton nodes.

func (b *Builder) finishUp() {
	Logger().Info("finalizing", "splitNodes", len(b.splitNodes), "dangling", len(b.danglingBisectors))

	for _, pair := range b.splitNodes {
		b.mergeSplitNodes(pair)
	}
	for _, h := range b.danglingBisectors {
		b.g.eraseEdgePair(h)
	}
	b.mergeCoincidentNodes()
}

// mergeSplitNodes retargets every incoming bisector in the fan around a
// split pair from the right node onto the left node, then erases the right
// node. The two nodes sit at the same point; the merge makes the skeleton
// vertex single again. The whole fan is circulated rather than just the
// bisectors adjacent to the pair: a simultaneous-edge splice may have
// retargeted an unrelated bisector onto the right node, and that link has to
// follow the merge too.
func (b *Builder) mergeSplitNodes(pair [2]int) {
	lNode, rNode := pair[0], pair[1]

	var incoming []int
	b.g.incomingAround(rNode, func(h int) bool {
		incoming = append(incoming, h)
		return true
	})
	for _, h := range incoming {
		if b.g.target(h) == rNode {
			b.g.setVertex(h, lNode)
		}
	}

	b.sl.exclude(rNode)
	b.g.eraseVertex(rNode)
}

// mergeCoincidentNodes merges every pair of distinct skeleton vertices that
// share a point and are joined by a halfedge. Merging one pair can relink a
// bisector so that a previously unconnected coincident pair becomes joined,
// so passes repeat until none merges. The matrix of merged pairs (undirected,
// keyed on vertex ids) prevents re-merging a pair.
func (b *Builder) mergeCoincidentNodes() {
	linked := make(map[[2]int]bool)
	key := func(v0, v1 int) [2]int {
		if v0 > v1 {
			v0, v1 = v1, v0
		}
		return [2]int{v0, v1}
	}

	for {
		merged := false

		var edgesToRemove []int
		var vertsToRemove []int

		for v0 := range b.g.verts {
			if !b.g.verts[v0].skeleton || b.g.verts[v0].erased || b.sl.isExcluded(v0) {
				continue
			}
			for v1 := range b.g.verts {
				if v1 == v0 || !b.g.verts[v1].skeleton || b.g.verts[v1].erased || b.sl.isExcluded(v1) {
					continue
				}
				if linked[key(v0, v1)] {
					continue
				}
				if !b.orc.equalPoints(b.g.verts[v0].point, b.g.verts[v1].point) {
					continue
				}
				if b.mergeCoincidentPair(v0, v1, &edgesToRemove, &vertsToRemove) {
					linked[key(v0, v1)] = true
					merged = true
				}
			}
		}

		for _, h := range edgesToRemove {
			b.g.eraseEdgePair(h)
		}
		for _, v := range vertsToRemove {
			b.g.eraseVertex(v)
		}

		if !merged {
			return
		}
	}
}

// mergeCoincidentPair retargets every halfedge incident on v1 to v0 and
// excises the halfedge pair joining the two. Without a joining halfedge the
// vertices cannot be merged; reports whether the merge happened.
func (b *Builder) mergeCoincidentPair(v0, v1 int, edgesToRemove, vertsToRemove *[]int) bool {
	toRemove := nilIdx
	var toRelink []int

	b.g.incomingAround(v1, func(h int) bool {
		if b.g.target(b.g.twin(h)) != v0 {
			toRelink = append(toRelink, h)
		} else {
			toRemove = h
		}
		return true
	})

	if toRemove == nilIdx {
		Logger().Debug("coincident but unconnected", "v0", v0, "v1", v1)
		return false
	}

	Logger().Debug("merging coincident nodes", "v0", v0, "v1", v1)

	for _, h := range toRelink {
		b.g.setVertex(h, v0)
	}

	b.sl.exclude(v1)
	*vertsToRemove = append(*vertsToRemove, v1)

	toRemoveTwin := b.g.twin(toRemove)

	b.g.setNext(b.g.prev(toRemove), b.g.next(toRemove))
	b.g.setPrev(b.g.next(toRemove), b.g.prev(toRemove))
	b.g.setNext(b.g.prev(toRemoveTwin), b.g.next(toRemoveTwin))
	b.g.setPrev(b.g.next(toRemoveTwin), b.g.prev(toRemoveTwin))

	if b.g.verts[v0].halfedge == toRemoveTwin {
		b.g.setVertexHalfedge(v0, b.g.prev(toRemoveTwin))
	}

	*edgesToRemove = append(*edgesToRemove, toRemove)
	return true
}
