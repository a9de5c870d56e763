// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package octree implements the Barnes-Hut spatial decomposition: bulk
// insertion, center-of-mass aggregation, and the θ-criterion force query.
// A tree is rebuilt from scratch every integrator step (spec.md §4.3) and
// is read-only once built, so it is represented as a flat arena slab
// rather than a pointer graph (spec.md §9 Design Notes).
package octree

import (
	"math"

	"github.com/jdOchoa2/Barnes-Hut/body"
)

// empty is the sentinel child index meaning "no node here".
const empty = -1

// sizeFloor is the minimum octant side length; insertions below it are
// discarded to stop unbounded recursion on coincident bodies (spec.md §4.3).
const sizeFloor = 1.0e-4

// cutoff is the short-distance force cutoff (spec.md §4.3).
const cutoff = 1.0e-4

// node is one slab entry: either a leaf (bodyIdx >= 0, children unused) or
// an internal node (bodyIdx == empty, up to 8 children).
type node struct {
	mTotal   float64
	mrTotal  body.Vec3
	size     float64
	bodyIdx  int    // >=0 for a leaf, empty for an internal node
	children [8]int // slab indices, empty where absent
}

// CoM returns the node's center of mass.
func (nd *node) CoM() body.Vec3 {
	return nd.mrTotal.Scale(1.0 / nd.mTotal)
}

// Tree is an arena-allocated octree over one step's bodies.
type Tree struct {
	nodes  []node
	root   int // index of the root node, or empty if no bodies were inserted
	bodies []body.Body
	// center and extent describe the root cube in absolute coordinates;
	// relative positions are computed against these (spec.md §7
	// DomainWarning: the root cube expands to contain bodies that left
	// the unit cube).
	center body.Vec3
	extent float64
	// relPos holds, per body index, that body's position relative to the
	// cube it currently occupies in the tree. It starts at the body's
	// position relative to the root cube and is transformed exactly once
	// per level the body descends (via octant), mirroring the original
	// per-node "relative_position" bookkeeping of spec.md §4.3/§9: a leaf
	// does not recompute this from scratch when demoted, it continues
	// from where its last descent left off.
	relPos []body.Vec3
}

// Build constructs a fresh tree over bodies. The root cube is centered at
// (0.5,0.5,0.5) and sized max(1, 2*max_i|r_i-center|_inf*(1+eps)), per
// spec.md §7, so insertions never need clamping even if bodies have
// drifted outside the unit cube.
func Build(bodies []body.Body) *Tree {
	t := &Tree{
		bodies: bodies,
		center: body.Center(),
		root:   empty,
	}
	maxAbs := 0.0
	for i := range bodies {
		d := bodies[i].R.Sub(t.center)
		for k := 0; k < 3; k++ {
			if a := math.Abs(d[k]); a > maxAbs {
				maxAbs = a
			}
		}
	}
	t.extent = math.Max(1.0, 2*maxAbs*(1+1e-12))

	t.nodes = make([]node, 0, 2*len(bodies)+1)
	t.relPos = make([]body.Vec3, len(bodies))
	for i := range bodies {
		t.insert(i)
	}
	return t
}

// Expanded reports whether the root cube is larger than the nominal unit
// cube, i.e. some body left [0,1)^3 this step (spec.md §7 DomainWarning).
func (t *Tree) Expanded() bool {
	return t.extent > 1.0
}

// relative maps an absolute position into [0,1)^3 of the root cube.
func (t *Tree) relative(r body.Vec3) body.Vec3 {
	half := t.extent / 2
	origin := t.center.Sub(body.Vec3{half, half, half})
	return body.Vec3{
		(r[0] - origin[0]) / t.extent,
		(r[1] - origin[1]) / t.extent,
		(r[2] - origin[2]) / t.extent,
	}
}

// octant selects, and renormalizes v in place for, the child cube: for
// each axis, bit=1 and v[k]-=0.5 if v[k]>=0.5, then v is doubled. Octant id
// is (qx<<2)|(qy<<1)|qz (spec.md §4.3).
func octant(v *body.Vec3) int {
	id := 0
	for k := 0; k < 3; k++ {
		bit := 0
		if v[k] >= 0.5 {
			bit = 1
			v[k] -= 0.5
		}
		v[k] *= 2.0
		id = (id << 1) | bit
	}
	return id
}

// newLeaf appends a leaf node for body bi at the given cube size, returning
// its slab index.
func (t *Tree) newLeaf(bi int, size float64) int {
	b := &t.bodies[bi]
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		mTotal:  b.M,
		mrTotal: b.R.Scale(b.M),
		size:    size,
		bodyIdx: bi,
		children: [8]int{empty, empty, empty, empty,
			empty, empty, empty, empty},
	})
	return idx
}

// insert adds body index bi into the tree, per spec.md §4.3. Node sizes are
// stored in physical (absolute) units: the root cube's physical size is
// t.extent (nominally 1, or larger under the spec.md §7 DomainWarning
// expansion), and every octant() call, which renormalizes the dimensionless
// relPos bookkeeping, simply halves this physical size too.
func (t *Tree) insert(bi int) {
	t.relPos[bi] = t.relative(t.bodies[bi].R)
	t.root = t.insertInto(t.root, bi, t.extent)
}

// insertInto inserts body bi into the subtree rooted at idx (empty if the
// subtree is itself empty, in which case size is that slot's physical cube
// side length), returning the new root index for that subtree. bi's
// dimensionless position relative to the current cube is t.relPos[bi].
func (t *Tree) insertInto(idx, bi int, size float64) int {
	b := &t.bodies[bi]

	// Case 1: empty subtree -> body becomes a leaf here.
	if idx == empty {
		return t.newLeaf(bi, size)
	}

	nd := &t.nodes[idx]

	// Size floor: discard rather than recurse without bound. Per spec.md
	// §4.3, this is the one case that must NOT update the node's own
	// aggregates — every ancestor above it still updates unconditionally
	// on the way back up, so the body's mass is not lost, only not
	// resolved any further down than this node.
	if nd.size <= sizeFloor {
		return idx
	}

	childSize := nd.size / 2

	if nd.bodyIdx != empty {
		// Case 3: leaf -> demote into an internal node with two children.
		oldIdx := nd.bodyIdx
		nd.bodyIdx = empty

		// insertInto appends to t.nodes, which may move the slab, so nd is
		// re-taken after every recursive call.
		oldOct := octant(&t.relPos[oldIdx])
		oldChild := t.insertInto(empty, oldIdx, childSize)
		nd = &t.nodes[idx]
		nd.children[oldOct] = oldChild

		newOct := octant(&t.relPos[bi])
		newChild := t.insertInto(nd.children[newOct], bi, childSize)
		nd = &t.nodes[idx]
		nd.children[newOct] = newChild

		nd.mTotal += b.M
		nd.mrTotal = nd.mrTotal.Add(b.R.Scale(b.M))
		return idx
	}

	// Case 2: internal node -> descend into bi's octant.
	oct := octant(&t.relPos[bi])
	child := t.insertInto(nd.children[oct], bi, childSize)
	nd = &t.nodes[idx]
	nd.children[oct] = child

	nd.mTotal += b.M
	nd.mrTotal = nd.mrTotal.Add(b.R.Scale(b.M))
	return idx
}

// ForceOn returns the net gravitational force on b from all bodies in the
// tree, under the θ-criterion (spec.md §4.3).
func (t *Tree) ForceOn(b *body.Body, theta float64) body.Vec3 {
	if t.root == empty {
		return body.Vec3{}
	}
	return t.forceFrom(t.root, b, theta)
}

func (t *Tree) forceFrom(idx int, b *body.Body, theta float64) body.Vec3 {
	nd := &t.nodes[idx]

	if nd.bodyIdx != empty {
		return gravitationalForce(nd.mTotal, nd.CoM(), b)
	}

	com := nd.CoM()
	d := com.Sub(b.R).Norm()
	if nd.size < theta*d {
		return gravitationalForce(nd.mTotal, com, b)
	}

	var f body.Vec3
	for _, c := range nd.children {
		if c == empty {
			continue
		}
		cf := t.forceFrom(c, b, theta)
		f = f.Add(cf)
	}
	return f
}

// gravitationalForce returns the force exerted by a point mass mSrc at
// position rSrc on body b, with the short-distance cutoff of spec.md §4.3.
func gravitationalForce(mSrc float64, rSrc body.Vec3, b *body.Body) body.Vec3 {
	d := rSrc.Sub(b.R)
	dist := d.Norm()
	if dist < cutoff {
		return body.Vec3{}
	}
	coef := body.ScaledG * mSrc * b.M / (dist * dist * dist)
	return d.Scale(coef)
}

// Walk visits every node in the tree (used by tests to verify the mass and
// center-of-mass aggregation invariants of spec.md §8).
func (t *Tree) Walk(visit func(mTotal float64, com body.Vec3, size float64, leaf bool)) {
	if t.root == empty {
		return
	}
	t.walk(t.root, visit)
}

func (t *Tree) walk(idx int, visit func(mTotal float64, com body.Vec3, size float64, leaf bool)) {
	nd := &t.nodes[idx]
	visit(nd.mTotal, nd.CoM(), nd.size, nd.bodyIdx != empty)
	if nd.bodyIdx != empty {
		return
	}
	for _, c := range nd.children {
		if c != empty {
			t.walk(c, visit)
		}
	}
}

// NumNodes returns the number of slab entries allocated for this tree.
func (t *Tree) NumNodes() int { return len(t.nodes) }
