// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import "github.com/g3n/charactercontroller/math32"

// Broadphase finds candidate pairs of collision objects whose world AABBs
// overlap. NewBroadphase's naive all-pairs implementation is the teacher's
// own (experimental/physics/broadphase.go); it is adequate for the object
// counts a character controller's obstacle set involves and is kept rather
// than replaced with a spatial structure the examples don't otherwise show.
type Broadphase struct{}

// Pair is a candidate colliding pair reported by a broadphase.
type Pair struct {
	A *Object
	B *Object
}

// NewBroadphase creates and returns a pointer to a new Broadphase.
func NewBroadphase() *Broadphase {

	return &Broadphase{}
}

// FindPairs returns every pair of enabled, collision-group-compatible
// objects whose world AABBs overlap.
func (b *Broadphase) FindPairs(objects []*Object, aabbs []math32.Box3) []Pair {

	pairs := make([]Pair, 0)

	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			if !b.needTest(objects[i], objects[j]) {
				continue
			}
			if aabbs[i].IsIntersectionBox(&aabbs[j]) {
				pairs = append(pairs, Pair{A: objects[i], B: objects[j]})
			}
		}
	}

	return pairs
}

// Overlapping returns every enabled object among candidates whose world AABB
// intersects query. This is the shape FindContacts / the character
// controller's own obstacle-collection step needs: one side of the pair (the
// controller's capsule) is fixed, and candidates are tested against it.
func (b *Broadphase) Overlapping(query math32.Box3, candidates []*Object, aabbs []math32.Box3) []*Object {

	hits := make([]*Object, 0)
	for i, obj := range candidates {
		if !obj.Enabled() {
			continue
		}
		if query.IsIntersectionBox(&aabbs[i]) {
			hits = append(hits, obj)
		}
	}
	return hits
}

func (b *Broadphase) needTest(a, bObj *Object) bool {

	if !a.Enabled() || !bObj.Enabled() {
		return false
	}
	if a.CollisionGroup() == 0 || bObj.CollisionGroup() == 0 {
		return false
	}
	return true
}
