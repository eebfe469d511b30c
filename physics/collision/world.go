// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import "github.com/g3n/charactercontroller/math32"

// CollisionWorld is the collision-detection boundary the character
// controller and the physics simulation consume: broad-phase queries and
// narrow-phase contact generation. Real collision detection (BVHs, convex
// hulls, meshes) is outside this repository's scope; callers bring their
// own world, which only needs to satisfy this interface.
type CollisionWorld interface {
	// BroadPhaseOverlaps returns every enabled Object whose world AABB
	// overlaps the query box, excluding nothing; callers filter by
	// identity and collision group themselves.
	BroadPhaseOverlaps(aabb math32.Box3) []*Object

	// UpdateContacts recomputes the contacts between the pair held by cs,
	// given their current world poses. dt is informational only (some
	// narrow phases use it to predict near-future contact); analytic
	// worlds may ignore it.
	UpdateContacts(cs *ContactSet, dt float32)

	// CreateContactSet allocates (or recycles, see RecycleContactSet) a
	// ContactSet for the ordered pair (a, b).
	CreateContactSet(a, b *Object) *ContactSet

	// RecycleContactSet returns a ContactSet to the world's pool once the
	// caller is done with it this step. If keepList is true the set's
	// backing contact slice is preserved (reused on the next
	// CreateContactSet for the same pair) rather than discarded.
	RecycleContactSet(cs *ContactSet, keepList bool)

	// CollisionEpsilon returns the small distance tolerance this world's
	// narrow phase is accurate to; the character controller adds it to
	// allowed_penetration when comparing distances, so bounds don't
	// reject contacts the narrow phase considers touching.
	CollisionEpsilon() float32
}

// ObjectRegistry is the optional capability a CollisionWorld implements
// when it keeps its own object list in sync with a Simulation's bodies,
// rather than requiring the caller to register objects by hand.
// Simulation.AddBody/RemoveBody type-assert for it.
type ObjectRegistry interface {
	AddObject(o *Object)
	RemoveObject(o *Object)
}

// World is a reference CollisionWorld: naive O(n) AABB broad-phase plus
// analytic narrow-phase contact generation between Capsule, Plane, Box and
// Sphere shapes. It exists to exercise CollisionWorld end to end in tests
// and the demo; production use should supply a real collision backend.
type World struct {
	objects []*Object
	pool    []*ContactSet
	epsilon float32
	broad   *Broadphase
}

// NewWorld creates and returns a pointer to a new, empty reference World.
func NewWorld() *World {

	return &World{epsilon: 1e-4, broad: NewBroadphase()}
}

// AddObject registers an Object so it takes part in broad-phase queries.
func (w *World) AddObject(o *Object) {

	w.objects = append(w.objects, o)
}

// RemoveObject unregisters an Object.
func (w *World) RemoveObject(o *Object) {

	for i, cur := range w.objects {
		if cur == o {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return
		}
	}
}

// BroadPhaseOverlaps satisfies CollisionWorld via Broadphase.Overlapping,
// testing the query box against every registered object's current AABB.
func (w *World) BroadPhaseOverlaps(aabb math32.Box3) []*Object {

	aabbs := make([]math32.Box3, len(w.objects))
	for i, o := range w.objects {
		pos, quat := objectPose(o)
		aabbs[i] = o.WorldAABB(pos, quat)
	}
	return w.broad.Overlapping(aabb, w.objects, aabbs)
}

// CreateContactSet satisfies CollisionWorld, recycling a pooled set when
// one is available.
func (w *World) CreateContactSet(a, b *Object) *ContactSet {

	if n := len(w.pool); n > 0 {
		cs := w.pool[n-1]
		w.pool = w.pool[:n-1]
		cs.Reset(a, b)
		return cs
	}
	return NewContactSet(a, b)
}

// RecycleContactSet satisfies CollisionWorld.
func (w *World) RecycleContactSet(cs *ContactSet, keepList bool) {

	if !keepList {
		cs.SetContacts(nil)
	}
	w.pool = append(w.pool, cs)
}

// CollisionEpsilon satisfies CollisionWorld.
func (w *World) CollisionEpsilon() float32 {

	return w.epsilon
}

// SetCollisionEpsilon sets the world's contact-touching tolerance.
func (w *World) SetCollisionEpsilon(eps float32) {

	w.epsilon = eps
}

// poser is satisfied by anything (normally a *physics.RigidBody) that
// knows its own world pose; the collision package uses it through Owner
// to avoid importing physics (which imports collision).
type poser interface {
	Position() math32.Vector3
	Quaternion() math32.Quaternion
}

func objectPose(o *Object) (*math32.Vector3, *math32.Quaternion) {

	if p, ok := o.Owner.(poser); ok {
		pos := p.Position()
		quat := p.Quaternion()
		return &pos, &quat
	}
	return &math32.Vector3{}, math32.NewQuaternion(0, 0, 0, 1)
}

// UpdateContacts satisfies CollisionWorld, generating contacts between
// analytic shapes: capsule-vs-plane, capsule-vs-box (clamped to the box's
// closest point), capsule-vs-sphere and capsule-vs-capsule. Any other
// shape pairing yields no contacts.
func (w *World) UpdateContacts(cs *ContactSet, dt float32) {

	cs.SetContacts(cs.Contacts()[:0])

	aCapsule, aIsCapsule := cs.A.Shape().(*Capsule)
	bCapsule, bIsCapsule := cs.B.Shape().(*Capsule)
	posA, quatA := objectPose(cs.A)
	posB, quatB := objectPose(cs.B)

	switch {
	case aIsCapsule && !bIsCapsule:
		if c, ok := capsuleVsShape(aCapsule, posA, quatA, cs.B.Shape(), posB, quatB, false); ok {
			cs.SetContacts(append(cs.Contacts(), c))
		}
	case bIsCapsule && !aIsCapsule:
		if c, ok := capsuleVsShape(bCapsule, posB, quatB, cs.A.Shape(), posA, quatA, true); ok {
			cs.SetContacts(append(cs.Contacts(), c))
		}
	case aIsCapsule && bIsCapsule:
		if c, ok := capsuleVsCapsule(aCapsule, posA, bCapsule, posB); ok {
			cs.SetContacts(append(cs.Contacts(), c))
		}
	}
}

// capsuleAxisWorld returns the world-space endpoints of a capsule's
// central segment (the cylinder axis, excluding the hemisphere caps).
func capsuleAxisWorld(c *Capsule, pos *math32.Vector3, quat *math32.Quaternion) (math32.Vector3, math32.Vector3) {

	half := c.Height/2 - c.Radius
	up := math32.Vector3{X: 0, Y: half, Z: 0}
	up.ApplyQuaternion(quat)
	top := *pos
	top.Add(&up)
	bottom := *pos
	bottom.Sub(&up)
	return bottom, top
}

// capsuleVsShape resolves a contact between a capsule and a plane, box or
// sphere. If flip is true, the capsule is logically object B: the
// returned Contact's Normal still points from A (the non-capsule shape)
// to B (the capsule), and PositionALocal/PositionBLocal follow suit.
func capsuleVsShape(capShape *Capsule, capPos *math32.Vector3, capQuat *math32.Quaternion, other IShape, otherPos *math32.Vector3, otherQuat *math32.Quaternion, flip bool) (Contact, bool) {

	bottom, top := capsuleAxisWorld(capShape, capPos, capQuat)

	switch s := other.(type) {
	case *Plane:
		n := s.Normal
		n.ApplyQuaternion(otherQuat)
		closest := closestPointOnSegmentToPlane(&bottom, &top, otherPos, &n)
		dist := closest.Clone().Sub(otherPos).Dot(&n) - capShape.Radius
		posWorld := closest.Clone().Sub(n.Clone().MultiplyScalar(capShape.Radius + dist/2))
		return makeContact(*posWorld, n, dist, capPos, capQuat, otherPos, otherQuat, flip), true

	case *Sphere:
		closest := closestPointOnSegment(&bottom, &top, otherPos)
		delta := closest.Clone().Sub(otherPos)
		dist := delta.Length() - capShape.Radius - s.Radius
		if delta.Length() == 0 {
			return Contact{}, false
		}
		n := *delta.Clone().Normalize()
		posWorld := otherPos.Clone().Add(n.Clone().MultiplyScalar(s.Radius + dist/2))
		return makeContact(*posWorld, n, dist, capPos, capQuat, otherPos, otherQuat, flip), true

	case *Box:
		local := closestPointOnSegmentToBox(&bottom, &top, otherPos, otherQuat, &s.HalfExtents)
		segPoint := closestPointOnSegment(&bottom, &top, &local)
		delta := segPoint.Clone().Sub(&local)
		dist := delta.Length() - capShape.Radius
		if delta.Length() == 0 {
			return Contact{}, false
		}
		n := *delta.Clone().Normalize()
		posWorld := local
		return makeContact(posWorld, n, dist, capPos, capQuat, otherPos, otherQuat, flip), true
	}
	return Contact{}, false
}

func capsuleVsCapsule(a *Capsule, aPos *math32.Vector3, b *Capsule, bPos *math32.Vector3) (Contact, bool) {

	aBottom, aTop := capsuleAxisWorld(a, aPos, math32.NewQuaternion(0, 0, 0, 1))
	closestOnB := closestPointOnSegment(&aBottom, &aTop, bPos)
	delta := closestOnB.Clone().Sub(bPos)
	dist := delta.Length() - a.Radius - b.Radius
	if delta.Length() == 0 {
		return Contact{}, false
	}
	n := *delta.Clone().Normalize()
	posWorld := bPos.Clone().Add(n.Clone().MultiplyScalar(b.Radius + dist/2))
	identity := math32.NewQuaternion(0, 0, 0, 1)
	return makeContact(*posWorld, n, dist, aPos, identity, bPos, identity, false), true
}

func makeContact(posWorld, normal math32.Vector3, dist float32, aPos *math32.Vector3, aQuat *math32.Quaternion, bPos *math32.Vector3, bQuat *math32.Quaternion, flip bool) Contact {

	c := Contact{
		PositionWorld:    posWorld,
		Normal:           normal,
		PenetrationDepth: -dist,
	}
	c.PositionALocal = *posWorld.Clone().Sub(aPos).ApplyQuaternion(aQuat.Clone().Conjugate())
	c.PositionBLocal = *posWorld.Clone().Sub(bPos).ApplyQuaternion(bQuat.Clone().Conjugate())
	// normal arrives pointing from the other shape toward the capsule.
	if flip {
		c.PositionALocal, c.PositionBLocal = c.PositionBLocal, c.PositionALocal
	} else {
		c.Normal.Negate()
	}
	return c
}

// closestPointOnSegment returns the closest point on segment [a,b] to p.
func closestPointOnSegment(a, b, p *math32.Vector3) math32.Vector3 {

	ab := b.Clone().Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return *a
	}
	t := p.Clone().Sub(a).Dot(ab) / lenSq
	t = math32.Max(0, math32.Min(1, t))
	return *a.Clone().Add(ab.MultiplyScalar(t))
}

// closestPointOnSegmentToPlane returns the point on segment [a,b] with the
// smallest signed distance to the plane through planePoint with the given
// normal.
func closestPointOnSegmentToPlane(a, b, planePoint, normal *math32.Vector3) math32.Vector3 {

	da := a.Clone().Sub(planePoint).Dot(normal)
	db := b.Clone().Sub(planePoint).Dot(normal)
	if da <= db {
		return *a
	}
	return *b
}

// closestPointOnSegmentToBox approximates the closest world-space point on
// an oriented box's surface/interior to the capsule segment, by sampling
// the segment's closest point to the box center and clamping it into the
// box's local extents. Good enough for an analytic reference world; not a
// full segment-vs-OBB solver.
func closestPointOnSegmentToBox(a, b, boxPos *math32.Vector3, boxQuat *math32.Quaternion, halfExtents *math32.Vector3) math32.Vector3 {

	p := closestPointOnSegment(a, b, boxPos)
	local := p.Clone().Sub(boxPos).ApplyQuaternion(boxQuat.Clone().Conjugate())
	local.X = math32.Max(-halfExtents.X, math32.Min(halfExtents.X, local.X))
	local.Y = math32.Max(-halfExtents.Y, math32.Min(halfExtents.Y, local.Y))
	local.Z = math32.Max(-halfExtents.Z, math32.Min(halfExtents.Z, local.Z))
	world := local.ApplyQuaternion(boxQuat).Add(boxPos)
	return *world
}
