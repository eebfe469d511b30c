// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements the analytic collision shapes and the
// CollisionWorld interface consumed by the character controller. Real
// broad/narrow-phase collision detection is out of scope for this
// repository; the analytic world here exists to exercise the interface
// end to end in tests and the demo.
package collision

import "github.com/g3n/charactercontroller/math32"

// IShape is satisfied by every analytic collision shape.
type IShape interface {
	// BoundingBox returns the shape's axis-aligned bounding box in its own
	// local (unrotated, origin-centered) frame.
	BoundingBox() math32.Box3
}

// Capsule is a vertical capsule: a cylinder of the given radius and height
// capped by two hemispheres, so that total height (including the caps)
// equals Height. The capsule's axis is always the up vector of whatever
// body owns it.
type Capsule struct {
	Radius float32
	Height float32
}

// NewCapsule creates and returns a pointer to a new Capsule shape.
func NewCapsule(radius, height float32) *Capsule {

	return &Capsule{Radius: radius, Height: height}
}

// BoundingBox satisfies IShape.
func (c *Capsule) BoundingBox() math32.Box3 {

	half := c.Height / 2
	return math32.Box3{
		Min: math32.Vector3{X: -c.Radius, Y: -half, Z: -c.Radius},
		Max: math32.Vector3{X: c.Radius, Y: half, Z: c.Radius},
	}
}

// Plane is an infinite analytic collision plane with its surface passing
// through the origin of the owning body and Normal pointing into open
// space (away from the solid half-space).
type Plane struct {
	Normal math32.Vector3
}

// NewPlane creates and returns a pointer to a new analytic collision Plane.
func NewPlane(normal *math32.Vector3) *Plane {

	p := new(Plane)
	p.Normal = *normal
	p.Normal.Normalize()
	return p
}

// BoundingBox satisfies IShape. A plane's bounding box is unbounded in
// every direction it lies in; callers generally special-case planes
// rather than rely on this for broad-phase pruning.
func (p *Plane) BoundingBox() math32.Box3 {

	return math32.Box3{
		Min: math32.Vector3{X: -math32.Infinity, Y: -math32.Infinity, Z: -math32.Infinity},
		Max: math32.Vector3{X: math32.Infinity, Y: math32.Infinity, Z: math32.Infinity},
	}
}

// Box is an axis-aligned (in its own local frame) collision box defined by
// its half-extents.
type Box struct {
	HalfExtents math32.Vector3
}

// NewBox creates and returns a pointer to a new analytic collision Box.
func NewBox(halfExtents *math32.Vector3) *Box {

	return &Box{HalfExtents: *halfExtents}
}

// BoundingBox satisfies IShape.
func (b *Box) BoundingBox() math32.Box3 {

	return math32.Box3{
		Min: *math32.NewVec3().Copy(&b.HalfExtents).Negate(),
		Max: b.HalfExtents,
	}
}

// Sphere is an analytic collision sphere.
type Sphere struct {
	Radius float32
}

// NewSphere creates and returns a pointer to a new analytic collision Sphere.
func NewSphere(radius float32) *Sphere {

	return &Sphere{Radius: radius}
}

// BoundingBox satisfies IShape.
func (s *Sphere) BoundingBox() math32.Box3 {

	return math32.Box3{
		Min: math32.Vector3{X: -s.Radius, Y: -s.Radius, Z: -s.Radius},
		Max: math32.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius},
	}
}
