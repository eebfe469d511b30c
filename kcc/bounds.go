// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import "github.com/g3n/charactercontroller/math32"

// planeEpsilon is the numerical tolerance used to de-duplicate bounds and
// to compare solver distances against zero.
const planeEpsilon = 1e-5

// BoundsBuilder translates the current CCContact list into an ordered
// list of bounding half-spaces: blocking planes first, allowed-slope
// planes after. Its backing storage is reused across frames.
type BoundsBuilder struct {
	cosSlopeLimit float32
	upVector      math32.Vector3

	planes []math32.Plane
}

// NewBoundsBuilder creates and returns a pointer to a new BoundsBuilder.
func NewBoundsBuilder(upVector math32.Vector3, cosSlopeLimit float32) *BoundsBuilder {

	return &BoundsBuilder{upVector: upVector, cosSlopeLimit: cosSlopeLimit}
}

// SetCosSlopeLimit updates the cached cos(slope_limit) used to classify a
// plane as blocking vs. allowed-slope.
func (b *BoundsBuilder) SetCosSlopeLimit(cos float32) {

	b.cosSlopeLimit = cos
}

// Reset clears the bounds list, keeping its backing array.
func (b *BoundsBuilder) Reset() {

	b.planes = b.planes[:0]
}

// Planes returns the current ordered bounds list.
func (b *BoundsBuilder) Planes() []math32.Plane {

	return b.planes
}

// Build appends the bound derived from each contact in contacts, rooted
// at the given test position, de-duplicating against planes already
// present and ordering allowed-slope planes after blocking ones.
func (b *BoundsBuilder) Build(position math32.Vector3, contacts []CCContact) {

	for _, contact := range contacts {
		n := contact.NormalTowardCC
		point := *position.Clone().Add(n.Clone().MultiplyScalar(contact.PenetrationDepth))

		plane := new(math32.Plane)
		plane.SetFromNormalAndCoplanarPoint(&n, &point)

		if b.duplicate(plane) {
			continue
		}

		if n.Dot(&b.upVector) >= b.cosSlopeLimit {
			b.planes = append(b.planes, *plane)
		} else {
			b.planes = append(b.planes, math32.Plane{})
			copy(b.planes[1:], b.planes)
			b.planes[0] = *plane
		}
	}
}

func (b *BoundsBuilder) duplicate(plane *math32.Plane) bool {

	pn := plane.Normal()
	for i := range b.planes {
		existing := &b.planes[i]
		en := existing.Normal()
		if en.Dot(&pn) < 1-planeEpsilon {
			continue
		}
		if math32.Abs(existing.Constant()-plane.Constant()) < planeEpsilon {
			return true
		}
	}
	return false
}
