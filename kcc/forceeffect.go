// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics"
)

// CharacterForceEffect is the physics.ForceEffect a KCC registers with
// its Simulation. Once per step it walks the solved contact constraints
// looking for the ones under the capsule's bottom cap, pushes the
// controller's weight into whatever dynamic body is there (clamped to
// push_force), and records that body's velocity (plus any SurfaceMotion
// its material carries) at the contact as the controller's ground
// velocity for the next Move. Contacts against the capsule's sides push
// whatever dynamic body is leaning into it, via the contact's K-matrix.
type CharacterForceEffect struct {
	kcc *KCC
}

func newCharacterForceEffect(k *KCC) *CharacterForceEffect {

	return &CharacterForceEffect{kcc: k}
}

// Step implements physics.ForceEffect.
func (e *CharacterForceEffect) Step(dt float32, constraints []*physics.ContactConstraint) {

	k := e.kcc
	if !k.enabled {
		return
	}

	bottomOfCylinder := -k.height/2 + k.width/2
	maxImpulse := k.pushForce * dt
	weight := *k.upVector.Clone().MultiplyScalar(-k.body.Mass() * k.gravity * dt)

	k.groundVelocity = math32.Vector3{}
	supporting := 0

	for _, cc := range constraints {
		if !cc.Involves(k.body) {
			continue
		}

		other, normalTowardOther := cc.Other(k.body)
		rb, ok := other.(*physics.RigidBody)
		if !ok {
			continue // static/world contact: nothing to push
		}

		local := k.body.PointToLocal(&cc.PositionWorld)
		if local.Y > bottomOfCylinder {
			e.pushAside(cc, rb, normalTowardOther, maxImpulse)
			continue
		}

		inward := *normalTowardOther.Clone().Negate()
		if inward.Dot(&k.upVector) < k.cosSlopeLimit {
			continue // too steep to count as ground, even though it's under the cap
		}

		impulse := weight
		if impulse.Dot(&normalTowardOther) < 0 {
			impulse.Negate()
		}
		if impulse.Length() > maxImpulse {
			impulse.SetLength(maxImpulse)
		}

		otherPos := rb.Position()
		rel := *cc.PositionWorld.Clone().Sub(&otherPos)
		rb.ApplyImpulse(&impulse, &rel)

		surface := rb.VelocityAtWorldPoint(&cc.PositionWorld)
		k.groundVelocity.Add(&surface)
		if mat := rb.Material(); mat != nil && mat.SurfaceMotion != nil {
			carried := rb.VectorToWorld(mat.SurfaceMotion)
			k.groundVelocity.Add(&carried)
		}
		supporting++
	}

	if supporting > 0 {
		k.groundVelocity.MultiplyScalar(1 / float32(supporting))
	}
}

// pushAside applies a clamped push impulse to rb when it is moving into
// the controller through a non-bottom-cap contact: j = K^-1 * v_rel,
// where v_rel is the contact-point velocity of rb relative to the
// controller's own body, computed via the contact's effective mass
// matrix so the push accounts for rb's inertia at the contact point.
func (e *CharacterForceEffect) pushAside(cc *physics.ContactConstraint, rb *physics.RigidBody, normalTowardOther math32.Vector3, maxImpulse float32) {

	k := e.kcc

	vOther := rb.VelocityAtWorldPoint(&cc.PositionWorld)
	vSelf := k.body.VelocityAtWorldPoint(&cc.PositionWorld)
	relVel := *vOther.Clone().Sub(&vSelf)

	approaching := -relVel.Dot(&normalTowardOther)
	if approaching <= 0 {
		return // rb is not moving into the controller
	}

	kMatrix := cc.KMatrix()
	invK := math32.NewMatrix3()
	if err := invK.GetInverse3(kMatrix); err != nil {
		return // degenerate contact (e.g. both bodies infinitely massive here)
	}

	push := *relVel.Clone().Negate().ApplyMatrix3(invK)
	if push.Length() > maxImpulse {
		push.SetLength(maxImpulse)
	}

	otherPos := rb.Position()
	rel := *cc.PositionWorld.Clone().Sub(&otherPos)
	rb.ApplyImpulse(&push, &rel)
}
