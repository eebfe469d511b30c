// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import "github.com/g3n/charactercontroller/math32"

// Move advances the controller by dt given a desired velocity and an
// optional jump velocity along up_vector. It resolves any existing
// penetration, classifies ground contact, then either walks (Slide,
// StepUp, StepDown) or falls (exact ballistic integration blended by
// jump_maneuverability), and finally refreshes Velocity and
// HasGroundContact from the net displacement. A disabled controller is
// a no-op. The underlying body's simulator velocity is zeroed both
// before and after, so Simulation.Step's own gravity integration never
// compounds on top of the displacement Move already committed.
func (k *KCC) Move(desiredVelocity, jumpVelocity math32.Vector3, dt float32) error {

	if dt <= 0 {
		return newPreconditionError("kcc: dt must be > 0")
	}
	if !k.enabled {
		return nil
	}

	start := k.Position()
	k.body.SetVelocity(&math32.Vector3{})

	k.ResolvePenetrations(dt)
	resolved := k.Position()
	grounded := k.ground.HasGroundContact(k.cache) || (k.isClimbing && k.verticalSpeed <= 0)

	desiredMovement := *desiredVelocity.Clone().MultiplyScalar(dt)
	if limit := k.maxVelocity * dt; desiredMovement.Length() > limit {
		desiredMovement.SetLength(limit)
	}
	desiredHorizontal := k.horizontalComponent(desiredMovement)

	jumpUp := jumpVelocity.Dot(&k.upVector)
	jumping := grounded && jumpUp > 0

	var movement math32.Vector3
	switch {
	case jumping:
		k.verticalSpeed = jumpUp
		k.log.Debugw("jump", "jumpVelocity", jumpUp)
		movement = k.integrateAirborne(desiredHorizontal, dt)

	case grounded:
		k.verticalSpeed = 0
		riding := *k.groundVelocity.Clone().MultiplyScalar(dt)
		movement = k.Slide(*desiredMovement.Clone().Add(&riding), false, dt)

		// A Slide that made little horizontal progress may have been
		// blocked by a low ledge; StepUp is only taken if it beats what
		// Slide alone achieved.
		if net, stepped := k.StepUp(desiredMovement, dt); stepped && net.Length() > movement.Length() {
			movement = net
		}

		beforeSettle := k.body.Position()
		k.StepDown(true, dt)
		settle := *k.body.Position().Sub(&beforeSettle)
		movement.Add(&settle)
		k.lastHorizontalMovement = desiredHorizontal

	default:
		movement = k.integrateAirborne(desiredHorizontal, dt)
	}

	end := *resolved.Clone().Add(&movement)
	k.SetPosition(&end)
	k.body.SetVelocity(&math32.Vector3{})

	k.refreshContacts(dt)
	k.hadGroundContact = k.isClimbing || k.ground.HasGroundContact(k.cache)
	k.velocity = *end.Clone().Sub(&start).MultiplyScalar(1 / dt)

	if k.hadGroundContact != grounded {
		k.log.Debugw("ground contact changed", "grounded", k.hadGroundContact)
	}

	return nil
}

// integrateAirborne performs exact trapezoidal gravity integration
// (v_new = v_old - gravity*dt, movement = 0.5*(v_new+v_old)*dt along
// up_vector, independent of dt at the jump apex) and blends the desired
// horizontal movement into the last frame's airborne horizontal movement
// by jump_maneuverability, then resolves the combined movement via Fly.
func (k *KCC) integrateAirborne(desiredHorizontal math32.Vector3, dt float32) math32.Vector3 {

	vOld := k.verticalSpeed
	vNew := vOld - k.gravity*dt
	k.verticalSpeed = vNew

	vertical := *k.upVector.Clone().MultiplyScalar(0.5 * (vNew + vOld) * dt)

	horizontal := *k.lastHorizontalMovement.Clone().Lerp(&desiredHorizontal, k.jumpManeuverability)
	k.lastHorizontalMovement = horizontal

	total := *horizontal.Clone().Add(&vertical)
	return k.Fly(total, dt)
}

// horizontalComponent returns the component of v perpendicular to
// up_vector.
func (k *KCC) horizontalComponent(v math32.Vector3) math32.Vector3 {

	along := v.Dot(&k.upVector)
	return *v.Clone().Sub(k.upVector.Clone().MultiplyScalar(along))
}
