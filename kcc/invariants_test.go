// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics"
	"github.com/g3n/charactercontroller/physics/collision"
	"github.com/g3n/charactercontroller/physics/equation"
)

func addStaticBox(world *collision.World, halfExtents, pos math32.Vector3) *collision.Object {

	box := collision.NewObject(collision.NewBox(&halfExtents))
	box.Owner = &fixedPose{pos: pos}
	world.AddObject(box)
	return box
}

// addSlope registers an infinite static plane tilted by angleFromUp
// radians from up_vector around Z, so that walking in +X climbs the
// slope and walking in -X descends it.
func addSlope(world *collision.World, angleFromUp float32) *collision.Object {

	normal := math32.Vector3{X: -math32.Sin(angleFromUp), Y: math32.Cos(angleFromUp)}
	plane := collision.NewObject(collision.NewPlane(&normal))
	plane.Owner = &fixedPose{}
	world.AddObject(plane)
	return plane
}

// #3 Reproducible ballistic height: a single jump's apex matches the
// closed-form v_jump^2/(2*gravity), independent of how many fixed steps
// it takes to get there.
func TestKCC_JumpApexMatchesClosedForm(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addGroundPlane(world, 0)

	k.SetPosition(&math32.Vector3{Y: 0})
	require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))

	jumpSpeed := float32(5)
	require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{Y: jumpSpeed}, testDt))

	maxY := k.Position().Y
	for i := 0; i < 600; i++ {
		require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
		if k.Position().Y > maxY {
			maxY = k.Position().Y
		}
		if k.Velocity().Y <= 0 {
			break
		}
	}

	expected := jumpSpeed * jumpSpeed / (2 * 9.81)
	assert.InDelta(t, expected, maxY, 0.02)
}

// #4 / S5 Slope bound: a plane steeper than slope_limit yields no net
// upslope progress.
func TestKCC_SlopeSteeperThanLimitBlocksProgress(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addSlope(world, math32.DegToRad(60))

	k.SetPosition(&math32.Vector3{})
	start := k.Position().X

	for i := 0; i < 20; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: 3}, math32.Vector3{}, testDt))
	}

	end := k.Position().X
	assert.LessOrEqual(t, end-start, float32(0.01)*20)
}

// #5 Slope permit: a plane shallower than slope_limit yields strictly
// positive upslope progress.
func TestKCC_SlopeShallowerThanLimitAllowsProgress(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addSlope(world, math32.DegToRad(30))

	k.SetPosition(&math32.Vector3{})
	start := k.Position().X

	for i := 0; i < 20; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: 3}, math32.Vector3{}, testDt))
	}

	end := k.Position().X
	assert.Greater(t, end, start)
}

// #6 / S4 Step-up within height: a box shorter than step_height is
// traversed in a single walk, while one taller than step_height blocks
// the character at its base.
func TestKCC_StepsOverObstacleShorterThanStepHeight(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	require.NoError(t, k.SetStepHeight(0.4))
	addGroundPlane(world, 0)
	addStaticBox(world, math32.Vector3{X: 0.5, Y: 0.15, Z: 2}, math32.Vector3{X: 1.5, Y: 0.15})

	k.SetPosition(&math32.Vector3{Y: 0})
	for i := 0; i < 90; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: 2}, math32.Vector3{}, testDt))
	}

	end := k.Position()
	assert.Greater(t, end.X, float32(1))
	assert.InDelta(t, float32(0.3), end.Y, 0.05)
	assert.True(t, k.HasGroundContact())
}

func TestKCC_BlockedByObstacleTallerThanStepHeight(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	require.NoError(t, k.SetStepHeight(0.4))
	addGroundPlane(world, 0)
	addStaticBox(world, math32.Vector3{X: 0.5, Y: 0.5, Z: 2}, math32.Vector3{X: 1.5, Y: 0.5})

	k.SetPosition(&math32.Vector3{Y: 0})
	for i := 0; i < 90; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: 2}, math32.Vector3{}, testDt))
	}

	end := k.Position()
	assert.Less(t, end.X, float32(1.1))
	assert.InDelta(t, float32(0), end.Y, 0.05)
}

// #1 No interpenetration on commit: once settled on flat ground, every
// contact under the capsule is within a small penetration tolerance.
func TestKCC_NoInterpenetrationOnCommit(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addGroundPlane(world, 0)

	k.SetPosition(&math32.Vector3{Y: 0.5})
	for i := 0; i < 60; i++ {
		require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
	}

	require.True(t, k.HasGroundContact())
	for _, c := range k.cache.Contacts() {
		assert.LessOrEqual(t, c.PenetrationDepth, float32(0.02))
	}
}

// S3 Blocking wall: a vertical wall stops horizontal progress at the
// capsule's radius while the character stays grounded.
func TestKCC_BlockingWallStopsProgress(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addGroundPlane(world, 0)

	wallX := float32(0.6)
	wall := collision.NewObject(collision.NewPlane(&math32.Vector3{X: -1}))
	wall.Owner = &fixedPose{pos: math32.Vector3{X: wallX}}
	world.AddObject(wall)

	k.SetPosition(&math32.Vector3{Y: 0})
	require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))

	require.NoError(t, k.Move(math32.Vector3{X: 10}, math32.Vector3{}, testDt))

	end := k.Position()
	assert.LessOrEqual(t, end.X, wallX-k.Width()/2+0.01)
	assert.True(t, k.HasGroundContact())
}

// #7 Downstep anti-bounce: walking down a shallow downhill slope
// produces a monotonically non-increasing height trace.
func TestKCC_DownstepDoesNotBounce(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addSlope(world, math32.DegToRad(30))

	k.SetPosition(&math32.Vector3{})
	require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))

	prev := k.Position().Y
	for i := 0; i < 60; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: -2}, math32.Vector3{}, testDt))
		cur := k.Position().Y
		assert.LessOrEqual(t, cur, prev+1e-3, "height trace must not bounce while descending")
		prev = cur
	}
}

// #8 Rollback idempotence: a ResolvePenetrations call the solver cannot
// converge on leaves position and contact cache exactly as they were.
func TestKCC_ResolvePenetrationsRollbackIsIdempotent(t *testing.T) {

	_, world, k := newTestRig(t)
	require.NoError(t, k.SetNumberOfSlideIterations(1))

	// Two opposing walls closer together than the capsule's diameter: the
	// solver cannot satisfy both within a single iteration.
	left := collision.NewObject(collision.NewPlane(&math32.Vector3{X: 1}))
	left.Owner = &fixedPose{pos: math32.Vector3{X: -0.1}}
	world.AddObject(left)

	right := collision.NewObject(collision.NewPlane(&math32.Vector3{X: -1}))
	right.Owner = &fixedPose{pos: math32.Vector3{X: 0.1}}
	world.AddObject(right)

	k.SetPosition(&math32.Vector3{})
	k.refreshContacts(testDt)
	before := k.Position()
	beforeContacts := append([]CCContact(nil), k.cache.Contacts()...)

	ok := k.ResolvePenetrations(testDt)

	require.False(t, ok, "a squeeze narrower than the capsule must not converge in one iteration")
	assert.Equal(t, before, k.Position())
	assert.Equal(t, beforeContacts, k.cache.Contacts())
}

// #9 / S6 Traction with a moving platform: once CharacterForceEffect has
// observed the platform's velocity at the contact, the next Move carries
// the controller along at the platform's speed even with zero desired
// velocity, and the controller remains stable through a subsequent
// simulator step.
func TestKCC_RidesMovingPlatform(t *testing.T) {

	sim, _, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)

	platform := physics.NewRigidBody(collision.NewBox(&math32.Vector3{X: 5, Y: 0.5, Z: 5}), 0)
	platform.SetBodyType(physics.Kinematic)
	platform.SetPosition(&math32.Vector3{Y: -0.5})
	platform.SetVelocity(&math32.Vector3{X: 2})
	sim.AddBody(platform)

	k.SetPosition(&math32.Vector3{Y: 0})

	for i := 0; i < 10; i++ {
		require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
		sim.Step(testDt)
	}

	before := k.Position().X
	require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
	afterMove := k.Position().X

	assert.InDelta(t, float32(2)*testDt, afterMove-before, 0.02)

	sim.Step(testDt)
	assert.True(t, k.HasGroundContact())
	pos := k.Position()
	assert.True(t, finite(&pos))
}

// #10 Push impulse cap: CharacterForceEffect never applies more than
// push_force*dt of impulse to a dynamic body it pushes into through a
// side (non-bottom-cap) contact.
func TestCharacterForceEffect_PushImpulseIsClamped(t *testing.T) {

	_, _, k := newTestRig(t)
	require.NoError(t, k.SetPushForce(0.05))
	k.SetPosition(&math32.Vector3{})
	bodyPos := k.body.Position()

	box := physics.NewRigidBody(collision.NewBox(&math32.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), 1)
	box.SetPosition(&math32.Vector3{X: 1, Y: bodyPos.Y})
	initialVelocity := math32.Vector3{X: -5}
	box.SetVelocity(&initialVelocity)

	contact := equation.NewContact(k.body, box, 0, 1e10)
	normal := math32.Vector3{X: 1}
	contact.SetNormal(&normal)
	rA := math32.Vector3{X: k.Width() / 2}
	rB := math32.Vector3{X: -k.Width() / 2}
	contact.SetRA(&rA)
	contact.SetRB(&rB)

	cc := &physics.ContactConstraint{
		Contact:       contact,
		PositionWorld: *bodyPos.Clone().Add(&rA),
	}

	dt := testDt
	k.effect.Step(dt, []*physics.ContactConstraint{cc})

	after := box.Velocity()
	delta := *after.Clone().Sub(&initialVelocity)
	assert.LessOrEqual(t, delta.Length(), k.PushForce()*dt+1e-4)
}
