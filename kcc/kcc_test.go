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
)

const testDt = 1.0 / 60

func newTestRig(t *testing.T) (*physics.Simulation, *collision.World, *KCC) {

	world := collision.NewWorld()
	sim := physics.NewSimulation(world)
	sim.SetGravity(&math32.Vector3{})

	k, err := New(sim, math32.Vector3{Y: 1}, 1, 2, nil)
	require.NoError(t, err)

	return sim, world, k
}

func addGroundPlane(world *collision.World, y float32) *collision.Object {

	plane := collision.NewObject(collision.NewPlane(&math32.Vector3{X: 0, Y: 1, Z: 0}))
	plane.Owner = &fixedPose{pos: math32.Vector3{Y: y}}
	world.AddObject(plane)
	return plane
}

// fixedPose is a minimal poser for static test fixtures (planes, boxes).
type fixedPose struct {
	pos  math32.Vector3
	quat math32.Quaternion
}

func (f *fixedPose) Position() math32.Vector3 {

	return f.pos
}

func (f *fixedPose) Quaternion() math32.Quaternion {

	if f.quat.Length() == 0 {
		return *math32.NewQuaternion(0, 0, 0, 1)
	}
	return f.quat
}

func TestNew_RejectsZeroUpVector(t *testing.T) {

	world := collision.NewWorld()
	sim := physics.NewSimulation(world)

	_, err := New(sim, math32.Vector3{}, 1, 2, nil)
	require.Error(t, err)
	_, ok := err.(*PreconditionError)
	assert.True(t, ok)
}

func TestKCC_PositionIsBottomOfCapsule(t *testing.T) {

	_, _, k := newTestRig(t)

	k.SetPosition(&math32.Vector3{X: 1, Y: 5, Z: -2})
	got := k.Position()

	assert.InDelta(t, float32(1), got.X, 1e-5)
	assert.InDelta(t, float32(5), got.Y, 1e-5)
	assert.InDelta(t, float32(-2), got.Z, 1e-5)
}

func TestKCC_SettlesOnGround(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addGroundPlane(world, 0)

	k.SetPosition(&math32.Vector3{Y: 0.05})

	for i := 0; i < 30; i++ {
		err := k.Move(math32.Vector3{}, math32.Vector3{}, testDt)
		require.NoError(t, err)
	}

	pos := k.Position()
	assert.InDelta(t, float32(0), pos.Y, 1e-2)
	assert.True(t, k.HasGroundContact())
}

func TestKCC_WalksAcrossFlatGround(t *testing.T) {

	sim, world, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)
	addGroundPlane(world, 0)

	k.SetPosition(&math32.Vector3{Y: 0})
	for i := 0; i < 5; i++ {
		require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
	}

	start := k.Position()
	for i := 0; i < 30; i++ {
		require.NoError(t, k.Move(math32.Vector3{X: 2}, math32.Vector3{}, testDt))
	}
	end := k.Position()

	assert.Greater(t, end.X, start.X)
	assert.InDelta(t, float32(0), end.Y, 5e-2)
}

func TestKCC_FallsWhenAirborne(t *testing.T) {

	sim, _, k := newTestRig(t)
	sim.SetGravity(&math32.Vector3{Y: -9.81})
	k.SetGravity(9.81)

	k.SetPosition(&math32.Vector3{Y: 10})
	start := k.Position()

	for i := 0; i < 10; i++ {
		require.NoError(t, k.Move(math32.Vector3{}, math32.Vector3{}, testDt))
	}

	end := k.Position()
	assert.Less(t, end.Y, start.Y)
	assert.False(t, k.HasGroundContact())
}

func TestKCC_SetHeightPreservesPosition(t *testing.T) {

	_, _, k := newTestRig(t)

	k.SetPosition(&math32.Vector3{X: 3, Y: 0, Z: 4})
	require.NoError(t, k.SetHeight(3))

	pos := k.Position()
	assert.InDelta(t, float32(3), pos.X, 1e-5)
	assert.InDelta(t, float32(0), pos.Y, 1e-5)
	assert.InDelta(t, float32(4), pos.Z, 1e-5)
	assert.Equal(t, float32(3), k.Height())
}

func TestKCC_SetterValidation(t *testing.T) {

	_, _, k := newTestRig(t)

	assert.Error(t, k.SetJumpManeuverability(-0.1))
	assert.Error(t, k.SetJumpManeuverability(1.1))
	assert.NoError(t, k.SetJumpManeuverability(0.5))

	assert.Error(t, k.SetNumberOfSlideIterations(0))
	assert.NoError(t, k.SetNumberOfSlideIterations(6))

	assert.Error(t, k.SetMaxVelocity(-1))
	assert.NoError(t, k.SetMaxVelocity(10))
}
