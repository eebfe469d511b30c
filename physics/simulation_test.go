// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
)

func TestSimulation_AddBodyReusesFreedIndex(t *testing.T) {

	sim := NewSimulation(collision.NewWorld())

	a := NewRigidBody(collision.NewSphere(1), 1)
	b := NewRigidBody(collision.NewSphere(1), 1)
	sim.AddBody(a)
	sim.AddBody(b)
	require.Equal(t, 0, a.Index())
	require.Equal(t, 1, b.Index())

	require.True(t, sim.RemoveBody(a))

	c := NewRigidBody(collision.NewSphere(1), 1)
	sim.AddBody(c)
	assert.Equal(t, 0, c.Index(), "the index freed by RemoveBody should be reused")
}

func TestSimulation_FreeFallUnderGravity(t *testing.T) {

	sim := NewSimulation(collision.NewWorld())
	sim.SetGravity(&math32.Vector3{Y: -10})

	body := NewRigidBody(collision.NewSphere(0.5), 1)
	body.SetLinearDamping(0)
	sim.AddBody(body)

	for i := 0; i < 10; i++ {
		sim.Step(0.1)
	}

	pos := body.Position()
	assert.Less(t, pos.Y, float32(0))
}

func TestSimulation_CapsuleRestsOnPlane(t *testing.T) {

	sim := NewSimulation(collision.NewWorld())
	sim.SetGravity(&math32.Vector3{Y: -10})

	ground := NewRigidBody(collision.NewPlane(&math32.Vector3{Y: 1}), 0)
	ground.SetBodyType(Static)
	sim.AddBody(ground)

	capsule := NewRigidBody(collision.NewCapsule(0.5, 2), 1)
	capsule.SetLinearDamping(0)
	capsule.SetFixedRotation(true)
	capsule.SetAngularFactor(&math32.Vector3{})
	capsule.SetPosition(&math32.Vector3{Y: 1.05})
	sim.AddBody(capsule)

	for i := 0; i < 120; i++ {
		sim.Step(1.0 / 60)
	}

	pos := capsule.Position()
	assert.InDelta(t, float32(1), pos.Y, 0.05, "the capsule should settle with its center half a height above the plane")
}

func TestSimulation_ContactTransitionsAreTracked(t *testing.T) {

	sim := NewSimulation(collision.NewWorld())
	sim.SetGravity(&math32.Vector3{})

	ground := NewRigidBody(collision.NewPlane(&math32.Vector3{Y: 1}), 0)
	ground.SetBodyType(Static)
	sim.AddBody(ground)

	capsule := NewRigidBody(collision.NewCapsule(0.5, 2), 1)
	capsule.SetFixedRotation(true)
	capsule.SetPosition(&math32.Vector3{Y: 1})
	sim.AddBody(capsule)

	recorder := &constraintRecorder{}
	sim.AddForceEffect(recorder)

	sim.Step(1.0 / 60)
	assert.NotEmpty(t, recorder.seen, "a resting capsule should produce at least one contact constraint")
}

type constraintRecorder struct {
	seen []*ContactConstraint
}

func (r *constraintRecorder) Step(dt float32, constraints []*ContactConstraint) {

	r.seen = append(r.seen, constraints...)
}
