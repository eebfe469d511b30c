// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
)

func TestRigidBody_ZeroMassIsStatic(t *testing.T) {

	b := NewRigidBody(collision.NewSphere(1), 0)
	b.SetBodyType(Static)

	assert.Equal(t, Static, b.BodyType())
	assert.Equal(t, float32(0), b.InvMassEff())
}

func TestRigidBody_OwnerIsItself(t *testing.T) {

	b := NewRigidBody(collision.NewSphere(1), 1)
	owner, ok := b.Owner.(*RigidBody)

	assert.True(t, ok, "RigidBody must set its own Object.Owner so collision.World can recover its pose")
	assert.Same(t, b, owner)
}

func TestRigidBody_IntegrateAppliesVelocity(t *testing.T) {

	b := NewRigidBody(collision.NewSphere(1), 1)
	b.SetLinearDamping(0)
	b.SetVelocity(&math32.Vector3{X: 2})

	b.Integrate(0.5)

	pos := b.Position()
	assert.InDelta(t, float32(1), pos.X, 1e-5)
}

func TestRigidBody_ApplyImpulseChangesLinearVelocity(t *testing.T) {

	b := NewRigidBody(collision.NewSphere(1), 2)
	b.SetFixedRotation(true)

	b.ApplyImpulse(&math32.Vector3{X: 4}, &math32.Vector3{})

	v := b.Velocity()
	assert.InDelta(t, float32(2), v.X, 1e-5) // impulse/mass = 4/2
}

func TestRigidBody_VelocityAtWorldPointIncludesAngularTerm(t *testing.T) {

	b := NewRigidBody(collision.NewSphere(1), 1)
	b.SetVelocity(&math32.Vector3{})
	b.SetAngularVelocity(&math32.Vector3{Y: 1})

	point := b.Position()
	point.X += 1
	v := b.VelocityAtWorldPoint(&point)

	// omega x r, with omega=(0,1,0) and r=(1,0,0), is (0,0,-1): a point
	// offset along X from a body spinning about Y sweeps along -Z.
	assert.InDelta(t, float32(-1), v.Z, 1e-5)
}
