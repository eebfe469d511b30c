// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/g3n/charactercontroller/math32"
)

// Friction is a friction constraint equation, a pure velocity constraint
// tangent to a contact's normal.
type Friction struct {
	Equation
	rA *math32.Vector3 // World-oriented vector from the center of bA to the contact point.
	rB *math32.Vector3 // World-oriented vector from the center of bB to the contact point.
	t  *math32.Vector3 // Contact tangent.
}

// NewFriction creates and returns a pointer to a new Friction equation.
// slipForce should be +-mu*Fn, the maximum tangential force before slipping.
func NewFriction(bodyA, bodyB IBody, slipForce float32) *Friction {

	fe := new(Friction)

	fe.rA = math32.NewVec3()
	fe.rB = math32.NewVec3()
	fe.t = math32.NewVec3()

	fe.Equation.initialize(bodyA, bodyB, -slipForce, slipForce)

	return fe
}

// SetTangent sets the friction equation's tangent direction.
func (fe *Friction) SetTangent(newTangent *math32.Vector3) {

	fe.t = newTangent
}

// Tangent returns the friction equation's tangent direction.
func (fe *Friction) Tangent() math32.Vector3 {

	return *fe.t
}

// SetRA sets the world-oriented offset from body A's center to the contact point.
func (fe *Friction) SetRA(newRa *math32.Vector3) {

	fe.rA = newRa
}

// RA returns the world-oriented offset from body A's center to the contact point.
func (fe *Friction) RA() math32.Vector3 {

	return *fe.rA
}

// SetRB sets the world-oriented offset from body B's center to the contact point.
func (fe *Friction) SetRB(newRb *math32.Vector3) {

	fe.rB = newRb
}

// RB returns the world-oriented offset from body B's center to the contact point.
func (fe *Friction) RB() math32.Vector3 {

	return *fe.rB
}

// ComputeB computes the RHS of the SPOOK equation for friction. g is always
// zero since friction is a pure velocity constraint.
func (fe *Friction) ComputeB(h float32) float32 {

	rtA := math32.NewVec3().CrossVectors(fe.rA, fe.t)
	rtB := math32.NewVec3().CrossVectors(fe.rB, fe.t)

	fe.jeA.SetSpatial(fe.t.Clone().Negate())
	fe.jeA.SetRotational(rtA.Clone().Negate())
	fe.jeB.SetSpatial(fe.t.Clone())
	fe.jeB.SetRotational(rtB.Clone())

	GW := fe.ComputeGW()
	GiMf := fe.ComputeGiMf()

	return -GW*fe.b - h*GiMf
}
