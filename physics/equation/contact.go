// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/g3n/charactercontroller/math32"
)

// Contact is a non-penetration constraint equation between two bodies.
type Contact struct {
	Equation
	restitution float32         // "bounciness": u1 = -e*u0
	rA          *math32.Vector3 // World-oriented vector from the center of bA to the contact point.
	rB          *math32.Vector3 // World-oriented vector from the center of bB to the contact point.
	nA          *math32.Vector3 // Contact normal, pointing out of body A.
}

// NewContact creates and returns a pointer to a new Contact equation.
func NewContact(bodyA, bodyB IBody, minForce, maxForce float32) *Contact {

	ce := new(Contact)

	ce.restitution = 0
	ce.rA = math32.NewVec3()
	ce.rB = math32.NewVec3()
	ce.nA = math32.NewVec3()

	ce.Equation.initialize(bodyA, bodyB, minForce, maxForce)

	return ce
}

// SetRestitution sets the contact's restitution (bounciness) coefficient.
func (ce *Contact) SetRestitution(r float32) {

	ce.restitution = r
}

// Restitution returns the contact's restitution coefficient.
func (ce *Contact) Restitution() float32 {

	return ce.restitution
}

// SetNormal sets the contact normal, pointing out of body A.
func (ce *Contact) SetNormal(newNormal *math32.Vector3) {

	ce.nA = newNormal
}

// Normal returns the contact normal.
func (ce *Contact) Normal() math32.Vector3 {

	return *ce.nA
}

// SetRA sets the world-oriented offset from body A's center to the contact point.
func (ce *Contact) SetRA(newRa *math32.Vector3) {

	ce.rA = newRa
}

// RA returns the world-oriented offset from body A's center to the contact point.
func (ce *Contact) RA() math32.Vector3 {

	return *ce.rA
}

// SetRB sets the world-oriented offset from body B's center to the contact point.
func (ce *Contact) SetRB(newRb *math32.Vector3) {

	ce.rB = newRb
}

// RB returns the world-oriented offset from body B's center to the contact point.
func (ce *Contact) RB() math32.Vector3 {

	return *ce.rB
}

// ComputeB computes the RHS of the SPOOK equation for a contact, folding in
// restitution instead of using the base Equation.ComputeB's GW term.
func (ce *Contact) ComputeB(h float32) float32 {

	vA := ce.bA.Velocity()
	wA := ce.bA.AngularVelocity()
	vB := ce.bB.Velocity()
	wB := ce.bB.AngularVelocity()

	rnA := math32.NewVec3().CrossVectors(ce.rA, ce.nA)
	rnB := math32.NewVec3().CrossVectors(ce.rB, ce.nA)

	// g = xj+rB - (xi+rA); G = [ -nA  -rnA  nA  rnB ]
	ce.jeA.SetSpatial(ce.nA.Clone().Negate())
	ce.jeA.SetRotational(rnA.Clone().Negate())
	ce.jeB.SetSpatial(ce.nA.Clone())
	ce.jeB.SetRotational(rnB.Clone())

	posA := ce.bA.Position()
	posB := ce.bB.Position()
	penetrationVec := ce.rB.Clone().Add(&posB).Sub(ce.rA).Sub(&posA)
	g := ce.nA.Dot(penetrationVec)

	ePlusOne := ce.restitution + 1
	GW := ePlusOne*vB.Dot(ce.nA) - ePlusOne*vA.Dot(ce.nA) + wB.Dot(rnB) - wA.Dot(rnA)
	GiMf := ce.ComputeGiMf()

	return -g*ce.a - GW*ce.b - h*GiMf
}
