// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equation implements SPOOK constraint equations based on the 2007
// PhD thesis of Claude Lacoursiere, "Ghosts and Machines: Regularized
// Variational Methods for Interactive Simulations of Multibodies with Dry
// Frictional Contacts".
package equation

import (
	"github.com/g3n/charactercontroller/math32"
)

// IBody is the interface every simulated body must satisfy to participate
// in constraint solving.
type IBody interface {
	Index() int
	Position() math32.Vector3
	Velocity() math32.Vector3
	AngularVelocity() math32.Vector3
	Force() math32.Vector3
	Torque() math32.Vector3
	InvMassEff() float32
	InvRotInertiaWorldEff() *math32.Matrix3
}

// IEquation is the interface type for all equation types.
type IEquation interface {
	BodyA() IBody
	BodyB() IBody
	JeA() JacobianElement
	JeB() JacobianElement
	SetEnabled(state bool)
	Enabled() bool
	MinForce() float32
	MaxForce() float32
	Eps() float32
	SetMultiplier(multiplier float32)
	ComputeB(h float32) float32
	ComputeC() float32
}

// JacobianElement holds the six entries of a constraint's Jacobian row
// contributed by one body: three spatial and three rotational.
type JacobianElement struct {
	spatial    math32.Vector3
	rotational math32.Vector3
}

// SetSpatial sets the spatial component of the JacobianElement.
func (je *JacobianElement) SetSpatial(spatial *math32.Vector3) {

	je.spatial = *spatial
}

// Spatial returns the spatial component of the JacobianElement.
func (je *JacobianElement) Spatial() math32.Vector3 {

	return je.spatial
}

// SetRotational sets the rotational component of the JacobianElement.
func (je *JacobianElement) SetRotational(rotational *math32.Vector3) {

	je.rotational = *rotational
}

// Rotational returns the rotational component of the JacobianElement.
func (je *JacobianElement) Rotational() math32.Vector3 {

	return je.rotational
}

// MultiplyVectors dots this element against an external (spatial, rotational)
// pair, used to project a velocity onto the constraint's Jacobian row.
func (je *JacobianElement) MultiplyVectors(spatial, rotational *math32.Vector3) float32 {

	return je.spatial.Dot(spatial) + je.rotational.Dot(rotational)
}

// Equation is a SPOOK constraint equation: the shared machinery every
// concrete equation (Contact, Friction) embeds.
type Equation struct {
	minForce   float32 // Minimum (negative max) force the constraint may apply.
	maxForce   float32 // Maximum force the constraint may apply.
	bA         IBody
	bB         IBody
	a          float32 // SPOOK parameter
	b          float32 // SPOOK parameter
	eps        float32 // SPOOK parameter
	jeA        JacobianElement
	jeB        JacobianElement
	enabled    bool
	multiplier float32 // Proportional to the force added to the bodies by the last solve.
}

// NewEquation creates and returns a pointer to a new Equation object.
func NewEquation(bi, bj IBody, minForce, maxForce float32) *Equation {

	e := new(Equation)
	e.initialize(bi, bj, minForce, maxForce)
	return e
}

func (e *Equation) initialize(bi, bj IBody, minForce, maxForce float32) {

	e.minForce = minForce
	e.maxForce = maxForce
	e.bA = bi
	e.bB = bj
	e.enabled = true

	e.SetSpookParams(1e7, 3, 1.0/60)
}

// BodyA returns the equation's first body.
func (e *Equation) BodyA() IBody {

	return e.bA
}

// BodyB returns the equation's second body.
func (e *Equation) BodyB() IBody {

	return e.bB
}

// JeA returns the Jacobian element contributed by body A.
func (e *Equation) JeA() JacobianElement {

	return e.jeA
}

// JeB returns the Jacobian element contributed by body B.
func (e *Equation) JeB() JacobianElement {

	return e.jeB
}

// MinForce returns the minimum force the constraint may apply.
func (e *Equation) MinForce() float32 {

	return e.minForce
}

// SetMinForce sets the minimum force the constraint may apply.
func (e *Equation) SetMinForce(minForce float32) {

	e.minForce = minForce
}

// MaxForce returns the maximum force the constraint may apply.
func (e *Equation) MaxForce() float32 {

	return e.maxForce
}

// SetMaxForce sets the maximum force the constraint may apply.
func (e *Equation) SetMaxForce(maxForce float32) {

	e.maxForce = maxForce
}

// Eps returns the SPOOK regularization term.
func (e *Equation) Eps() float32 {

	return e.eps
}

// SetMultiplier sets the equation's last-solved Lagrange multiplier.
func (e *Equation) SetMultiplier(multiplier float32) {

	e.multiplier = multiplier
}

// Multiplier returns the equation's last-solved Lagrange multiplier.
func (e *Equation) Multiplier() float32 {

	return e.multiplier
}

// SetEnabled sets whether the equation participates in solving.
func (e *Equation) SetEnabled(state bool) {

	e.enabled = state
}

// Enabled returns whether the equation participates in solving.
func (e *Equation) Enabled() bool {

	return e.enabled
}

// SetSpookParams recalculates a, b and eps from stiffness/relaxation/timestep.
func (e *Equation) SetSpookParams(stiffness, relaxation, timeStep float32) {

	e.a = 4.0 / (timeStep * (1 + 4*relaxation))
	e.b = (4.0 * relaxation) / (1 + 4*relaxation)
	e.eps = 4.0 / (timeStep * timeStep * stiffness * (1 + 4*relaxation))
}

// ComputeGq computes G*q, where q are the generalized body coordinates.
func (e *Equation) ComputeGq() float32 {

	xi := e.bA.Position()
	xj := e.bB.Position()
	spatA := e.jeA.Spatial()
	spatB := e.jeB.Spatial()
	return spatA.Dot(&xi) + spatB.Dot(&xj)
}

// ComputeGW computes G*W, where W are the body velocities.
func (e *Equation) ComputeGW() float32 {

	vA := e.bA.Velocity()
	vB := e.bB.Velocity()
	wA := e.bA.AngularVelocity()
	wB := e.bB.AngularVelocity()
	return e.jeA.MultiplyVectors(&vA, &wA) + e.jeB.MultiplyVectors(&vB, &wB)
}

// ComputeGiMf computes G*inv(M)*f, where M is the block-diagonal mass matrix
// and f are the forces currently accumulated on the bodies.
func (e *Equation) ComputeGiMf() float32 {

	forceA := e.bA.Force()
	forceB := e.bB.Force()

	iMfA := forceA.MultiplyScalar(e.bA.InvMassEff())
	iMfB := forceB.MultiplyScalar(e.bB.InvMassEff())

	torqueA := e.bA.Torque()
	torqueB := e.bB.Torque()

	invIiTaui := torqueA.ApplyMatrix3(e.bA.InvRotInertiaWorldEff())
	invIjTauj := torqueB.ApplyMatrix3(e.bB.InvRotInertiaWorldEff())

	return e.jeA.MultiplyVectors(iMfA, invIiTaui) + e.jeB.MultiplyVectors(iMfB, invIjTauj)
}

// ComputeGiMGt computes G*inv(M)*G', the constraint's effective mass.
func (e *Equation) ComputeGiMGt() float32 {

	rotA := e.jeA.Rotational()
	rotB := e.jeB.Rotational()
	rotAcopy := e.jeA.Rotational()
	rotBcopy := e.jeB.Rotational()

	result := e.bA.InvMassEff() + e.bB.InvMassEff()
	result += rotA.ApplyMatrix3(e.bA.InvRotInertiaWorldEff()).Dot(&rotAcopy)
	result += rotB.ApplyMatrix3(e.bB.InvRotInertiaWorldEff()).Dot(&rotBcopy)

	return result
}

// ComputeC computes the denominator of the SPOOK equation: C = G*inv(M)*G' + eps.
func (e *Equation) ComputeC() float32 {

	return e.ComputeGiMGt() + e.eps
}
