// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"go.uber.org/zap"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
	"github.com/g3n/charactercontroller/physics/equation"
	"github.com/g3n/charactercontroller/physics/solver"
)

// Settings holds the tunables a Simulation needs beyond its bodies and
// materials. AllowedPenetration and FixedTimeStep mirror the same
// quantities the character controller itself is configured with, so a
// demo can share one set of numbers across both.
type Settings struct {
	AllowedPenetration float32
	FixedTimeStep      float32
}

// DefaultSettings returns the library's default Settings: five
// millimeters of allowed penetration and a 60Hz fixed step.
func DefaultSettings() Settings {

	return Settings{AllowedPenetration: 0.005, FixedTimeStep: 1.0 / 60}
}

// Simulation is a small SPOOK/Gauss-Seidel rigid body simulation: gravity
// and force fields, contact generation through a CollisionWorld, and
// per-step ForceEffect callbacks (the hook CharacterForceEffect uses to
// push on the bodies it stands on).
type Simulation struct {
	Settings

	world collision.CollisionWorld

	bodies    []*RigidBody
	nilBodies []int

	gravity math32.Vector3

	forceFields  []ForceField
	forceEffects []ForceEffect

	materials  []*Material
	cMaterials *contactMaterialTable

	solver solver.ISolver

	contactSets  map[[2][16]byte]*collision.ContactSet
	constraints  []*ContactConstraint

	broadphase *collision.Broadphase
	matrix     *collision.Matrix

	broadObjects []*collision.Object
	broadAABBs   []math32.Box3

	log *zap.SugaredLogger

	time       float32
	stepnumber int
	paused     bool
}

// NewSimulation creates and returns a pointer to a new Simulation backed
// by the given CollisionWorld.
func NewSimulation(world collision.CollisionWorld) *Simulation {

	s := new(Simulation)
	s.world = world
	s.Settings = DefaultSettings()
	s.solver = solver.NewGaussSeidel()
	s.cMaterials = newContactMaterialTable()
	s.contactSets = make(map[[2][16]byte]*collision.ContactSet)
	s.broadphase = collision.NewBroadphase()
	s.matrix = collision.NewMatrix()
	s.log = zap.NewNop().Sugar()
	return s
}

// SetLogger sets the logger the simulation reports body registration and
// contact begin/end transitions to. Passing nil restores the no-op default.
func (s *Simulation) SetLogger(log *zap.SugaredLogger) {

	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s.log = log
}

// SetGravity sets the acceleration applied every step to every dynamic
// body, in addition to whatever registered ForceFields contribute.
func (s *Simulation) SetGravity(g *math32.Vector3) {

	s.gravity = *g
}

// Gravity returns the simulation's gravity acceleration.
func (s *Simulation) Gravity() math32.Vector3 {

	return s.gravity
}

// World returns the simulation's CollisionWorld.
func (s *Simulation) World() collision.CollisionWorld {

	return s.world
}

// AddForceField registers a ForceField, evaluated at every dynamic body's
// position each step.
func (s *Simulation) AddForceField(ff ForceField) {

	s.forceFields = append(s.forceFields, ff)
}

// RemoveForceField unregisters a ForceField. Returns true if found.
func (s *Simulation) RemoveForceField(ff ForceField) bool {

	for i, cur := range s.forceFields {
		if cur == ff {
			s.forceFields = append(s.forceFields[:i], s.forceFields[i+1:]...)
			return true
		}
	}
	return false
}

// AddForceEffect registers a ForceEffect, run once per step against the
// full set of contacts solved that step.
func (s *Simulation) AddForceEffect(fe ForceEffect) {

	s.forceEffects = append(s.forceEffects, fe)
}

// RemoveForceEffect unregisters a ForceEffect. Returns true if found.
func (s *Simulation) RemoveForceEffect(fe ForceEffect) bool {

	for i, cur := range s.forceEffects {
		if cur == fe {
			s.forceEffects = append(s.forceEffects[:i], s.forceEffects[i+1:]...)
			return true
		}
	}
	return false
}

// AddBody adds a body to the simulation, assigning it the first free
// index (recycled from a removed body where possible) and registering its
// collision Object with the world, if the world supports explicit
// registration.
func (s *Simulation) AddBody(body *RigidBody) {

	for _, existing := range s.bodies {
		if existing == body {
			return
		}
	}

	var idx int
	if n := len(s.nilBodies); n > 0 {
		idx = s.nilBodies[n-1]
		s.nilBodies = s.nilBodies[:n-1]
		s.bodies[idx] = body
	} else {
		idx = len(s.bodies)
		s.bodies = append(s.bodies, body)
	}
	body.SetIndex(idx)

	if reg, ok := s.world.(collision.ObjectRegistry); ok {
		reg.AddObject(&body.Object)
	}
	s.log.Debugw("body added", "name", body.Name(), "index", idx, "type", body.BodyType())
}

// RemoveBody removes a body from the simulation. Returns true if found.
func (s *Simulation) RemoveBody(body *RigidBody) bool {

	for idx, cur := range s.bodies {
		if cur == body {
			s.bodies[idx] = nil
			s.nilBodies = append(s.nilBodies, idx)
			if reg, ok := s.world.(collision.ObjectRegistry); ok {
				reg.RemoveObject(&body.Object)
			}
			s.log.Debugw("body removed", "name", body.Name(), "index", idx)
			return true
		}
	}
	return false
}

// Bodies returns the slice of bodies under simulation. The slice may
// contain nil values at indices freed by RemoveBody.
func (s *Simulation) Bodies() []*RigidBody {

	return s.bodies
}

// AddMaterial registers a Material with the simulation. Optional:
// materials only need to be known to the simulation if a ContactMaterial
// pairing is registered for them via AddContactMaterial.
func (s *Simulation) AddMaterial(mat *Material) {

	s.materials = append(s.materials, mat)
}

// AddContactMaterial registers the ContactMaterial to use whenever the
// two given materials touch.
func (s *Simulation) AddContactMaterial(mat1, mat2 *Material, cm *ContactMaterial) {

	s.cMaterials.Set(mat1, mat2, cm)
}

// SetPaused pauses or resumes the simulation; Step is a no-op while paused.
func (s *Simulation) SetPaused(state bool) {

	s.paused = state
}

// Paused returns whether the simulation is paused.
func (s *Simulation) Paused() bool {

	return s.paused
}

// Step advances the simulation by dt. A no-op while paused.
func (s *Simulation) Step(dt float32) {

	if s.paused {
		return
	}
	s.internalStep(dt)
}

// ClearForces zeroes every body's accumulated force and torque.
func (s *Simulation) ClearForces() {

	for _, b := range s.bodies {
		if b != nil {
			b.ClearForces()
		}
	}
}

func pairKey(a, b *collision.Object) [2][16]byte {

	ka, kb := a.ID(), b.ID()
	if string(ka[:]) > string(kb[:]) {
		ka, kb = kb, ka
	}
	return [2][16]byte{ka, kb}
}

func (s *Simulation) internalStep(dt float32) {

	for _, b := range s.bodies {
		if b == nil || b.BodyType() != Dynamic {
			continue
		}
		b.ApplyForceField(&s.gravity)
		for _, ff := range s.forceFields {
			pos := b.Position()
			force := ff.ForceAt(&pos)
			b.ApplyForceField(&force)
		}
	}

	s.constraints = s.constraints[:0]

	s.broadObjects = s.broadObjects[:0]
	s.broadAABBs = s.broadAABBs[:0]
	for _, b := range s.bodies {
		if b == nil {
			continue
		}
		pos := b.Position()
		quat := b.Quaternion()
		s.broadObjects = append(s.broadObjects, &b.Object)
		s.broadAABBs = append(s.broadAABBs, b.WorldAABB(&pos, &quat))
	}

	for _, pair := range s.broadphase.FindPairs(s.broadObjects, s.broadAABBs) {
		bodyA, okA := pair.A.Owner.(*RigidBody)
		bodyB, okB := pair.B.Owner.(*RigidBody)
		if !okA || !okB {
			continue
		}
		if bodyA.BodyType() != Dynamic && bodyB.BodyType() != Dynamic {
			continue
		}

		wasColliding := s.matrix.Get(bodyA.Index(), bodyB.Index())
		collided := s.collectContacts(bodyA, bodyB, dt)

		if collided && !wasColliding {
			s.log.Debugw("contact begin", "bodyA", bodyA.Name(), "bodyB", bodyB.Name())
		} else if !collided && wasColliding {
			s.log.Debugw("contact end", "bodyA", bodyA.Name(), "bodyB", bodyB.Name())
		}
		s.matrix.Set(bodyA.Index(), bodyB.Index(), collided)
	}

	for _, cc := range s.constraints {
		s.solver.AddEquation(cc.Contact)
		s.solver.AddEquation(cc.FrictionU)
		s.solver.AddEquation(cc.FrictionV)
	}

	if len(s.constraints) > 0 {
		solution := s.solver.Solve(dt, len(s.bodies))
		for i, b := range s.bodies {
			if b != nil {
				b.ApplyVelocityDeltas(&solution.VelocityDeltas[i], &solution.AngularVelocityDeltas[i])
			}
		}
		s.solver.ClearEquations()
	}

	for _, fe := range s.forceEffects {
		fe.Step(dt, s.constraints)
	}

	for _, b := range s.bodies {
		if b != nil && b.BodyType() == Dynamic {
			b.ApplyDamping(dt)
		}
	}

	for _, b := range s.bodies {
		if b != nil {
			b.Integrate(dt)
		}
	}
	s.ClearForces()

	s.time += dt
	s.stepnumber++
}

// collectContacts runs the collision world's narrow phase for the pair
// (bodyA, bodyB) and, for every contact reported, builds a
// ContactConstraint (one non-penetration equation plus two tangent
// friction equations) and appends it to s.constraints.
func (s *Simulation) collectContacts(bodyA, bodyB *RigidBody, dt float32) bool {

	key := pairKey(&bodyA.Object, &bodyB.Object)
	cs, ok := s.contactSets[key]
	if !ok {
		cs = s.world.CreateContactSet(&bodyA.Object, &bodyB.Object)
		s.contactSets[key] = cs
	}

	s.world.UpdateContacts(cs, dt)

	cm := s.cMaterials.Get(bodyA.Material(), bodyB.Material())

	contacts := cs.Contacts()

	for _, contact := range contacts {
		posA := bodyA.Position()
		posB := bodyB.Position()

		ce := equation.NewContact(bodyA, bodyB, 0, 1e6)
		ce.SetSpookParams(cm.ContactEquationStiffness(), cm.ContactEquationRelaxation(), dt)
		ce.SetRestitution(cm.Restitution())
		ce.SetNormal(contact.Normal.Clone())
		ce.SetRA(contact.PositionWorld.Clone().Sub(&posA))
		ce.SetRB(contact.PositionWorld.Clone().Sub(&posB))

		tangentU, tangentV := contact.Normal.RandomTangents()

		reducedMass := float32(0)
		invMassSum := bodyA.InvMassEff() + bodyB.InvMassEff()
		if invMassSum > 0 {
			reducedMass = 1 / invMassSum
		}
		slipForce := cm.Friction() * s.gravity.Length() * reducedMass

		fu := equation.NewFriction(bodyA, bodyB, slipForce)
		fu.SetSpookParams(cm.FrictionEquationStiffness(), cm.FrictionEquationRelaxation(), dt)
		fu.SetTangent(tangentU)
		raU := ce.RA()
		fu.SetRA(&raU)
		rbU := ce.RB()
		fu.SetRB(&rbU)

		fv := equation.NewFriction(bodyA, bodyB, slipForce)
		fv.SetSpookParams(cm.FrictionEquationStiffness(), cm.FrictionEquationRelaxation(), dt)
		fv.SetTangent(tangentV)
		raV := ce.RA()
		fv.SetRA(&raV)
		rbV := ce.RB()
		fv.SetRB(&rbV)

		s.constraints = append(s.constraints, &ContactConstraint{
			Contact:       ce,
			FrictionU:     fu,
			FrictionV:     fv,
			PositionWorld: contact.PositionWorld,
		})
	}

	return len(contacts) > 0
}
