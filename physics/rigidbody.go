// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
)

// BodyType specifies how a RigidBody is affected during simulation.
type BodyType int

const (
	// Static bodies never move and behave as if they have infinite mass.
	Static = BodyType(iota)

	// Kinematic bodies move according to their velocity, set externally
	// (by an animation system, or by a character controller driving its
	// own body), and are never affected by forces or the solver.
	Kinematic

	// Dynamic bodies are fully simulated: forces, gravity and contacts
	// all drive their motion.
	Dynamic
)

// RigidBody is a physics-driven body: a collision.Object posed in world
// space with mass, velocity and the bookkeeping the solver needs.
type RigidBody struct {
	collision.Object

	name     string
	index    int
	material *Material
	bodyType BodyType

	mass       float32
	invMass    float32
	invMassEff float32

	rotInertia            math32.Matrix3
	invRotInertia         math32.Matrix3
	invRotInertiaEff      math32.Matrix3
	invRotInertiaWorld    math32.Matrix3
	invRotInertiaWorldEff math32.Matrix3
	fixedRotation         bool

	position   math32.Vector3
	quaternion math32.Quaternion

	velocity        math32.Vector3
	angularVelocity math32.Vector3

	force  math32.Vector3
	torque math32.Vector3

	linearDamping  float32
	angularDamping float32
	linearFactor   math32.Vector3
	angularFactor  math32.Vector3

	sleeping bool
	ccd      bool
}

// NewRigidBody creates and returns a pointer to a new dynamic RigidBody
// with the given shape and mass, positioned at the origin with identity
// orientation.
func NewRigidBody(shape collision.IShape, mass float32) *RigidBody {

	b := new(RigidBody)
	b.Object = *collision.NewObject(shape)
	b.Owner = b
	b.bodyType = Dynamic
	b.quaternion.SetIdentity()
	b.linearFactor = math32.Vector3{X: 1, Y: 1, Z: 1}
	b.angularFactor = math32.Vector3{X: 1, Y: 1, Z: 1}
	b.linearDamping = 0.01
	b.angularDamping = 0.01
	b.rotInertia.Identity()
	b.invRotInertia.Identity()
	b.invRotInertiaEff.Identity()
	b.invRotInertiaWorld.Identity()
	b.invRotInertiaWorldEff.Identity()

	b.SetMass(mass)
	b.updateEffectiveMassProperties()

	return b
}

// SetIndex sets the body's index into the simulation's velocity-delta
// arrays. Set by Simulation.AddBody; not meant to be called directly.
func (b *RigidBody) SetIndex(i int) {

	b.index = i
}

// Index satisfies equation.IBody.
func (b *RigidBody) Index() int {

	return b.index
}

// SetName sets the body's name, used only for diagnostics and logging.
func (b *RigidBody) SetName(name string) {

	b.name = name
}

// Name returns the body's name.
func (b *RigidBody) Name() string {

	return b.name
}

// SetMaterial sets the body's surface material.
func (b *RigidBody) SetMaterial(m *Material) {

	b.material = m
}

// Material returns the body's surface material.
func (b *RigidBody) Material() *Material {

	return b.material
}

// SetBodyType sets the body type, recomputing mass properties if the body
// transitions to or from Static.
func (b *RigidBody) SetBodyType(t BodyType) {

	if b.bodyType == t {
		return
	}
	if t == Static {
		b.mass = 0
	}
	orig := b.bodyType
	b.bodyType = t
	if orig == Static || t == Static {
		b.updateMassProperties()
	}
}

// BodyType returns the body's body type.
func (b *RigidBody) BodyType() BodyType {

	return b.bodyType
}

// SetMass sets the body's mass, recomputing derived mass properties.
// A mass of zero makes the body Static.
func (b *RigidBody) SetMass(mass float32) {

	if mass == b.mass {
		return
	}
	b.mass = mass
	if mass > 0 {
		b.invMass = 1.0 / mass
	} else {
		b.invMass = 0
		b.bodyType = Static
	}
	b.updateMassProperties()
}

// Mass returns the body's mass.
func (b *RigidBody) Mass() float32 {

	return b.mass
}

// SetFixedRotation specifies whether the body is allowed to rotate. The
// character controller locks this on its own body so contacts never
// topple the capsule.
func (b *RigidBody) SetFixedRotation(state bool) {

	if b.fixedRotation == state {
		return
	}
	b.fixedRotation = state
	b.updateMassProperties()
}

// FixedRotation returns whether the body's rotation is locked.
func (b *RigidBody) FixedRotation() bool {

	return b.fixedRotation
}

// updateMassProperties recomputes the rotational inertia tensor from the
// body's bounding sphere (a solid-sphere approximation: real per-shape
// inertia tensors are outside the scope of the analytic collision shapes
// this package carries) and its current mass, then refreshes the
// effective (solver-visible) properties.
func (b *RigidBody) updateMassProperties() {

	if b.fixedRotation || b.bodyType == Static {
		b.rotInertia.Zero()
		b.invRotInertia.Zero()
	} else {
		r := b.Shape().BoundingBox().Max.Length()
		i := 0.4 * b.mass * r * r
		b.rotInertia.Set(
			i, 0, 0,
			0, i, 0,
			0, 0, i,
		)
		b.invRotInertia.GetInverse3(&b.rotInertia)
	}
	b.updateInertiaWorld(true)
	b.updateEffectiveMassProperties()
}

// updateEffectiveMassProperties recalculates the "effective" mass/inertia
// the solver sees: zero (infinite mass) while sleeping or Kinematic, so
// such bodies never get pushed around by contacts.
func (b *RigidBody) updateEffectiveMassProperties() {

	if b.sleeping || b.bodyType == Kinematic {
		b.invMassEff = 0
		b.invRotInertiaEff.Zero()
		b.invRotInertiaWorldEff.Zero()
	} else {
		b.invMassEff = b.invMass
		b.invRotInertiaEff.Copy(&b.invRotInertia)
		b.invRotInertiaWorldEff.Copy(&b.invRotInertiaWorld)
	}
}

// updateInertiaWorld recomputes the inverse inertia tensor in world
// coordinates, skipping the rotation when the local tensor is already
// isotropic (a uniform scalar times identity commutes with any rotation).
func (b *RigidBody) updateInertiaWorld(force bool) {

	iRI := &b.invRotInertia
	if iRI[0] != iRI[4] || iRI[4] != iRI[8] || force {
		m1 := math32.NewMatrix3().MakeRotationFromQuaternion(&b.quaternion)
		m2 := m1.Clone().Transpose()
		m2.Multiply(iRI)
		b.invRotInertiaWorld.MultiplyMatrices(m2, m1)
	}
}

// Position returns the body's center-of-mass world position.
func (b *RigidBody) Position() math32.Vector3 {

	return b.position
}

// SetPosition sets the body's center-of-mass world position.
func (b *RigidBody) SetPosition(pos *math32.Vector3) {

	b.position = *pos
}

// Quaternion returns the body's world orientation.
func (b *RigidBody) Quaternion() math32.Quaternion {

	return b.quaternion
}

// SetQuaternion sets the body's world orientation.
func (b *RigidBody) SetQuaternion(q *math32.Quaternion) {

	b.quaternion = *q
}

// Velocity returns the body's linear velocity.
func (b *RigidBody) Velocity() math32.Vector3 {

	return b.velocity
}

// SetVelocity sets the body's linear velocity.
func (b *RigidBody) SetVelocity(v *math32.Vector3) {

	b.velocity = *v
}

// AngularVelocity returns the body's angular velocity.
func (b *RigidBody) AngularVelocity() math32.Vector3 {

	return b.angularVelocity
}

// SetAngularVelocity sets the body's angular velocity.
func (b *RigidBody) SetAngularVelocity(w *math32.Vector3) {

	b.angularVelocity = *w
}

// Force returns the force currently accumulated on the body.
func (b *RigidBody) Force() math32.Vector3 {

	return b.force
}

// Torque returns the torque currently accumulated on the body.
func (b *RigidBody) Torque() math32.Vector3 {

	return b.torque
}

// InvMassEff satisfies equation.IBody: the inverse mass visible to the
// solver, zero for Kinematic/Static/sleeping bodies.
func (b *RigidBody) InvMassEff() float32 {

	return b.invMassEff
}

// InvRotInertiaWorldEff satisfies equation.IBody.
func (b *RigidBody) InvRotInertiaWorldEff() *math32.Matrix3 {

	return &b.invRotInertiaWorldEff
}

// ClearForces zeroes the body's accumulated force and torque. Called once
// per step after integration.
func (b *RigidBody) ClearForces() {

	b.force.Zero()
	b.torque.Zero()
}

// ApplyForceField adds a force-field sample to the body's force
// accumulator, scaled by mass (a force field reports an acceleration).
func (b *RigidBody) ApplyForceField(force *math32.Vector3) {

	scaled := force.Clone().MultiplyScalar(b.mass)
	b.force.Add(scaled)
}

// ApplyForce applies force at relativePoint (relative to the body's
// center of mass, in world orientation), accumulating both linear force
// and the torque it produces. No-op on non-Dynamic bodies.
func (b *RigidBody) ApplyForce(force, relativePoint *math32.Vector3) {

	if b.bodyType != Dynamic {
		return
	}
	b.force.Add(force)
	b.torque.Add(math32.NewVec3().CrossVectors(relativePoint, force))
}

// ApplyImpulse applies an instantaneous impulse at relativePoint,
// immediately updating linear and angular velocity. No-op on non-Dynamic
// bodies.
func (b *RigidBody) ApplyImpulse(impulse, relativePoint *math32.Vector3) {

	if b.bodyType != Dynamic {
		return
	}
	velo := impulse.Clone().MultiplyScalar(b.invMass)
	b.velocity.Add(velo)

	rotVelo := math32.NewVec3().CrossVectors(relativePoint, impulse)
	rotVelo.ApplyMatrix3(&b.invRotInertiaWorld)
	b.angularVelocity.Add(rotVelo)
}

// ApplyVelocityDeltas adds the solver's per-body velocity deltas to the
// body's linear and angular velocity, masked by its linear/angular
// factors (zero on an axis locks motion along it).
func (b *RigidBody) ApplyVelocityDeltas(linearD, angularD *math32.Vector3) {

	b.velocity.Add(linearD.Clone().Multiply(&b.linearFactor))
	b.angularVelocity.Add(angularD.Clone().Multiply(&b.angularFactor))
}

// SetLinearFactor sets the per-axis linear motion mask: (1,1,1) allows
// motion along every axis, 0 on an axis locks it.
func (b *RigidBody) SetLinearFactor(f *math32.Vector3) {

	b.linearFactor = *f
}

// SetAngularFactor sets the per-axis rotational motion mask, same
// convention as SetLinearFactor. The character controller zeroes this
// entirely so contacts never spin its capsule.
func (b *RigidBody) SetAngularFactor(f *math32.Vector3) {

	b.angularFactor = *f
}

// SetLinearDamping sets the fraction of linear velocity lost per second.
func (b *RigidBody) SetLinearDamping(d float32) {

	b.linearDamping = d
}

// SetAngularDamping sets the fraction of angular velocity lost per second.
func (b *RigidBody) SetAngularDamping(d float32) {

	b.angularDamping = d
}

// ApplyDamping scales velocity and angular velocity towards zero over dt
// according to the body's damping factors.
func (b *RigidBody) ApplyDamping(dt float32) {

	b.velocity.MultiplyScalar(math32.Pow(1.0-b.linearDamping, dt))
	b.angularVelocity.MultiplyScalar(math32.Pow(1.0-b.angularDamping, dt))
}

// Sleeping returns whether the body is currently asleep.
func (b *RigidBody) Sleeping() bool {

	return b.sleeping
}

// SetSleeping forces the body's sleep state, refreshing its effective
// mass properties (a sleeping body has infinite effective mass).
func (b *RigidBody) SetSleeping(state bool) {

	if state == b.sleeping {
		return
	}
	b.sleeping = state
	if state {
		b.velocity.Zero()
		b.angularVelocity.Zero()
	}
	b.updateEffectiveMassProperties()
}

// SetCCD sets whether the body requests continuous collision detection
// from its CollisionWorld (a fast-moving body may tunnel through thin
// geometry between steps otherwise). The reference analytic world in
// physics/collision does not itself implement swept contact generation;
// the flag is carried so a real collision backend can act on it.
func (b *RigidBody) SetCCD(state bool) {

	b.ccd = state
}

// CCD returns whether continuous collision detection was requested for
// this body.
func (b *RigidBody) CCD() bool {

	return b.ccd
}

// VelocityAtWorldPoint returns the body's instantaneous linear velocity at
// the given world-space point, including the contribution from angular
// velocity: v + w × (point - position).
func (b *RigidBody) VelocityAtWorldPoint(worldPoint *math32.Vector3) math32.Vector3 {

	r := math32.NewVec3().SubVectors(worldPoint, &b.position)
	r.CrossVectors(&b.angularVelocity, r)
	r.Add(&b.velocity)
	return *r
}

// PointToWorld converts a point given relative to the body's center of
// mass, in the body's local orientation, to world space.
func (b *RigidBody) PointToWorld(localPoint *math32.Vector3) math32.Vector3 {

	return *localPoint.Clone().ApplyQuaternion(&b.quaternion).Add(&b.position)
}

// PointToLocal converts a world-space point to the body's local frame,
// relative to its center of mass.
func (b *RigidBody) PointToLocal(worldPoint *math32.Vector3) math32.Vector3 {

	return *worldPoint.Clone().Sub(&b.position).ApplyQuaternion(b.quaternion.Clone().Conjugate())
}

// VectorToWorld rotates a local-frame vector into world orientation.
func (b *RigidBody) VectorToWorld(localVector *math32.Vector3) math32.Vector3 {

	return *localVector.Clone().ApplyQuaternion(&b.quaternion)
}

// Integrate advances the body's position and orientation by dt using its
// current velocity, angular velocity and accumulated force/torque.
// Static and sleeping bodies are left untouched.
func (b *RigidBody) Integrate(dt float32) {

	if !(b.bodyType == Dynamic || b.bodyType == Kinematic) || b.sleeping {
		return
	}

	iMdt := b.invMass * dt
	b.velocity.X += b.force.X * iMdt * b.linearFactor.X
	b.velocity.Y += b.force.Y * iMdt * b.linearFactor.Y
	b.velocity.Z += b.force.Z * iMdt * b.linearFactor.Z

	e := &b.invRotInertiaWorld
	tx := b.torque.X * b.angularFactor.X
	ty := b.torque.Y * b.angularFactor.Y
	tz := b.torque.Z * b.angularFactor.Z
	b.angularVelocity.X += dt * (e[0]*tx + e[3]*ty + e[6]*tz)
	b.angularVelocity.Y += dt * (e[1]*tx + e[4]*ty + e[7]*tz)
	b.angularVelocity.Z += dt * (e[2]*tx + e[5]*ty + e[8]*tz)

	b.position.X += b.velocity.X * dt
	b.position.Y += b.velocity.Y * dt
	b.position.Z += b.velocity.Z * dt

	ax := b.angularVelocity.X * b.angularFactor.X
	ay := b.angularVelocity.Y * b.angularFactor.Y
	az := b.angularVelocity.Z * b.angularFactor.Z
	bx, by, bz, bw := b.quaternion.X, b.quaternion.Y, b.quaternion.Z, b.quaternion.W
	halfDt := dt * 0.5
	b.quaternion.X += halfDt * (ax*bw + ay*bz - az*by)
	b.quaternion.Y += halfDt * (ay*bw + az*bx - ax*bz)
	b.quaternion.Z += halfDt * (az*bw + ax*by - ay*bx)
	b.quaternion.W += halfDt * (-ax*bx - ay*by - az*bz)
	b.quaternion.Normalize()

	b.updateInertiaWorld(false)
}
