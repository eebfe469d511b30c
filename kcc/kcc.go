// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"go.uber.org/zap"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics"
	"github.com/g3n/charactercontroller/physics/collision"
)

// KCC is a kinematic character controller: an upright capsule that walks,
// slides, steps and falls through a CollisionWorld, registered as one
// RigidBody plus one ForceEffect in a physics.Simulation.
type KCC struct {
	sim   *physics.Simulation
	world collision.CollisionWorld
	body  *physics.RigidBody

	upVector math32.Vector3

	enabled                  bool
	gravity                  float32
	maxVelocity              float32
	pushForce                float32
	slopeLimit               float32
	cosSlopeLimit            float32
	stepHeight               float32
	isClimbing               bool
	jumpManeuverability      float32
	numberOfSlideIterations  int
	numberOfSolverIterations int
	width, height            float32

	verticalSpeed          float32 // current velocity along up_vector while airborne
	lastHorizontalMovement math32.Vector3
	groundVelocity         math32.Vector3 // carried velocity of whatever the controller last stood on

	hadGroundContact bool
	isSteppingUp     bool
	isSteppingDown   bool

	velocity math32.Vector3

	cache  *ContactCache
	ground *GroundClassifier
	bounds *BoundsBuilder
	solver *SimplexSolver
	effect *CharacterForceEffect

	log *zap.SugaredLogger
}

// New creates a KCC riding on sim, with its capsule axis aligned to
// upVector. Returns a PreconditionError if upVector is (numerically)
// zero. A nil log installs a no-op logger.
func New(sim *physics.Simulation, upVector math32.Vector3, width, height float32, log *zap.SugaredLogger) (*KCC, error) {

	if upVector.Length() < planeEpsilon {
		return nil, newPreconditionError("kcc: up vector must be non-zero")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	up := *upVector.Clone().Normalize()

	shape := collision.NewCapsule(width/2, height)
	body := physics.NewRigidBody(shape, 100)
	body.SetMaterial(physics.NewMaterial("kcc", 0, 0))
	body.SetFixedRotation(true)
	body.SetAngularFactor(&math32.Vector3{})
	body.SetSleeping(false)
	body.SetCCD(true)

	yAxis := math32.Vector3{Y: 1}
	orient := math32.NewQuaternion(0, 0, 0, 1).SetFromUnitVectors(&yAxis, &up)
	body.SetQuaternion(orient)

	world := sim.World()

	k := &KCC{
		sim:                      sim,
		world:                    world,
		body:                     body,
		upVector:                 up,
		gravity:                  9.81,
		maxVelocity:              20,
		pushForce:                1,
		slopeLimit:               math32.DegToRad(45),
		stepHeight:               0.4,
		jumpManeuverability:      1,
		numberOfSlideIterations:  4,
		numberOfSolverIterations: 4,
		width:                    width,
		height:                   height,
		log:                      log,
	}
	k.cosSlopeLimit = math32.Cos(k.slopeLimit)

	k.cache = NewContactCache(world)
	k.ground = NewGroundClassifier(width, height, k.cosSlopeLimit)
	k.bounds = NewBoundsBuilder(up, k.cosSlopeLimit)
	k.solver = NewSimplexSolver(up, sim.AllowedPenetration+world.CollisionEpsilon(), k.numberOfSolverIterations)
	k.effect = newCharacterForceEffect(k)

	k.SetEnabled(true)
	return k, nil
}

// Body returns the KCC's underlying rigid body.
func (k *KCC) Body() *physics.RigidBody {

	return k.body
}

// UpVector returns the controller's up direction, fixed at construction.
func (k *KCC) UpVector() math32.Vector3 {

	return k.upVector
}

// Enabled returns whether the controller's body and force effect are
// currently registered in the simulation.
func (k *KCC) Enabled() bool {

	return k.enabled
}

// SetEnabled registers or unregisters the controller's body and force
// effect with its simulation.
func (k *KCC) SetEnabled(state bool) {

	if state == k.enabled {
		return
	}
	k.enabled = state
	k.body.SetEnabled(state)

	if state {
		k.sim.AddBody(k.body)
		k.sim.AddForceEffect(k.effect)
	} else {
		k.sim.RemoveBody(k.body)
		k.sim.RemoveForceEffect(k.effect)
	}
}

// Gravity returns the acceleration MoveOrchestrator integrates while
// airborne. Zero makes the controller fly rather than walk.
func (k *KCC) Gravity() float32 {

	return k.gravity
}

// SetGravity sets the gravity acceleration. Must be non-negative.
func (k *KCC) SetGravity(g float32) error {

	if g < 0 {
		return newPreconditionError("kcc: gravity must be >= 0")
	}
	k.gravity = g
	return nil
}

// MaxVelocity returns the speed clamp applied to every movement.
func (k *KCC) MaxVelocity() float32 {

	return k.maxVelocity
}

// SetMaxVelocity sets the speed clamp. Must be non-negative.
func (k *KCC) SetMaxVelocity(v float32) error {

	if v < 0 {
		return newPreconditionError("kcc: max velocity must be >= 0")
	}
	k.maxVelocity = v
	return nil
}

// PushForce returns the per-second impulse cap CharacterForceEffect
// applies to dynamic bodies the controller pushes into.
func (k *KCC) PushForce() float32 {

	return k.pushForce
}

// SetPushForce sets the push force cap. Must be non-negative.
func (k *KCC) SetPushForce(f float32) error {

	if f < 0 {
		return newPreconditionError("kcc: push force must be >= 0")
	}
	k.pushForce = f
	return nil
}

// SlopeLimit returns the maximum angle (radians) from up_vector the
// controller can stand on.
func (k *KCC) SlopeLimit() float32 {

	return k.slopeLimit
}

// SetSlopeLimit sets the slope limit and recomputes cos_slope_limit.
// Must be in [0, pi/2).
func (k *KCC) SetSlopeLimit(radians float32) error {

	if radians < 0 || radians >= math32.Pi/2 {
		return newPreconditionError("kcc: slope limit must be in [0, pi/2)")
	}
	k.slopeLimit = radians
	k.cosSlopeLimit = math32.Cos(radians)
	k.ground.SetCosSlopeLimit(k.cosSlopeLimit)
	k.bounds.SetCosSlopeLimit(k.cosSlopeLimit)
	return nil
}

// StepHeight returns the maximum obstacle height StepUp will climb.
func (k *KCC) StepHeight() float32 {

	return k.stepHeight
}

// SetStepHeight sets the step height. Must be non-negative.
func (k *KCC) SetStepHeight(h float32) error {

	if h < 0 {
		return newPreconditionError("kcc: step height must be >= 0")
	}
	k.stepHeight = h
	return nil
}

// IsClimbing returns whether the controller is in climbing mode (e.g. on
// a ladder): airborne policy treats a non-positive vertical jump/gravity
// velocity as grounded.
func (k *KCC) IsClimbing() bool {

	return k.isClimbing
}

// SetIsClimbing sets climbing mode.
func (k *KCC) SetIsClimbing(state bool) {

	k.isClimbing = state
}

// JumpManeuverability returns the blend factor, in [0,1], between the
// airborne character's last horizontal movement and its newly desired
// horizontal movement.
func (k *KCC) JumpManeuverability() float32 {

	return k.jumpManeuverability
}

// SetJumpManeuverability sets the maneuverability blend. Must be in [0,1].
func (k *KCC) SetJumpManeuverability(v float32) error {

	if v < 0 || v > 1 {
		return newPreconditionError("kcc: jump maneuverability must be in [0,1]")
	}
	k.jumpManeuverability = v
	return nil
}

// NumberOfSlideIterations returns the outer iteration cap each SlidePhase
// uses.
func (k *KCC) NumberOfSlideIterations() int {

	return k.numberOfSlideIterations
}

// SetNumberOfSlideIterations sets the slide iteration cap. Must be >= 1.
func (k *KCC) SetNumberOfSlideIterations(n int) error {

	if n < 1 {
		return newPreconditionError("kcc: number of slide iterations must be >= 1")
	}
	k.numberOfSlideIterations = n
	return nil
}

// NumberOfSolverIterations returns the SimplexSolver's outer iteration
// cap.
func (k *KCC) NumberOfSolverIterations() int {

	return k.numberOfSolverIterations
}

// SetNumberOfSolverIterations sets the solver iteration cap. Must be >= 1.
func (k *KCC) SetNumberOfSolverIterations(n int) error {

	if n < 1 {
		return newPreconditionError("kcc: number of solver iterations must be >= 1")
	}
	k.numberOfSolverIterations = n
	k.solver.SetNumberOfIterations(n)
	return nil
}

// CollisionGroup returns the controller body's collision filter group.
func (k *KCC) CollisionGroup() int {

	return k.body.CollisionGroup()
}

// SetCollisionGroup sets the controller body's collision filter group.
func (k *KCC) SetCollisionGroup(group int) {

	k.body.SetCollisionGroup(group)
}

// Width returns the capsule diameter.
func (k *KCC) Width() float32 {

	return k.width
}

// SetWidth sets the capsule diameter, resizing the underlying shape.
func (k *KCC) SetWidth(w float32) error {

	if w <= 0 {
		return newPreconditionError("kcc: width must be > 0")
	}
	k.width = w
	k.body.Shape().(*collision.Capsule).Radius = w / 2
	k.ground.SetDimensions(k.width, k.height)
	return nil
}

// Height returns the capsule height (including both hemisphere caps).
func (k *KCC) Height() float32 {

	return k.height
}

// SetHeight sets the capsule height, preserving Position (the bottom
// point of the capsule) by moving the body's center accordingly.
func (k *KCC) SetHeight(h float32) error {

	if h < 2*k.width/2 {
		return newPreconditionError("kcc: height must be >= capsule diameter")
	}
	bottom := k.Position()
	k.height = h
	k.body.Shape().(*collision.Capsule).Height = h
	k.ground.SetDimensions(k.width, k.height)
	k.SetPosition(&bottom)
	return nil
}

// Position returns the bottom point of the capsule, in world space.
func (k *KCC) Position() math32.Vector3 {

	center := k.body.Position()
	return *center.Sub(k.upVector.Clone().MultiplyScalar(k.height / 2))
}

// SetPosition places the controller so its bottom point is at pos.
func (k *KCC) SetPosition(pos *math32.Vector3) {

	center := *pos.Clone().Add(k.upVector.Clone().MultiplyScalar(k.height / 2))
	k.body.SetPosition(&center)
}

// Velocity returns the instantaneous velocity computed by the last Move
// call: (new_position - old_position) / dt.
func (k *KCC) Velocity() math32.Vector3 {

	return k.velocity
}

// HasGroundContact returns whether the controller is currently resting
// on ground, as of the last Move call.
func (k *KCC) HasGroundContact() bool {

	return k.hadGroundContact
}

// GroundVelocity returns the average velocity, at the last simulation
// step, of whatever dynamic bodies the controller's bottom cap was
// resting on — e.g. a moving platform. Move folds this into the next
// grounded movement so the controller rides along rather than sliding
// off a platform it is otherwise stationary on.
func (k *KCC) GroundVelocity() math32.Vector3 {

	return k.groundVelocity
}
