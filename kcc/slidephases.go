// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import "github.com/g3n/charactercontroller/math32"

// refreshContacts re-collects and re-evaluates the obstacle contact set
// at the controller's current body pose.
func (k *KCC) refreshContacts(dt float32) {

	pos := k.body.Position()
	quat := k.body.Quaternion()
	radius := k.width/2 + k.stepHeight

	k.cache.CollectObstacles(&k.body.Object, pos, quat, radius)
	k.cache.UpdateContacts(dt)
}

// attempt runs the shared SlidePhase skeleton: backup state, then for up
// to number_of_slide_iterations outer rounds, rebuild bounds at the
// current trial position and ask the solver to relax movement against
// them under policy. A converged solve commits the position and returns
// true. A non-finite correction (numericFailure) or an exhausted
// iteration budget (convergenceFailure) rolls back to the pre-attempt
// state and returns false; both are internal and never escape a Move.
func (k *KCC) attempt(start, movement math32.Vector3, policy CorrectionPolicy, dt float32) (math32.Vector3, bool) {

	k.cache.Backup()
	trial := movement

	for i := 0; i < k.numberOfSlideIterations; i++ {
		k.bounds.Reset()
		k.bounds.Build(start, k.cache.Contacts())

		corrected, ok := k.solver.Solve(k.bounds.Planes(), start, trial, policy)
		if !finite(&corrected) {
			err := newNumericFailure("kcc: slide phase produced a non-finite correction")
			k.log.Debugw(err.Error(), "policy", policy, "numericFailure", isNumericFailure(err))
			k.cache.Rollback()
			k.body.SetPosition(start.Clone())
			return movement, false
		}
		trial = corrected

		pos := *start.Clone().Add(&trial)
		k.body.SetPosition(&pos)
		k.refreshContacts(dt)

		if ok {
			return trial, true
		}
	}

	err := newConvergenceFailure("kcc: slide phase exhausted its iteration budget")
	k.log.Debugw(err.Error(), "policy", policy, "iterations", k.numberOfSlideIterations, "convergenceFailure", isConvergenceFailure(err))
	k.cache.Rollback()
	k.body.SetPosition(start.Clone())
	return movement, false
}

// finite reports whether every component of v is a finite number.
func finite(v *math32.Vector3) bool {

	return v.X-v.X == 0 && v.Y-v.Y == 0 && v.Z-v.Z == 0
}

// ResolvePenetrations pushes the capsule out of any obstacle it already
// overlaps, with zero desired movement: every violated bound corrects
// along its own normal, regardless of length. Returns false if the
// solver could not fully separate the capsule within its iteration
// budget (a residual, bounded overlap may remain), and immediately if
// the controller is disabled.
func (k *KCC) ResolvePenetrations(dt float32) bool {

	if !k.enabled {
		return false
	}

	k.refreshContacts(dt)
	start := k.body.Position()

	_, ok := k.attempt(start, math32.Vector3{}, PenetrationResolution, dt)
	return ok
}

// Fly moves the capsule by the full desired movement, correcting against
// any bound it meets along the way, without distinguishing ground from
// wall. Used while airborne or when gravity is disabled.
func (k *KCC) Fly(desiredMovement math32.Vector3, dt float32) math32.Vector3 {

	start := k.body.Position()
	result, _ := k.attempt(start, desiredMovement, Fly, dt)
	return result
}

// Slide moves the capsule along the desired direction, sliding along
// ground and walls it meets. If stopAtObstacle is true, a blocking plane
// the solver cannot satisfy under SlideAlongGround is retried once under
// BlockedStop, halting the character rather than letting it ramp or
// tunnel; if false, NoSlide is used as the fallback, flattening the
// movement to horizontal so a steep blocking plane cannot push the
// character upward.
func (k *KCC) Slide(desiredMovement math32.Vector3, stopAtObstacle bool, dt float32) math32.Vector3 {

	start := k.body.Position()
	result, ok := k.attempt(start, desiredMovement, SlideAlongGround, dt)
	if ok {
		return result
	}

	fallback := BlockedStop
	if !stopAtObstacle {
		fallback = NoSlide
	}
	result, _ = k.attempt(start, desiredMovement, fallback, dt)
	return result
}

// StepUp attempts to climb an obstacle in front of the capsule no taller
// than step_height: it rises straight up by up to step_height (stopping
// early if blocked), then slides horizontally by movement with
// LateralOnly corrections (so the raised capsule cannot be pushed back
// down by the very ledge it is climbing), then drops back down onto the
// ledge via StepDown. Returns the net movement and whether any step
// actually occurred: false if the initial rise made no progress, if the
// lateral slide left a forbidden contact unresolved, or if StepDown
// never found ground to settle on — in every failure case the capsule
// is rolled all the way back to its pre-StepUp position.
func (k *KCC) StepUp(movement math32.Vector3, dt float32) (math32.Vector3, bool) {

	k.isSteppingUp = true
	defer func() { k.isSteppingUp = false }()

	start := k.body.Position()
	up := *k.upVector.Clone().MultiplyScalar(k.stepHeight)

	risen, _ := k.attempt(start, up, Fly, dt)
	if risen.Length() < planeEpsilon {
		k.body.SetPosition(start.Clone())
		k.refreshContacts(dt)
		return math32.Vector3{}, false
	}

	afterRise := *start.Clone().Add(&risen)
	_, ok := k.attempt(afterRise, movement, LateralOnly, dt)
	if !ok {
		k.body.SetPosition(start.Clone())
		k.refreshContacts(dt)
		return math32.Vector3{}, false
	}

	if !k.StepDown(true, dt) {
		k.body.SetPosition(start.Clone())
		k.refreshContacts(dt)
		return math32.Vector3{}, false
	}

	net := *k.body.Position().Sub(&start)
	return net, true
}

// StepDown drops the capsule straight down along up_vector by up to
// step_height, bisecting between a last-known-safe (airborne) distance
// and a desired distance to converge on the resting contact without
// overshooting into deep interpenetration or bouncing off a too-shallow
// trial. Each outer round narrows the bracket using the bottom-contact
// and allowed-slope state of the trial it just took, for up to
// number_of_slide_iterations rounds. Accepts and commits the tightest
// landing it found if it made bottom contact — and, when
// onlyOntoAllowedSlopes is true, only if that contact's slope is within
// the limit — otherwise rolls back entirely and returns false.
func (k *KCC) StepDown(onlyOntoAllowedSlopes bool, dt float32) bool {

	k.isSteppingDown = true
	defer func() { k.isSteppingDown = false }()

	start := k.body.Position()

	lastSafe, desired := float32(0), k.stepHeight
	var landed bool
	var landedPos math32.Vector3
	var landedAllowedSlope bool

	for i := 0; i < k.numberOfSlideIterations; i++ {
		mid := (lastSafe + desired) / 2
		settled := k.stepDownOnto(start, mid, dt)
		bottom, allowedSlope := k.bottomContactState()

		if bottom {
			landed = true
			landedPos = settled
			landedAllowedSlope = allowedSlope
			desired = mid
		} else {
			lastSafe = mid
		}
	}

	if !landed || (onlyOntoAllowedSlopes && !landedAllowedSlope) {
		k.body.SetPosition(start.Clone())
		k.refreshContacts(dt)
		return false
	}

	k.body.SetPosition(&landedPos)
	k.refreshContacts(dt)
	return true
}

// stepDownOnto drops from start by up to distance along -up_vector,
// under StepDownVerticalOnly, and returns the resulting resting position.
func (k *KCC) stepDownOnto(start math32.Vector3, distance float32, dt float32) math32.Vector3 {

	down := *k.upVector.Clone().MultiplyScalar(-distance)
	fallen, _ := k.attempt(start, down, StepDownVerticalOnly, dt)
	return *start.Clone().Add(&fallen)
}

// bottomContactState reports whether the current contact cache has any
// contact under the capsule's bottom hemisphere at all, and, separately,
// whether any such contact's surface normal falls within the allowed
// slope cone around up_vector. The two are tracked independently so a
// caller can require unconditional bottom contact while layering an
// optional slope restriction on top, rather than GroundClassifier's
// combined (and stricter) ground-contact notion.
func (k *KCC) bottomContactState() (bottom, allowedSlope bool) {

	bottomOfCylinder := -k.height/2 + k.width/2

	for _, c := range k.cache.Contacts() {
		if c.PositionLocal.Y > bottomOfCylinder {
			continue
		}
		bottom = true
		if c.NormalTowardCC.Dot(&k.upVector) >= k.cosSlopeLimit {
			allowedSlope = true
		}
	}
	return
}
