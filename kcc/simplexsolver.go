// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import "github.com/g3n/charactercontroller/math32"

// CorrectionPolicy selects the direction SimplexSolver pushes a movement
// vector back out of a violated plane.
type CorrectionPolicy int

const (
	// PenetrationResolution corrects along the plane normal; used by
	// ResolvePenetrations where the desired movement is zero.
	PenetrationResolution CorrectionPolicy = iota
	// Fly corrects along the plane normal with no ground bias.
	Fly
	// SlideAlongGround corrects along the plane normal for ground planes
	// during Slide.
	SlideAlongGround
	// BlockedStop corrects straight back along the reverse of the
	// current movement direction, halting the character before a wall.
	BlockedStop
	// NoSlide corrects along the horizontal projection of the desired
	// movement direction, preventing upward "ramping" on steep blocking
	// planes.
	NoSlide
	// LateralOnly corrects along the horizontal component of the plane
	// normal, sliding laterally along walls without an upward component.
	LateralOnly
	// StepDownVerticalOnly corrects along up_vector only, used while
	// StepDown bisects through deep interpenetration.
	StepDownVerticalOnly
)

// SimplexSolver relaxes a desired movement vector until it lies inside
// the intersection of the current bound half-spaces (up to the allowed
// penetration), or gives up after a bounded number of iterations.
type SimplexSolver struct {
	upVector            math32.Vector3
	allowedPenetration  float32
	numberOfIterations  int
}

// NewSimplexSolver creates and returns a pointer to a new SimplexSolver.
func NewSimplexSolver(upVector math32.Vector3, allowedPenetration float32, numberOfIterations int) *SimplexSolver {

	return &SimplexSolver{upVector: upVector, allowedPenetration: allowedPenetration, numberOfIterations: numberOfIterations}
}

// SetAllowedPenetration updates the allowed-penetration margin (already
// including any collision-epsilon the caller wants folded in).
func (s *SimplexSolver) SetAllowedPenetration(v float32) {

	s.allowedPenetration = v
}

// SetNumberOfIterations updates the outer iteration cap.
func (s *SimplexSolver) SetNumberOfIterations(n int) {

	s.numberOfIterations = n
}

// Solve refines movement (starting from start, along planes) under the
// given correction policy. It returns the refined movement and whether
// every plane was satisfied (false if the iteration cap was hit without
// converging — a convergenceFailure, interpreted by the caller).
func (s *SimplexSolver) Solve(planes []math32.Plane, start, movement math32.Vector3, policy CorrectionPolicy) (math32.Vector3, bool) {

	current := movement
	desiredLength := movement.Length()
	var desiredDir math32.Vector3
	if desiredLength > planeEpsilon {
		desiredDir = *movement.Clone().MultiplyScalar(1 / desiredLength)
	}

	for iter := 0; iter < s.numberOfIterations; iter++ {
		converged := true

		for i := range planes {
			p := &planes[i]
			n := p.Normal()

			if policy != PenetrationResolution && n.Dot(&current) >= 0 {
				continue
			}

			testPos := *start.Clone().Add(&current)
			dist := p.DistanceToPoint(&testPos) + s.allowedPenetration
			if dist >= 0 {
				continue
			}

			dir := s.correctionDirection(policy, n, current, desiredDir)
			denom := dir.Dot(&n)
			if math32.Abs(denom) < planeEpsilon {
				dir = n
				denom = dir.Dot(&n)
				if math32.Abs(denom) < planeEpsilon {
					continue
				}
			}

			mag := -dist / denom
			correction := *dir.Clone().MultiplyScalar(mag)

			if policy != PenetrationResolution && correction.Length() > desiredLength {
				correction.SetLength(desiredLength)
			}

			current.Add(&correction)
			converged = false
		}

		if converged {
			return current, true
		}
	}

	return current, false
}

// correctionDirection implements the per-policy direction table.
func (s *SimplexSolver) correctionDirection(policy CorrectionPolicy, normal, currentMovement, desiredDir math32.Vector3) math32.Vector3 {

	switch policy {
	case BlockedStop:
		dir := *currentMovement.Clone()
		if dir.Length() < planeEpsilon {
			return normal
		}
		dir.Normalize().Negate()
		return dir

	case NoSlide:
		return s.horizontal(desiredDir)

	case LateralOnly:
		return s.horizontal(normal)

	case StepDownVerticalOnly:
		return s.upVector

	default: // PenetrationResolution, Fly, SlideAlongGround
		return normal
	}
}

// horizontal returns the component of v perpendicular to up_vector,
// normalized, or the zero vector if v is parallel to up_vector.
func (s *SimplexSolver) horizontal(v math32.Vector3) math32.Vector3 {

	along := v.Dot(&s.upVector)
	h := *v.Clone().Sub(s.upVector.Clone().MultiplyScalar(along))
	if h.Length() < planeEpsilon {
		return math32.Vector3{}
	}
	h.Normalize()
	return h
}
