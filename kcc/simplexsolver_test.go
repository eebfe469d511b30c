// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/charactercontroller/math32"
)

func TestSimplexSolver_UnobstructedMovementIsUnchanged(t *testing.T) {

	s := NewSimplexSolver(math32.Vector3{Y: 1}, 0.005, 4)

	result, ok := s.Solve(nil, math32.Vector3{}, math32.Vector3{X: 1}, Fly)

	assert.True(t, ok)
	assert.InDelta(t, float32(1), result.X, 1e-6)
}

func TestSimplexSolver_BlockedStopHaltsAtThePlane(t *testing.T) {

	s := NewSimplexSolver(math32.Vector3{Y: 1}, 0.005, 8)
	n := math32.Vector3{X: -1}
	planes := []math32.Plane{*math32.NewPlane(&n, 0)} // solid half-space is x <= 0

	result, ok := s.Solve(planes, math32.Vector3{}, math32.Vector3{X: 1}, BlockedStop)

	assert.True(t, ok)
	assert.LessOrEqual(t, result.X, float32(0.01))
}

func TestSimplexSolver_NoSlideFlattensToHorizontal(t *testing.T) {

	s := NewSimplexSolver(math32.Vector3{Y: 1}, 0.005, 8)
	n := math32.Vector3{X: -0.5, Y: 0.866} // a steep overhang-like blocking plane
	n.Normalize()
	planes := []math32.Plane{*math32.NewPlane(&n, 0)}

	result, _ := s.Solve(planes, math32.Vector3{}, math32.Vector3{X: 1}, NoSlide)

	assert.InDelta(t, float32(0), result.Y, 1e-4)
}

func TestSimplexSolver_PenetrationResolutionIgnoresDesiredLength(t *testing.T) {

	s := NewSimplexSolver(math32.Vector3{Y: 1}, 0.005, 8)
	n := math32.Vector3{Y: 1}
	planes := []math32.Plane{*math32.NewPlane(&n, 0)} // ground plane at y=0

	start := math32.Vector3{Y: -0.1} // already penetrating by 0.1
	result, ok := s.Solve(planes, start, math32.Vector3{}, PenetrationResolution)

	assert.True(t, ok)
	assert.Greater(t, result.Y, float32(0.09))
}
