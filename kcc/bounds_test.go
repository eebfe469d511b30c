// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/charactercontroller/math32"
)

func TestBoundsBuilder_GroundPlaneIsAppendedNotFront(t *testing.T) {

	b := NewBoundsBuilder(math32.Vector3{Y: 1}, math32.Cos(math32.DegToRad(45)))

	contacts := []CCContact{
		{PositionLocal: math32.Vector3{X: 1}, NormalTowardCC: math32.Vector3{X: -1}, PenetrationDepth: 0}, // wall
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}, PenetrationDepth: 0},  // ground
	}
	b.Build(math32.Vector3{}, contacts)

	planes := b.Planes()
	assert.Len(t, planes, 2)
	groundNormal := planes[1].Normal()
	assert.InDelta(t, float32(1), groundNormal.Y, 1e-6)
}

func TestBoundsBuilder_BlockingPlaneIsInsertedAtFront(t *testing.T) {

	b := NewBoundsBuilder(math32.Vector3{Y: 1}, math32.Cos(math32.DegToRad(45)))

	contacts := []CCContact{
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}, PenetrationDepth: 0},  // ground
		{PositionLocal: math32.Vector3{X: 1}, NormalTowardCC: math32.Vector3{X: -1}, PenetrationDepth: 0}, // wall
	}
	b.Build(math32.Vector3{}, contacts)

	planes := b.Planes()
	assert.Len(t, planes, 2)
	wallNormal := planes[0].Normal()
	assert.InDelta(t, float32(-1), wallNormal.X, 1e-6)
}

func TestBoundsBuilder_DuplicatePlanesAreDropped(t *testing.T) {

	b := NewBoundsBuilder(math32.Vector3{Y: 1}, math32.Cos(math32.DegToRad(45)))

	contacts := []CCContact{
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}, PenetrationDepth: 0},
		{PositionLocal: math32.Vector3{X: 0.1, Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}, PenetrationDepth: 0},
	}
	b.Build(math32.Vector3{}, contacts)

	assert.Len(t, b.Planes(), 1)
}

func TestBoundsBuilder_ResetClearsPlanes(t *testing.T) {

	b := NewBoundsBuilder(math32.Vector3{Y: 1}, math32.Cos(math32.DegToRad(45)))
	contacts := []CCContact{
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}, PenetrationDepth: 0},
	}
	b.Build(math32.Vector3{}, contacts)
	require := assert.New(t)
	require.Len(b.Planes(), 1)

	b.Reset()
	require.Len(b.Planes(), 0)
}
