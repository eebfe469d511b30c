// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
)

func classifierFixture(contacts []CCContact) (*GroundClassifier, *ContactCache) {

	g := NewGroundClassifier(1, 2, math32.Cos(math32.DegToRad(45)))
	cache := NewContactCache(collision.NewWorld())
	for _, c := range contacts {
		cache.contacts = append(cache.contacts, c)
	}
	return g, cache
}

func TestGroundClassifier_DirectBottomContactIsGround(t *testing.T) {

	g, cache := classifierFixture([]CCContact{
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}},
	})

	assert.True(t, g.HasGroundContact(cache))
}

func TestGroundClassifier_NoContactsIsAirborne(t *testing.T) {

	g, cache := classifierFixture(nil)

	assert.False(t, g.HasGroundContact(cache))
}

func TestGroundClassifier_SingleSideContactIsNotGround(t *testing.T) {

	g, cache := classifierFixture([]CCContact{
		{PositionLocal: math32.Vector3{X: 0.5, Y: -0.7}, NormalTowardCC: math32.Vector3{X: -1}},
	})

	assert.False(t, g.HasGroundContact(cache))
}

func TestGroundClassifier_PincerContactsImplySupport(t *testing.T) {

	// Both contacts sit at the bottom hemisphere's equator (Y = -0.5, with
	// capRadius 0.5 and bottom -1), on opposite sides: as seen from the
	// hemisphere center their directions are antipodal, well past 120 deg.
	g, cache := classifierFixture([]CCContact{
		{PositionLocal: math32.Vector3{X: 0.5, Y: -0.5}, NormalTowardCC: math32.Vector3{X: -1}},
		{PositionLocal: math32.Vector3{X: -0.5, Y: -0.5}, NormalTowardCC: math32.Vector3{X: 1}},
	})

	assert.True(t, g.HasGroundContact(cache))
}

func TestGroundClassifier_ResultIsMemoizedUntilContactsChange(t *testing.T) {

	g, cache := classifierFixture([]CCContact{
		{PositionLocal: math32.Vector3{Y: -1}, NormalTowardCC: math32.Vector3{Y: 1}},
	})

	assert.True(t, g.HasGroundContact(cache))

	cache.contacts = cache.contacts[:0]
	assert.True(t, g.HasGroundContact(cache), "memoized result should not change without UpdateContacts")

	cache.groundKnown = false
	assert.False(t, g.HasGroundContact(cache))
}
