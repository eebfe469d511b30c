// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import "github.com/g3n/charactercontroller/math32"

// GroundClassifier derives whether the capsule has enough support to be
// considered grounded from the current CCContact list, the capsule's
// dimensions and cos_slope_limit. Its result is memoized in the
// ContactCache it is handed, and stays valid until the cache's contacts
// are next refreshed.
type GroundClassifier struct {
	width, height float32
	cosSlopeLimit float32

	hemisphereDirs []math32.Vector3 // scratch, reused across calls
}

// NewGroundClassifier creates and returns a pointer to a new
// GroundClassifier for the given capsule dimensions and slope limit.
func NewGroundClassifier(width, height, cosSlopeLimit float32) *GroundClassifier {

	return &GroundClassifier{width: width, height: height, cosSlopeLimit: cosSlopeLimit}
}

// SetDimensions updates the capsule dimensions the classifier uses.
func (g *GroundClassifier) SetDimensions(width, height float32) {

	g.width = width
	g.height = height
}

// SetCosSlopeLimit updates the cached cos(slope_limit) the classifier
// compares contact directions against.
func (g *GroundClassifier) SetCosSlopeLimit(cos float32) {

	g.cosSlopeLimit = cos
}

// cos120 is cos(120 degrees), the pincer-angle threshold two bottom-cap
// contact directions must fall below to imply support without any
// single contact being inside the allowed slope cone on its own.
const cos120 = -0.5

// HasGroundContact implements the classification algorithm: a contact
// whose height projects at or below the allowed-slope cone around the
// bottom of the capsule is ground by itself; otherwise two contacts on
// the bottom hemisphere more than 120 degrees apart (as seen from the
// center of the bottom cap) imply pincer support. The result is cached
// on cache until its contact list next changes.
func (g *GroundClassifier) HasGroundContact(cache *ContactCache) bool {

	if cache.groundKnown {
		return cache.groundContact
	}

	bottom := -g.height / 2
	capRadius := g.width / 2
	bottomOfCylinder := bottom + capRadius
	allowedRange := capRadius * (1 - g.cosSlopeLimit)
	groundContactLimit := bottom + allowedRange

	result := false
	g.hemisphereDirs = g.hemisphereDirs[:0]

	for _, contact := range cache.contacts {
		proj := contact.PositionLocal.Y
		if proj <= groundContactLimit {
			result = true
			break
		}
		if proj > bottomOfCylinder {
			continue
		}
		dir := *contact.PositionLocal.Clone()
		dir.Y -= bottomOfCylinder
		if dir.Length() == 0 {
			continue
		}
		dir.Normalize()
		g.hemisphereDirs = append(g.hemisphereDirs, dir)
	}

	if !result {
		for i := 0; i < len(g.hemisphereDirs) && !result; i++ {
			for j := i + 1; j < len(g.hemisphereDirs); j++ {
				if g.hemisphereDirs[i].Dot(&g.hemisphereDirs[j]) <= cos120 {
					result = true
					break
				}
			}
		}
	}

	cache.groundContact = result
	cache.groundKnown = true
	return result
}
