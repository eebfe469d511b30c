// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kcc

import (
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/collision"
)

// CCContact is a contact flattened into the controller's own frame:
// position relative to the capsule (in the capsule's local orientation,
// where local +Y is always up_vector) and the contact normal oriented
// toward the controller.
type CCContact struct {
	PositionLocal    math32.Vector3
	NormalTowardCC   math32.Vector3
	PenetrationDepth float32
}

// ContactCache buffers, for one movement step, the obstacle contact sets
// collected from the CollisionWorld, the flattened CCContact list, and
// the ground-contact memo GroundClassifier populates. All backing slices
// are reused across frames and across Backup/Rollback; nothing here
// allocates once warmed up.
type ContactCache struct {
	world collision.CollisionWorld

	obstacleSets []*collision.ContactSet

	contacts      []CCContact
	groundKnown   bool
	groundContact bool

	backupContacts      []CCContact
	backupGroundKnown   bool
	backupGroundContact bool
}

// NewContactCache creates and returns a pointer to a new, empty
// ContactCache backed by the given CollisionWorld.
func NewContactCache(world collision.CollisionWorld) *ContactCache {

	return &ContactCache{world: world}
}

// CollectObstacles recycles the previous step's obstacle contact sets and
// rebuilds the candidate list from the collision world's broad phase,
// using self's world AABB expanded by radius on every side. A disabled
// self body yields an empty obstacle list.
func (c *ContactCache) CollectObstacles(self *collision.Object, selfPos math32.Vector3, selfQuat math32.Quaternion, radius float32) {

	for _, cs := range c.obstacleSets {
		c.world.RecycleContactSet(cs, true)
	}
	c.obstacleSets = c.obstacleSets[:0]

	if !self.Enabled() {
		return
	}

	aabb := self.WorldAABB(&selfPos, &selfQuat)
	aabb.Min.SubScalar(radius)
	aabb.Max.AddScalar(radius)

	for _, obstacle := range c.world.BroadPhaseOverlaps(aabb) {
		if obstacle == self {
			continue
		}
		c.obstacleSets = append(c.obstacleSets, c.world.CreateContactSet(self, obstacle))
	}
}

// UpdateContacts asks the collision world to refresh every obstacle pair
// at the body's current pose, flattens the result into CCContacts, and
// invalidates the ground-contact memo.
func (c *ContactCache) UpdateContacts(dt float32) {

	c.contacts = c.contacts[:0]
	c.groundKnown = false

	for _, cs := range c.obstacleSets {
		c.world.UpdateContacts(cs, dt)
		for _, contact := range cs.Contacts() {
			c.contacts = append(c.contacts, CCContact{
				PositionLocal:    contact.PositionALocal,
				NormalTowardCC:   *contact.Normal.Clone().Negate(),
				PenetrationDepth: contact.PenetrationDepth,
			})
		}
	}
}

// Contacts returns the current flattened CCContact list.
func (c *ContactCache) Contacts() []CCContact {

	return c.contacts
}

// Backup snapshots the CCContact list and the ground-contact memo,
// reusing its backing storage across calls.
func (c *ContactCache) Backup() {

	c.backupContacts = append(c.backupContacts[:0], c.contacts...)
	c.backupGroundKnown = c.groundKnown
	c.backupGroundContact = c.groundContact
}

// Rollback restores the CCContact list and ground-contact memo from the
// last Backup.
func (c *ContactCache) Rollback() {

	c.contacts = append(c.contacts[:0], c.backupContacts...)
	c.groundKnown = c.backupGroundKnown
	c.groundContact = c.backupGroundContact
}
