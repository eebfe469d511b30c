package collision

import (
	"github.com/google/uuid"

	"github.com/g3n/charactercontroller/math32"
)

// Object is a collidable object: a shape posed in world space, with the
// filtering state the broad-phase and contact generation need. It is the
// "CollisionObject" referenced by spec — RigidBody embeds one.
type Object struct {
	id      uuid.UUID
	shape   IShape
	enabled bool
	group   int

	// Owner is an opaque back-pointer to whatever owns this collision
	// object (normally a *physics.RigidBody). The collision package never
	// dereferences it; it exists purely so a CollisionWorld can map a
	// broad-phase hit back to the owning body without an import cycle.
	Owner interface{}
}

// NewObject creates and returns a pointer to a new enabled collision Object
// for the given shape.
func NewObject(shape IShape) *Object {

	return &Object{
		id:      uuid.New(),
		shape:   shape,
		enabled: true,
		group:   1,
	}
}

// ID returns the object's stable identity, used as a broad-phase/contact
// cache key.
func (o *Object) ID() uuid.UUID {

	return o.id
}

// Shape returns the object's collision shape.
func (o *Object) Shape() IShape {

	return o.shape
}

// Enabled returns whether the object currently participates in collision.
func (o *Object) Enabled() bool {

	return o.enabled
}

// SetEnabled sets whether the object participates in collision.
func (o *Object) SetEnabled(state bool) {

	o.enabled = state
}

// CollisionGroup returns the object's collision filter group.
func (o *Object) CollisionGroup() int {

	return o.group
}

// SetCollisionGroup sets the object's collision filter group.
func (o *Object) SetCollisionGroup(group int) {

	o.group = group
}

// WorldAABB returns the object's world-space axis-aligned bounding box
// given its current world pose.
func (o *Object) WorldAABB(position *math32.Vector3, orientation *math32.Quaternion) math32.Box3 {

	local := o.shape.BoundingBox()
	mat4 := math32.NewMatrix4().Compose(position, orientation, math32.NewVector3(1, 1, 1))
	return *local.ApplyMatrix4(mat4)
}
