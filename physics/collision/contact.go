package collision

import "github.com/g3n/charactercontroller/math32"

// Contact describes a single contact point between two collision objects,
// as produced by CollisionWorld.UpdateContacts. Normal points from A to B.
type Contact struct {
	PositionWorld   math32.Vector3
	PositionALocal  math32.Vector3
	PositionBLocal  math32.Vector3
	Normal          math32.Vector3
	PenetrationDepth float32

	// FeatureA/FeatureB identify which feature of each shape produced the
	// contact (face, edge, cap...); materials may key surface properties
	// off these. A reference world that only deals in analytic primitives
	// can leave both at zero.
	FeatureA int
	FeatureB int
}

// ContactSet is a per-pair record: the candidate obstacle paired against
// the controller's body, plus the contacts currently known between them.
// ContactSets are pooled and recycled across movement steps (see
// CollisionWorld.RecycleContactSet) so that collecting obstacles never
// allocates on the steady-state path.
type ContactSet struct {
	A, B     *Object
	contacts []Contact
}

// NewContactSet creates and returns a pointer to a new, empty ContactSet
// for the given pair of objects.
func NewContactSet(a, b *Object) *ContactSet {

	return &ContactSet{A: a, B: b}
}

// Reset clears the contact set's pair and contacts so it can be recycled
// for a new pair without discarding its backing array.
func (cs *ContactSet) Reset(a, b *Object) {

	cs.A = a
	cs.B = b
	cs.contacts = cs.contacts[:0]
}

// Contacts returns the contacts currently known for this pair.
func (cs *ContactSet) Contacts() []Contact {

	return cs.contacts
}

// SetContacts replaces the contact set's contact list. Callers that want to
// avoid allocation should reuse the slice returned by a prior Contacts()
// call as the backing array.
func (cs *ContactSet) SetContacts(contacts []Contact) {

	cs.contacts = contacts
}
