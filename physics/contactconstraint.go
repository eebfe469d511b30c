// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/equation"
)

// ContactConstraint is the solved-per-step record of one contact between
// two bodies: the non-penetration equation, its two tangent friction
// equations, and the contact geometry a ForceEffect needs to apply its own
// ad-hoc forces at the same contact (e.g. a character's weight, or a push
// impulse that keeps it from sinking into a dynamic platform).
type ContactConstraint struct {
	Contact    *equation.Contact
	FrictionU  *equation.Friction
	FrictionV  *equation.Friction
	PositionWorld math32.Vector3
}

// BodyA returns the constraint's first body.
func (cc *ContactConstraint) BodyA() equation.IBody {

	return cc.Contact.BodyA()
}

// BodyB returns the constraint's second body.
func (cc *ContactConstraint) BodyB() equation.IBody {

	return cc.Contact.BodyB()
}

// Normal returns the contact normal, pointing out of BodyA (towards BodyB).
func (cc *ContactConstraint) Normal() math32.Vector3 {

	return cc.Contact.Normal()
}

// KMatrix computes the 3x3 effective mass matrix relating an impulse
// applied at this contact to the resulting change in relative velocity
// there, generalizing the solver's scalar along-normal effective mass to
// the full push direction a ForceEffect may want to use.
func (cc *ContactConstraint) KMatrix() *math32.Matrix3 {

	rA := cc.Contact.RA()
	rB := cc.Contact.RB()
	return equation.ComputeKMatrix(cc.Contact.BodyA(), cc.Contact.BodyB(), &rA, &rB)
}

// Involves returns whether the given body participates in this contact,
// either as BodyA or BodyB.
func (cc *ContactConstraint) Involves(b equation.IBody) bool {

	return cc.Contact.BodyA() == b || cc.Contact.BodyB() == b
}

// Other returns whichever of BodyA/BodyB is not the given body, along with
// the contact normal oriented from b toward the other body. Panics if b
// does not participate in the contact; callers should check Involves first.
func (cc *ContactConstraint) Other(b equation.IBody) (equation.IBody, math32.Vector3) {

	n := cc.Contact.Normal()
	if cc.Contact.BodyA() == b {
		return cc.Contact.BodyB(), n
	}
	return cc.Contact.BodyA(), *n.Clone().Negate()
}
