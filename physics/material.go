// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics implements a kinematic-character-aware rigid body
// simulation: bodies, force fields, force effects and a SPOOK/Gauss-Seidel
// contact solver.
package physics

import "github.com/g3n/charactercontroller/math32"

// Material specifies the surface properties of a RigidBody.
type Material struct {
	name        string
	friction    float32
	restitution float32

	// SurfaceMotion is the velocity this material's surface imparts to
	// whatever stands on it, expressed in the body's local frame (nil for
	// an ordinary static/dynamic surface). A conveyor belt or treadmill
	// sets this instead of moving the body itself. CharacterForceEffect
	// adds it, transformed to world space, to the ground velocity it
	// reports to a resting controller.
	SurfaceMotion *math32.Vector3
}

// NewMaterial creates and returns a pointer to a new Material.
func NewMaterial(name string, friction, restitution float32) *Material {

	return &Material{name: name, friction: friction, restitution: restitution}
}

// Name returns the material's name.
func (m *Material) Name() string {

	return m.name
}

// Friction returns the material's friction coefficient.
func (m *Material) Friction() float32 {

	return m.friction
}

// Restitution returns the material's restitution (bounciness) coefficient.
func (m *Material) Restitution() float32 {

	return m.restitution
}

// ContactMaterial holds the combined contact/friction equation parameters
// used whenever two specific materials touch.
type ContactMaterial struct {
	mat1                       *Material
	mat2                       *Material
	friction                   float32
	restitution                float32
	contactEquationStiffness   float32
	contactEquationRelaxation  float32
	frictionEquationStiffness  float32
	frictionEquationRelaxation float32
}

// NewContactMaterial creates and returns a pointer to a new ContactMaterial
// for the pair (mat1, mat2) with the library's default stiffness/relaxation.
func NewContactMaterial(mat1, mat2 *Material) *ContactMaterial {

	cm := new(ContactMaterial)
	cm.mat1 = mat1
	cm.mat2 = mat2
	cm.friction = 0.3
	cm.restitution = 0.3
	cm.contactEquationStiffness = 1e7
	cm.contactEquationRelaxation = 3
	cm.frictionEquationStiffness = 1e7
	cm.frictionEquationRelaxation = 3
	return cm
}

// SetFriction sets the combined friction coefficient.
func (cm *ContactMaterial) SetFriction(f float32) {

	cm.friction = f
}

// Friction returns the combined friction coefficient.
func (cm *ContactMaterial) Friction() float32 {

	return cm.friction
}

// SetRestitution sets the combined restitution coefficient.
func (cm *ContactMaterial) SetRestitution(r float32) {

	cm.restitution = r
}

// Restitution returns the combined restitution coefficient.
func (cm *ContactMaterial) Restitution() float32 {

	return cm.restitution
}

// ContactEquationStiffness returns the SPOOK stiffness used for the
// non-penetration equation between these two materials.
func (cm *ContactMaterial) ContactEquationStiffness() float32 {

	return cm.contactEquationStiffness
}

// ContactEquationRelaxation returns the SPOOK relaxation used for the
// non-penetration equation between these two materials.
func (cm *ContactMaterial) ContactEquationRelaxation() float32 {

	return cm.contactEquationRelaxation
}

// FrictionEquationStiffness returns the SPOOK stiffness used for the
// friction equation between these two materials.
func (cm *ContactMaterial) FrictionEquationStiffness() float32 {

	return cm.frictionEquationStiffness
}

// FrictionEquationRelaxation returns the SPOOK relaxation used for the
// friction equation between these two materials.
func (cm *ContactMaterial) FrictionEquationRelaxation() float32 {

	return cm.frictionEquationRelaxation
}

// contactMaterialTable looks up the ContactMaterial for a pair of
// materials, falling back to a default derived from the two materials' own
// properties when no explicit pairing was registered.
type contactMaterialTable struct {
	entries map[[2]*Material]*ContactMaterial
}

func newContactMaterialTable() *contactMaterialTable {

	return &contactMaterialTable{entries: make(map[[2]*Material]*ContactMaterial)}
}

// Set registers the ContactMaterial to use whenever mat1 and mat2 touch.
func (t *contactMaterialTable) Set(mat1, mat2 *Material, cm *ContactMaterial) {

	t.entries[[2]*Material{mat1, mat2}] = cm
	t.entries[[2]*Material{mat2, mat1}] = cm
}

// Get returns the registered ContactMaterial for the pair, or a default
// one combining the two materials' individual friction/restitution if none
// was registered.
func (t *contactMaterialTable) Get(mat1, mat2 *Material) *ContactMaterial {

	if cm, ok := t.entries[[2]*Material{mat1, mat2}]; ok {
		return cm
	}

	cm := NewContactMaterial(mat1, mat2)
	if mat1 != nil && mat2 != nil {
		cm.friction = math32.Sqrt(mat1.friction * mat2.friction)
		cm.restitution = math32.Max(mat1.restitution, mat2.restitution)
	}
	return cm
}
