// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

// ForceEffect is a per-simulation-step callback with access to the
// contacts the solver just ran against, unlike ForceField which only ever
// sees a body's position. A kinematic character controller registers one
// to apply its weight to the ground and to push on dynamic obstacles it
// stands on or walks into, using the contacts' KMatrix to compute a
// correctly-scaled impulse rather than an ad-hoc force.
type ForceEffect interface {
	// Step runs once per Simulation.Step, after contacts have been
	// generated and solved for dt, and before bodies are integrated. The
	// constraints slice holds every active ContactConstraint this step,
	// not just ones involving whatever body this effect cares about; an
	// effect must filter for the bodies it owns itself.
	Step(dt float32, constraints []*ContactConstraint)
}
