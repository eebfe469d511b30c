// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements constraint equation solvers.
package solver

import (
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics/equation"
)

// ISolver is the interface type for all constraint solvers.
type ISolver interface {
	Solve(dt float32, nBodies int) *Solution
	AddEquation(eq equation.IEquation)
	RemoveEquation(eq equation.IEquation) bool
	ClearEquations()
}

// Solution represents a solver solution: per-body velocity deltas.
type Solution struct {
	VelocityDeltas        []math32.Vector3
	AngularVelocityDeltas []math32.Vector3
	Iterations            int
}

// Solver is the base struct shared by every concrete constraint solver.
type Solver struct {
	Solution
	equations []equation.IEquation
}

// AddEquation adds an equation to the solver.
func (s *Solver) AddEquation(eq equation.IEquation) {

	s.equations = append(s.equations, eq)
}

// RemoveEquation removes the specified equation from the solver.
// Returns true if found, false otherwise.
func (s *Solver) RemoveEquation(eq equation.IEquation) bool {

	for pos, current := range s.equations {
		if current == eq {
			copy(s.equations[pos:], s.equations[pos+1:])
			s.equations[len(s.equations)-1] = nil
			s.equations = s.equations[:len(s.equations)-1]
			return true
		}
	}
	return false
}

// ClearEquations removes all equations from the solver.
func (s *Solver) ClearEquations() {

	s.equations = s.equations[0:0]
}
