// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/g3n/charactercontroller/math32"
)

// GaussSeidel is an iterative constraint equation solver.
// See https://en.wikipedia.org/wiki/Gauss-Seidel_method.
// The number of iterations determines the quality of the solution: more
// iterations yield a better solution but require more computation.
type GaussSeidel struct {
	Solver
	maxIter   int     // Number of solver iterations.
	tolerance float32 // Below this error the system is assumed converged.

	solveInvCs  []float32
	solveBs     []float32
	solveLambda []float32
}

// NewGaussSeidel creates and returns a pointer to a new GaussSeidel solver.
func NewGaussSeidel() *GaussSeidel {

	gs := new(GaussSeidel)
	gs.maxIter = 20
	gs.tolerance = 1e-7
	return gs
}

// SetMaxIterations sets the maximum number of Gauss-Seidel sweeps.
func (gs *GaussSeidel) SetMaxIterations(n int) {

	gs.maxIter = n
}

func (gs *GaussSeidel) reset(numBodies int) {

	gs.VelocityDeltas = make([]math32.Vector3, numBodies)
	gs.AngularVelocityDeltas = make([]math32.Vector3, numBodies)
	gs.Iterations = 0

	gs.solveInvCs = gs.solveInvCs[:0]
	gs.solveBs = gs.solveBs[:0]
	gs.solveLambda = gs.solveLambda[:0]
}

// Solve iterates the current equation set to convergence (or maxIter) and
// returns the resulting per-body velocity deltas.
func (gs *GaussSeidel) Solve(dt float32, nBodies int) *Solution {

	gs.reset(nBodies)

	iter := 0
	nEquations := len(gs.equations)
	h := dt

	for i := 0; i < nEquations; i++ {
		eq := gs.equations[i]
		gs.solveInvCs = append(gs.solveInvCs, 1.0/eq.ComputeC())
		gs.solveBs = append(gs.solveBs, eq.ComputeB(h))
		gs.solveLambda = append(gs.solveLambda, 0.0)
	}

	if nEquations > 0 {
		tolSquared := gs.tolerance * gs.tolerance

		for iter = 0; iter < gs.maxIter; iter++ {

			deltaLambdaTot := float32(0)

			for j := 0; j < nEquations; j++ {
				eq := gs.equations[j]

				lambdaJ := gs.solveLambda[j]

				idxBodyA := eq.BodyA().Index()
				idxBodyB := eq.BodyB().Index()

				vA := gs.VelocityDeltas[idxBodyA]
				vB := gs.VelocityDeltas[idxBodyB]
				wA := gs.AngularVelocityDeltas[idxBodyA]
				wB := gs.AngularVelocityDeltas[idxBodyB]
				jeA := eq.JeA()
				jeB := eq.JeB()
				GWlambda := jeA.MultiplyVectors(&vA, &wA) + jeB.MultiplyVectors(&vB, &wB)

				deltaLambda := gs.solveInvCs[j] * (gs.solveBs[j] - GWlambda - eq.Eps()*lambdaJ)

				if lambdaJ+deltaLambda < eq.MinForce() {
					deltaLambda = eq.MinForce() - lambdaJ
				} else if lambdaJ+deltaLambda > eq.MaxForce() {
					deltaLambda = eq.MaxForce() - lambdaJ
				}
				gs.solveLambda[j] += deltaLambda
				deltaLambdaTot += math32.Abs(deltaLambda)

				spatA := jeA.Spatial()
				spatB := jeB.Spatial()
				gs.VelocityDeltas[idxBodyA].Add(spatA.MultiplyScalar(eq.BodyA().InvMassEff() * deltaLambda))
				gs.VelocityDeltas[idxBodyB].Add(spatB.MultiplyScalar(eq.BodyB().InvMassEff() * deltaLambda))

				rotA := jeA.Rotational()
				rotB := jeB.Rotational()
				gs.AngularVelocityDeltas[idxBodyA].Add(rotA.ApplyMatrix3(eq.BodyA().InvRotInertiaWorldEff()).MultiplyScalar(deltaLambda))
				gs.AngularVelocityDeltas[idxBodyB].Add(rotB.ApplyMatrix3(eq.BodyB().InvRotInertiaWorldEff()).MultiplyScalar(deltaLambda))
			}

			if deltaLambdaTot*deltaLambdaTot < tolSquared {
				break
			}
		}

		for i := range gs.equations {
			gs.equations[i].SetMultiplier(gs.solveLambda[i] / h)
		}
		iter++
	}

	gs.Iterations = iter

	return &gs.Solution
}
