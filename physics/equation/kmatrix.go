// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/g3n/charactercontroller/math32"
)

// skewSymmetric returns the 3x3 cross-product matrix [v]x such that
// [v]x * w == v.Cross(w) for any w.
func skewSymmetric(v *math32.Vector3) *math32.Matrix3 {

	m := math32.NewMatrix3()
	m.Set(
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	)
	return m
}

// ComputeKMatrix computes the effective mass matrix K at a contact between
// bodyA and bodyB, relating an impulse applied at the contact point to the
// resulting change in relative velocity there:
//
//	K = (invMassA + invMassB) * I  -  [rA]x * invIA * [rA]x  -  [rB]x * invIB * [rB]x
//
// rA and rB are the world-oriented offsets from each body's center of mass
// to the contact point. This is the standard rigid-body contact effective
// mass (e.g. as used by impulse-based solvers), generalized here to the full
// 3x3 block a push-impulse force effect needs rather than the SPOOK solver's
// scalar-along-normal C = G*inv(M)*G'.
func ComputeKMatrix(bodyA, bodyB IBody, rA, rB *math32.Vector3) *math32.Matrix3 {

	k := math32.NewMatrix3()
	invMassSum := bodyA.InvMassEff() + bodyB.InvMassEff()
	k.Set(
		invMassSum, 0, 0,
		0, invMassSum, 0,
		0, 0, invMassSum,
	)

	skewA := skewSymmetric(rA)
	termA := math32.NewMatrix3().MultiplyMatrices(skewA, bodyA.InvRotInertiaWorldEff())
	termA.Multiply(skewA)
	k.Sub(termA)

	skewB := skewSymmetric(rB)
	termB := math32.NewMatrix3().MultiplyMatrices(skewB, bodyB.InvRotInertiaWorldEff())
	termB.Multiply(skewB)
	k.Sub(termB)

	return k
}
