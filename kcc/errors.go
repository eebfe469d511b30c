// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kcc implements a kinematic character controller: a capsule
// that moves through a CollisionWorld by flying, sliding, stepping up
// and stepping down, while participating in a physics.Simulation as an
// ordinary rigid body plus a per-step force effect.
package kcc

import "github.com/pkg/errors"

// PreconditionError is returned by the constructor and by setters when
// given an invalid value (a zero up vector, a negative iteration count,
// a maneuverability outside [0,1]...). It is the only error kind this
// package exposes to callers; NumericFailure and ConvergenceFailure are
// internal and always absorbed by rollback before Move returns.
type PreconditionError struct {
	cause error
}

func newPreconditionError(msg string) error {

	return &PreconditionError{cause: errors.New(msg)}
}

func (e *PreconditionError) Error() string {

	return e.cause.Error()
}

// Cause lets errors.Cause() unwrap to the underlying sentinel.
func (e *PreconditionError) Cause() error {

	return e.cause
}

// numericFailure signals that a movement pipeline step produced a
// non-finite position. Never escapes Move: the slide phase that hit it
// restores its pre-attempt position and contact cache.
type numericFailure struct {
	cause error
}

func (e *numericFailure) Error() string {

	return e.cause.Error()
}

func newNumericFailure(msg string) error {

	return &numericFailure{cause: errors.New(msg)}
}

// convergenceFailure signals that the SimplexSolver hit its iteration
// cap without satisfying every bound. SlidePhases interpret it (retry
// with a more restrictive policy, fall back to StepUp, or roll back); it
// never escapes a full Move call.
type convergenceFailure struct {
	cause error
}

func (e *convergenceFailure) Error() string {

	return e.cause.Error()
}

func newConvergenceFailure(msg string) error {

	return &convergenceFailure{cause: errors.New(msg)}
}

func isNumericFailure(err error) bool {

	_, ok := err.(*numericFailure)
	return ok
}

func isConvergenceFailure(err error) bool {

	_, ok := err.(*convergenceFailure)
	return ok
}
