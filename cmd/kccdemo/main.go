// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command kccdemo drives a KinematicCharacterController headlessly: it
// builds a small Simulation (a ground plane and a low step), walks the
// controller across it for a configured number of fixed steps, and prints
// its trajectory. There is no rendering; it exists to exercise the
// controller's wiring end to end outside of a test binary.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/g3n/charactercontroller/kcc"
	"github.com/g3n/charactercontroller/math32"
	"github.com/g3n/charactercontroller/physics"
	"github.com/g3n/charactercontroller/physics/collision"
)

func main() {

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {

	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kccdemo",
		Short: "Run a kinematic character controller through a scripted walk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file overriding the defaults")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging from the simulation and controller")

	return cmd
}

func run(configPath string, verbose bool) error {

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(verbose)
	if err != nil {
		return errors.Wrap(err, "kccdemo: building logger")
	}
	defer log.Sync() //nolint:errcheck

	sim, _, controller, err := buildRig(cfg, log.Sugar())
	if err != nil {
		return errors.Wrap(err, "kccdemo: building simulation rig")
	}

	buildScene(sim, cfg)

	controller.SetPosition(&math32.Vector3{Y: 1})

	dt := cfg.Simulation.FixedTimeStep
	for step := 0; step < cfg.Simulation.Steps; step++ {

		desired := math32.Vector3{X: cfg.Walk.VelocityX}
		var jump math32.Vector3
		if cfg.Walk.JumpEveryN > 0 && step > 0 && step%cfg.Walk.JumpEveryN == 0 {
			jump = math32.Vector3{Y: cfg.Walk.JumpSpeed}
		}

		if err := controller.Move(desired, jump, dt); err != nil {
			return errors.Wrapf(err, "kccdemo: move at step %d", step)
		}
		sim.Step(dt)

		if step%30 == 0 {
			pos := controller.Position()
			fmt.Printf("step=%4d  pos=(%.3f, %.3f, %.3f)  grounded=%v\n",
				step, pos.X, pos.Y, pos.Z, controller.HasGroundContact())
		}
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {

	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildRig constructs the Simulation, the reference CollisionWorld and the
// KCC, wiring the controller's tunables from cfg.
func buildRig(cfg Config, log *zap.SugaredLogger) (*physics.Simulation, *collision.World, *kcc.KCC, error) {

	world := collision.NewWorld()
	sim := physics.NewSimulation(world)
	sim.SetLogger(log)
	sim.SetGravity(&math32.Vector3{Y: -cfg.Simulation.Gravity})

	up := math32.Vector3{Y: 1}
	controller, err := kcc.New(sim, up, cfg.Controller.Width, cfg.Controller.Height, log)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := controller.SetSlopeLimit(math32.DegToRad(cfg.Controller.SlopeLimitDegrees)); err != nil {
		return nil, nil, nil, err
	}
	if err := controller.SetStepHeight(cfg.Controller.StepHeight); err != nil {
		return nil, nil, nil, err
	}
	if err := controller.SetMaxVelocity(cfg.Controller.MaxVelocity); err != nil {
		return nil, nil, nil, err
	}
	if err := controller.SetPushForce(cfg.Controller.PushForce); err != nil {
		return nil, nil, nil, err
	}
	if err := controller.SetJumpManeuverability(cfg.Controller.JumpManeuverability); err != nil {
		return nil, nil, nil, err
	}
	if err := controller.SetGravity(cfg.Simulation.Gravity); err != nil {
		return nil, nil, nil, err
	}

	return sim, world, controller, nil
}

// buildScene populates the simulation with a ground plane and a step
// obstacle the walk should climb via StepUp.
func buildScene(sim *physics.Simulation, cfg Config) {

	groundMat := physics.NewMaterial("ground", 0.8, 0)

	ground := physics.NewRigidBody(collision.NewPlane(&math32.Vector3{Y: 1}), 0)
	ground.SetName("ground")
	ground.SetBodyType(physics.Static)
	ground.SetMaterial(groundMat)
	sim.AddBody(ground)

	step := physics.NewRigidBody(collision.NewBox(&math32.Vector3{X: 0.5, Y: cfg.Controller.StepHeight / 2, Z: 2}), 0)
	step.SetName("step")
	step.SetBodyType(physics.Static)
	step.SetMaterial(groundMat)
	step.SetPosition(&math32.Vector3{X: 4, Y: cfg.Controller.StepHeight / 2})
	sim.AddBody(step)
}
