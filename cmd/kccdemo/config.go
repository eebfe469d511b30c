// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds everything kccdemo needs to build a Simulation and a KCC,
// loaded from an optional YAML file read through viper. No flag or
// environment overrides are bound. The yaml tags are all lower case
// because viper lower-cases every key it reads.
type Config struct {
	Controller struct {
		Width               float32 `yaml:"width"`
		Height              float32 `yaml:"height"`
		SlopeLimitDegrees   float32 `yaml:"slopelimitdegrees"`
		StepHeight          float32 `yaml:"stepheight"`
		MaxVelocity         float32 `yaml:"maxvelocity"`
		PushForce           float32 `yaml:"pushforce"`
		JumpManeuverability float32 `yaml:"jumpmaneuverability"`
	} `yaml:"controller"`

	Simulation struct {
		Gravity       float32 `yaml:"gravity"`
		FixedTimeStep float32 `yaml:"fixedtimestep"`
		Steps         int     `yaml:"steps"`
	} `yaml:"simulation"`

	Walk struct {
		VelocityX  float32 `yaml:"velocityx"`
		JumpEveryN int     `yaml:"jumpeveryn"`
		JumpSpeed  float32 `yaml:"jumpspeed"`
	} `yaml:"walk"`
}

// DefaultConfig returns the demo's out-of-the-box settings, used whenever
// no config file is supplied.
func DefaultConfig() Config {

	var c Config
	c.Controller.Width = 0.8
	c.Controller.Height = 1.8
	c.Controller.SlopeLimitDegrees = 45
	c.Controller.StepHeight = 0.35
	c.Controller.MaxVelocity = 8
	c.Controller.PushForce = 1000
	c.Controller.JumpManeuverability = 0.3

	c.Simulation.Gravity = 9.81
	c.Simulation.FixedTimeStep = 1.0 / 60
	c.Simulation.Steps = 300

	c.Walk.VelocityX = 2
	c.Walk.JumpEveryN = 90
	c.Walk.JumpSpeed = 5

	return c
}

// loadConfig reads path (if non-empty) through viper and unmarshals it as
// YAML over DefaultConfig, so a config file only needs to set the fields it
// wants to change.
func loadConfig(path string) (Config, error) {

	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, errors.Wrapf(err, "kccdemo: reading config %q", path)
	}

	raw, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return cfg, errors.Wrap(err, "kccdemo: re-marshaling config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "kccdemo: decoding config %q", path)
	}

	return cfg, nil
}
