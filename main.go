// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/config"
	"github.com/jdOchoa2/Barnes-Hut/integrator"
	"github.com/jdOchoa2/Barnes-Hut/model"
	"github.com/jdOchoa2/Barnes-Hut/store"
)

func main() {

	exitCode := 0

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.Pfred("ERROR: %v\n", err)
			exitCode = 1
		}
		os.Exit(exitCode)
	}()

	io.PfWhite("\nBarnes-Hut -- N-body galaxy evolution\n\n")

	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		chk.Panic("Please provide a command and a configuration file. Ex.: init galaxy.cfg")
	}

	cmd, cfgPath := args[0], args[1]
	cfg := config.Load(cfgPath)

	switch cmd {
	case "init":
		runInit(cfg)
	case "evolve":
		runEvolve(cfg)
	case "tangent-velocity":
		runTangentVelocity(cfg)
	default:
		chk.Panic("unknown command %q: expected init, evolve or tangent-velocity", cmd)
	}
}

// runInit implements the "init" entry point of spec.md §6: read config,
// generate the initial condition, write the Initial State artifact.
func runInit(cfg *config.Config) {
	body.RescaleG(cfg.IniRadius)

	rows := model.GenerateTilted(cfg.Model, cfg.N, cfg.Inclination, cfg.AscendingNode)

	if err := os.MkdirAll(cfg.DataFolder, 0777); err != nil {
		chk.Panic("runInit: cannot create data folder %q: %v", cfg.DataFolder, err)
	}
	path := filepath.Join(cfg.DataFolder, "InitialState."+cfg.Format)
	if err := store.WriteInitialState(path, rows); err != nil {
		chk.Panic("runInit: cannot write initial state: %v", err)
	}
	io.Pfgreen("> wrote %s (N=%d, model=%s)\n", path, cfg.N, cfg.ModelName)
}

// runEvolve implements the "evolve" entry point of spec.md §6: read
// config + Initial State, run the integrator, write the Evolution
// artifact.
func runEvolve(cfg *config.Config) {
	body.RescaleG(cfg.IniRadius)

	inPath := filepath.Join(cfg.DataFolder, "InitialState."+cfg.Format)
	bodies, err := store.ReadInitialState(inPath, cfg.N)
	if err != nil {
		chk.Panic("runEvolve: cannot read initial state: %v", err)
	}

	outPath := filepath.Join(cfg.DataFolder, "Evolution."+cfg.Format)
	w, err := store.NewEvolutionWriter(outPath)
	if err != nil {
		chk.Panic("runEvolve: cannot open evolution artifact: %v", err)
	}
	defer w.Close()

	params := integrator.Params{
		Dt:        cfg.Dt,
		Theta:     cfg.Theta,
		NSteps:    cfg.NSteps,
		SaveEvery: cfg.SaveEvery,
	}
	if err := integrator.Run(bodies, params, w, nil); err != nil {
		chk.Panic("runEvolve: integration failed: %v", err)
	}
	io.Pfgreen("> wrote %s (%d steps, save_every=%d)\n", outPath, cfg.NSteps, cfg.SaveEvery)
}

// runTangentVelocity supplements the distilled spec: it is a read-only
// post-processing report over an existing Evolution artifact (original
// Python's tangent_velocity_distribution, original_source/common.py),
// producing the Tangent-Velocity artifact of spec.md §6.
func runTangentVelocity(cfg *config.Config) {
	nSaved := cfg.NSteps/cfg.SaveEvery + 1

	evoPath := filepath.Join(cfg.DataFolder, "Evolution."+cfg.Format)
	outPath := filepath.Join(cfg.DataFolder, "TangentVelocity."+cfg.Format)
	out, err := os.Create(outPath)
	if err != nil {
		chk.Panic("runTangentVelocity: cannot create %q: %v", outPath, err)
	}
	defer out.Close()

	for snap := 0; snap < nSaved; snap++ {
		bodies, err := store.ReadEvolutionSnapshot(evoPath, cfg.N, snap)
		if err != nil {
			chk.Panic("runTangentVelocity: cannot read snapshot %d: %v", snap, err)
		}
		samples := store.TangentVelocity(bodies, cfg.Inclination, cfg.AscendingNode, cfg.IniRadius)
		if err := store.WriteTangentVelocity(out, samples); err != nil {
			chk.Panic("runTangentVelocity: cannot write snapshot %d: %v", snap, err)
		}
	}
	io.Pfgreen("> wrote %s (%d snapshots)\n", outPath, nSaved)
}
