// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config reads the token-line parameter file described in
// spec.md §6 and validates it into a Config record (spec.md §3). The
// core simulation engine never reads files itself; config is the one
// external-collaborator seam the CLI needs to drive it (spec.md §1).
package config

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jdOchoa2/Barnes-Hut/model"
)

// Config is the Configuration record of spec.md §3.
type Config struct {
	N             int     // body count, >= 2
	IniRadius     float64 // physical disk radius, kpc
	Inclination   float64 // tilt alpha of disk plane, radians
	AscendingNode float64 // orientation beta, radians
	Model         model.Tag
	ModelName     string
	DataFolder    string
	Format        string  // artifact filename suffix, e.g. "bin"
	Dt            float64 // integrator step, Gyr (default 0.01)
	Theta         float64 // Barnes-Hut opening angle (default 0.3)
	NSteps        int     // total steps, >= 0
	SaveEvery     int     // snapshot cadence, >= 1
}

// defaults matches spec.md §3's documented defaults.
func defaults() Config {
	return Config{
		Dt:        0.01,
		Theta:     0.3,
		SaveEvery: 1,
		Format:    "bin",
	}
}

// Load reads and validates a token-line configuration file. Lines are
// whitespace-delimited tokens; only positions 2..12 are read (position 1 is
// reserved for a simulation label, unused by the core), matching spec.md
// §6:
//
//	2  N              integer >= 2
//	3  ini_radius     float, kpc
//	4  inclination    float, radians
//	5  ascending_node float, radians
//	6  model          Kepler | Bessel | Spiral
//	7  dt             float, Gyr            (optional, default 0.01)
//	8  theta          float in (0,1]         (optional, default 0.3)
//	9  n_steps        integer >= 0
//	10 data_folder    output directory
//	11 format         artifact filename suffix
//	12 save_every     integer >= 1          (optional, default 1)
//
// Any missing or malformed required field is a ConfigError, raised via
// chk.Panic and recovered in package main (spec.md §7).
func Load(path string) *Config {
	buf, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config: Load: cannot read configuration file %q: %v", path, err)
	}

	c := defaults()
	scanner := bufio.NewScanner(strings.NewReader(string(buf)))
	var tokens []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}

	get := func(pos int) (string, bool) {
		if pos-1 < 0 || pos-1 >= len(tokens) {
			return "", false
		}
		return tokens[pos-1], true
	}

	n, ok := get(2)
	if !ok {
		chk.Panic("config: Load: missing token 2 (N)")
	}
	c.N = mustAtoi(n, "N")
	if c.N < 2 {
		chk.Panic("config: Load: N must be >= 2, got %d", c.N)
	}

	r, ok := get(3)
	if !ok {
		chk.Panic("config: Load: missing token 3 (ini_radius)")
	}
	c.IniRadius = mustAtof(r, "ini_radius")
	if c.IniRadius <= 0 {
		chk.Panic("config: Load: ini_radius must be > 0, got %v", c.IniRadius)
	}

	if v, ok := get(4); ok {
		c.Inclination = mustAtof(v, "inclination")
	}
	if v, ok := get(5); ok {
		c.AscendingNode = mustAtof(v, "ascending_node")
	}

	mtag, ok := get(6)
	if !ok {
		chk.Panic("config: Load: missing token 6 (model)")
	}
	c.ModelName = mtag
	c.Model = model.ParseTag(mtag)

	if v, ok := get(7); ok {
		c.Dt = mustAtof(v, "dt")
	}
	if c.Dt <= 0 {
		chk.Panic("config: Load: dt must be > 0, got %v", c.Dt)
	}

	if v, ok := get(8); ok {
		c.Theta = mustAtof(v, "theta")
	}
	if c.Theta <= 0 || c.Theta > 1 {
		chk.Panic("config: Load: theta must be in (0,1], got %v", c.Theta)
	}

	if v, ok := get(9); ok {
		c.NSteps = mustAtoi(v, "n_steps")
	}
	if c.NSteps < 0 {
		chk.Panic("config: Load: n_steps must be >= 0, got %d", c.NSteps)
	}

	if v, ok := get(10); ok {
		c.DataFolder = v
	}
	if c.DataFolder == "" {
		c.DataFolder = "Data/"
	}

	if v, ok := get(11); ok {
		c.Format = v
	}

	if v, ok := get(12); ok {
		c.SaveEvery = mustAtoi(v, "save_every")
	}
	if c.SaveEvery < 1 {
		chk.Panic("config: Load: save_every must be >= 1, got %d", c.SaveEvery)
	}

	return &c
}

func mustAtoi(s, field string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		chk.Panic("config: Load: field %s: cannot parse %q as integer: %v", field, s, err)
	}
	return v
}

func mustAtof(s, field string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		chk.Panic("config: Load: field %s: cannot parse %q as float: %v", field, s, err)
	}
	return v
}
