// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jdOchoa2/Barnes-Hut/model"
)

func writeTemp(tst *testing.T, body string) string {
	path := filepath.Join(tst.TempDir(), "galaxy.cfg")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write temp config: %v", err)
	}
	return path
}

// Test_config01 checks that a fully-specified config file, tokens 1..12, is
// parsed into the documented fields (spec.md §3/§6).
func Test_config01(tst *testing.T) {
	chk.PrintTitle("config01: full parse and defaults")

	path := writeTemp(tst, "label 500 0.4 0.1 0.2 Kepler 0.02 0.5 1000 Data bin 5\n")
	cfg := Load(path)

	chk.Scalar(tst, "N", 0, float64(cfg.N), 500)
	chk.Scalar(tst, "IniRadius", 1e-12, cfg.IniRadius, 0.4)
	chk.Scalar(tst, "Inclination", 1e-12, cfg.Inclination, 0.1)
	chk.Scalar(tst, "AscendingNode", 1e-12, cfg.AscendingNode, 0.2)
	if cfg.Model != model.Kepler {
		tst.Errorf("Model = %v, want Kepler", cfg.Model)
	}
	chk.Scalar(tst, "Dt", 1e-12, cfg.Dt, 0.02)
	chk.Scalar(tst, "Theta", 1e-12, cfg.Theta, 0.5)
	chk.Scalar(tst, "NSteps", 0, float64(cfg.NSteps), 1000)
	if cfg.DataFolder != "Data" {
		tst.Errorf("DataFolder = %q, want Data", cfg.DataFolder)
	}
	if cfg.Format != "bin" {
		tst.Errorf("Format = %q, want bin", cfg.Format)
	}
	chk.Scalar(tst, "SaveEvery", 0, float64(cfg.SaveEvery), 5)
}

// Test_config02 checks that optional dt/theta/save_every fall back to
// defaults() when the config file omits them.
func Test_config02(tst *testing.T) {
	chk.PrintTitle("config02: optional-field defaults")

	path := writeTemp(tst, "label 50 0.4 0 0 Bessel\n")
	cfg := Load(path)
	chk.Scalar(tst, "Dt default", 1e-12, cfg.Dt, 0.01)
	chk.Scalar(tst, "Theta default", 1e-12, cfg.Theta, 0.3)
	chk.Scalar(tst, "SaveEvery default", 0, float64(cfg.SaveEvery), 1)
	chk.Scalar(tst, "NSteps default", 0, float64(cfg.NSteps), 0)
	if cfg.DataFolder != "Data/" {
		tst.Errorf("DataFolder default = %q, want Data/", cfg.DataFolder)
	}
}

// Test_config03 checks that Load panics on missing required fields and on
// an out-of-range theta (spec.md §7 ConfigError).
func Test_config03(tst *testing.T) {
	chk.PrintTitle("config03: required-field and range guards")

	func() {
		defer func() {
			if r := recover(); r == nil {
				tst.Errorf("expected panic for missing model token")
			}
		}()
		path := writeTemp(tst, "label 50 0.4 0 0\n")
		Load(path)
	}()

	func() {
		defer func() {
			if r := recover(); r == nil {
				tst.Errorf("expected panic for theta out of (0,1]")
			}
		}()
		path := writeTemp(tst, "label 50 0.4 0 0 Kepler 0.01 1.5 10 Data bin\n")
		Load(path)
	}()
}
