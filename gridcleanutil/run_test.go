/*
Copyright © 2024 the GridClean authors.
This file is part of GridClean.

GridClean is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GridClean is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GridClean.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridcleanutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesResults(t *testing.T) {
	Cfg.Set("Seed", 1)
	Cfg.Set("NumParticles", 1)
	Cfg.Set("SimulationTime", 2.0)
	defer func() {
		Cfg.Set("Seed", 0)
		Cfg.Set("NumParticles", 10)
		Cfg.Set("SimulationTime", 15.0)
	}()

	out := filepath.Join(t.TempDir(), "results.json")
	if err := Run(Cfg, "steel_shot", out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatal(err)
	}
	if results.Media != "steel_shot" {
		t.Errorf("media: %s != steel_shot", results.Media)
	}
	if results.Particles != 1 {
		t.Errorf("particles: %d != 1", results.Particles)
	}
	if len(results.PressureDrops) != 4 {
		t.Errorf("pressure drops: %d grids != 4", len(results.PressureDrops))
	}
	if results.Trajectory == nil || len(results.Trajectory.Times) == 0 {
		t.Error("expected a sampled trajectory")
	}
}

func TestRunUnknownMedia(t *testing.T) {
	if err := Run(Cfg, "sand", filepath.Join(t.TempDir(), "results.json")); err == nil {
		t.Error("expected error for unknown media")
	}
}

func TestCompareMedia(t *testing.T) {
	Cfg.Set("Seed", 1)
	Cfg.Set("NumParticles", 1)
	Cfg.Set("SimulationTime", 1.0)
	defer func() {
		Cfg.Set("Seed", 0)
		Cfg.Set("NumParticles", 10)
		Cfg.Set("SimulationTime", 15.0)
	}()

	var buf bytes.Buffer
	if err := CompareMedia(Cfg, &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// One header line plus one line per built-in media.
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	for _, name := range []string{"ceramic_ball", "steel_shot", "walnut_shell"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("output is missing media %s", name)
		}
	}
}

func TestPressureReport(t *testing.T) {
	var buf bytes.Buffer
	if err := PressureReport(Cfg, &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// One header line plus one line per grid.
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "130/285") {
		t.Errorf("first grid line should report inspected plugging: %q", lines[1])
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(buf.String(), "GridClean v") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}
