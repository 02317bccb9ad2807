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

package gridclean

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func TestHolePatternEmpty(t *testing.T) {
	if got := HolePattern(0, 1.9); len(got) != 0 {
		t.Errorf("pattern for 0 holes placed %d coordinates", len(got))
	}
}

func TestHolePatternCount(t *testing.T) {
	// The greedy packing may under-place; it must never over-place.
	for _, n := range []int{1, 8, 100, 285, 330, 1000} {
		got := HolePattern(n, 1.9)
		if len(got) > n {
			t.Errorf("pattern for %d holes placed %d", n, len(got))
		}
	}
}

func TestHolePatternWithinRadius(t *testing.T) {
	const maxRadius = 1.9
	for _, p := range HolePattern(285, maxRadius) {
		r := math.Sqrt(p.X*p.X + p.Y*p.Y)
		if r > maxRadius*(1+1e-12) {
			t.Errorf("hole at radius %g outside pattern radius %g", r, maxRadius)
		}
	}
}

func TestDischargeCoefficient(t *testing.T) {
	const tol = 1e-12
	cases := []struct{ re, want float64 }{
		{0, 0.5},
		{1999, 0.5},
		{2000, 0.5},
		{11000, 0.5 + 9000*(0.11/18000)},
		{20000, 0.5 + 18000*(0.11/18000)},
		{20001, 0.61},
		{1e7, 0.61},
	}
	for _, c := range cases {
		if got := DischargeCoefficient(c.re); math.Abs(got-c.want) > tol {
			t.Errorf("Cd(%g) = %g, want %g", c.re, got, c.want)
		}
	}

	// Non-decreasing and bounded over a sweep.
	prev := 0.0
	for re := 0.0; re <= 50000; re += 10 {
		cd := DischargeCoefficient(re)
		if cd < 0.5 || cd > 0.61 {
			t.Fatalf("Cd(%g) = %g outside [0.5, 0.61]", re, cd)
		}
		if cd < prev {
			t.Fatalf("Cd decreased at Re=%g", re)
		}
		prev = cd
	}
}

func TestNewChamberRejectsBadInputs(t *testing.T) {
	cases := []func(*ChamberConfig){
		func(c *ChamberConfig) { c.InletTemp = 0 },
		func(c *ChamberConfig) { c.InletTemp = -5 },
		func(c *ChamberConfig) { c.Pressure = 0 },
		func(c *ChamberConfig) { c.HoleDiameter = -50 },
		func(c *ChamberConfig) { c.GridPositions = c.GridPositions[:2] },
		func(c *ChamberConfig) { c.GridPositions = nil; c.GridHoles = nil },
	}
	for i, mutate := range cases {
		cfg := testChamberConfig()
		mutate(&cfg)
		if _, err := NewChamber(cfg); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}

func TestChamberGrids(t *testing.T) {
	const tol = 1e-12
	c := testChamber(t, testChamberConfig())
	if len(c.Grids) != 4 {
		t.Fatalf("got %d grids, want 4", len(c.Grids))
	}
	// First grid carries the inspection data.
	g := c.Grids[0]
	if g.TotalHoles != 285 || g.OpenHoles != 130 || g.PluggedDeposit != 133 {
		t.Errorf("grid 1 plugging = %+v", g)
	}
	if math.Abs(g.Height-0.8*12.0) > tol {
		t.Errorf("grid 1 height = %g, want 9.6", g.Height)
	}
	// Remaining grids use the assumed split.
	for _, g := range c.Grids[1:] {
		if g.OpenHoles != int(float64(g.TotalHoles)*0.8) {
			t.Errorf("grid %d open holes = %d of %d", g.Index+1, g.OpenHoles, g.TotalHoles)
		}
	}
	// Every grid's hole positions sit at its elevation.
	for _, g := range c.Grids {
		if len(g.HolePositions) > g.TotalHoles {
			t.Errorf("grid %d placed %d holes of %d", g.Index+1, len(g.HolePositions), g.TotalHoles)
		}
		for _, p := range g.HolePositions {
			if p.Z != g.Height {
				t.Fatalf("grid %d hole at z=%g, want %g", g.Index+1, p.Z, g.Height)
			}
		}
	}
}

func TestFlowArea(t *testing.T) {
	const tol = 1e-12
	c := testChamber(t, testChamberConfig())
	for _, g := range c.Grids {
		area := g.FlowArea(c.HoleDiameter)
		if area < 0 {
			t.Errorf("grid %d flow area %g is negative", g.Index+1, area)
		}
		want := float64(g.OpenHoles) * math.Pi * 0.025 * 0.025
		if math.Abs(area-want) > tol {
			t.Errorf("grid %d flow area = %g, want %g", g.Index+1, area, want)
		}
		if g.OpenHoles > g.TotalHoles {
			t.Errorf("grid %d has more open holes than total", g.Index+1)
		}
	}
}

func TestPressureProfile(t *testing.T) {
	c := testChamber(t, testChamberConfig())
	drops, err := c.PressureProfile()
	if err != nil {
		t.Fatal(err)
	}
	if len(drops) != len(c.Grids) {
		t.Fatalf("got %d pressure drops for %d grids", len(drops), len(c.Grids))
	}
	for i, dp := range drops {
		if dp <= 0 || math.IsNaN(dp) {
			t.Errorf("grid %d pressure drop = %g", i+1, dp)
		}
	}
	// The first grid is the most plugged, so its open-hole velocity and
	// pressure drop are the largest.
	for _, dp := range drops[1:] {
		if dp >= drops[0] {
			t.Errorf("grid 1 drop %g not the largest (found %g)", drops[0], dp)
		}
	}
}

func TestGridPressureDropNoOpenHoles(t *testing.T) {
	c := testChamber(t, testChamberConfig())
	g := &GridState{Index: 0, TotalHoles: 10}
	if _, err := c.GridPressureDrop(g); err == nil {
		t.Error("expected an error for a fully plugged grid")
	}
}

func TestValidatePlugging(t *testing.T) {
	c := testChamber(t, testChamberConfig())
	if err := c.ValidatePlugging(); err != nil {
		t.Errorf("consistent inspection data failed validation: %v", err)
	}
	c.Grids[0].PluggedDeposit = 300
	if err := c.ValidatePlugging(); err == nil {
		t.Error("expected an error for counts exceeding the hole total")
	}
	c.Grids[0].PluggedDeposit = -1
	if err := c.ValidatePlugging(); err == nil {
		t.Error("expected an error for a negative deposit count")
	}
	c.Grids[0].PluggedDeposit = 133
	c.Grids[0].PluggedRefractory = -5
	if err := c.ValidatePlugging(); err == nil {
		t.Error("expected an error for a negative refractory count")
	}
}

func TestPluggingStats(t *testing.T) {
	const tol = 1e-12
	c := testChamber(t, testChamberConfig())
	stats := c.PluggingStats()
	if len(stats) != len(c.Grids) {
		t.Fatalf("got stats for %d grids, want %d", len(stats), len(c.Grids))
	}
	s := stats[0]
	if math.Abs(s.OpenFraction-130.0/285) > tol {
		t.Errorf("grid 1 open fraction = %g", s.OpenFraction)
	}
	if math.Abs(s.TotalPlugging-(1-130.0/285)) > tol {
		t.Errorf("grid 1 total plugging = %g", s.TotalPlugging)
	}
}

func TestHoleStatus(t *testing.T) {
	c := testChamber(t, testChamberConfig())
	g := c.Grids[0]

	// The first OpenHoles positions are open.
	if plugged, grid := c.HoleStatus(g.HolePositions[0]); plugged || grid != 0 {
		t.Errorf("open hole reported plugged=%v grid=%d", plugged, grid)
	}
	// Positions past the open count are plugged.
	if plugged, grid := c.HoleStatus(g.HolePositions[g.OpenHoles]); !plugged || grid != 0 {
		t.Errorf("plugged hole reported plugged=%v grid=%d", plugged, grid)
	}
	// A position far from any hole matches nothing.
	far := Point3{Point: geom.Point{X: 100, Y: 100}, Z: 0}
	if plugged, grid := c.HoleStatus(far); plugged || grid != -1 {
		t.Errorf("far position reported plugged=%v grid=%d", plugged, grid)
	}
}
