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
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Hole pattern parameters.
const (
	minHolesPerRing = 8
	patternSpacing  = 1.5 // relative spacing between holes in a ring
)

// Plugging fractions assumed for grids without inspection data.
const (
	assumedOpenFraction       = 0.8
	assumedRefractoryFraction = 0.05
	assumedDepositFraction    = 0.15
)

// PluggingData holds per-grid hole counts from an inspection report.
type PluggingData struct {
	TotalHoles        int
	PluggedRefractory int
	PluggedDeposit    int
	OpenHoles         int
}

// ChamberConfig holds the chamber geometry and operating conditions used
// to construct a Chamber. Lengths are in millimeters, matching the
// units used in vendor drawings and inspection reports.
type ChamberConfig struct {
	InletDiameter float64 // mm
	GridDiameter  float64 // mm
	ChamberHeight float64 // mm
	HoleDiameter  float64 // mm
	PatternRadius float64 // mm

	GridPositions []float64 // relative elevations, fraction of chamber height
	GridHoles     []int     // number of holes per grid, top to bottom

	InletTemp     float64 // K
	Pressure      float64 // Pa
	InletVelocity float64 // m/s

	// Grid1 is the inspection plugging data for the first (topmost) grid.
	Grid1 PluggingData
}

// GridState holds the hole layout and plugging state of one grid.
// It is created at chamber construction and immutable thereafter;
// deposit removal does not alter the plugging counts, which record the
// original fouling condition.
type GridState struct {
	Index             int
	TotalHoles        int
	OpenHoles         int
	PluggedRefractory int
	PluggedDeposit    int
	Height            float64  // absolute elevation above the chamber bottom [m]
	HolePositions     []Point3 // one per placed hole; may be fewer than TotalHoles
}

// FlowArea returns the open flow area [m²] through the grid for the
// given hole diameter [m].
func (g *GridState) FlowArea(holeDiameter float64) float64 {
	return float64(g.OpenHoles) * math.Pi * (holeDiameter / 2) * (holeDiameter / 2)
}

// Chamber holds the flow chamber geometry, operating conditions, and
// derived fluid properties. All lengths are in meters.
type Chamber struct {
	InletDiameter float64
	GridDiameter  float64
	ChamberHeight float64
	HoleDiameter  float64
	PatternRadius float64

	InletTemp     float64 // K
	Pressure      float64 // Pa
	InletVelocity float64 // m/s

	FluidDensity   float64 // kg/m³
	FluidViscosity float64 // Pa·s

	Grids []*GridState
}

// NewChamber constructs a Chamber from cfg, converting lengths to
// meters and laying out the hole pattern for every grid. It rejects
// non-positive physical inputs; plugging-count consistency is checked
// separately by ValidatePlugging.
func NewChamber(cfg ChamberConfig) (*Chamber, error) {
	if cfg.InletTemp <= 0 {
		return nil, fmt.Errorf("gridclean: inlet temperature must be positive; got %g", cfg.InletTemp)
	}
	if cfg.Pressure <= 0 {
		return nil, fmt.Errorf("gridclean: pressure must be positive; got %g", cfg.Pressure)
	}
	for _, d := range []struct {
		name string
		val  float64
	}{
		{"inlet diameter", cfg.InletDiameter},
		{"grid diameter", cfg.GridDiameter},
		{"chamber height", cfg.ChamberHeight},
		{"hole diameter", cfg.HoleDiameter},
		{"pattern radius", cfg.PatternRadius},
	} {
		if d.val <= 0 {
			return nil, fmt.Errorf("gridclean: %s must be positive; got %g", d.name, d.val)
		}
	}
	if len(cfg.GridPositions) != len(cfg.GridHoles) {
		return nil, fmt.Errorf("gridclean: %d grid positions for %d grid hole counts",
			len(cfg.GridPositions), len(cfg.GridHoles))
	}
	if len(cfg.GridPositions) == 0 {
		return nil, fmt.Errorf("gridclean: chamber must have at least one grid")
	}

	c := &Chamber{
		InletDiameter: cfg.InletDiameter / 1000,
		GridDiameter:  cfg.GridDiameter / 1000,
		ChamberHeight: cfg.ChamberHeight / 1000,
		HoleDiameter:  cfg.HoleDiameter / 1000,
		PatternRadius: cfg.PatternRadius / 1000,
		InletTemp:     cfg.InletTemp,
		Pressure:      cfg.Pressure,
		InletVelocity: cfg.InletVelocity,
	}
	c.FluidDensity = FluidDensity(c.Pressure, c.InletTemp)
	c.FluidViscosity = FluidViscosity(c.InletTemp)

	for i, n := range cfg.GridHoles {
		if n <= 0 {
			return nil, fmt.Errorf("gridclean: grid %d must have a positive hole count; got %d", i+1, n)
		}
		g := &GridState{Index: i, Height: cfg.GridPositions[i] * c.ChamberHeight}
		if i == 0 {
			g.TotalHoles = cfg.Grid1.TotalHoles
			g.OpenHoles = cfg.Grid1.OpenHoles
			g.PluggedRefractory = cfg.Grid1.PluggedRefractory
			g.PluggedDeposit = cfg.Grid1.PluggedDeposit
		} else {
			// No inspection data below the first grid; assume a fixed split.
			g.TotalHoles = n
			g.OpenHoles = int(float64(n) * assumedOpenFraction)
			g.PluggedRefractory = int(float64(n) * assumedRefractoryFraction)
			g.PluggedDeposit = int(float64(n) * assumedDepositFraction)
		}
		for _, p := range HolePattern(n, c.PatternRadius) {
			g.HolePositions = append(g.HolePositions, Point3{Point: p, Z: g.Height})
		}
		c.Grids = append(c.Grids, g)
	}
	return c, nil
}

// ValidatePlugging reports grids whose plugging counts are inconsistent
// with their hole totals. The counts are never corrected: they come
// straight from inspection data and the assumed-split derivation, and
// downstream results must stay comparable with that data.
func (c *Chamber) ValidatePlugging() error {
	for _, g := range c.Grids {
		if g.PluggedRefractory < 0 || g.PluggedDeposit < 0 {
			return fmt.Errorf("gridclean: grid %d has negative plugging counts (refractory %d, deposit %d)",
				g.Index+1, g.PluggedRefractory, g.PluggedDeposit)
		}
		sum := g.OpenHoles + g.PluggedRefractory + g.PluggedDeposit
		if sum > g.TotalHoles {
			return fmt.Errorf("gridclean: grid %d plugging counts sum to %d but the grid has %d holes",
				g.Index+1, sum, g.TotalHoles)
		}
		if g.OpenHoles < 0 || g.OpenHoles > g.TotalHoles {
			return fmt.Errorf("gridclean: grid %d has %d open holes of %d total",
				g.Index+1, g.OpenHoles, g.TotalHoles)
		}
	}
	return nil
}

// HolePattern produces hole coordinates by partitioning numHoles into
// concentric rings out to maxRadius [m]. Outer rings hold more holes.
// The greedy packing may place fewer holes than requested when an inner
// ring exhausts the remaining count; the shortfall is deliberate and
// callers must not assume len(result) == numHoles.
func HolePattern(numHoles int, maxRadius float64) []geom.Point {
	var coords []geom.Point
	numRings := int(math.Sqrt(float64(numHoles)))
	remaining := numHoles

	for ring := 0; ring < numRings; ring++ {
		radius := maxRadius * float64(ring+1) / float64(numRings)
		circumference := 2 * math.Pi * radius
		ringWidth := maxRadius / float64(numRings)

		holesInRing := minHolesPerRing * (ring + 1)
		if byLength := int(circumference / ringWidth / patternSpacing); byLength > holesInRing {
			holesInRing = byLength
		}
		if holesInRing > remaining {
			holesInRing = remaining
		}
		if holesInRing <= 0 {
			break
		}

		step := 2 * math.Pi / float64(holesInRing)
		for i := 0; i < holesInRing; i++ {
			angle := float64(i) * step
			coords = append(coords, geom.Point{
				X: radius * math.Cos(angle),
				Y: radius * math.Sin(angle),
			})
			remaining--
		}
	}
	return coords
}

// DischargeCoefficient returns the orifice discharge coefficient for
// the given Reynolds number: 0.5 in the laminar regime, 0.61 in the
// fully turbulent regime, linearly interpolated between.
func DischargeCoefficient(re float64) float64 {
	switch {
	case re < 2000:
		return 0.5
	case re > 20000:
		return 0.61
	default:
		return 0.5 + (re-2000)*(0.11/18000)
	}
}

// InletArea returns the inlet cross-sectional area [m²].
func (c *Chamber) InletArea() float64 {
	return math.Pi * (c.InletDiameter / 2) * (c.InletDiameter / 2)
}

// GridPressureDrop returns the pressure drop [Pa] across grid g at the
// chamber operating conditions.
func (c *Chamber) GridPressureDrop(g *GridState) (float64, error) {
	area := g.FlowArea(c.HoleDiameter)
	if area <= 0 {
		return 0, fmt.Errorf("gridclean: grid %d has no open flow area", g.Index+1)
	}
	velocity := c.InletVelocity * c.InletArea() / area
	re := ReynoldsNumber(velocity, c.HoleDiameter, c.FluidDensity, c.FluidViscosity)
	cd := DischargeCoefficient(re)
	return 0.5 * c.FluidDensity * velocity * velocity * (1 - cd*cd), nil
}

// PressureProfile returns the pressure drop [Pa] across each grid in
// order.
func (c *Chamber) PressureProfile() ([]float64, error) {
	drops := make([]float64, len(c.Grids))
	for i, g := range c.Grids {
		dp, err := c.GridPressureDrop(g)
		if err != nil {
			return nil, err
		}
		drops[i] = dp
	}
	return drops, nil
}

// GridPluggingStats summarizes the plugging condition of one grid.
type GridPluggingStats struct {
	GridNumber         int
	TotalHoles         int
	OpenFraction       float64
	RefractoryPlugging float64
	DepositPlugging    float64
	TotalPlugging      float64
}

// PluggingStats returns per-grid plugging statistics.
func (c *Chamber) PluggingStats() []GridPluggingStats {
	stats := make([]GridPluggingStats, len(c.Grids))
	for i, g := range c.Grids {
		total := float64(g.TotalHoles)
		stats[i] = GridPluggingStats{
			GridNumber:         g.Index + 1,
			TotalHoles:         g.TotalHoles,
			OpenFraction:       float64(g.OpenHoles) / total,
			RefractoryPlugging: float64(g.PluggedRefractory) / total,
			DepositPlugging:    float64(g.PluggedDeposit) / total,
			TotalPlugging:      1 - float64(g.OpenHoles)/total,
		}
	}
	return stats
}

// HoleStatus reports whether the given position lies on a plugged hole,
// and if so on which grid. Holes are ordered so that the first
// OpenHoles positions of each grid are the open ones.
func (c *Chamber) HoleStatus(position Point3) (plugged bool, gridIndex int) {
	for _, g := range c.Grids {
		for i, hole := range g.HolePositions {
			if position.Distance(hole) < c.HoleDiameter {
				return i >= g.OpenHoles, g.Index
			}
		}
	}
	return false, -1
}
