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
	"math/rand"

	"github.com/ctessum/geom"
)

// Targeting strategy names.
const (
	StrategySpiral = "spiral"
	StrategyRandom = "random"
)

// InitialConditions generates a starting position and velocity for one
// particle using the named targeting strategy. An unrecognized name
// falls back to the random strategy.
func (tr *Tracker) InitialConditions(strategy string, rng *rand.Rand) (Point3, Vec3) {
	if strategy == StrategySpiral {
		return tr.spiralConditions(rng)
	}
	return tr.randomConditions(rng)
}

// spiralConditions starts the particle on a small ring near the chamber
// axis at the top, aimed to arrive at the first grid on a ballistic
// drop.
func (tr *Tracker) spiralConditions(rng *rand.Rand) (Point3, Vec3) {
	c := tr.Chamber
	radius := c.GridDiameter / 16
	angle := rng.Float64() * 2 * math.Pi

	pos := Point3{
		Point: geom.Point{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		},
		Z: c.ChamberHeight,
	}

	// Vertical speed to reach the first grid under gravity alone.
	dropHeight := c.ChamberHeight - c.Grids[0].Height
	vz := -math.Sqrt(2 * math.Abs(Gravity) * dropHeight)

	vel := Vec3{
		X: c.InletVelocity * 0.2 * math.Cos(angle),
		Y: c.InletVelocity * 0.2 * math.Sin(angle),
		Z: vz,
	}
	return pos, vel
}

// randomConditions starts the particle uniformly jittered near the axis
// at the top with Gaussian horizontal spread and a strong downward
// bias.
func (tr *Tracker) randomConditions(rng *rand.Rand) (Point3, Vec3) {
	c := tr.Chamber
	spread := c.GridDiameter / 8

	pos := Point3{
		Point: geom.Point{
			X: (rng.Float64()*2 - 1) * spread,
			Y: (rng.Float64()*2 - 1) * spread,
		},
		Z: c.ChamberHeight,
	}
	vel := Vec3{
		X: rng.NormFloat64() * c.InletVelocity * 0.3,
		Y: rng.NormFloat64() * c.InletVelocity * 0.3,
		Z: -c.InletVelocity * 3,
	}
	return pos, vel
}
