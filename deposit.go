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
	"math/rand"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

const (
	// clusterRadius is the spatial extent [m] of one deposit cluster.
	clusterRadius = 0.025
	// impactRadius is the radius [m] within which a particle contact
	// affects deposit points.
	impactRadius = 0.015
)

// DepositProperties holds the deposit composition measured by fouling
// analysis.
type DepositProperties struct {
	Moisture         float64 // weight fraction
	AshContent       float64 // weight fraction
	SilicaContent    float64 // weight fraction
	AdhesionStrength float64 // Pa
	ThicknessMin     float64 // m
	ThicknessMax     float64 // m
}

// DepositPoint is one discrete element of deposit buildup. Removed is
// monotonic: once a point is removed it stays removed for the lifetime
// of the field.
type DepositPoint struct {
	Position  Point3
	Thickness float64 // m
	Strength  float64 // Pa, adhesion threshold
	Removed   bool
}

// DepositField holds the spatial distribution of deposit points on the
// first grid and mutates their removal state in response to particle
// impacts. It owns its points exclusively and keeps no reference to the
// chamber it was seeded from.
type DepositField struct {
	Props    DepositProperties
	Deposits []*DepositPoint

	Log logrus.FieldLogger
}

// NewDepositField seeds deposit clusters around randomly chosen plugged
// holes of the chamber's first grid. Grids below the first are not
// seeded: the first grid shields them and carries nearly all of the
// inspected deposit plugging.
func NewDepositField(c *Chamber, props DepositProperties, rng *rand.Rand) (*DepositField, error) {
	f := &DepositField{Props: props, Log: logrus.StandardLogger()}
	g := c.Grids[0]
	if g.PluggedDeposit < 0 {
		return nil, fmt.Errorf("gridclean: grid 1 reports a negative deposit-plugged hole count (%d)",
			g.PluggedDeposit)
	}
	if g.PluggedDeposit > len(g.HolePositions) {
		return nil, fmt.Errorf("gridclean: grid 1 reports %d deposit-plugged holes but only %d hole positions were placed",
			g.PluggedDeposit, len(g.HolePositions))
	}
	for _, i := range rng.Perm(len(g.HolePositions))[:g.PluggedDeposit] {
		f.addCluster(g.HolePositions[i], rng)
	}
	f.Log.WithFields(logrus.Fields{
		"clusters": g.PluggedDeposit,
		"deposits": len(f.Deposits),
	}).Debug("seeded deposit field")
	return f, nil
}

// addCluster spawns a cluster of deposit points jittered around center.
func (f *DepositField) addCluster(center Point3, rng *rand.Rand) {
	numPoints := 5 + rng.Intn(10)
	for i := 0; i < numPoints; i++ {
		p := center
		p.X += rng.NormFloat64() * clusterRadius / 3
		p.Y += rng.NormFloat64() * clusterRadius / 3
		p.Z += rng.NormFloat64() * clusterRadius / 3

		thickness := f.Props.ThicknessMin +
			rng.Float64()*(f.Props.ThicknessMax-f.Props.ThicknessMin)

		// Silica binds the deposit more strongly.
		meanStrength := f.Props.AdhesionStrength * (1 + f.Props.SilicaContent)
		strength := meanStrength + rng.NormFloat64()*f.Props.AdhesionStrength*0.1

		f.Deposits = append(f.Deposits, &DepositPoint{
			Position:  p,
			Thickness: thickness,
			Strength:  strength,
		})
	}
}

// EvaluateImpact applies a particle contact at the given position and
// velocity to the field, removing every deposit point within
// impactRadius whose adhesion threshold is exceeded by the locally
// delivered energy. It reports whether any point was removed.
func (f *DepositField) EvaluateImpact(position Point3, velocity Vec3, mass float64) bool {
	speed := velocity.Mag()
	impactEnergy := 0.5 * mass * speed * speed

	removed := false
	for _, d := range f.Deposits {
		if d.Removed {
			continue
		}
		dist := position.Distance(d.Position)
		if dist >= impactRadius {
			continue
		}
		// Delivered energy falls off linearly with distance.
		localEnergy := impactEnergy * (1 - dist/impactRadius)

		// Thicker deposits resist removal; moisture weakens adhesion.
		thicknessFactor := d.Thickness / f.Props.ThicknessMin
		threshold := d.Strength * thicknessFactor / (1 + f.Props.Moisture)

		if localEnergy > threshold {
			d.Removed = true
			removed = true
		}
	}
	return removed
}

// DepositStats summarizes the removal state of a field.
type DepositStats struct {
	Total       int
	Removed     int
	RemovalRate float64 // removed fraction, 0 for an empty field
}

// Stats returns removal statistics for the field.
func (f *DepositField) Stats() DepositStats {
	s := DepositStats{Total: len(f.Deposits)}
	for _, d := range f.Deposits {
		if d.Removed {
			s.Removed++
		}
	}
	if s.Total > 0 {
		s.RemovalRate = float64(s.Removed) / float64(s.Total)
	}
	return s
}

// Remaining returns the positions of deposit points that have not been
// removed, the problem areas a cleaning run failed to reach.
func (f *DepositField) Remaining() []Point3 {
	var out []Point3
	for _, d := range f.Deposits {
		if !d.Removed {
			out = append(out, d.Position)
		}
	}
	return out
}

// RemovalMap bins removed deposit points over the grid plane into a
// resolution×resolution array spanning [-extent, extent] on both axes.
// Points outside the extent are dropped.
func (f *DepositField) RemovalMap(resolution int, extent float64) *sparse.DenseArray {
	m := sparse.ZerosDense(resolution, resolution)
	cell := 2 * extent / float64(resolution)
	for _, d := range f.Deposits {
		if !d.Removed {
			continue
		}
		// int() truncates toward zero, which would fold points just
		// outside the negative extent into the first cell.
		ix := int(math.Floor((d.Position.X + extent) / cell))
		iy := int(math.Floor((d.Position.Y + extent) / cell))
		if ix < 0 || ix >= resolution || iy < 0 || iy >= resolution {
			continue
		}
		m.AddVal(1, ix, iy)
	}
	return m
}
