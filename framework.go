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

// Package gridclean simulates abrasive-media particles cleaning
// deposit-plugged perforated grids inside an industrial flow chamber.
// The model couples a particle-trajectory integrator (drag, gravity,
// grid contact) with a stochastic deposit field whose points are
// removed when an impact supplies enough energy to break adhesion.
package gridclean

import (
	"math"

	"github.com/ctessum/geom"
)

// Version gives the version number.
const Version = "0.1.0"

// Physical constants.
const (
	GasConstant    = 287.05   // J/(kg·K), specific gas constant for air
	Gravity        = -9.81    // m/s², z points up
	RefViscosity   = 1.458e-6 // Pa·s·K^-0.5, Sutherland reference viscosity
	SutherlandTemp = 110.4    // K, Sutherland constant
)

// Point3 is a location in chamber coordinates [m]. The chamber axis is
// vertical; z is elevation above the chamber bottom.
type Point3 struct {
	geom.Point
	Z float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point3) Distance(q Point3) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Vec3 is a velocity or acceleration vector [m/s or m/s²].
type Vec3 struct {
	X, Y, Z float64
}

// Mag returns the magnitude of v.
func (v Vec3) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Media holds the physical properties of a cleaning-media particle type.
type Media struct {
	Name        string
	Density     float64 // kg/m³
	Diameter    float64 // m
	Restitution float64 // fraction of vertical speed retained after a bounce
	Hardness    float64 // Mohs scale
	CostPerKg   float64 // USD/kg
}

// Mass returns the mass [kg] of a single spherical media particle.
func (m Media) Mass() float64 {
	return math.Pi * m.Diameter * m.Diameter * m.Diameter * m.Density / 6
}

// CleaningMedia lists the built-in cleaning media types.
var CleaningMedia = map[string]Media{
	"walnut_shell": {
		Name:        "Walnut Shell",
		Density:     640.7,
		Diameter:    0.005,
		Restitution: 0.5,
		Hardness:    4.75,
		CostPerKg:   2.5,
	},
	"ceramic_ball": {
		Name:        "Ceramic Ball",
		Density:     2500,
		Diameter:    0.01,
		Restitution: 0.7,
		Hardness:    9.0,
		CostPerKg:   5.0,
	},
	"steel_shot": {
		Name:        "Steel Shot",
		Density:     7800,
		Diameter:    0.008,
		Restitution: 0.8,
		Hardness:    7.5,
		CostPerKg:   3.5,
	},
}

// ImpactRecord describes one particle-grid contact that removed deposit
// material. Records are appended in time order and never mutated.
type ImpactRecord struct {
	Position Point3
	Time     float64 // s since the start of the trajectory
	Energy   float64 // J, kinetic energy at contact
	Removed  bool    // whether any deposit point was removed
}

// Trajectory holds one particle's sampled kinematic history.
type Trajectory struct {
	Times  []float64   // s
	States [][]float64 // [x, y, z, vx, vy, vz] per sample
}

// Position returns the sampled position at index i.
func (tr *Trajectory) Position(i int) Point3 {
	s := tr.States[i]
	return Point3{Point: geom.Point{X: s[0], Y: s[1]}, Z: s[2]}
}

// Velocity returns the sampled velocity at index i.
func (tr *Trajectory) Velocity(i int) Vec3 {
	s := tr.States[i]
	return Vec3{X: s[3], Y: s[4], Z: s[5]}
}
