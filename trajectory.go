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

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

const (
	// trajectorySamples is the number of evenly spaced samples recorded
	// over a trajectory.
	trajectorySamples = 1000
	// solverTolerance is the absolute and relative ODE tolerance.
	solverTolerance = 1e-8
	// horizontalLoss scales horizontal velocity at a bounce.
	horizontalLoss = 0.8
	// crossingTimeTol is the bisection resolution for locating a grid
	// crossing [s].
	crossingTimeTol = 1e-12
)

// contactPhase is the particle's state with respect to the first grid.
type contactPhase int

const (
	phaseFalling contactPhase = iota
	phaseContact
	phaseRebounding
	phaseSettled
)

func (p contactPhase) String() string {
	switch p {
	case phaseFalling:
		return "falling"
	case phaseContact:
		return "contact"
	case phaseRebounding:
		return "rebounding"
	case phaseSettled:
		return "settled"
	}
	return "unknown"
}

// Tracker integrates particle trajectories through a chamber and applies
// their grid contacts to a deposit field. One Tracker owns one
// DepositField exclusively; particles in a batch are simulated in
// sequence so that later particles see deposits removed by earlier
// ones.
type Tracker struct {
	Chamber  *Chamber
	Deposits *DepositField
	Media    Media

	Log logrus.FieldLogger

	// Impacts logs deposit-removing grid contacts in time order across
	// all particles simulated so far.
	Impacts []ImpactRecord

	// contacts counts every evaluated grid contact, removing or not.
	contacts int

	mass       float64
	solver     *odeSolver
	trajectory *Trajectory // most recently simulated
}

// NewTracker returns a Tracker simulating particles of the given media
// through the chamber against the deposit field.
func NewTracker(c *Chamber, f *DepositField, media Media) *Tracker {
	return &Tracker{
		Chamber:  c,
		Deposits: f,
		Media:    media,
		Log:      logrus.StandardLogger(),
		mass:     media.Mass(),
		solver:   newODESolver(solverTolerance, solverTolerance),
	}
}

// SetMedia switches the tracker to a different cleaning media, keeping
// the deposit field and impact log.
func (tr *Tracker) SetMedia(media Media) {
	tr.Media = media
	tr.mass = media.Mass()
}

// dragCoefficient returns the sphere drag coefficient for the given
// particle Reynolds number using the Schiller-Naumann correlation.
// re must be positive.
func dragCoefficient(re float64) float64 {
	switch {
	case re < 0.1:
		return 24 / re
	case re < 1000:
		return 24 / re * (1 + 0.15*math.Pow(re, 0.687))
	default:
		return 0.44
	}
}

// freeFlight is the derivative for a particle in flight: gravity plus
// Schiller-Naumann drag against the inlet flow. The inlet flow moves
// upward along the chamber axis; horizontal ambient flow is zero.
func (tr *Tracker) freeFlight(t float64, y, dydt []float64) {
	c := tr.Chamber
	vx, vy, vz := y[3], y[4], y[5]
	dydt[0], dydt[1], dydt[2] = vx, vy, vz

	relVz := vz - c.InletVelocity
	relSpeed := math.Sqrt(vx*vx + vy*vy + relVz*relVz)

	var fd float64
	if relSpeed > 0 { // zero relative velocity means zero drag
		re := ReynoldsNumber(relSpeed, tr.Media.Diameter, c.FluidDensity, c.FluidViscosity)
		fd = 3 * c.FluidDensity * dragCoefficient(re) * relSpeed /
			(4 * tr.Media.Density * tr.Media.Diameter)
	}
	dydt[3] = -fd * vx
	dydt[4] = -fd * vy
	dydt[5] = Gravity - fd*relVz
}

// settledFlight is the derivative for a particle pinned at the first
// grid: vertical motion is zeroed while horizontal motion continues
// under drag.
func (tr *Tracker) settledFlight(t float64, y, dydt []float64) {
	c := tr.Chamber
	vx, vy := y[3], y[4]
	dydt[0], dydt[1], dydt[2] = vx, vy, 0

	relVz := -c.InletVelocity
	relSpeed := math.Sqrt(vx*vx + vy*vy + relVz*relVz)

	var fd float64
	if relSpeed > 0 {
		re := ReynoldsNumber(relSpeed, tr.Media.Diameter, c.FluidDensity, c.FluidViscosity)
		fd = 3 * c.FluidDensity * dragCoefficient(re) * relSpeed /
			(4 * tr.Media.Density * tr.Media.Diameter)
	}
	dydt[3] = -fd * vx
	dydt[4] = -fd * vy
	dydt[5] = 0
}

// SimulateTrajectory integrates one particle from the given initial
// state over [0, duration], recording trajectorySamples evenly spaced
// samples. Grid contacts are detected as discrete events: a sign change
// of (z - gridHeight) while descending is localized by bisection, the
// deposit field is evaluated once at the crossing, and on removal the
// bounce is applied exactly once. Solver failures are fatal and
// propagate to the caller.
func (tr *Tracker) SimulateTrajectory(position Point3, velocity Vec3, duration float64) (*Trajectory, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("gridclean: trajectory duration must be positive; got %g", duration)
	}
	times := make([]float64, trajectorySamples)
	floats.Span(times, 0, duration)

	y := []float64{position.X, position.Y, position.Z,
		velocity.X, velocity.Y, velocity.Z}
	states := make([][]float64, trajectorySamples)
	states[0] = append([]float64(nil), y...)

	phase := phaseFalling
	for i := 1; i < trajectorySamples; i++ {
		if err := tr.advanceInterval(times[i-1], times[i], y, &phase); err != nil {
			return nil, err
		}
		states[i] = append([]float64(nil), y...)
	}

	tr.trajectory = &Trajectory{Times: times, States: states}
	return tr.trajectory, nil
}

// LastTrajectory returns the most recently simulated trajectory, or nil
// if none has been simulated.
func (tr *Tracker) LastTrajectory() *Trajectory {
	return tr.trajectory
}

// advanceInterval integrates y in place across [ta, tb], resolving any
// grid-contact events that occur inside the interval.
func (tr *Tracker) advanceInterval(ta, tb float64, y []float64, phase *contactPhase) error {
	gridHeight := tr.Chamber.Grids[0].Height

	for {
		if *phase == phaseSettled {
			return tr.solver.advance(tr.settledFlight, y, ta, tb)
		}

		trial := append([]float64(nil), y...)
		if err := tr.solver.advance(tr.freeFlight, trial, ta, tb); err != nil {
			return err
		}

		if !(y[2] > gridHeight && trial[2] <= gridHeight) {
			// No crossing in this interval.
			copy(y, trial)
			if *phase == phaseRebounding && y[5] < 0 {
				*phase = phaseFalling
			}
			return nil
		}

		tc, err := tr.locateCrossing(ta, tb, y, gridHeight)
		if err != nil {
			return err
		}
		*phase = phaseContact

		if err := tr.resolveContact(tc, y, phase); err != nil {
			return err
		}
		ta = tc
	}
}

// locateCrossing bisects [ta, tb] for the time at which the particle
// crosses the grid plane, advancing y in place to the crossing state
// (the last state at or above the plane) and returning the crossing
// time.
func (tr *Tracker) locateCrossing(ta, tb float64, y []float64, gridHeight float64) (float64, error) {
	lo, hi := ta, tb
	for hi-lo > crossingTimeTol {
		mid := lo + (hi-lo)/2
		trial := append([]float64(nil), y...)
		if err := tr.solver.advance(tr.freeFlight, trial, lo, mid); err != nil {
			return 0, err
		}
		if trial[2] > gridHeight {
			copy(y, trial)
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// resolveContact evaluates the deposit field at a grid contact and
// either applies a bounce (deposit removed) or settles the particle at
// the grid (nothing removed).
func (tr *Tracker) resolveContact(t float64, y []float64, phase *contactPhase) error {
	pos := Point3{Point: geom.Point{X: y[0], Y: y[1]}, Z: y[2]}
	vel := Vec3{X: y[3], Y: y[4], Z: y[5]}
	speed := vel.Mag()
	energy := 0.5 * tr.mass * speed * speed

	tr.contacts++
	removed := tr.Deposits.EvaluateImpact(pos, vel, tr.mass)

	if removed {
		tr.Impacts = append(tr.Impacts, ImpactRecord{
			Position: pos,
			Time:     t,
			Energy:   energy,
			Removed:  true,
		})
		// Inelastic bounce: restitution vertically, dissipation
		// horizontally.
		y[5] = -y[5] * tr.Media.Restitution
		y[3] *= horizontalLoss
		y[4] *= horizontalLoss
		*phase = phaseRebounding
		tr.Log.WithFields(logrus.Fields{
			"t":      t,
			"energy": energy,
		}).Debug("deposit removed at grid contact")
		return nil
	}

	// Nothing to remove here; the particle lands on the grid.
	gridHeight := tr.Chamber.Grids[0].Height
	y[2] = gridHeight
	y[5] = 0
	*phase = phaseSettled
	return nil
}

// SimulateBatch simulates n particles in sequence using the named
// targeting strategy, sharing this tracker's deposit field so that
// cumulative cleaning accrues across the batch.
func (tr *Tracker) SimulateBatch(n int, strategy string, duration float64, rng *rand.Rand) ([]*Trajectory, error) {
	trajectories := make([]*Trajectory, 0, n)
	for i := 0; i < n; i++ {
		pos, vel := tr.InitialConditions(strategy, rng)
		traj, err := tr.SimulateTrajectory(pos, vel, duration)
		if err != nil {
			return nil, fmt.Errorf("gridclean: particle %d: %w", i+1, err)
		}
		trajectories = append(trajectories, traj)
		tr.Log.WithFields(logrus.Fields{
			"particle": i + 1,
			"impacts":  len(tr.Impacts),
		}).Debug("particle simulation complete")
	}
	return trajectories, nil
}
