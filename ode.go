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
)

// Derivative evaluates the time derivative of state y at time t,
// writing the result into dydt. Implementations must be free of side
// effects: the solver evaluates them at trial points that may be
// rejected.
type Derivative func(t float64, y, dydt []float64)

// odeSolver integrates a system of ordinary differential equations
// with the embedded Cash-Karp Runge-Kutta 4(5) pair and adaptive step
// size control.
type odeSolver struct {
	atol, rtol float64
	maxSteps   int
}

func newODESolver(atol, rtol float64) *odeSolver {
	return &odeSolver{atol: atol, rtol: rtol, maxSteps: 1_000_000}
}

// Cash-Karp tableau.
var (
	ckB = [6][5]float64{
		{},
		{1. / 5},
		{3. / 40, 9. / 40},
		{3. / 10, -9. / 10, 6. / 5},
		{-11. / 54, 5. / 2, -70. / 27, 35. / 27},
		{1631. / 55296, 175. / 512, 575. / 13824, 44275. / 110592, 253. / 4096},
	}
	ckA = [6]float64{0, 1. / 5, 3. / 10, 3. / 5, 1, 7. / 8}
	// 5th order solution weights.
	ckC = [6]float64{37. / 378, 0, 250. / 621, 125. / 594, 0, 512. / 1771}
	// Difference between the 5th and embedded 4th order weights.
	ckE = [6]float64{
		37./378 - 2825./27648,
		0,
		250./621 - 18575./48384,
		125./594 - 13525./55296,
		-277. / 14336,
		512./1771 - 1./4,
	}
)

// advance integrates y in place from t0 to t1. It returns an error if
// the step size collapses or the step budget is exhausted before
// reaching t1.
func (s *odeSolver) advance(f Derivative, y []float64, t0, t1 float64) error {
	if t1 <= t0 {
		return nil
	}
	n := len(y)
	var k [6][]float64
	for i := range k {
		k[i] = make([]float64, n)
	}
	ytmp := make([]float64, n)
	yerr := make([]float64, n)

	t := t0
	h := (t1 - t0) / 10
	hmin := (t1 - t0) * 1e-14

	for step := 0; step < s.maxSteps; step++ {
		if t >= t1 {
			return nil
		}
		if t+h > t1 {
			h = t1 - t
		}

		f(t, y, k[0])
		for stage := 1; stage < 6; stage++ {
			for i := 0; i < n; i++ {
				acc := 0.0
				for j := 0; j < stage; j++ {
					acc += ckB[stage][j] * k[j][i]
				}
				ytmp[i] = y[i] + h*acc
			}
			f(t+ckA[stage]*h, ytmp, k[stage])
		}

		// 5th order solution and embedded error estimate.
		errMax := 0.0
		for i := 0; i < n; i++ {
			dy := 0.0
			e := 0.0
			for stage := 0; stage < 6; stage++ {
				dy += ckC[stage] * k[stage][i]
				e += ckE[stage] * k[stage][i]
			}
			ytmp[i] = y[i] + h*dy
			yerr[i] = h * e
			scale := s.atol + s.rtol*math.Max(math.Abs(y[i]), math.Abs(ytmp[i]))
			// A NaN ratio compares false against everything; it must
			// still be treated as divergence, not an accepted step.
			if r := math.Abs(yerr[i]) / scale; math.IsNaN(r) || r > errMax {
				errMax = r
			}
		}

		if math.IsNaN(errMax) || math.IsInf(errMax, 0) {
			return fmt.Errorf("gridclean: ODE solution diverged at t=%g", t)
		}

		if errMax <= 1 {
			t += h
			copy(y, ytmp)
			grow := 5.0
			if errMax > 0 {
				grow = math.Min(5, 0.9*math.Pow(errMax, -0.2))
			}
			h *= grow
		} else {
			h *= math.Max(0.1, 0.9*math.Pow(errMax, -0.25))
			if h < hmin {
				return fmt.Errorf("gridclean: ODE step size underflow at t=%g", t)
			}
		}
	}
	return fmt.Errorf("gridclean: ODE solver exceeded %d steps integrating [%g, %g]",
		s.maxSteps, t0, t1)
}
