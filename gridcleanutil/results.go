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
	"encoding/json"
	"fmt"
	"os"

	"github.com/chambersim/gridclean"
)

// Results holds the output of one simulation run.
type Results struct {
	Media     string
	Particles int
	Strategy  string

	Stats gridclean.CleaningStats

	// PressureDrops is the pressure drop across each grid [Pa],
	// top grid first.
	PressureDrops []float64

	Plugging []gridclean.GridPluggingStats

	// Impacts lists every deposit-removing impact, in simulation order.
	Impacts []gridclean.ImpactRecord

	// Remaining lists the positions of deposits that survived the run.
	Remaining []gridclean.Point3

	// Trajectory is the sampled trajectory of the last particle.
	Trajectory *gridclean.Trajectory
}

// writeResults writes r to path as indented JSON.
func writeResults(path string, r *Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridclean: creating results file: %v", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("gridclean: writing results file: %v", err)
	}
	return f.Close()
}
