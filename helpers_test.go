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

import "testing"

// testChamberConfig returns the chamber configuration from the design
// drawings and the last inspection report.
func testChamberConfig() ChamberConfig {
	return ChamberConfig{
		InletDiameter: 2558,
		GridDiameter:  3800,
		ChamberHeight: 12000,
		HoleDiameter:  50,
		PatternRadius: 1900,
		GridPositions: []float64{0.8, 0.6, 0.4, 0.2},
		GridHoles:     []int{285, 300, 315, 330},
		InletTemp:     715 + 273.15,
		Pressure:      1.52 * 98066.5,
		InletVelocity: 17.45,
		Grid1: PluggingData{
			TotalHoles:        285,
			PluggedRefractory: 22,
			PluggedDeposit:    133,
			OpenHoles:         130,
		},
	}
}

// rarefiedChamberConfig returns a chamber with the gas pumped down to
// near vacuum and no inlet flow, so that drag is negligible and
// trajectories follow ballistics closely. The first grid has no deposit
// plugging.
func rarefiedChamberConfig() ChamberConfig {
	cfg := testChamberConfig()
	cfg.Pressure = 1
	cfg.InletTemp = 300
	cfg.InletVelocity = 0
	cfg.Grid1 = PluggingData{TotalHoles: 285, OpenHoles: 285}
	return cfg
}

// testDepositProperties returns the deposit composition from the
// fouling analysis.
func testDepositProperties() DepositProperties {
	return DepositProperties{
		Moisture:         0.0085,
		AshContent:       0.9826,
		SilicaContent:    0.7591,
		AdhesionStrength: 150000,
		ThicknessMin:     0.001,
		ThicknessMax:     0.005,
	}
}

func testChamber(t *testing.T, cfg ChamberConfig) *Chamber {
	t.Helper()
	c, err := NewChamber(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
