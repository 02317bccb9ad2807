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

import "math"

// FluidDensity returns the density [kg/m³] of the chamber gas at the
// given pressure [Pa] and temperature [K] using the ideal gas law.
// Inputs must be positive; the caller is responsible for validation.
func FluidDensity(pressure, temperature float64) float64 {
	return pressure / (GasConstant * temperature)
}

// FluidViscosity returns the dynamic viscosity [Pa·s] of the chamber gas
// at the given temperature [K] using Sutherland's law.
func FluidViscosity(temperature float64) float64 {
	return RefViscosity * math.Pow(temperature, 1.5) / (temperature + SutherlandTemp)
}

// ReynoldsNumber returns the Reynolds number for flow at the given
// velocity [m/s] past the given characteristic diameter [m].
func ReynoldsNumber(velocity, diameter, density, viscosity float64) float64 {
	return density * velocity * diameter / viscosity
}
