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
	"github.com/GaryBoone/GoStats/stats"
)

// CleaningStats aggregates the effectiveness of the cleaning run so
// far.
type CleaningStats struct {
	// TotalContacts counts every evaluated grid contact, including
	// those that removed nothing.
	TotalContacts int
	// TotalImpacts counts contacts that removed deposit material.
	TotalImpacts int
	// MeanImpactEnergy is the mean kinetic energy [J] of the removing
	// contacts; zero when there were none.
	MeanImpactEnergy float64
	// StdImpactEnergy is the sample standard deviation of the removing
	// contact energies; zero for fewer than two.
	StdImpactEnergy float64
	// RemovalEfficiency is TotalImpacts / TotalContacts; zero when
	// there were no contacts.
	RemovalEfficiency float64
	// Deposits summarizes the deposit field removal state.
	Deposits DepositStats
}

// Effectiveness returns cleaning-effectiveness statistics for all
// particles simulated by the tracker so far. All ratios are zero-safe:
// an empty impact log or deposit field yields zeros, never a division
// fault.
func (tr *Tracker) Effectiveness() CleaningStats {
	s := CleaningStats{
		TotalContacts: tr.contacts,
		TotalImpacts:  len(tr.Impacts),
		Deposits:      tr.Deposits.Stats(),
	}

	var energy stats.Stats
	for _, rec := range tr.Impacts {
		energy.Update(rec.Energy)
	}
	if energy.Count() > 0 {
		s.MeanImpactEnergy = energy.Mean()
	}
	if energy.Count() > 1 {
		s.StdImpactEnergy = energy.SampleStandardDeviation()
	}
	if tr.contacts > 0 {
		s.RemovalEfficiency = float64(len(tr.Impacts)) / float64(tr.contacts)
	}
	return s
}
