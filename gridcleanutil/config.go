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
	"math/rand"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/chambersim/gridclean"
)

// chamberConfig assembles a chamber configuration from the configuration
// information. Geometric values stay in the millimeter units the
// configuration uses; gridclean.NewChamber converts and validates them.
func chamberConfig(cfg *viper.Viper) (gridclean.ChamberConfig, error) {
	positions, err := float64Slice(cfg.Get("Chamber.GridPositions"))
	if err != nil {
		return gridclean.ChamberConfig{}, fmt.Errorf("gridclean: parsing Chamber.GridPositions: %v", err)
	}
	holes, err := toIntSliceE(cfg.Get("Chamber.GridHoles"))
	if err != nil {
		return gridclean.ChamberConfig{}, fmt.Errorf("gridclean: parsing Chamber.GridHoles: %v", err)
	}
	return gridclean.ChamberConfig{
		InletDiameter: cast.ToFloat64(cfg.Get("Chamber.InletDiameter")),
		GridDiameter:  cast.ToFloat64(cfg.Get("Chamber.GridDiameter")),
		ChamberHeight: cast.ToFloat64(cfg.Get("Chamber.Height")),
		HoleDiameter:  cast.ToFloat64(cfg.Get("Chamber.HoleDiameter")),
		PatternRadius: cast.ToFloat64(cfg.Get("Chamber.PatternRadius")),
		GridPositions: positions,
		GridHoles:     holes,
		InletTemp:     cast.ToFloat64(cfg.Get("Chamber.InletTemp")),
		Pressure:      cast.ToFloat64(cfg.Get("Chamber.Pressure")),
		InletVelocity: cast.ToFloat64(cfg.Get("Chamber.InletVelocity")),
		Grid1: gridclean.PluggingData{
			TotalHoles:        cast.ToInt(cfg.Get("Grid1.TotalHoles")),
			PluggedRefractory: cast.ToInt(cfg.Get("Grid1.PluggedRefractory")),
			PluggedDeposit:    cast.ToInt(cfg.Get("Grid1.PluggedDeposit")),
			OpenHoles:         cast.ToInt(cfg.Get("Grid1.OpenHoles")),
		},
	}, nil
}

// depositProperties assembles the deposit material properties from the
// configuration information.
func depositProperties(cfg *viper.Viper) gridclean.DepositProperties {
	return gridclean.DepositProperties{
		Moisture:         cast.ToFloat64(cfg.Get("Deposit.Moisture")),
		AshContent:       cast.ToFloat64(cfg.Get("Deposit.AshContent")),
		SilicaContent:    cast.ToFloat64(cfg.Get("Deposit.SilicaContent")),
		AdhesionStrength: cast.ToFloat64(cfg.Get("Deposit.AdhesionStrength")),
		ThicknessMin:     cast.ToFloat64(cfg.Get("Deposit.ThicknessMin")),
		ThicknessMax:     cast.ToFloat64(cfg.Get("Deposit.ThicknessMax")),
	}
}

// mediaByName looks up a cleaning media by its configured name.
func mediaByName(name string) (gridclean.Media, error) {
	media, ok := gridclean.CleaningMedia[name]
	if !ok {
		names := make([]string, 0, len(gridclean.CleaningMedia))
		for n := range gridclean.CleaningMedia {
			names = append(names, n)
		}
		return gridclean.Media{}, fmt.Errorf("gridclean: unknown media %q; valid media are %s",
			name, strings.Join(names, ", "))
	}
	return media, nil
}

// newRNG creates the random number generator for a run. A zero seed
// seeds from the current time, so only nonzero seeds are reproducible.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// toIntSliceE converts v to a []int, accounting for the fact that
// viper hands back an int-slice flag's value as its bracketed string
// representation (e.g. "[285,300,315,330]").
func toIntSliceE(v interface{}) ([]int, error) {
	switch v := v.(type) {
	case []int:
		return v, nil
	case []interface{}:
		out := make([]int, len(v))
		for i, e := range v {
			val, err := cast.ToIntE(e)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case string:
		var out []int
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid type %T", v)
	}
}

// float64Slice converts a comma-separated string, or a slice of
// numbers, to a []float64.
func float64Slice(v interface{}) ([]float64, error) {
	switch v := v.(type) {
	case string:
		fields := strings.Split(v, ",")
		out := make([]float64, len(fields))
		for i, f := range fields {
			val, err := cast.ToFloat64E(strings.TrimSpace(f))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case []float64:
		return v, nil
	case []interface{}:
		out := make([]float64, len(v))
		for i, e := range v {
			val, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid type %T", v)
	}
}
