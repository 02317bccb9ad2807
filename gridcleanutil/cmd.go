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

// Package gridcleanutil holds the configuration and command-line glue
// around the gridclean simulation core.
package gridcleanutil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chambersim/gridclean"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GridClean.
	// Chamber geometry defaults come from the vendor drawings; the
	// first-grid plugging counts come from the last inspection report.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity (debug, info, warn, error).`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.InletDiameter",
			usage: `
              Chamber.InletDiameter is the inlet diameter [mm].`,
			defaultVal: 2558.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.GridDiameter",
			usage: `
              Chamber.GridDiameter is the grid diameter [mm].`,
			defaultVal: 3800.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.Height",
			usage: `
              Chamber.Height is the chamber height [mm].`,
			defaultVal: 12000.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.HoleDiameter",
			usage: `
              Chamber.HoleDiameter is the grid hole diameter [mm].`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.PatternRadius",
			usage: `
              Chamber.PatternRadius is the outer radius of the hole
              pattern [mm].`,
			defaultVal: 1900.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.GridPositions",
			usage: `
              Chamber.GridPositions lists each grid's elevation as a
              fraction of the chamber height, top grid first,
              comma-separated.`,
			defaultVal: "0.8,0.6,0.4,0.2",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.GridHoles",
			usage: `
              Chamber.GridHoles lists the number of holes in each grid,
              top grid first.`,
			defaultVal: []int{285, 300, 315, 330},
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.InletTemp",
			usage: `
              Chamber.InletTemp is the inlet gas temperature [K].`,
			defaultVal: 715 + 273.15,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.Pressure",
			usage: `
              Chamber.Pressure is the chamber operating pressure [Pa].`,
			defaultVal: 1.52 * 98066.5,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Chamber.InletVelocity",
			usage: `
              Chamber.InletVelocity is the inlet gas velocity [m/s].`,
			defaultVal: 17.45,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid1.TotalHoles",
			usage: `
              Grid1.TotalHoles is the inspected hole count of the first grid.`,
			defaultVal: 285,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid1.PluggedRefractory",
			usage: `
              Grid1.PluggedRefractory is the number of first-grid holes
              plugged by refractory material.`,
			defaultVal: 22,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid1.PluggedDeposit",
			usage: `
              Grid1.PluggedDeposit is the number of first-grid holes
              plugged by deposit buildup.`,
			defaultVal: 133,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid1.OpenHoles",
			usage: `
              Grid1.OpenHoles is the number of open first-grid holes.`,
			defaultVal: 130,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.Moisture",
			usage: `
              Deposit.Moisture is the deposit moisture weight fraction.`,
			defaultVal: 0.0085,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.AshContent",
			usage: `
              Deposit.AshContent is the deposit ash weight fraction.`,
			defaultVal: 0.9826,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.SilicaContent",
			usage: `
              Deposit.SilicaContent is the deposit silica weight fraction.`,
			defaultVal: 0.7591,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.AdhesionStrength",
			usage: `
              Deposit.AdhesionStrength is the base deposit adhesion
              strength [Pa].`,
			defaultVal: 150000.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.ThicknessMin",
			usage: `
              Deposit.ThicknessMin is the minimum deposit thickness [m].`,
			defaultVal: 0.001,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Deposit.ThicknessMax",
			usage: `
              Deposit.ThicknessMax is the maximum deposit thickness [m].`,
			defaultVal: 0.005,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "NumParticles",
			usage: `
              NumParticles is the number of media particles to simulate
              in sequence against the shared deposit field.`,
			shorthand:  "n",
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), mediaCmd.Flags()},
		},
		{
			name: "TargetingStrategy",
			usage: `
              TargetingStrategy selects how particle starting conditions
              are generated ('spiral' or 'random'). An unrecognized name
              falls back to 'random'.`,
			shorthand:  "t",
			defaultVal: gridclean.StrategySpiral,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), mediaCmd.Flags()},
		},
		{
			name: "SimulationTime",
			usage: `
              SimulationTime is the duration of each particle's
              trajectory [s].`,
			defaultVal: 15.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), mediaCmd.Flags()},
		},
		{
			name: "Media",
			usage: `
              Media selects the cleaning media for the run
              (walnut_shell, ceramic_ball, or steel_shot).`,
			shorthand:  "m",
			defaultVal: "walnut_shell",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Seed",
			usage: `
              Seed initializes the random number generator so that runs
              are reproducible. 0 seeds from the current time.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), mediaCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path the run results are written to as
              JSON.`,
			shorthand:  "o",
			defaultVal: "gridclean_results.json",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GRIDCLEAN")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(mediaCmd)
	Root.AddCommand(pressureCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gridclean: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLogging configures the logger from the LogLevel option.
func setLogging() error {
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("gridclean: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gridclean",
	Short: "A grid-cleaning effectiveness model.",
	Long: `GridClean simulates abrasive cleaning media particles removing deposit
buildup from the perforated grids of an industrial flow chamber, to
evaluate cleaning-media effectiveness.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'GRIDCLEAN_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogging()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GridClean.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GridClean v%s\n", gridclean.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd simulates a batch of particles with one cleaning media and
// writes the results.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a cleaning simulation.",
	Long: `run simulates a batch of cleaning-media particles through the chamber
against a freshly seeded deposit field and writes trajectory, impact,
and effectiveness results to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg, Cfg.GetString("Media"), Cfg.GetString("OutputFile"))
	},
	DisableAutoGenTag: true,
}

// mediaCmd compares the built-in cleaning media against each other.
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Compare cleaning media.",
	Long: `media runs the same batch simulation once per built-in cleaning media,
each against a freshly seeded deposit field, and reports their
effectiveness side by side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return CompareMedia(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

// pressureCmd reports the pressure drop across each grid.
var pressureCmd = &cobra.Command{
	Use:   "pressure",
	Short: "Report per-grid pressure drops.",
	Long: `pressure computes the pressure drop across each grid at the configured
operating conditions and plugging state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return PressureReport(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}
