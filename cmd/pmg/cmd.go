/*
 * cmd.go, part of pmg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rmera/pmg"
	"github.com/rmera/pmg/dx"
	"github.com/rmera/pmg/histo"
	"github.com/rmera/pmg/pmgplot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//Cfg holds the configuration. Values come, in order of precedence, from
//flags, PMG_ environment variables, and the file given with --config.
var Cfg *viper.Viper

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	options = []option{
		{
			name:       "config",
			usage:      "configuration file (toml, yaml or json).",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "logging level: panic, fatal, error, warn, info, debug or trace.",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "output-dir",
			usage:      "directory for the maps written by the calculation.",
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "format",
			usage: `extension of the map files: dx, grd (UHBD) or nc (netCDF).
The text formats can be compressed adding .gz or .zst.`,
			defaultVal: "dx",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "bins",
			usage:      "number of bins of a histogram of the values. 0 means no histogram.",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{statsCmd.Flags()},
		},
		{
			name:       "json",
			usage:      "print the histograms in JSON format.",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{statsCmd.Flags()},
		},
		{
			name:       "axis",
			usage:      "axis perpendicular to the plotted plane, or along the profile: 0, 1 or 2.",
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name:       "plane",
			usage:      "index of the plotted plane along the axis. Negative means the middle of the mesh.",
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name:       "profile",
			usage:      "plot the values along the axis, through the center of the mesh, instead of a plane.",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name:       "out",
			usage:      "name of the plot file. The default replaces the extension of the grid file by .png.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("PMG")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 {
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	Root.AddCommand(runCmd)
	Root.AddCommand(statsCmd)
	Root.AddCommand(plotCmd)
}

//setConfig reads the configuration file, if there is one, and sets the
//logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("pmg: problem reading configuration file: %v", err)
		}
	}
	lvl, err := logrus.ParseLevel(Cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("pmg: %v", err)
	}
	logrus.SetLevel(lvl)
	return nil
}

//Root is the main command.
var Root = &cobra.Command{
	Use:   "pmg",
	Short: "Electrostatics of molecules with the Poisson-Boltzmann equation.",
	Long: `pmg solves the Poisson-Boltzmann equation for a molecule on regular
meshes, focusing from coarse to fine meshes, and reports energies and maps.

Options can be given as flags, in a configuration file (--config), or as
environment variables named PMG_ followed by the option name in capitals,
with - replaced by _.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var runCmd = &cobra.Command{
	Use:   "run input.toml",
	Short: "Run a calculation.",
	Long: `run performs the calculations in a TOML input file. The file names a PQR
molecule and gives one or more [[elec]] blocks. Each block after the first
one is focused from the previous one, so it must lie inside it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := ReadInput(args[0])
		if err != nil {
			return err
		}
		_, err = Run(in, Cfg.GetString("output-dir"), Cfg.GetString("format"), cmd.OutOrStdout(), logrus.StandardLogger())
		return err
	},
	DisableAutoGenTag: true,
}

var statsCmd = &cobra.Command{
	Use:   "stats grid...",
	Short: "Print statistics of grid files.",
	Long: `stats prints the number of points, extreme values, mean, standard deviation
and integral of each grid file and, if requested, a histogram of the values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bins, err := cast.ToIntE(Cfg.Get("bins"))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range args {
			gr, err := dx.ReadFile(name)
			if err != nil {
				return err
			}
			fs := pmg.Summarize(gr.Data, nil, gr.H[0]*gr.H[1]*gr.H[2])
			fmt.Fprintf(out, "%s: %s\n", name, fs)
			if bins <= 0 {
				continue
			}
			h, err := histo.NewData(histo.Uniform(fs.Min, fs.Max, bins), gr.Data, nil)
			if err != nil {
				return err
			}
			if !cast.ToBool(Cfg.Get("json")) {
				fmt.Fprintln(out, h)
				continue
			}
			j, err := json.Marshal(h)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(j))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot grid",
	Short: "Plot a plane or a profile of a grid file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gr, err := dx.ReadFile(args[0])
		if err != nil {
			return err
		}
		axis, err := cast.ToIntE(Cfg.Get("axis"))
		if err != nil {
			return err
		}
		plane, err := cast.ToIntE(Cfg.Get("plane"))
		if err != nil {
			return err
		}
		if axis < 0 || axis > 2 {
			return fmt.Errorf("pmg: invalid axis %d", axis)
		}
		out := Cfg.GetString("out")
		if out == "" {
			out = plotName(args[0])
		}
		title := filepath.Base(args[0])
		if cast.ToBool(Cfg.Get("profile")) {
			at := [3]int{gr.N[0] / 2, gr.N[1] / 2, gr.N[2] / 2}
			err = pmgplot.Line(gr, axis, at, title, out)
		} else {
			if plane < 0 {
				plane = gr.N[axis] / 2
			}
			err = pmgplot.Slice(gr, axis, plane, title, out)
		}
		if err != nil {
			return err
		}
		logrus.WithField("file", out).Info("plot written")
		return nil
	},
	DisableAutoGenTag: true,
}

//plotName returns the name of grid with the grid and compression
//extensions replaced by .png.
func plotName(grid string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(grid, ".gz"), ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
