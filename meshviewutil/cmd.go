/*
Copyright © 2025 the MeshView authors.
This file is part of MeshView.

MeshView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeshView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeshView.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package meshviewutil holds the command-line interface for the
// MeshView grid visualization tool.
package meshviewutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/meshview"
	"github.com/spatialmodel/meshview/export"
	"github.com/spatialmodel/meshview/render"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used for progress reporting.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to MeshView.
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
			name: "InputFile",
			usage: `
              InputFile is the path to the grid point table. Delimited text
              is assumed unless the file name ends in .xlsx. The path can
              include environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output zip archive. If
              left blank a name is derived from the subcommand. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "StyleFile",
			usage: `
              StyleFile is the path to a TOML file holding figure styling:
              the color scheme, map opacities, and additional web tile
              services. If left blank the built-in defaults are used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.Sheet",
			usage: `
              Table.Sheet is the name of the spreadsheet sheet holding the
              point table. It is only used for .xlsx input, and if left
              blank the first sheet is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.Delimiter",
			usage: `
              Table.Delimiter is the field delimiter for delimited text
              input. "tab" or "\t" means tab-separated.`,
			defaultVal: ",",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.HeaderLines",
			usage: `
              Table.HeaderLines is the number of leading lines in the point
              table to skip before reading data.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.IColumn",
			usage: `
              Table.IColumn is the 1-based column number holding the I grid
              index.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.JColumn",
			usage: `
              Table.JColumn is the 1-based column number holding the J grid
              index.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.XColumn",
			usage: `
              Table.XColumn is the 1-based column number holding the X
              coordinate.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.YColumn",
			usage: `
              Table.YColumn is the 1-based column number holding the Y
              coordinate.`,
			defaultVal: 4,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Table.ValueColumn",
			usage: `
              Table.ValueColumn is the 1-based column number holding the
              attribute value.`,
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "AttrName",
			usage: `
              AttrName is the name of the attribute carried by the grid
              points, used to label the figure legend and the GIS attribute
              table.`,
			defaultVal: "value",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "EPSG",
			usage: `
              EPSG is the EPSG code of the coordinate reference system the
              point coordinates are in. 0 means the coordinates are planar
              with no spatial reference, which is fine for plotting but
              rules out the interactive map.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Dummy",
			usage: `
              Dummy drops grid cells whose attribute value equals this
              number, the way missing data is conventionally marked in grid
              files. If left blank every cell is kept.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), mapCmd.Flags()},
		},
		{
			name: "Min",
			usage: `
              Min fixes the lower end of the color range. If left blank the
              minimum cell value is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), mapCmd.Flags()},
		},
		{
			name: "Max",
			usage: `
              Max fixes the upper end of the color range. If left blank the
              maximum cell value is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), mapCmd.Flags()},
		},
		{
			name: "Plot.Format",
			usage: `
              Plot.Format is the static figure image format: png, pdf, or
              svg.`,
			defaultVal: "png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Plot.Width",
			usage: `
              Plot.Width is the figure width in inches.`,
			defaultVal: 6.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Map.Tile",
			usage: `
              Map.Tile is the name of the web tile service used as the map
              base layer. Built-in services are openstreetmap, gsi-std,
              gsi-pale, and gsi-photo; more can be defined in the style
              file.`,
			defaultVal: "openstreetmap",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.Zoom",
			usage: `
              Map.Zoom is the initial map zoom level.`,
			defaultVal: 12,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "GIS.Format",
			usage: `
              GIS.Format is the vector export format: shp (ESRI Shapefile)
              or geojson.`,
			defaultVal: "shp",
			flagsets:   []*pflag.FlagSet{gisCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MESHVIEW")

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
	Root.AddCommand(plotCmd)
	Root.AddCommand(mapCmd)
	Root.AddCommand(gisCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("meshview: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "meshview",
	Short: "A visualizer for gridded data.",
	Long: `MeshView turns tables of gridded data points into polygon meshes and
renders them as static choropleth figures, interactive web maps, and GIS
vector files. Use the subcommands specified below to choose an output.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'MESHVIEW_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of MeshView.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("MeshView v%s\n", meshview.Version)
	},
	DisableAutoGenTag: true,
}

// plotCmd renders the mesh as a static choropleth figure.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a static choropleth figure.",
	Long: `plot builds the polygon mesh from the input point table and renders it
as a static choropleth figure with a legend, saved as plot.<ext> inside a
zip archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseRasterFormat(Cfg.GetString("Plot.Format"))
		if err != nil {
			return err
		}
		m, err := readMesh()
		if err != nil {
			return err
		}
		style, err := LoadStyle(Cfg.GetString("StyleFile"))
		if err != nil {
			return err
		}
		scheme, err := style.Colorlist()
		if err != nil {
			return err
		}
		dummy, err := optFloat("Dummy")
		if err != nil {
			return err
		}
		min, err := optFloat("Min")
		if err != nil {
			return err
		}
		max, err := optFloat("Max")
		if err != nil {
			return err
		}
		fig, err := render.Choropleth(m, render.Options{
			Dummy:  dummy,
			Min:    min,
			Max:    max,
			Scheme: scheme,
			Width:  vgInches(Cfg.GetFloat64("Plot.Width")),
		})
		if err != nil {
			return err
		}
		b, err := export.Raster(fig, format)
		if err != nil {
			return err
		}
		return writeOutput(b, "meshview_plot.zip")
	},
	DisableAutoGenTag: true,
}

// mapCmd renders the mesh as an interactive web map.
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Render an interactive web map.",
	Long: `map builds the polygon mesh from the input point table, reprojects it
to WGS84, and renders it as an interactive choropleth over a web tile base
layer, saved as map.html inside a zip archive. The input must carry an EPSG
code; planar data cannot be placed on a map.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readMesh()
		if err != nil {
			return err
		}
		style, err := LoadStyle(Cfg.GetString("StyleFile"))
		if err != nil {
			return err
		}
		scheme, err := style.Colorlist()
		if err != nil {
			return err
		}
		tile, err := style.Tile(Cfg.GetString("Map.Tile"))
		if err != nil {
			return err
		}
		dummy, err := optFloat("Dummy")
		if err != nil {
			return err
		}
		min, err := optFloat("Min")
		if err != nil {
			return err
		}
		max, err := optFloat("Max")
		if err != nil {
			return err
		}
		zoom := Cfg.GetInt("Map.Zoom")
		fig, err := render.WebMap(m, render.MapOptions{
			Dummy:       dummy,
			Min:         min,
			Max:         max,
			Scheme:      scheme,
			Tile:        tile,
			Zoom:        &zoom,
			MeshOpacity: style.MeshOpacity,
			TileOpacity: style.TileOpacity,
		})
		if err != nil {
			return err
		}
		b, err := export.InteractiveMap(fig)
		if err != nil {
			return err
		}
		return writeOutput(b, "meshview_map.zip")
	},
	DisableAutoGenTag: true,
}

// gisCmd exports the mesh as GIS vector files.
var gisCmd = &cobra.Command{
	Use:   "gis",
	Short: "Export GIS vector files.",
	Long: `gis builds the polygon mesh from the input point table and exports it
to a GIS vector format, with the sibling files bundled into a zip archive.
A shapefile export includes a .prj sidecar when an EPSG code is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseVectorFormat(Cfg.GetString("GIS.Format"))
		if err != nil {
			return err
		}
		m, err := readMesh()
		if err != nil {
			return err
		}
		b, err := export.Vector(m, format)
		if err != nil {
			return err
		}
		return writeOutput(b, "meshview_gis.zip")
	},
	DisableAutoGenTag: true,
}

// readMesh reads the configured point table and builds the mesh.
func readMesh() (*meshview.Mesh, error) {
	input := os.ExpandEnv(Cfg.GetString("InputFile"))
	if input == "" {
		return nil, fmt.Errorf("meshview: you need to specify an input file " +
			"(for example: --InputFile=grid.csv)")
	}
	opts := meshview.PointReadOptions{
		Comma:       delimiterRune(Cfg.GetString("Table.Delimiter")),
		HeaderLines: Cfg.GetInt("Table.HeaderLines"),
		ColI:        Cfg.GetInt("Table.IColumn"),
		ColJ:        Cfg.GetInt("Table.JColumn"),
		ColX:        Cfg.GetInt("Table.XColumn"),
		ColY:        Cfg.GetInt("Table.YColumn"),
		ColV:        Cfg.GetInt("Table.ValueColumn"),
	}
	var points []meshview.PointRecord
	var err error
	if strings.EqualFold(filepath.Ext(input), ".xlsx") {
		points, err = meshview.ReadPointsXLSX(input, Cfg.GetString("Table.Sheet"), opts)
	} else {
		var f *os.File
		f, err = os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("meshview: opening input file: %v", err)
		}
		defer f.Close()
		points, err = meshview.ReadPoints(f, opts)
	}
	if err != nil {
		return nil, err
	}
	Log.Infof("read %d points from %s", len(points), input)
	m, err := meshview.NewMesh(points, Cfg.GetString("AttrName"), Cfg.GetInt("EPSG"))
	if err != nil {
		return nil, err
	}
	Log.Infof("built mesh with %d cells", len(m.Cells))
	return m, nil
}

// vgInches converts a width in inches to canvas units.
func vgInches(w float64) vg.Length {
	return vg.Length(w) * vg.Inch
}

// delimiterRune interprets the configured field delimiter.
func delimiterRune(s string) rune {
	switch s {
	case "", ",":
		return ','
	case "tab", "\\t", "\t":
		return '\t'
	}
	return []rune(s)[0]
}

// optFloat reads an optional numeric configuration variable: a blank
// value means unset.
func optFloat(name string) (*float64, error) {
	s := Cfg.GetString(name)
	if s == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return nil, fmt.Errorf("meshview: reading '%s': %v", name, err)
	}
	return &v, nil
}

// writeOutput saves the archive bytes, deriving the file name from
// defaultName if no output file is configured.
func writeOutput(b []byte, defaultName string) error {
	out := os.ExpandEnv(Cfg.GetString("OutputFile"))
	if out == "" {
		out = defaultName
	}
	if err := os.WriteFile(out, b, 0644); err != nil {
		return fmt.Errorf("meshview: writing output file: %v", err)
	}
	Log.Infof("wrote %s (%d bytes)", out, len(b))
	return nil
}
