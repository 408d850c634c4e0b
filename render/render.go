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

// Package render turns meshes into choropleth figures: a static image
// figure for planar meshes and a Leaflet web map for spatially
// referenced ones. The figures are handed to package export for
// serialization; rendering and serialization never mix.
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/meshview"
)

// Options controls choropleth appearance.
type Options struct {
	// Dummy drops cells whose attribute equals this value before
	// rendering, the way missing data is conventionally marked in
	// grid files. Nil keeps every cell.
	Dummy *float64

	// Min and Max fix the color range. Nil ends fall back to the
	// minimum and maximum of the (dummy-filtered) cell values.
	Min, Max *float64

	// Scheme is the color scheme; the zero value uses the carto
	// default.
	Scheme carto.Colorlist

	// Width is the figure width; 0 means 6 inches.
	Width vg.Length
}

// Figure is a rendered static choropleth. It is backend independent:
// WriteImage draws it onto a png, pdf, or svg canvas on demand, so one
// figure can be serialized in several formats.
type Figure struct {
	cells  []*meshview.Cell
	attr   string
	scale  *colorScale
	bounds *geom.Bounds
	width  vg.Length
}

// filterCells drops dummy-valued cells.
func filterCells(m *meshview.Mesh, dummy *float64) []*meshview.Cell {
	if dummy == nil {
		return m.Cells
	}
	var cells []*meshview.Cell
	for _, c := range m.Cells {
		if c.Value != *dummy {
			cells = append(cells, c)
		}
	}
	return cells
}

// colorScale maps cell values to colors over a fixed [lo, hi] range.
// Values outside the range clamp to its ends; the underlying carto map
// only has color stops inside the range it was built over.
type colorScale struct {
	cmap   *carto.ColorMap
	lo, hi float64
}

func (s *colorScale) color(v float64) color.NRGBA {
	if v < s.lo {
		v = s.lo
	}
	if v > s.hi {
		v = s.hi
	}
	return s.cmap.GetColor(v)
}

func (s *colorScale) legend(c *draw.Canvas, label string) error {
	return s.cmap.Legend(c, label)
}

// colorMap builds the color scale over the (filtered) cell values,
// honoring a fixed range if one is given.
func colorMap(cells []*meshview.Cell, o Options) (*colorScale, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("render: no cells to draw")
	}
	vals := make([]float64, len(cells))
	for i, c := range cells {
		vals[i] = c.Value
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	if o.Min != nil {
		lo = *o.Min
	}
	if o.Max != nil {
		hi = *o.Max
	}
	if lo > hi {
		return nil, fmt.Errorf("render: color range minimum %g exceeds maximum %g", lo, hi)
	}
	if lo == hi {
		// A flat range gives the carto map no gradient to place
		// values or legend ticks on; widen it to a unit interval.
		lo, hi = lo-0.5, hi+0.5
	}
	cmap := carto.NewColorMap(carto.Linear)
	if len(o.Scheme.Val) != 0 {
		cmap.ColorScheme = o.Scheme
	}
	cmap.AddArray([]float64{lo, hi})
	cmap.Set()
	return &colorScale{cmap: cmap, lo: lo, hi: hi}, nil
}

// Choropleth renders the mesh as a static planar choropleth figure
// with a legend labeled by the mesh attribute name. No spatial
// reference is needed; coordinates are drawn as-is.
func Choropleth(m *meshview.Mesh, o Options) (*Figure, error) {
	cells := filterCells(m, o.Dummy)
	scale, err := colorMap(cells, o)
	if err != nil {
		return nil, err
	}
	b := geom.NewBounds()
	for _, c := range cells {
		b.Extend(c.Polygon.Bounds())
	}
	width := o.Width
	if width == 0 {
		width = 6 * vg.Inch
	}
	return &Figure{
		cells:  cells,
		attr:   m.AttrName,
		scale:  scale,
		bounds: b,
		width:  width,
	}, nil
}

const legendHeight = 0.6 * vg.Inch

// size returns the total canvas dimensions: the map area keeps the
// data aspect ratio and the legend strip sits below it.
func (f *Figure) size() (w, h vg.Length) {
	dx := f.bounds.Max.X - f.bounds.Min.X
	dy := f.bounds.Max.Y - f.bounds.Min.Y
	if dx <= 0 || dy <= 0 {
		return f.width, f.width/2 + legendHeight
	}
	return f.width, f.width*vg.Length(dy/dx) + legendHeight
}

// WriteImage draws the figure onto a canvas for the given image format
// ("png", "pdf", or "svg") and writes the serialized result to w.
func (f *Figure) WriteImage(w io.Writer, ext string) error {
	width, height := f.size()
	switch ext {
	case "png":
		c := vgimg.New(width, height)
		if err := f.draw(draw.New(c)); err != nil {
			return err
		}
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	case "pdf":
		c := vgpdf.New(width, height)
		if err := f.draw(draw.New(c)); err != nil {
			return err
		}
		_, err := c.WriteTo(w)
		return err
	case "svg":
		c := vgsvg.New(width, height)
		if err := f.draw(draw.New(c)); err != nil {
			return err
		}
		_, err := c.WriteTo(w)
		return err
	}
	return fmt.Errorf("render: unknown image format %q", ext)
}

func (f *Figure) draw(dc draw.Canvas) error {
	_, height := f.size()
	mapCanvas := draw.Crop(dc, 0, 0, legendHeight, 0)
	legendCanvas := draw.Crop(dc, 0.25*vg.Inch, -0.25*vg.Inch, 0, legendHeight-height)

	m := carto.NewCanvas(f.bounds.Max.Y, f.bounds.Min.Y,
		f.bounds.Max.X, f.bounds.Min.X, mapCanvas)
	for _, c := range f.cells {
		fill := f.scale.color(c.Value)
		ls := draw.LineStyle{
			Width: 0.1 * vg.Millimeter,
			Color: fill,
		}
		if err := m.DrawVector(c.Polygon, fill, ls, draw.GlyphStyle{}); err != nil {
			return fmt.Errorf("render: drawing cell (%d,%d): %v", c.I, c.J, err)
		}
	}
	if err := f.scale.legend(&legendCanvas, f.attr); err != nil {
		return fmt.Errorf("render: drawing legend: %v", err)
	}
	return nil
}
