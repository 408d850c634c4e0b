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

// Package meshview converts structured (I,J) grids of coordinate points
// into quadrilateral cell polygons that can be colored by a per-cell
// attribute value and exported to GIS and image formats.
package meshview

import (
	"sort"

	"github.com/ctessum/geom"
)

// PointRecord is one grid vertex: an (I,J) index pair, an (X,Y)
// coordinate, and the scalar attribute value attached to the vertex.
type PointRecord struct {
	I, J int
	X, Y float64
	// Value holds the attribute for the cell that has this point as
	// its low-I, low-J corner. Values on the high-I and high-J grid
	// boundaries are never used.
	Value float64
}

// Cell is one quadrilateral mesh cell. The polygon is a single closed
// ring through the four corner points of cell (I,J); Value is taken
// from the (I,J) corner point.
type Cell struct {
	geom.Polygon
	I, J  int
	Value float64
}

// Mesh is an ordered set of mesh cells built from a grid of points,
// together with the name of the attribute column the cell values came
// from and an optional spatial reference. A Mesh is read-only after
// construction; build a new one if the underlying points change.
type Mesh struct {
	Cells []*Cell

	// AttrName is the name of the attribute column. It becomes the
	// attribute field name in GIS output and the legend label in
	// rendered figures.
	AttrName string

	// EPSG is the EPSG code of the coordinate reference system for
	// the cell geometry, or 0 if the coordinates are planar with no
	// spatial reference. The code is not checked against the
	// projection registry until a reprojection or a .prj file is
	// actually needed.
	EPSG int
}

// NewMesh builds a mesh from a table of grid points. The table must
// contain exactly one point for every combination of the distinct I and
// J values present; otherwise a MalformedGridError is returned. Grids
// with fewer than two points in either direction return an
// EmptyGridError. epsg may be 0 for planar data.
//
// Cells are ordered by I then J, ascending. Each cell ring visits the
// (i,j), (i,j+1), (i+1,j+1), and (i+1,j) corner points in that order
// and closes back on the first, where i+1 and j+1 denote the next
// distinct index value in each direction. Points with the maximum I or
// J index own no cell; they only serve as corners of neighboring cells.
func NewMesh(points []PointRecord, attrName string, epsg int) (*Mesh, error) {
	iVals := distinct(points, func(p PointRecord) int { return p.I })
	jVals := distinct(points, func(p PointRecord) int { return p.J })
	cntI, cntJ := len(iVals), len(jVals)

	if cntI < 2 || cntJ < 2 {
		return nil, &EmptyGridError{CntI: cntI, CntJ: cntJ}
	}
	if len(points) != cntI*cntJ {
		return nil, &MalformedGridError{
			Reason: reasonRowCount,
			CntI:   cntI, CntJ: cntJ, Rows: len(points),
		}
	}

	// Index the points by (i,j) key. Key-based lookup stays correct
	// even if the caller's row order is arbitrary, which sorted
	// row-offset arithmetic would not.
	type ij struct{ i, j int }
	idx := make(map[ij]*PointRecord, len(points))
	for k := range points {
		p := &points[k]
		key := ij{p.I, p.J}
		if _, ok := idx[key]; ok {
			return nil, &MalformedGridError{
				Reason: "duplicate grid point",
				I:      p.I, J: p.J,
				CntI: cntI, CntJ: cntJ, Rows: len(points),
			}
		}
		idx[key] = p
	}

	m := &Mesh{
		Cells:    make([]*Cell, 0, (cntI-1)*(cntJ-1)),
		AttrName: attrName,
		EPSG:     epsg,
	}
	for ii := 0; ii < cntI-1; ii++ {
		for jj := 0; jj < cntJ-1; jj++ {
			p1, ok1 := idx[ij{iVals[ii], jVals[jj]}]
			p2, ok2 := idx[ij{iVals[ii], jVals[jj+1]}]
			p3, ok3 := idx[ij{iVals[ii+1], jVals[jj+1]}]
			p4, ok4 := idx[ij{iVals[ii+1], jVals[jj]}]
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return nil, &MalformedGridError{
					Reason: "missing grid point",
					I:      iVals[ii], J: jVals[jj],
					CntI: cntI, CntJ: cntJ, Rows: len(points),
				}
			}
			ring := []geom.Point{
				{X: p1.X, Y: p1.Y},
				{X: p2.X, Y: p2.Y},
				{X: p3.X, Y: p3.Y},
				{X: p4.X, Y: p4.Y},
				{X: p1.X, Y: p1.Y},
			}
			m.Cells = append(m.Cells, &Cell{
				Polygon: geom.Polygon{ring},
				I:       p1.I,
				J:       p1.J,
				Value:   p1.Value,
			})
		}
	}
	return m, nil
}

// Bounds returns the geographic extent of the mesh.
func (m *Mesh) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, c := range m.Cells {
		b.Extend(c.Polygon.Bounds())
	}
	return b
}

// Values returns the cell attribute values in cell order.
func (m *Mesh) Values() []float64 {
	v := make([]float64, len(m.Cells))
	for i, c := range m.Cells {
		v[i] = c.Value
	}
	return v
}

func distinct(points []PointRecord, key func(PointRecord) int) []int {
	seen := make(map[int]struct{})
	var vals []int
	for _, p := range points {
		k := key(p)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			vals = append(vals, k)
		}
	}
	sort.Ints(vals)
	return vals
}
