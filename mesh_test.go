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

package meshview

import (
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

// gridPoints creates an ni×nj unit grid where X=I, Y=J and the
// attribute value is I+J.
func gridPoints(ni, nj int) []PointRecord {
	var points []PointRecord
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			points = append(points, PointRecord{
				I: i, J: j,
				X: float64(i), Y: float64(j),
				Value: float64(i + j),
			})
		}
	}
	return points
}

func TestNewMesh(t *testing.T) {
	m, err := NewMesh(gridPoints(3, 3), "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cells) != 4 {
		t.Fatalf("cell count: want 4, have %d", len(m.Cells))
	}
	wantIJ := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	wantVals := []float64{0, 1, 1, 2}
	for k, c := range m.Cells {
		if c.I != wantIJ[k][0] || c.J != wantIJ[k][1] {
			t.Errorf("cell %d: want index (%d,%d), have (%d,%d)",
				k, wantIJ[k][0], wantIJ[k][1], c.I, c.J)
		}
		if c.Value != wantVals[k] {
			t.Errorf("cell %d: want value %g, have %g", k, wantVals[k], c.Value)
		}
	}

	// The first cell ring visits the (0,0), (0,1), (1,1), and (1,0)
	// corners in order and closes on itself.
	want := geom.Polygon{{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
	}}
	if !reflect.DeepEqual(m.Cells[0].Polygon, want) {
		t.Errorf("cell (0,0) ring: want %v, have %v", want, m.Cells[0].Polygon)
	}
}

func TestNewMesh_rowOrder(t *testing.T) {
	points := gridPoints(3, 3)
	shuffled := make([]PointRecord, len(points))
	for k, p := range points {
		shuffled[len(points)-1-k] = p
	}
	a, err := NewMesh(points, "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMesh(shuffled, "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("mesh differs when input rows are reordered")
	}
}

func TestNewMesh_minimal(t *testing.T) {
	m, err := NewMesh(gridPoints(2, 2), "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cells) != 1 {
		t.Fatalf("cell count: want 1, have %d", len(m.Cells))
	}
	if n := len(m.Cells[0].Polygon[0]); n != 5 {
		t.Errorf("ring length: want 5, have %d", n)
	}
}

// Grid indices need not be contiguous; neighbors are the next distinct
// index values.
func TestNewMesh_sparseIndices(t *testing.T) {
	var points []PointRecord
	for _, i := range []int{0, 2, 5} {
		for _, j := range []int{1, 4} {
			points = append(points, PointRecord{
				I: i, J: j, X: float64(i), Y: float64(j), Value: float64(i * j),
			})
		}
	}
	m, err := NewMesh(points, "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cells) != 2 {
		t.Fatalf("cell count: want 2, have %d", len(m.Cells))
	}
	if m.Cells[0].I != 0 || m.Cells[0].J != 1 {
		t.Errorf("first cell: want index (0,1), have (%d,%d)", m.Cells[0].I, m.Cells[0].J)
	}
	if m.Cells[1].I != 2 || m.Cells[1].J != 1 {
		t.Errorf("second cell: want index (2,1), have (%d,%d)", m.Cells[1].I, m.Cells[1].J)
	}
	want := geom.Polygon{{
		{X: 2, Y: 1}, {X: 2, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 1}, {X: 2, Y: 1},
	}}
	if !reflect.DeepEqual(m.Cells[1].Polygon, want) {
		t.Errorf("cell (2,1) ring: want %v, have %v", want, m.Cells[1].Polygon)
	}
}

func TestNewMesh_empty(t *testing.T) {
	cases := [][]PointRecord{
		nil,
		{{I: 0, J: 0}},
		{{I: 0, J: 0}, {I: 1, J: 0}}, // one row
		{{I: 0, J: 0}, {I: 0, J: 1}}, // one column
	}
	for k, points := range cases {
		_, err := NewMesh(points, "conc", 0)
		if _, ok := err.(*EmptyGridError); !ok {
			t.Errorf("case %d: want EmptyGridError, have %v", k, err)
		}
	}
}

func TestNewMesh_rowCountMismatch(t *testing.T) {
	points := gridPoints(3, 3)[:8] // drop one corner
	_, err := NewMesh(points, "conc", 0)
	gerr, ok := err.(*MalformedGridError)
	if !ok {
		t.Fatalf("want MalformedGridError, have %v", err)
	}
	if gerr.CntI != 3 || gerr.CntJ != 3 || gerr.Rows != 8 {
		t.Errorf("error detail: want 3×3 grid with 8 rows, have %d×%d with %d",
			gerr.CntI, gerr.CntJ, gerr.Rows)
	}
}

func TestNewMesh_duplicatePoint(t *testing.T) {
	points := gridPoints(2, 2)
	points[3] = points[0] // now 4 rows but (1,1) replaced by a second (0,0)
	_, err := NewMesh(points, "conc", 0)
	if _, ok := err.(*MalformedGridError); !ok {
		t.Fatalf("want MalformedGridError, have %v", err)
	}
}

func TestMeshBounds(t *testing.T) {
	m, err := NewMesh(gridPoints(3, 4), "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	b := m.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 || b.Max.X != 2 || b.Max.Y != 3 {
		t.Errorf("bounds: want (0,0)-(2,3), have (%g,%g)-(%g,%g)",
			b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
}

func TestMeshValues(t *testing.T) {
	m, err := NewMesh(gridPoints(3, 3), "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 1, 2}
	if !reflect.DeepEqual(m.Values(), want) {
		t.Errorf("values: want %v, have %v", want, m.Values())
	}
}
