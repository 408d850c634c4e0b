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
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tealeg/xlsx"
)

func TestReadPoints(t *testing.T) {
	const table = `i,j,x,y,conc
0, 0, 10.5, 20.5, 1.25
0, 1, 10.5, 21.5, 2.5
1, 0, 11.5, 20.5, 3.75
1, 1, 11.5, 21.5, 5
`
	points, err := ReadPoints(strings.NewReader(table), PointReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := []PointRecord{
		{I: 0, J: 0, X: 10.5, Y: 20.5, Value: 1.25},
		{I: 0, J: 1, X: 10.5, Y: 21.5, Value: 2.5},
		{I: 1, J: 0, X: 11.5, Y: 20.5, Value: 3.75},
		{I: 1, J: 1, X: 11.5, Y: 21.5, Value: 5},
	}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("want %v, have %v", want, points)
	}
}

// A tab-separated table with the value ahead of the coordinates and no
// header line.
func TestReadPoints_columnMapping(t *testing.T) {
	const table = "7\t0\t0\t1.5\t2.5\n8\t0\t1\t1.5\t3.5\n"
	points, err := ReadPoints(strings.NewReader(table), PointReadOptions{
		Comma: '\t',
		ColI:  2, ColJ: 3, ColX: 4, ColY: 5, ColV: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []PointRecord{
		{I: 0, J: 0, X: 1.5, Y: 2.5, Value: 7},
		{I: 0, J: 1, X: 1.5, Y: 3.5, Value: 8},
	}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("want %v, have %v", want, points)
	}
}

func TestReadPoints_badRow(t *testing.T) {
	cases := []string{
		"i,j,x,y,v\n0,0,1,2\n",         // too few columns
		"i,j,x,y,v\n0,zero,1,2,3\n",    // non-numeric index
		"i,j,x,y,v\n0,0,east,2,3\n",    // non-numeric coordinate
		"i,j,x,y,v\n0,0,1,2,missing\n", // non-numeric value
	}
	for k, table := range cases {
		if _, err := ReadPoints(strings.NewReader(table), PointReadOptions{}); err == nil {
			t.Errorf("case %d: expected an error", k)
		}
	}
}

func TestReadPointsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.xlsx")
	f := xlsx.NewFile()
	s, err := f.AddSheet("grid")
	if err != nil {
		t.Fatal(err)
	}
	header := s.AddRow()
	for _, name := range []string{"i", "j", "x", "y", "conc"} {
		header.AddCell().SetString(name)
	}
	rows := [][]float64{
		{0, 0, 10, 20, 1},
		{0, 1, 10, 21, 2},
		{1, 0, 11, 20, 3},
		{1, 1, 11, 21, 4},
	}
	for _, vals := range rows {
		r := s.AddRow()
		r.AddCell().SetInt(int(vals[0]))
		r.AddCell().SetInt(int(vals[1]))
		for _, v := range vals[2:] {
			r.AddCell().SetFloat(v)
		}
	}
	s.AddRow() // trailing blank rows are skipped
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}

	want := []PointRecord{
		{I: 0, J: 0, X: 10, Y: 20, Value: 1},
		{I: 0, J: 1, X: 10, Y: 21, Value: 2},
		{I: 1, J: 0, X: 11, Y: 20, Value: 3},
		{I: 1, J: 1, X: 11, Y: 21, Value: 4},
	}
	for _, sheet := range []string{"", "grid"} {
		points, err := ReadPointsXLSX(path, sheet, PointReadOptions{})
		if err != nil {
			t.Fatalf("sheet %q: %v", sheet, err)
		}
		if !reflect.DeepEqual(points, want) {
			t.Errorf("sheet %q: want %v, have %v", sheet, want, points)
		}
	}

	if _, err := ReadPointsXLSX(path, "nope", PointReadOptions{}); err == nil {
		t.Error("expected an error for a missing sheet")
	}
}
