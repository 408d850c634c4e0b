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
	"strings"
	"testing"
)

func TestLookupEPSG(t *testing.T) {
	known := []int{
		4326,  // WGS 84
		3857,  // web mercator
		4612,  // JGD2000 geographic
		6668,  // JGD2011 geographic
		2443,  // JGD2000 / Japan Plane Rectangular CS I
		2461,  // JGD2000 / Japan Plane Rectangular CS XIX
		6669,  // JGD2011 / Japan Plane Rectangular CS I
		6687,  // JGD2011 / Japan Plane Rectangular CS XIX
		32654, // WGS 84 / UTM zone 54N
		32754, // WGS 84 / UTM zone 54S
	}
	for _, code := range known {
		if _, err := LookupEPSG(code); err != nil {
			t.Errorf("EPSG %d: %v", code, err)
		}
	}
	for _, code := range []int{0, 1, 999999} {
		_, err := LookupEPSG(code)
		cerr, ok := err.(*UnknownCrsError)
		if !ok {
			t.Errorf("EPSG %d: want UnknownCrsError, have %v", code, err)
			continue
		}
		if cerr.EPSG != code {
			t.Errorf("EPSG %d: error reports code %d", code, cerr.EPSG)
		}
	}
}

func TestCrsNameAndWKT(t *testing.T) {
	name, ok := CrsName(2444)
	if !ok || !strings.Contains(name, "Japan Plane Rectangular CS II") {
		t.Errorf("EPSG 2444 name: %q, %v", name, ok)
	}
	wkt, ok := WKT(32654)
	if !ok || !strings.HasPrefix(wkt, `PROJCS["WGS 84 / UTM zone 54N"`) {
		t.Errorf("EPSG 32654 WKT: %q, %v", wkt, ok)
	}
	if _, ok := WKT(999999); ok {
		t.Error("EPSG 999999 should have no WKT")
	}
}

// An invalid EPSG code is accepted at build time and only surfaces when
// a spatial reference is actually needed.
func TestDeferredCrsValidation(t *testing.T) {
	m, err := NewMesh(gridPoints(2, 2), "conc", 999999)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SR(); err == nil {
		t.Error("SR should fail for an unregistered EPSG code")
	}
	_, err = m.WGS84()
	if _, ok := err.(*UnknownCrsError); !ok {
		t.Errorf("want UnknownCrsError, have %v", err)
	}
}

func TestWGS84_planar(t *testing.T) {
	m, err := NewMesh(gridPoints(2, 2), "conc", 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.WGS84()
	cerr, ok := err.(*UnknownCrsError)
	if !ok {
		t.Fatalf("want UnknownCrsError, have %v", err)
	}
	if cerr.EPSG != 0 {
		t.Errorf("error reports EPSG %d, want 0", cerr.EPSG)
	}
}

func TestWGS84_identity(t *testing.T) {
	m, err := NewMesh(gridPoints(2, 2), "conc", 4326)
	if err != nil {
		t.Fatal(err)
	}
	o, err := m.WGS84()
	if err != nil {
		t.Fatal(err)
	}
	if o != m {
		t.Error("a WGS84 mesh should be returned unchanged")
	}
}

func TestWGS84_reproject(t *testing.T) {
	// A web mercator grid near Tokyo.
	var points []PointRecord
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			points = append(points, PointRecord{
				I: i, J: j,
				X:     15.5e6 + float64(i)*1e5,
				Y:     4.25e6 + float64(j)*1e5,
				Value: float64(i + j),
			})
		}
	}
	m, err := NewMesh(points, "conc", 3857)
	if err != nil {
		t.Fatal(err)
	}
	o, err := m.WGS84()
	if err != nil {
		t.Fatal(err)
	}
	if o.EPSG != WGS84EPSG {
		t.Errorf("EPSG: want %d, have %d", WGS84EPSG, o.EPSG)
	}
	if len(o.Cells) != len(m.Cells) {
		t.Fatalf("cell count changed: %d != %d", len(o.Cells), len(m.Cells))
	}
	for k, c := range o.Cells {
		if c.I != m.Cells[k].I || c.J != m.Cells[k].J || c.Value != m.Cells[k].Value {
			t.Errorf("cell %d attributes changed during reprojection", k)
		}
		for _, p := range c.Polygon[0] {
			if p.X < 135 || p.X > 145 {
				t.Errorf("cell %d: longitude %g outside Japan", k, p.X)
			}
			if p.Y < 30 || p.Y > 40 {
				t.Errorf("cell %d: latitude %g outside Japan", k, p.Y)
			}
		}
	}
	// The source mesh is untouched.
	if m.EPSG != 3857 || m.Cells[0].Polygon[0][0].X != 15.5e6 {
		t.Error("source mesh modified by reprojection")
	}
}
