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

import "fmt"

const reasonRowCount = "row count does not match grid size"

// MalformedGridError reports a point table that does not form a
// complete rectangular index grid: the row count disagrees with the
// number of distinct I and J values, or an (I,J) combination is missing
// or duplicated.
type MalformedGridError struct {
	Reason     string
	I, J       int // the offending index pair, where applicable
	CntI, CntJ int
	Rows       int
}

func (e *MalformedGridError) Error() string {
	if e.Reason == reasonRowCount {
		return fmt.Sprintf("meshview: malformed grid: %d rows for %d×%d distinct indices",
			e.Rows, e.CntI, e.CntJ)
	}
	return fmt.Sprintf("meshview: malformed grid: %s at I=%d, J=%d", e.Reason, e.I, e.J)
}

// EmptyGridError reports a degenerate grid with fewer than two points
// in either index direction, from which no cell can be formed.
type EmptyGridError struct {
	CntI, CntJ int
}

func (e *EmptyGridError) Error() string {
	return fmt.Sprintf("meshview: grid needs at least 2 points in each direction; have %d×%d",
		e.CntI, e.CntJ)
}

// UnknownCrsError reports an EPSG code that does not resolve to a known
// coordinate reference system. EPSG 0 means the mesh carries no spatial
// reference at all, which is a valid state for planar plotting and GIS
// export but not for operations that need a real projection.
type UnknownCrsError struct {
	EPSG int
}

func (e *UnknownCrsError) Error() string {
	if e.EPSG == 0 {
		return "meshview: mesh has no spatial reference"
	}
	return fmt.Sprintf("meshview: unknown EPSG code %d", e.EPSG)
}
