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

package meshviewutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.csv")
	const table = `i,j,x,y,conc
0,0,0,0,1
0,1,0,1,2
1,0,1,0,3
1,1,1,1,4
`
	if err := os.WriteFile(path, []byte(table), 0644); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("InputFile", path)
	Cfg.Set("AttrName", "conc")
	Cfg.Set("EPSG", 4326)
	defer func() {
		Cfg.Set("InputFile", "")
		Cfg.Set("AttrName", "value")
		Cfg.Set("EPSG", 0)
	}()

	m, err := readMesh()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cells) != 1 {
		t.Errorf("want 1 cell, have %d", len(m.Cells))
	}
	if m.AttrName != "conc" || m.EPSG != 4326 {
		t.Errorf("mesh metadata: %q, %d", m.AttrName, m.EPSG)
	}
}

func TestReadMesh_noInput(t *testing.T) {
	Cfg.Set("InputFile", "")
	if _, err := readMesh(); err == nil {
		t.Error("expected an error when no input file is configured")
	}
}

func TestDelimiterRune(t *testing.T) {
	cases := map[string]rune{
		"":    ',',
		",":   ',',
		"tab": '\t',
		"\\t": '\t',
		"\t":  '\t',
		";":   ';',
	}
	for in, want := range cases {
		if have := delimiterRune(in); have != want {
			t.Errorf("%q: want %q, have %q", in, want, have)
		}
	}
}

func TestOptFloat(t *testing.T) {
	Cfg.Set("Min", "")
	v, err := optFloat("Min")
	if err != nil || v != nil {
		t.Errorf("blank: %v, %v", v, err)
	}
	Cfg.Set("Min", "-1.5")
	v, err = optFloat("Min")
	if err != nil || v == nil || *v != -1.5 {
		t.Errorf("-1.5: %v, %v", v, err)
	}
	Cfg.Set("Min", "lots")
	if _, err := optFloat("Min"); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
	Cfg.Set("Min", "")
}
