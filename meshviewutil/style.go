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
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom/carto"

	"github.com/spatialmodel/meshview/render"
)

// Style holds figure styling read from a TOML file. The zero value is
// usable and means the built-in defaults.
type Style struct {
	// Scheme is the color scheme name: "optimized" (the default),
	// "greyscale", "jet", or "jet-positive".
	Scheme string

	// MeshOpacity and TileOpacity set the fill opacities on the
	// interactive map. Zero means the render package defaults.
	MeshOpacity float64
	TileOpacity float64

	// Tiles are additional web tile services, looked up by name before
	// the built-in catalog.
	Tiles []render.Tile
}

// LoadStyle reads a TOML style file. An empty path returns the default
// style.
func LoadStyle(path string) (*Style, error) {
	s := new(Style)
	if path == "" {
		return s, nil
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("meshviewutil: opening style file: %v", err)
	}
	defer f.Close()
	if _, err := toml.DecodeReader(f, s); err != nil {
		return nil, fmt.Errorf("meshviewutil: reading style file: %v", err)
	}
	return s, nil
}

// Colorlist resolves the color scheme name.
func (s *Style) Colorlist() (carto.Colorlist, error) {
	switch s.Scheme {
	case "", "optimized":
		return carto.Optimized, nil
	case "greyscale":
		return carto.OptimizedGrey, nil
	case "jet":
		return carto.Jet, nil
	case "jet-positive":
		return carto.JetPosOnly, nil
	}
	return carto.Colorlist{}, fmt.Errorf("meshviewutil: unknown color scheme %q", s.Scheme)
}

// Tile finds a tile service by name, preferring services defined in the
// style file over the built-in catalog. An empty name means the first
// built-in service.
func (s *Style) Tile(name string) (render.Tile, error) {
	if name == "" {
		return render.DefaultTiles[0], nil
	}
	for _, t := range s.Tiles {
		if t.Name == name {
			return t, nil
		}
	}
	if t, ok := render.TileByName(name); ok {
		return t, nil
	}
	return render.Tile{}, fmt.Errorf("meshviewutil: unknown tile service %q", name)
}
