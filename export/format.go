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

// Package export serializes meshes and rendered figures into
// deflate-compressed zip archives for download.
package export

import "fmt"

// UnsupportedFormatError reports a requested export format that this
// package does not implement.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("export: unsupported format %q", e.Format)
}

// RasterFormat enumerates the static-figure image formats.
type RasterFormat int

const (
	PNG RasterFormat = iota
	PDF
	SVG
)

// Ext returns the file extension for the format, without the dot.
func (f RasterFormat) Ext() string {
	switch f {
	case PNG:
		return "png"
	case PDF:
		return "pdf"
	case SVG:
		return "svg"
	}
	return fmt.Sprintf("RasterFormat(%d)", int(f))
}

func (f RasterFormat) String() string { return f.Ext() }

// ParseRasterFormat maps a format name to a RasterFormat, returning an
// UnsupportedFormatError for anything it does not recognize.
func ParseRasterFormat(s string) (RasterFormat, error) {
	switch s {
	case "png":
		return PNG, nil
	case "pdf":
		return PDF, nil
	case "svg":
		return SVG, nil
	}
	return 0, &UnsupportedFormatError{Format: s}
}

// VectorFormat enumerates the GIS vector formats. Each format knows the
// fixed set of sibling files it produces; there is no runtime driver
// lookup.
type VectorFormat int

const (
	// Shapefile is the ESRI Shapefile format: mesh.shp, mesh.shx, and
	// mesh.dbf, plus mesh.prj when the mesh has a spatial reference.
	Shapefile VectorFormat = iota
	// GeoJSON is a single mesh.geojson FeatureCollection document.
	GeoJSON
)

// Extensions returns the file extensions a format always produces. The
// shapefile .prj sidecar depends on the mesh having a spatial reference
// and is not included here.
func (f VectorFormat) Extensions() []string {
	switch f {
	case Shapefile:
		return []string{"shp", "shx", "dbf"}
	case GeoJSON:
		return []string{"geojson"}
	}
	return nil
}

func (f VectorFormat) String() string {
	switch f {
	case Shapefile:
		return "shapefile"
	case GeoJSON:
		return "geojson"
	}
	return fmt.Sprintf("VectorFormat(%d)", int(f))
}

// ParseVectorFormat maps a format name to a VectorFormat, returning an
// UnsupportedFormatError for anything it does not recognize.
// GeoPackage ("gpkg") is intentionally not implemented and parses as
// unsupported.
func ParseVectorFormat(s string) (VectorFormat, error) {
	switch s {
	case "shp", "shapefile":
		return Shapefile, nil
	case "geojson":
		return GeoJSON, nil
	}
	return 0, &UnsupportedFormatError{Format: s}
}
