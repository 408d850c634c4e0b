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

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spatialmodel/meshview"
)

// ImageWriter is a rendered static figure that can serialize itself in
// a given image format. The exporter never renders figures; it only
// serializes ones it is given.
type ImageWriter interface {
	WriteImage(w io.Writer, ext string) error
}

// HTMLWriter is a rendered interactive figure that can serialize itself
// as a single self-contained HTML document.
type HTMLWriter interface {
	WriteHTML(w io.Writer) error
}

// Raster serializes a rendered static figure as plot.<ext> inside a
// deflate-compressed zip archive and returns the archive bytes. The
// figure is written straight into the in-memory archive; no temporary
// files are involved.
func Raster(fig ImageWriter, format RasterFormat) ([]byte, error) {
	switch format {
	case PNG, PDF, SVG:
	default:
		return nil, &UnsupportedFormatError{Format: format.String()}
	}
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "plot." + format.Ext(),
		Method: zip.Deflate,
	})
	if err != nil {
		return nil, err
	}
	if err := fig.WriteImage(w, format.Ext()); err != nil {
		return nil, fmt.Errorf("export: serializing figure: %v", err)
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InteractiveMap serializes a rendered interactive map figure as
// map.html inside a deflate-compressed zip archive and returns the
// archive bytes.
func InteractiveMap(fig HTMLWriter) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "map.html",
		Method: zip.Deflate,
	})
	if err != nil {
		return nil, err
	}
	if err := fig.WriteHTML(w); err != nil {
		return nil, fmt.Errorf("export: serializing map figure: %v", err)
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Vector serializes the mesh's polygons and attribute values to a GIS
// vector format and returns the sibling files bundled into a
// deflate-compressed zip archive. The format drivers write real files,
// so a temporary directory is acquired for the duration of the call and
// removed on every exit path.
func Vector(m *meshview.Mesh, format VectorFormat) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "meshview-export")
	if err != nil {
		return nil, fmt.Errorf("export: creating temporary directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	const base = "mesh"
	switch format {
	case Shapefile:
		err = writeShapefile(m, filepath.Join(tmpDir, base+".shp"))
	case GeoJSON:
		err = writeGeoJSON(m, filepath.Join(tmpDir, base+".geojson"))
	default:
		return nil, &UnsupportedFormatError{Format: format.String()}
	}
	if err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(tmpDir, base+".*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.Base(file),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(b); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
