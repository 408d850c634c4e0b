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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom/carto"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"

	"github.com/spatialmodel/meshview"
)

// dbfNameLength is the dBASE attribute field name limit.
const dbfNameLength = 10

// attrFieldName shortens the mesh attribute column name to something a
// dBASE table can hold. An empty name falls back to "value".
func attrFieldName(name string) string {
	if name == "" {
		name = "value"
	}
	if len(name) > dbfNameLength {
		name = name[:dbfNameLength]
	}
	return name
}

// writeShapefile writes the mesh to path (ending in .shp) along with
// the .shx and .dbf siblings, and a .prj sidecar when the mesh carries
// a spatial reference. A planar mesh legitimately has no spatial
// reference, so no .prj is written and no complaint is raised; an EPSG
// code that is set but unknown is a real problem and fails here.
func writeShapefile(m *meshview.Mesh, path string) error {
	fields := []goshp.Field{
		goshp.NumberField("I", 10),
		goshp.NumberField("J", 10),
		goshp.FloatField(attrFieldName(m.AttrName), 19, 10),
	}
	e, err := shp.NewEncoderFromFields(path, goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("export: creating shapefile: %v", err)
	}
	for _, c := range m.Cells {
		if err := e.EncodeFields(c.Polygon, c.I, c.J, c.Value); err != nil {
			e.Close()
			return fmt.Errorf("export: encoding cell (%d,%d): %v", c.I, c.J, err)
		}
	}
	e.Close()

	if m.EPSG == 0 {
		return nil
	}
	wkt, ok := meshview.WKT(m.EPSG)
	if !ok {
		return &meshview.UnknownCrsError{EPSG: m.EPSG}
	}
	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	return os.WriteFile(prj, []byte(wkt), 0644)
}

// featureCollection is a GeoJSON FeatureCollection document. The crs
// member is a legacy extension but remains the conventional way to tag
// a projected FeatureCollection with its EPSG code.
type featureCollection struct {
	Type     string     `json:"type"`
	CRS      *carto.Crs `json:"crs,omitempty"`
	Features []*feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// writeGeoJSON writes the mesh to path as a FeatureCollection with one
// polygon feature per cell carrying I, J, and the attribute value.
func writeGeoJSON(m *meshview.Mesh, path string) error {
	fc := &featureCollection{
		Type:     "FeatureCollection",
		Features: make([]*feature, len(m.Cells)),
	}
	if m.EPSG != 0 {
		if _, ok := meshview.CrsName(m.EPSG); !ok {
			return &meshview.UnknownCrsError{EPSG: m.EPSG}
		}
		fc.CRS = &carto.Crs{
			Type: "name",
			Properties: carto.CrsProps{
				Name: fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", m.EPSG),
			},
		}
	}
	attr := m.AttrName
	if attr == "" {
		attr = "value"
	}
	for i, c := range m.Cells {
		g, err := geojson.ToGeoJSON(c.Polygon)
		if err != nil {
			return fmt.Errorf("export: encoding cell (%d,%d): %v", c.I, c.J, err)
		}
		fc.Features[i] = &feature{
			Type:     "Feature",
			Geometry: g,
			Properties: map[string]interface{}{
				"I":  c.I,
				"J":  c.J,
				attr: c.Value,
			},
		}
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
