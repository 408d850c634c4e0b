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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// WGS84EPSG is the EPSG code of the fixed geographic reference that
// web-map rendering expects.
const WGS84EPSG = 4326

// crsDef holds the projection definitions for one EPSG code: a proj4
// string for coordinate transforms and a WKT string for .prj output.
type crsDef struct {
	name  string
	proj4 string
	wkt   string
}

// epsgDefs maps the supported EPSG codes to their definitions. The
// registry covers the systems the grids this tool is used with
// actually come in: WGS84 geographic and web mercator, the WGS84 UTM
// zones, and the JGD2000/JGD2011 geographic and plane rectangular
// systems.
var epsgDefs = map[int]crsDef{}

const (
	wgs84GeogWKT = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`
	jgdGeogWKT   = `GEOGCS["%s",DATUM["%s",SPHEROID["GRS 1980",6378137,298.257222101]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`
)

func init() {
	epsgDefs[4326] = crsDef{
		name:  "WGS 84",
		proj4: "+proj=longlat +datum=WGS84 +no_defs",
		wkt:   wgs84GeogWKT,
	}
	epsgDefs[3857] = crsDef{
		name:  "WGS 84 / Pseudo-Mercator",
		proj4: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
		wkt: `PROJCS["WGS 84 / Pseudo-Mercator",` + wgs84GeogWKT +
			`,PROJECTION["Mercator_1SP"],PARAMETER["central_meridian",0],PARAMETER["scale_factor",1],PARAMETER["false_easting",0],PARAMETER["false_northing",0],UNIT["metre",1]]`,
	}
	epsgDefs[4612] = crsDef{
		name:  "JGD2000",
		proj4: "+proj=longlat +ellps=GRS80 +towgs84=0,0,0 +no_defs",
		wkt:   fmt.Sprintf(jgdGeogWKT, "JGD2000", "Japanese_Geodetic_Datum_2000"),
	}
	epsgDefs[6668] = crsDef{
		name:  "JGD2011",
		proj4: "+proj=longlat +ellps=GRS80 +towgs84=0,0,0 +no_defs",
		wkt:   fmt.Sprintf(jgdGeogWKT, "JGD2011", "Japanese_Geodetic_Datum_2011"),
	}

	// Japan plane rectangular coordinate systems, zones I-XIX.
	// JGD2000: EPSG 2443-2461; JGD2011: EPSG 6669-6687.
	zoneOrigins := [19][2]float64{
		{33, 129.5}, {33, 131}, {36, 132 + 10./60.}, {33, 133.5},
		{36, 134 + 20./60.}, {36, 136}, {36, 137 + 10./60.}, {36, 138.5},
		{36, 139 + 50./60.}, {40, 140 + 50./60.}, {44, 140.25},
		{44, 142.25}, {44, 144.25}, {26, 142}, {26, 127.5}, {26, 124},
		{26, 131}, {20, 136}, {26, 154},
	}
	romans := [19]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII",
		"IX", "X", "XI", "XII", "XIII", "XIV", "XV", "XVI", "XVII", "XVIII", "XIX"}
	for z, o := range zoneOrigins {
		p4 := fmt.Sprintf("+proj=tmerc +lat_0=%g +lon_0=%g +k=0.9999 +x_0=0 +y_0=0 +ellps=GRS80 +towgs84=0,0,0 +units=m +no_defs",
			o[0], o[1])
		for _, d := range []struct {
			epsg  int
			datum string
			dname string
		}{
			{2443 + z, "JGD2000", "Japanese_Geodetic_Datum_2000"},
			{6669 + z, "JGD2011", "Japanese_Geodetic_Datum_2011"},
		} {
			name := fmt.Sprintf("%s / Japan Plane Rectangular CS %s", d.datum, romans[z])
			epsgDefs[d.epsg] = crsDef{
				name:  name,
				proj4: p4,
				wkt: fmt.Sprintf(`PROJCS["%s",%s,PROJECTION["Transverse_Mercator"],PARAMETER["latitude_of_origin",%g],PARAMETER["central_meridian",%g],PARAMETER["scale_factor",0.9999],PARAMETER["false_easting",0],PARAMETER["false_northing",0],UNIT["metre",1]]`,
					name, fmt.Sprintf(jgdGeogWKT, d.datum, d.dname), o[0], o[1]),
			}
		}
	}

	// WGS84 UTM: 32601-32660 north, 32701-32760 south.
	for zone := 1; zone <= 60; zone++ {
		lon0 := float64(-183 + 6*zone)
		epsgDefs[32600+zone] = crsDef{
			name:  fmt.Sprintf("WGS 84 / UTM zone %dN", zone),
			proj4: fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone),
			wkt:   utmWKT(zone, lon0, false),
		}
		epsgDefs[32700+zone] = crsDef{
			name:  fmt.Sprintf("WGS 84 / UTM zone %dS", zone),
			proj4: fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", zone),
			wkt:   utmWKT(zone, lon0, true),
		}
	}
}

func utmWKT(zone int, lon0 float64, south bool) string {
	hemi := "N"
	northing := 0.
	if south {
		hemi = "S"
		northing = 10000000
	}
	return fmt.Sprintf(`PROJCS["WGS 84 / UTM zone %d%s",%s,PROJECTION["Transverse_Mercator"],PARAMETER["latitude_of_origin",0],PARAMETER["central_meridian",%g],PARAMETER["scale_factor",0.9996],PARAMETER["false_easting",500000],PARAMETER["false_northing",%g],UNIT["metre",1]]`,
		zone, hemi, wgs84GeogWKT, lon0, northing)
}

// LookupEPSG resolves an EPSG code to a spatial reference. It returns
// an UnknownCrsError if the code is not in the registry; code 0 (no
// spatial reference) is always unknown.
func LookupEPSG(code int) (*proj.SR, error) {
	def, ok := epsgDefs[code]
	if !ok {
		return nil, &UnknownCrsError{EPSG: code}
	}
	sr, err := proj.Parse(def.proj4)
	if err != nil {
		return nil, fmt.Errorf("meshview: parsing EPSG %d definition: %v", code, err)
	}
	return sr, nil
}

// CrsName returns the human-readable name of an EPSG code, or false if
// the code is not in the registry.
func CrsName(code int) (string, bool) {
	def, ok := epsgDefs[code]
	return def.name, ok
}

// WKT returns the well-known-text definition of an EPSG code for .prj
// output, or false if the code is not in the registry.
func WKT(code int) (string, bool) {
	def, ok := epsgDefs[code]
	return def.wkt, ok
}

// SR resolves the mesh's own EPSG code. Planar meshes (EPSG 0) and
// unregistered codes return an UnknownCrsError; this is the point where
// an invalid code chosen at build time actually surfaces.
func (m *Mesh) SR() (*proj.SR, error) {
	return LookupEPSG(m.EPSG)
}

// WGS84 returns a copy of the mesh reprojected to geographic
// coordinates (EPSG 4326) for map display. Cell order, indices, and
// attribute values are unchanged; only the ring coordinates move.
func (m *Mesh) WGS84() (*Mesh, error) {
	if m.EPSG == WGS84EPSG {
		return m, nil
	}
	src, err := m.SR()
	if err != nil {
		return nil, err
	}
	dst, err := LookupEPSG(WGS84EPSG)
	if err != nil {
		return nil, err
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("meshview: creating transform from EPSG %d: %v", m.EPSG, err)
	}
	o := &Mesh{
		Cells:    make([]*Cell, len(m.Cells)),
		AttrName: m.AttrName,
		EPSG:     WGS84EPSG,
	}
	for i, c := range m.Cells {
		g, err := c.Polygon.Transform(t)
		if err != nil {
			return nil, fmt.Errorf("meshview: reprojecting cell (%d,%d): %v", c.I, c.J, err)
		}
		o.Cells[i] = &Cell{
			Polygon: g.(geom.Polygon),
			I:       c.I,
			J:       c.J,
			Value:   c.Value,
		}
	}
	return o, nil
}
