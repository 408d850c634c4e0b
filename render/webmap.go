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

package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"github.com/ctessum/geom/encoding/geojson"

	"github.com/spatialmodel/meshview"
)

// Tile is a web tile service used as the base layer of the interactive
// map.
type Tile struct {
	Name        string
	Attribution string
	URL         string
}

// DefaultTiles is the built-in base map catalog: OpenStreetMap and the
// Geospatial Information Authority of Japan (GSI) tile services.
var DefaultTiles = []Tile{
	{
		Name:        "openstreetmap",
		Attribution: "©OpenStreetMap contributors, CC BY-SA",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
	},
	{
		Name:        "gsi-std",
		Attribution: "GSI Tiles, standard map (https://maps.gsi.go.jp/development/ichiran.html)",
		URL:         "https://cyberjapandata.gsi.go.jp/xyz/std/{z}/{x}/{y}.png",
	},
	{
		Name:        "gsi-pale",
		Attribution: "GSI Tiles, pale map (https://maps.gsi.go.jp/development/ichiran.html)",
		URL:         "https://cyberjapandata.gsi.go.jp/xyz/pale/{z}/{x}/{y}.png",
	},
	{
		Name:        "gsi-photo",
		Attribution: "GSI Tiles, orthophoto (https://maps.gsi.go.jp/development/ichiran.html)",
		URL:         "https://cyberjapandata.gsi.go.jp/xyz/seamlessphoto/{z}/{x}/{y}.jpg",
	},
}

// TileByName finds a tile service in the default catalog.
func TileByName(name string) (Tile, bool) {
	for _, t := range DefaultTiles {
		if t.Name == name {
			return t, true
		}
	}
	return Tile{}, false
}

// MapOptions controls interactive map appearance.
type MapOptions struct {
	Dummy       *float64
	Min, Max    *float64
	Scheme      carto.Colorlist
	MeshOpacity float64 // 0 means 0.7
	Tile        Tile    // zero value means DefaultTiles[0]
	TileOpacity float64 // 0 means 0.7
	Zoom        *int    // nil means 12; 0 is the whole-world view
}

// MapFigure is a rendered interactive choropleth map. WriteHTML
// serializes it as a single self-contained HTML document; no
// intermediate files are involved.
type MapFigure struct {
	data webMapData
}

type webMapData struct {
	Title       string
	Attr        string
	GeoJSON     template.JS
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TileURL     string
	TileAttrib  string
	TileOpacity float64
	MeshOpacity float64
}

type webMapFeature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties webMapProps       `json:"properties"`
}

type webMapProps struct {
	IJ    string  `json:"ij"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill"`
}

// WebMap renders the mesh as an interactive choropleth map over a web
// tile base layer. The mesh must carry a resolvable spatial reference;
// a planar or unknown EPSG code surfaces as an UnknownCrsError, at
// which point the caller should fall back to the static planar figure.
func WebMap(m *meshview.Mesh, o MapOptions) (*MapFigure, error) {
	wm, err := m.WGS84()
	if err != nil {
		return nil, err
	}
	cells := filterCells(wm, o.Dummy)
	scale, err := colorMap(cells, Options{Min: o.Min, Max: o.Max, Scheme: o.Scheme})
	if err != nil {
		return nil, err
	}

	features := make([]*webMapFeature, len(cells))
	for i, c := range cells {
		g, err := geojson.ToGeoJSON(c.Polygon)
		if err != nil {
			return nil, fmt.Errorf("render: encoding cell (%d,%d): %v", c.I, c.J, err)
		}
		fill := scale.color(c.Value)
		features[i] = &webMapFeature{
			Type:     "Feature",
			Geometry: g,
			Properties: webMapProps{
				IJ:    fmt.Sprintf("%d, %d", c.I, c.J),
				Value: c.Value,
				Fill:  fmt.Sprintf("#%02x%02x%02x", fill.R, fill.G, fill.B),
			},
		}
	}
	fc := struct {
		Type     string           `json:"type"`
		Features []*webMapFeature `json:"features"`
	}{"FeatureCollection", features}
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, err
	}

	bounds := geom.NewBounds()
	for _, c := range cells {
		bounds.Extend(c.Polygon.Bounds())
	}
	tile := o.Tile
	if tile == (Tile{}) {
		tile = DefaultTiles[0]
	}
	zoom := 12
	if o.Zoom != nil {
		zoom = *o.Zoom
	}
	meshOpacity := o.MeshOpacity
	if meshOpacity == 0 {
		meshOpacity = 0.7
	}
	tileOpacity := o.TileOpacity
	if tileOpacity == 0 {
		tileOpacity = 0.7
	}

	return &MapFigure{data: webMapData{
		Title:       "MeshView",
		Attr:        attrLabel(m.AttrName),
		GeoJSON:     template.JS(b),
		CenterLat:   (bounds.Min.Y + bounds.Max.Y) / 2,
		CenterLon:   (bounds.Min.X + bounds.Max.X) / 2,
		Zoom:        zoom,
		TileURL:     tile.URL,
		TileAttrib:  tile.Attribution,
		TileOpacity: tileOpacity,
		MeshOpacity: meshOpacity,
	}}, nil
}

func attrLabel(name string) string {
	if name == "" {
		return "value"
	}
	return name
}

var webMapTemplate = template.Must(template.New("webmap").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('{{.TileURL}}', {
	attribution: '{{.TileAttrib}}',
	opacity: {{.TileOpacity}}
}).addTo(map);
var mesh = {{.GeoJSON}};
L.geoJSON(mesh, {
	style: function (f) {
		return {
			color: f.properties.fill,
			weight: 1,
			fillColor: f.properties.fill,
			fillOpacity: {{.MeshOpacity}}
		};
	},
	onEachFeature: function (f, layer) {
		layer.bindPopup('(I, J) = (' + f.properties.ij + ')<br>' +
			'{{.Attr}} = ' + f.properties.value);
	}
}).addTo(map);
</script>
</body>
</html>
`))

// WriteHTML writes the map as a single HTML document.
func (f *MapFigure) WriteHTML(w io.Writer) error {
	return webMapTemplate.Execute(w, f.data)
}
