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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// PointReadOptions controls how a point table is read from delimited
// text or a spreadsheet. Column numbers are 1-based; the zero value
// means the default layout of I, J, X, Y, value in columns 1-5 with a
// single header line and comma delimiters.
type PointReadOptions struct {
	Comma       rune // field delimiter; 0 means ','
	HeaderLines int  // leading lines to skip
	ColI        int
	ColJ        int
	ColX        int
	ColY        int
	ColV        int
}

func (o PointReadOptions) withDefaults() PointReadOptions {
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.ColI == 0 && o.ColJ == 0 && o.ColX == 0 && o.ColY == 0 && o.ColV == 0 {
		o.ColI, o.ColJ, o.ColX, o.ColY, o.ColV = 1, 2, 3, 4, 5
		if o.HeaderLines == 0 {
			o.HeaderLines = 1
		}
	}
	return o
}

func (o PointReadOptions) maxCol() int {
	max := o.ColI
	for _, c := range []int{o.ColJ, o.ColX, o.ColY, o.ColV} {
		if c > max {
			max = c
		}
	}
	return max
}

// ReadPoints reads a point table from delimited text. Whitespace around
// field values is ignored. Reading stops with an error at the first row
// that cannot be parsed according to the column mapping.
func ReadPoints(r io.Reader, opts PointReadOptions) ([]PointRecord, error) {
	opts = opts.withDefaults()
	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var points []PointRecord
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("meshview: reading point table line %d: %v", line, err)
		}
		if line <= opts.HeaderLines {
			continue
		}
		p, err := parsePointFields(rec, opts)
		if err != nil {
			return nil, fmt.Errorf("meshview: point table line %d: %v", line, err)
		}
		points = append(points, p)
	}
	return points, nil
}

// ReadPointsXLSX reads a point table from the named sheet of an Excel
// file. An empty sheet name selects the first sheet in the file.
func ReadPointsXLSX(filename, sheet string, opts PointReadOptions) ([]PointRecord, error) {
	opts = opts.withDefaults()
	f, err := xlsx.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("meshview: opening xlsx file: %v", err)
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("meshview: xlsx file %s has no sheets", filename)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		s, ok = f.Sheet[sheet]
		if !ok {
			return nil, fmt.Errorf("meshview: xlsx file %s has no sheet %s", filename, sheet)
		}
	}

	var points []PointRecord
	for ri, row := range s.Rows {
		if ri < opts.HeaderLines {
			continue
		}
		fields := make([]string, len(row.Cells))
		for ci, cell := range row.Cells {
			fields[ci] = cell.Value
		}
		if blankRow(fields) {
			continue
		}
		p, err := parsePointFields(fields, opts)
		if err != nil {
			return nil, fmt.Errorf("meshview: xlsx sheet %s row %d: %v", s.Name, ri+1, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parsePointFields(fields []string, opts PointReadOptions) (PointRecord, error) {
	var p PointRecord
	if len(fields) < opts.maxCol() {
		return p, fmt.Errorf("have %d columns, need %d", len(fields), opts.maxCol())
	}
	field := func(col int) string {
		return strings.TrimSpace(fields[col-1])
	}
	var err error
	if p.I, err = strconv.Atoi(field(opts.ColI)); err != nil {
		return p, fmt.Errorf("I number: %v", err)
	}
	if p.J, err = strconv.Atoi(field(opts.ColJ)); err != nil {
		return p, fmt.Errorf("J number: %v", err)
	}
	if p.X, err = strconv.ParseFloat(field(opts.ColX), 64); err != nil {
		return p, fmt.Errorf("X coordinate: %v", err)
	}
	if p.Y, err = strconv.ParseFloat(field(opts.ColY), 64); err != nil {
		return p, fmt.Errorf("Y coordinate: %v", err)
	}
	if p.Value, err = strconv.ParseFloat(field(opts.ColV), 64); err != nil {
		return p, fmt.Errorf("attribute value: %v", err)
	}
	return p, nil
}
