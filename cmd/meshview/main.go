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

// Command meshview is a command-line interface for the MeshView grid
// visualization tool.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/meshview/meshviewutil"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func main() {
	if err := meshviewutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
