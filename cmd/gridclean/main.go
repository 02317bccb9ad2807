/*
Copyright © 2024 the GridClean authors.
This file is part of GridClean.

GridClean is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GridClean is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GridClean.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command gridclean is a command-line interface for the GridClean
// grid-cleaning effectiveness model.
package main

import (
	"fmt"
	"os"

	"github.com/chambersim/gridclean/gridcleanutil"
)

func main() {
	if err := gridcleanutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
