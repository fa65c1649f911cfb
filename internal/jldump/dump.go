// Package jldump pretty-prints table contents for jl's -V (verbose) debug
// flag. This is a debug aid only, not part of the documented delimited
// output format — that format is never passed through a text-reflow
// library.
package jldump

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/ajbruin/jl/internal/jltable"
)

// Tables renders the completed rows of every table in reg as one wrapped
// text table per jltable.Table, in registration order, for display on
// stderr.
func Tables(reg *jltable.Registry) string {
	opts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	var out string
	for i, t := range reg.Tables() {
		header := make([]string, t.NCols)
		for c := range header {
			header[c] = fmt.Sprintf("col%d", c)
		}
		data := [][]string{header}
		data = append(data, t.Completed...)

		title := fmt.Sprintf("table %d (%d rows):", i, len(t.Completed))
		out += rosed.Edit(title).
			InsertTableOpts(1, data, 80, opts).
			String()
		out += "\n\n"
	}

	return out
}
