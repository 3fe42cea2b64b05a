package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/odesim/internal/sim"
)

var csvHeader = []string{"variant", "index", "x", "y", "exact", "rel_err_pct", "status", "error"}

// WriteCSV writes one line per row of every variant. Cells without a value
// are left empty.
func WriteCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, v := range res.Variants {
		rows, err := res.Rows(v.Name)
		if err != nil {
			return err
		}
		for _, r := range rows {
			line := []string{
				v.Name,
				strconv.Itoa(r.Index),
				formatFloat(r.X),
				"",
				"",
				"",
				string(r.Status),
				r.Err,
			}
			if !r.Failed() {
				line[3] = formatFloat(r.Y)
			}
			if r.HasExact {
				line[4] = formatFloat(r.Exact)
			}
			if r.HasError() {
				line[5] = formatFloat(r.RelErrPct)
			}
			if err := cw.Write(line); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
