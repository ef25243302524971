package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// table writes tab separated rows as aligned columns.
func table(out io.Writer, header string, rows func(w io.Writer)) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}
