package accesstrace

import (
	"context"
	"strings"

	"github.com/sarchlab/regio/datarecording"
)

// Query selects recorded accesses. Empty fields match everything.
type Query struct {
	Peripheral string
	Register   string

	// Kind is "read" or "write".
	Kind string

	Limit  int
	Offset int
}

// ReadTrace returns the accesses recorded by a DB tracer that match q, in
// program order, and how many accesses match in total.
func ReadTrace(
	ctx context.Context,
	reader datarecording.DataReader,
	q Query,
) ([]*Entry, int, error) {
	reader.MapTable(TableName, Entry{})

	var (
		conds []string
		args  []any
	)

	for _, c := range []struct {
		column, value string
	}{
		{"Peripheral", q.Peripheral},
		{"Register", q.Register},
		{"Kind", q.Kind},
	} {
		if c.value == "" {
			continue
		}

		conds = append(conds, c.column+" = ?")
		args = append(args, c.value)
	}

	results, total, err := reader.Query(ctx, TableName,
		datarecording.QueryParams{
			Where:   strings.Join(conds, " AND "),
			Args:    args,
			OrderBy: "Seq",
			Limit:   q.Limit,
			Offset:  q.Offset,
		})
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(*Entry))
	}

	return entries, total, nil
}
