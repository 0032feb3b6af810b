package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regio/datarecording"
	"github.com/sarchlab/regio/instrumentation/accesstrace"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the register accesses recorded by `sim --trace-db`.",
	Long: "`trace --db file` prints the recorded accesses in program order. " +
		"`--peripheral`, `--register` and `--kind` filter them; `--limit` " +
		"and `--offset` page through them.",
	Run: func(cmd *cobra.Command, _ []string) {
		path := stringSetting(cmd, "db", "REGIO_TRACE_DB")
		if path == "" {
			log.Fatalf("Error: no trace database, use --db or REGIO_TRACE_DB")
		}

		q := accesstrace.Query{}
		q.Peripheral, _ = cmd.Flags().GetString("peripheral")
		q.Register, _ = cmd.Flags().GetString("register")
		q.Kind, _ = cmd.Flags().GetString("kind")
		q.Limit, _ = cmd.Flags().GetInt("limit")
		q.Offset, _ = cmd.Flags().GetInt("offset")

		err := runTrace(cmd.Context(), os.Stdout, path, q)
		if err != nil {
			log.Fatalf("Error reading trace: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("db", "",
		"Trace database written by sim, overrides REGIO_TRACE_DB")
	traceCmd.Flags().String("peripheral", "", "Only accesses to this peripheral")
	traceCmd.Flags().String("register", "",
		"Only accesses to this register, name[i] for array elements")
	traceCmd.Flags().String("kind", "", "Only read or write accesses")
	traceCmd.Flags().Int("limit", 100, "Maximum number of accesses, 0 for all")
	traceCmd.Flags().Int("offset", 0, "Number of accesses to skip")
}

// traceFile accepts the database path with or without the .sqlite3 suffix
// that sim appends.
func traceFile(path string) string {
	if _, err := os.Stat(path); err != nil {
		if _, err := os.Stat(path + ".sqlite3"); err == nil {
			return path + ".sqlite3"
		}
	}

	return path
}

func runTrace(
	ctx context.Context,
	w io.Writer,
	path string,
	q accesstrace.Query,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch q.Kind {
	case "", "read", "write":
	default:
		return fmt.Errorf("unknown access kind %q", q.Kind)
	}

	reader, err := datarecording.NewReader(traceFile(path))
	if err != nil {
		return err
	}
	defer reader.Close()

	entries, total, err := accesstrace.ReadTrace(ctx, reader, q)
	if err != nil {
		return err
	}

	for _, e := range entries {
		name := "-"
		if e.Peripheral != "" {
			name = e.Peripheral + "." + e.Register
		}

		fmt.Fprintf(w, "%8d  %-5s  0x%08x  0x%08x  %s\n",
			e.Seq, e.Kind, e.Address, e.Value, name)
	}

	fmt.Fprintf(w, "%d of %d accesses\n", len(entries), total)

	return nil
}
