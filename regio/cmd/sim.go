package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/datarecording"
	"github.com/sarchlab/regio/instrumentation/accesstrace"
	"github.com/sarchlab/regio/mmio/mmiosim"
	"github.com/sarchlab/regio/monitoring"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Serve a simulated chip with the register inspector.",
	Long: "`sim --chip chip.yaml` builds a simulated address space with the " +
		"reset value of every register and serves it over HTTP until " +
		"interrupted. `--trace-db path` records every access into SQLite.",
	Run: func(cmd *cobra.Command, _ []string) {
		chipPath, _ := cmd.Flags().GetString("chip")
		open, _ := cmd.Flags().GetBool("open")
		verbose, _ := cmd.Flags().GetBool("verbose")
		traceDB := stringSetting(cmd, "trace-db", "REGIO_TRACE_DB")

		port, err := intSetting(cmd, "port", "REGIO_MONITOR_PORT")
		if err != nil {
			log.Fatalf("Error: invalid port: %v", err)
		}

		chip, err := chipdesc.LoadFile(chipPath)
		if err != nil {
			log.Fatalf("Error loading %s: %v", chipPath, err)
		}

		var recorder datarecording.DataRecorder
		if traceDB != "" {
			recorder = datarecording.New(traceDB)
		}

		sim, counter := buildSim(chip, recorder, verbose)

		m := monitoring.NewMonitor()
		if port > 0 {
			m = m.WithPortNumber(port)
		}

		m.RegisterChip(chip, sim)
		url := m.StartServer()

		if open {
			err = monitoring.OpenBrowser(url)
			if err != nil {
				log.Printf("Cannot open browser: %v", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		<-ctx.Done()

		fmt.Fprintf(os.Stderr, "%d register accesses served\n",
			sim.NumAccesses())
		printCounts(os.Stderr, counter)

		if recorder != nil {
			err = recorder.Close()
			if err != nil {
				log.Fatalf("Error closing trace database: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().String("chip", "", "Path to the chip description")
	simCmd.Flags().Int("port", 0,
		"Port of the inspector, overrides REGIO_MONITOR_PORT")
	simCmd.Flags().Bool("open", false, "Open the inspector in a browser")
	simCmd.Flags().String("trace-db", "",
		"Record accesses into this SQLite file, overrides REGIO_TRACE_DB")
	simCmd.Flags().BoolP("verbose", "v", false, "Print every access")
	_ = simCmd.MarkFlagRequired("chip")
}

// buildSim creates the simulated address space of chip. Accesses are
// counted, recorded when recorder is not nil and printed when verbose is set.
func buildSim(
	chip *chipdesc.Chip,
	recorder datarecording.DataRecorder,
	verbose bool,
) (*mmiosim.Sim, *accesstrace.CountTracer) {
	counter := accesstrace.NewCountTracer(nil, chip)
	b := mmiosim.MakeBuilder().WithoutAccessLog().WithHook(counter)

	if recorder != nil {
		b = b.WithHook(accesstrace.NewDBTracer(recorder, chip))
	}

	if verbose {
		logger := log.New(os.Stderr, "", 0)
		b = b.WithHook(accesstrace.NewLogTracer(logger, chip))
	}

	sim := b.Build(chip.Name)
	sim.LoadChip(chip)

	return sim, counter
}

func printCounts(w io.Writer, counter *accesstrace.CountTracer) {
	for _, name := range counter.Names() {
		fmt.Fprintf(w, "  %-24s %6d reads %6d writes\n",
			name, counter.Reads(name), counter.Writes(name))
	}
}
