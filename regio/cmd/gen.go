package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/regiogen"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate register accessor packages from a chip description.",
	Long: "`gen --chip chip.yaml --out dir` writes one package per " +
		"peripheral under dir. `--peripheral name` limits the output to " +
		"one peripheral.",
	Run: func(cmd *cobra.Command, _ []string) {
		chipPath, _ := cmd.Flags().GetString("chip")
		outDir, _ := cmd.Flags().GetString("out")
		only, _ := cmd.Flags().GetString("peripheral")

		written, err := runGen(chipPath, outDir, only)
		if err != nil {
			log.Fatalf("Error generating accessors: %v", err)
		}

		for _, path := range written {
			fmt.Fprintf(os.Stderr, "Generated %s\n", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().String("chip", "", "Path to the chip description")
	genCmd.Flags().StringP("out", "o", ".", "Output directory")
	genCmd.Flags().String("peripheral", "",
		"Only generate the named peripheral")
	_ = genCmd.MarkFlagRequired("chip")
}

func runGen(chipPath, outDir, only string) ([]string, error) {
	chip, err := chipdesc.LoadFile(chipPath)
	if err != nil {
		return nil, err
	}

	if only != "" {
		p := chip.Peripheral(only)
		if p == nil {
			return nil, fmt.Errorf("peripheral %s is not in %s", only, chipPath)
		}

		chip.Peripherals = []*chipdesc.Peripheral{p}
	}

	return regiogen.GenerateAll(chip, outDir, filepath.Base(chipPath))
}
