package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regio/chipdesc"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a chip description and print its register map.",
	Run: func(cmd *cobra.Command, _ []string) {
		chipPath, _ := cmd.Flags().GetString("chip")

		chip, err := chipdesc.LoadFile(chipPath)
		if err != nil {
			log.Fatalf("Error checking %s:\n%v", chipPath, err)
		}

		printSummary(os.Stdout, chip)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("chip", "", "Path to the chip description")
	_ = checkCmd.MarkFlagRequired("chip")
}

func printSummary(w io.Writer, chip *chipdesc.Chip) {
	fmt.Fprintf(w, "%s: %d peripherals\n", chip.Name, len(chip.Peripherals))

	for _, p := range chip.Peripherals {
		fmt.Fprintf(w, "  %-16s 0x%08x  %d registers\n",
			p.Name, p.Base, len(p.Registers))

		for _, r := range p.Registers {
			name := r.Name
			if r.IsArray() {
				name = fmt.Sprintf("%s[%d]", r.Name, r.Dim)
			}

			fmt.Fprintf(w, "    +0x%03x  %-20s %s  reset 0x%08x\n",
				r.Offset, name, r.Access, r.Reset)
		}
	}
}
