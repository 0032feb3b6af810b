package cmd

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regio/mmio"
)

var peekCmd = &cobra.Command{
	Use:   "peek ADDR",
	Short: "Load one 32-bit register through /dev/mem.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addr := mustParseAddr(args[0])

		w := openWindow(cmd, addr)
		defer w.Close()

		fmt.Printf("0x%08x\n", w.Read32(addr))
	},
}

var pokeCmd = &cobra.Command{
	Use:   "poke ADDR VALUE",
	Short: "Store one 32-bit register through /dev/mem.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		addr := mustParseAddr(args[0])

		value, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			log.Fatalf("Error: invalid value %s", args[1])
		}

		w := openWindow(cmd, addr)
		defer w.Close()

		w.Write32(addr, uint32(value))
	},
}

func init() {
	for _, c := range []*cobra.Command{peekCmd, pokeCmd} {
		rootCmd.AddCommand(c)
		c.Flags().String("devmem", "/dev/mem",
			"Memory device, overrides REGIO_DEVMEM")
	}
}

func mustParseAddr(s string) uintptr {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil || addr%4 != 0 {
		log.Fatalf("Error: invalid register address %s", s)
	}

	return uintptr(addr)
}

func openWindow(cmd *cobra.Command, addr uintptr) *mmio.Window {
	path := stringSetting(cmd, "devmem", "REGIO_DEVMEM")

	w, err := mmio.OpenWindow(path, addr, 4)
	if err != nil {
		log.Fatalf("Error opening %s: %v", path, err)
	}

	return w
}
