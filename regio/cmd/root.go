// Package cmd provides the command-line interface for regio.
package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "regio",
	Short: "regio generates and inspects typed memory-mapped registers.",
	Long: `regio turns YAML chip descriptions into Go packages of typed ` +
		`register accessors. It can also read and write registers through ` +
		`/dev/mem and serve a simulated chip with a register inspector.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		loadEnv()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnv reads the .env file of the working directory, if any. Variables
// already set in the environment win.
func loadEnv() {
	_ = godotenv.Load()
}

// stringSetting returns the flag value when it is set on the command line,
// then the environment variable, then the flag default.
func stringSetting(cmd *cobra.Command, flag, env string) string {
	v, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return v
	}

	if ev, ok := os.LookupEnv(env); ok && ev != "" {
		return ev
	}

	return v
}

func intSetting(cmd *cobra.Command, flag, env string) (int, error) {
	v, _ := cmd.Flags().GetInt(flag)
	if cmd.Flags().Changed(flag) {
		return v, nil
	}

	if ev, ok := os.LookupEnv(env); ok && ev != "" {
		return strconv.Atoi(ev)
	}

	return v, nil
}
