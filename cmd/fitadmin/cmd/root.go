package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitadmin",
	Short: "Administrative tasks for the fittrack database",
	Long: `fitadmin manages the fittrack PostgreSQL schema.
The connection string is taken from --dsn, then DATABASE_DSN, then the
server's JSON config (CONFIG), then the built-in default.`,
	SilenceUsage: true,
}

var dsn string

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")
}
