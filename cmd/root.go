package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ddlkit",
	Short: "A multi-dialect DDL builder and schema validator",
	Long: `ddlkit turns schema definitions into exact, dialect-correct DDL
for PostgreSQL, MySQL, SQLite and SQL Server.

Examples:

  ddlkit init
  ddlkit validate
  ddlkit preview --dialect postgresql
  ddlkit introspect --dialect mysql
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(introspectCmd)
}
