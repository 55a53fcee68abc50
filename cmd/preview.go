package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/generator"
	"github.com/ddlkit/ddlkit/schema"
	"github.com/ddlkit/ddlkit/validator"
)

var (
	previewSchemaFile string
	previewDialect    string
	previewSkipChecks bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewSchemaFile, "schema", "s", "schema.yaml", "Schema file to preview")
	previewCmd.Flags().StringVarP(&previewDialect, "dialect", "d", "postgresql", "Target dialect (postgresql, mysql, sqlite, mssql)")
	previewCmd.Flags().BoolVar(&previewSkipChecks, "skip-validation", false, "Emit DDL even when validation fails")
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the exact CREATE TABLE DDL for a schema file",
	Long: `Print the DDL that would be executed for every table in the schema
file. The output is byte-identical to what the execution layer receives.

Examples:
  ddlkit preview
  ddlkit preview --dialect mysql
  ddlkit preview -s custom.yaml -d mssql
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPreview(); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

func runPreview() error {
	d, ok := dialect.Parse(previewDialect)
	if !ok {
		return fmt.Errorf("unknown dialect %q", previewDialect)
	}

	tables, err := schema.LoadTablesFromYAML(previewSchemaFile)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	if !previewSkipChecks {
		for _, t := range tables {
			result := validator.ValidateTableDefinition(t)
			if !result.Valid {
				for _, e := range result.Errors {
					color.Red("  ✗ %s: %s", t.Name, e.Message)
				}
				return fmt.Errorf("schema is invalid, fix the errors above or pass --skip-validation")
			}
		}
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(generator.BuildPreviewDDL(t, d))
	}
	return nil
}
