package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ddlkit/ddlkit/schema"
	"github.com/ddlkit/ddlkit/validator"
)

var (
	validateSchemaFile string
	validateFormat     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "schema.yaml", "Schema file to validate")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a schema file before generating DDL",
	Long: `Validate table definitions from a schema file.

Every failing check is reported, not just the first:
- Table named, at least one column
- Column names present and unique (case-insensitive)
- Foreign keys reference a table and a matching column list

Examples:
  ddlkit validate
  ddlkit validate --schema custom.yaml
  ddlkit validate --format json
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(); err != nil {
			fmt.Println("❌ Schema validation failed:", err)
			os.Exit(1)
		}
	},
}

func runValidate() error {
	tables, err := schema.LoadTablesFromYAML(validateSchemaFile)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	results := validator.ValidateTables(tables)

	if validateFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	allValid := true
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)
	for name, result := range results {
		if result.Valid {
			continue
		}
		allValid = false
		cyan.Printf("table %s:\n", name)
		for _, e := range result.Errors {
			red.Printf("  ✗ %s", e.Message)
			fmt.Printf(" (%s)\n", e.Field)
		}
	}

	if allValid {
		color.Green("✅ Schema validation passed!")
		return nil
	}
	color.Red("❌ Schema validation failed!")
	os.Exit(1)
	return nil
}
