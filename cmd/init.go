package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterSchema = `tables:
  - name: users
    columns:
      - name: id
        type: serial
        primary: true
        nullable: false
      - name: email
        type: varchar
        length: 255
        nullable: false
        unique: true
      - name: name
        type: text
      - name: created_at
        type: timestamptz
        nullable: false
        default: now()
        default_as: expression
    indexes:
      - columns: [email]
        unique: true
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter schema.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat("schema.yaml"); err == nil {
			fmt.Println("⚠️  schema.yaml already exists, not overwriting.")
			return
		}
		if err := os.WriteFile("schema.yaml", []byte(starterSchema), 0644); err != nil {
			fmt.Println("❌ Writing schema.yaml:", err)
			os.Exit(1)
		}
		fmt.Println("✅ Created schema.yaml")
	},
}
