package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ddlkit/ddlkit/database"
	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/generator"
	"github.com/ddlkit/ddlkit/introspect"
	"github.com/ddlkit/ddlkit/utils"
)

var (
	introspectDialect string
	introspectSchema  string
)

func init() {
	introspectCmd.Flags().StringVarP(&introspectDialect, "dialect", "d", "postgresql", "Source dialect (postgresql, mysql, sqlite, mssql)")
	introspectCmd.Flags().StringVar(&introspectSchema, "db-schema", "", "Schema/database to introspect (defaults to the dialect's implicit schema)")
}

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Read a live database and print its schema as DDL",
	Long: `Connect to the database in DATABASE_URL, read its catalog metadata
and print the equivalent CREATE TABLE DDL. The round trip goes through the
same synthesizer as previews, so introspected output is directly replayable.

Examples:
  DATABASE_URL=postgres://... ddlkit introspect
  DATABASE_URL=user:pass@/dbname ddlkit introspect --dialect mysql --db-schema dbname
  DATABASE_URL=./app.db ddlkit introspect --dialect sqlite
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runIntrospect(); err != nil {
			fmt.Println("❌ Introspecting database:", err)
			os.Exit(1)
		}
	},
}

func runIntrospect() error {
	d, ok := dialect.Parse(introspectDialect)
	if !ok {
		return fmt.Errorf("unknown dialect %q", introspectDialect)
	}

	ctx := context.Background()
	ins, closeFn, err := newIntrospector(ctx, d)
	if err != nil {
		return err
	}
	defer closeFn()

	tables, err := ins.Tables(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		color.Yellow("⚠️  No tables found.")
		return nil
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(generator.BuildPreviewDDL(t, d))
	}
	return nil
}

func newIntrospector(ctx context.Context, d dialect.Dialect) (introspect.Introspector, func(), error) {
	switch d {
	case dialect.Postgres:
		pool, err := database.GetPool()
		if err != nil {
			return nil, nil, err
		}
		return introspect.NewPostgresIntrospector(pool, introspectSchema), database.ClosePool, nil

	case dialect.MySQL:
		db, err := database.OpenMySQL(ctx, utils.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		return introspect.NewMySQLIntrospector(db, introspectSchema), func() { db.Close() }, nil

	case dialect.SQLite:
		db, err := database.OpenSQLite(ctx, utils.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		return introspect.NewSQLiteIntrospector(db), func() { db.Close() }, nil

	case dialect.MSSQL:
		db, err := database.OpenMSSQL(ctx, utils.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		return introspect.NewMSSQLIntrospector(db, introspectSchema), func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("no introspector for dialect %q", d)
}
