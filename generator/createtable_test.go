package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestBuildCreateTableBasic(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "users",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "serial", IsPrimaryKey: true},
			{Name: "email", DataType: "varchar", Length: intp(255), IsUnique: true},
			{Name: "name", DataType: "text", IsNullable: true},
		},
	}

	stmt := BuildCreateTable(table, dialect.Postgres)

	assert.Empty(t, stmt.Params)
	assert.Contains(t, stmt.SQL, `CREATE TABLE "users" (`)
	assert.Contains(t, stmt.SQL, `"id" serial NOT NULL PRIMARY KEY`)
	assert.Contains(t, stmt.SQL, `"email" varchar(255) NOT NULL UNIQUE`)
	assert.Contains(t, stmt.SQL, `"name" text`)
	assert.NotContains(t, stmt.SQL, `"name" text NOT NULL`)
	assert.True(t, strings.HasSuffix(stmt.SQL, ");"))
}

func TestBuildCreateTableCompositePrimaryKey(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "memberships",
		Columns: []schema.ColumnDefinition{
			{Name: "user_id", DataType: "integer", IsPrimaryKey: true},
			{Name: "org_id", DataType: "integer", IsPrimaryKey: true},
		},
	}

	sql := BuildCreateTable(table, dialect.Postgres).SQL

	assert.Contains(t, sql, `PRIMARY KEY ("user_id", "org_id")`)
	// No inline marker directly after either column's type.
	assert.NotContains(t, sql, `"user_id" integer NOT NULL PRIMARY KEY`)
	assert.NotContains(t, sql, `"org_id" integer NOT NULL PRIMARY KEY`)
}

func TestBuildCreateTableDefaultsAndChecks(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "orders",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "integer", IsPrimaryKey: true,
				DefaultType: schema.DefaultSequence, SequenceName: "orders_id_seq"},
			{Name: "status", DataType: "text",
				DefaultValue: strp("'pending'"), DefaultType: schema.DefaultLiteral},
			{Name: "total", DataType: "numeric", Precision: intp(10), Scale: intp(2),
				CheckConstraint: "total >= 0"},
			{Name: "created_at", DataType: "timestamptz",
				DefaultValue: strp("now()"), DefaultType: schema.DefaultExpression},
		},
	}

	sql := BuildCreateTable(table, dialect.Postgres).SQL

	assert.Contains(t, sql, `DEFAULT nextval('orders_id_seq'::regclass)`)
	assert.Contains(t, sql, `"status" text NOT NULL DEFAULT 'pending'`)
	assert.Contains(t, sql, `"total" numeric(10,2) NOT NULL CHECK (total >= 0)`)
	assert.Contains(t, sql, `DEFAULT now()`)
}

func TestBuildCreateTableTableConstraints(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "orders",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "integer", IsPrimaryKey: true},
			{Name: "user_id", DataType: "integer"},
		},
		Constraints: []schema.ConstraintDefinition{
			{
				Name:              "fk_orders_user",
				Type:              schema.ForeignKeyConstraint,
				Columns:           []string{"user_id"},
				ReferencedSchema:  "public",
				ReferencedTable:   "users",
				ReferencedColumns: []string{"id"},
				OnDelete:          schema.Cascade,
				OnUpdate:          schema.NoAction,
			},
			{Type: schema.UniqueConstraint, Columns: []string{"user_id", "id"}},
			{Type: schema.CheckConstraint, CheckExpression: "id > 0"},
		},
	}

	sql := BuildCreateTable(table, dialect.Postgres).SQL

	assert.Contains(t, sql, `CONSTRAINT "fk_orders_user" FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE CASCADE ON UPDATE NO ACTION`)
	// Unnamed constraints carry no CONSTRAINT prefix.
	assert.Contains(t, sql, `  UNIQUE ("user_id", "id")`)
	assert.Contains(t, sql, `  CHECK (id > 0)`)
}

func TestBuildCreateTableExcludeConstraintGated(t *testing.T) {
	table := schema.TableDefinition{
		Name: "bookings",
		Columns: []schema.ColumnDefinition{
			{Name: "room", DataType: "integer"},
			{Name: "during", DataType: "tsrange"},
		},
		Constraints: []schema.ConstraintDefinition{
			{
				Type:         schema.ExcludeConstraint,
				ExcludeUsing: "gist",
				ExcludeElements: []schema.ExcludeElement{
					{Column: "room", Operator: "="},
					{Column: "during", Operator: "&&"},
				},
			},
		},
	}

	pg := BuildCreateTable(table, dialect.Postgres).SQL
	assert.Contains(t, pg, `EXCLUDE USING gist ("room" WITH =, "during" WITH &&)`)

	my := BuildCreateTable(table, dialect.MySQL).SQL
	assert.NotContains(t, my, "EXCLUDE")
}

func TestBuildCreateTablePostgresOptions(t *testing.T) {
	table := schema.TableDefinition{
		Schema:     "public",
		Name:       "events",
		Columns:    []schema.ColumnDefinition{{Name: "id", DataType: "bigint", IsPrimaryKey: true}},
		Unlogged:   true,
		Inherits:   []string{"base_events"},
		Partition:  &schema.PartitionSpec{Type: "range", Columns: []string{"created_at"}},
		Tablespace: "fast_ssd",
	}

	pg := BuildCreateTable(table, dialect.Postgres).SQL
	assert.Contains(t, pg, "CREATE UNLOGGED TABLE")
	assert.Contains(t, pg, `INHERITS ("base_events")`)
	assert.Contains(t, pg, `PARTITION BY RANGE ("created_at")`)
	assert.Contains(t, pg, `TABLESPACE "fast_ssd"`)

	// None of these exist outside postgresql.
	lite := BuildCreateTable(table, dialect.SQLite).SQL
	assert.NotContains(t, lite, "UNLOGGED")
	assert.NotContains(t, lite, "INHERITS")
	assert.NotContains(t, lite, "PARTITION BY")
	assert.NotContains(t, lite, "TABLESPACE")
}

func TestBuildCreateTableComments(t *testing.T) {
	table := schema.TableDefinition{
		Schema:  "public",
		Name:    "users",
		Comment: "Registered users; it's the core table",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "serial", IsPrimaryKey: true},
			{Name: "email", DataType: "text", Comment: "Login address"},
		},
	}

	pg := BuildCreateTable(table, dialect.Postgres).SQL
	assert.Contains(t, pg, `COMMENT ON TABLE "users" IS 'Registered users; it''s the core table';`)
	assert.Contains(t, pg, `COMMENT ON COLUMN "users"."email" IS 'Login address';`)

	my := BuildCreateTable(schema.TableDefinition{
		Name: "users",
		Columns: []schema.ColumnDefinition{
			{Name: "email", DataType: "text", Comment: "Login address"},
		},
	}, dialect.MySQL).SQL
	assert.Contains(t, my, "`email` text NOT NULL COMMENT 'Login address'")
	assert.NotContains(t, my, "COMMENT ON")
}

func TestBuildCreateTableMySQLQuoting(t *testing.T) {
	table := schema.TableDefinition{
		Name: "accounts",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "int", IsPrimaryKey: true},
		},
	}

	sql := BuildCreateTable(table, dialect.MySQL).SQL
	assert.Contains(t, sql, "CREATE TABLE `accounts` (")
	assert.Contains(t, sql, "`id` int NOT NULL PRIMARY KEY")
}

func TestBuildCreateTableArrayColumns(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "posts",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "serial", IsPrimaryKey: true},
			{Name: "tags", DataType: "text", IsArray: true, IsNullable: true},
		},
	}

	pg := BuildCreateTable(table, dialect.Postgres).SQL
	assert.Contains(t, pg, `"tags" text[]`)

	my := BuildCreateTable(table, dialect.MySQL).SQL
	assert.NotContains(t, my, "text[]")
}

func TestBuildCreateTableAppendsIndexStatements(t *testing.T) {
	table := schema.TableDefinition{
		Schema: "public",
		Name:   "users",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "serial", IsPrimaryKey: true},
			{Name: "email", DataType: "text"},
		},
		Indexes: []schema.IndexDefinition{
			{Columns: []schema.IndexColumn{{Name: "email"}}, IsUnique: true},
		},
	}

	sql := BuildCreateTable(table, dialect.Postgres).SQL
	parts := strings.Split(sql, "\n")
	require.NotEmpty(t, parts)
	assert.Equal(t, `CREATE UNIQUE INDEX "idx_users_email" ON "users" ("email");`, parts[len(parts)-1])
}

func TestBuildDropTable(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "users";`,
		BuildDropTable("public", "users", false, dialect.Postgres).SQL)

	mssql := BuildDropTable("dbo", "users", false, dialect.MSSQL).SQL
	assert.Contains(t, mssql, "[users]")
	assert.NotContains(t, mssql, "dbo")

	assert.Equal(t, `DROP TABLE IF EXISTS "archive"."users" CASCADE;`,
		BuildDropTable("archive", "users", true, dialect.Postgres).SQL)

	// CASCADE degrades silently where unsupported.
	assert.Equal(t, "DROP TABLE IF EXISTS `users`;",
		BuildDropTable("", "users", true, dialect.MySQL).SQL)
}
