package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

func TestBuildAlterTableCategoryOrder(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema:      "public",
		Table:       "users",
		RenameTable: "customers",
		SetSchema:   "crm",
		Comment:     schema.SetComment("Customer accounts"),
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.AddColumn, Column: &schema.ColumnDefinition{
				Name: "nickname", DataType: "text", IsNullable: true,
			}},
		},
		ConstraintOperations: []schema.ConstraintOperation{
			{Type: schema.DropConstraint, Name: "users_email_key"},
		},
		IndexOperations: []schema.IndexOperation{
			{Type: schema.DropIndex, Name: "idx_users_email", IfExists: true},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 6)

	assert.Contains(t, stmts[0].SQL, `RENAME TO "customers"`)
	assert.Contains(t, stmts[1].SQL, `SET SCHEMA "crm"`)
	assert.Contains(t, stmts[2].SQL, `ADD COLUMN "nickname" text`)
	assert.Contains(t, stmts[3].SQL, `DROP CONSTRAINT "users_email_key"`)
	assert.Contains(t, stmts[4].SQL, `DROP INDEX IF EXISTS "idx_users_email"`)
	assert.Contains(t, stmts[5].SQL, `COMMENT ON TABLE`)
}

func TestBuildAlterTableStatementsFollowRename(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema:      "public",
		Table:       "users",
		RenameTable: "customers",
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.DropColumn, Name: "legacy_flag"},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 2)
	assert.Equal(t, `ALTER TABLE "users" RENAME TO "customers";`, stmts[0].SQL)
	assert.Equal(t, `ALTER TABLE "customers" DROP COLUMN "legacy_flag";`, stmts[1].SQL)
}

func TestBuildAlterTableColumnOperations(t *testing.T) {
	def := "0"
	comment := "amount in cents"
	batch := schema.AlterTableBatch{
		Schema: "public",
		Table:  "orders",
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.RenameColumn, Name: "amount", NewName: "total"},
			{Type: schema.SetColumnType, Name: "total", NewType: "bigint", Using: "total::bigint"},
			{Type: schema.SetColumnNullable, Name: "total", Nullable: false},
			{Type: schema.SetColumnDefault, Name: "total", Default: &def},
			{Type: schema.SetColumnDefault, Name: "status"},
			{Type: schema.SetColumnComment, Name: "total", Comment: &comment},
			{Type: schema.SetColumnComment, Name: "status"},
			{Type: schema.DropColumn, Name: "obsolete", Cascade: true},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 8)

	assert.Equal(t, `ALTER TABLE "orders" RENAME COLUMN "amount" TO "total";`, stmts[0].SQL)
	assert.Equal(t, `ALTER TABLE "orders" ALTER COLUMN "total" TYPE bigint USING total::bigint;`, stmts[1].SQL)
	assert.Equal(t, `ALTER TABLE "orders" ALTER COLUMN "total" SET NOT NULL;`, stmts[2].SQL)
	assert.Equal(t, `ALTER TABLE "orders" ALTER COLUMN "total" SET DEFAULT 0;`, stmts[3].SQL)
	assert.Equal(t, `ALTER TABLE "orders" ALTER COLUMN "status" DROP DEFAULT;`, stmts[4].SQL)
	assert.Equal(t, `COMMENT ON COLUMN "orders"."total" IS 'amount in cents';`, stmts[5].SQL)
	assert.Equal(t, `COMMENT ON COLUMN "orders"."status" IS NULL;`, stmts[6].SQL)
	assert.Equal(t, `ALTER TABLE "orders" DROP COLUMN "obsolete" CASCADE;`, stmts[7].SQL)
}

func TestBuildAlterTableSetNullable(t *testing.T) {
	batch := schema.AlterTableBatch{
		Table: "orders",
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.SetColumnNullable, Name: "note", Nullable: true},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].SQL, "DROP NOT NULL")
}

func TestBuildAlterTableAddConstraintAutoNames(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema: "public",
		Table:  "orders",
		ConstraintOperations: []schema.ConstraintOperation{
			{Type: schema.AddConstraint, Constraint: &schema.ConstraintDefinition{
				Type:              schema.ForeignKeyConstraint,
				Columns:           []string{"user_id"},
				ReferencedTable:   "users",
				ReferencedColumns: []string{"id"},
				OnDelete:          schema.SetNull,
			}},
			{Type: schema.RenameConstraint, Name: "fk_orders_user_id", NewName: "orders_user_fk"},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 2)
	assert.Equal(t, `ALTER TABLE "orders" ADD CONSTRAINT "fk_orders_user_id" FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE SET NULL;`, stmts[0].SQL)
	assert.Equal(t, `ALTER TABLE "orders" RENAME CONSTRAINT "fk_orders_user_id" TO "orders_user_fk";`, stmts[1].SQL)
}

func TestBuildAlterTableIndexOperations(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema: "public",
		Table:  "users",
		IndexOperations: []schema.IndexOperation{
			{Type: schema.CreateIndex, Index: &schema.IndexDefinition{
				Columns: []schema.IndexColumn{{Name: "email"}},
			}},
			{Type: schema.DropIndex, Name: "idx_users_old", Concurrent: true},
			{Type: schema.RenameIndex, Name: "idx_users_email", NewName: "users_email_idx"},
			{Type: schema.Reindex, Name: "users_email_idx", Concurrent: true},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 4)
	assert.Equal(t, `CREATE INDEX "idx_users_email" ON "users" ("email");`, stmts[0].SQL)
	assert.Equal(t, `DROP INDEX CONCURRENTLY "idx_users_old";`, stmts[1].SQL)
	assert.Equal(t, `ALTER INDEX "idx_users_email" RENAME TO "users_email_idx";`, stmts[2].SQL)
	assert.Equal(t, `REINDEX INDEX CONCURRENTLY "users_email_idx";`, stmts[3].SQL)
}

func TestBuildAlterTableReindexPerDialect(t *testing.T) {
	batch := schema.AlterTableBatch{
		Table: "users",
		IndexOperations: []schema.IndexOperation{
			{Type: schema.Reindex, Name: "idx_users_email"},
		},
	}

	lite := BuildAlterTable(batch, dialect.SQLite)
	require.Len(t, lite, 1)
	assert.Equal(t, `REINDEX "idx_users_email";`, lite[0].SQL)

	// No REINDEX equivalent on mysql; the operation is dropped.
	assert.Empty(t, BuildAlterTable(batch, dialect.MySQL))
}

func TestBuildAlterTableCommentClear(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema:  "public",
		Table:   "users",
		Comment: schema.ClearComment(),
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 1)
	assert.Equal(t, `COMMENT ON TABLE "users" IS NULL;`, stmts[0].SQL)
}

func TestBuildAlterTableCommentUnchanged(t *testing.T) {
	batch := schema.AlterTableBatch{Schema: "public", Table: "users"}
	assert.Empty(t, BuildAlterTable(batch, dialect.Postgres))
}

func TestBuildAlterTableStableWithinCategory(t *testing.T) {
	batch := schema.AlterTableBatch{
		Table: "t",
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.DropColumn, Name: "a"},
			{Type: schema.DropColumn, Name: "b"},
			{Type: schema.DropColumn, Name: "c"},
		},
	}

	stmts := BuildAlterTable(batch, dialect.Postgres)
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0].SQL, `"a"`)
	assert.Contains(t, stmts[1].SQL, `"b"`)
	assert.Contains(t, stmts[2].SQL, `"c"`)
}
