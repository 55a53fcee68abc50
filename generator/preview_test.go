package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

func TestBuildPreviewDDLMatchesCreateTable(t *testing.T) {
	table := schema.TableDefinition{
		Schema:  "public",
		Name:    "users",
		Comment: "Registered users",
		Columns: []schema.ColumnDefinition{
			{Name: "id", DataType: "serial", IsPrimaryKey: true},
			{Name: "email", DataType: "varchar", Length: intp(255), IsUnique: true},
		},
		Indexes: []schema.IndexDefinition{
			{Columns: []schema.IndexColumn{{Name: "email"}}, IsUnique: true},
		},
	}

	for _, d := range dialect.All {
		assert.Equal(t, BuildCreateTable(table, d).SQL, BuildPreviewDDL(table, d), "dialect %s", d)
	}
}

func TestBuildAlterPreviewDDLMatchesAlterTable(t *testing.T) {
	batch := schema.AlterTableBatch{
		Schema:      "public",
		Table:       "users",
		RenameTable: "customers",
		Comment:     schema.SetComment("renamed"),
		ColumnOperations: []schema.ColumnOperation{
			{Type: schema.DropColumn, Name: "legacy"},
		},
	}

	for _, d := range dialect.All {
		stmts := BuildAlterTable(batch, d)
		sqls := BuildAlterPreviewDDL(batch, d)
		assert.Len(t, sqls, len(stmts), "dialect %s", d)
		for i := range stmts {
			assert.Equal(t, stmts[i].SQL, sqls[i], "dialect %s stmt %d", d, i)
		}
	}
}
