package generator

import (
	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

// BuildPreviewDDL returns exactly the SQL that BuildCreateTable would
// execute. No reformatting, normalization or truncation is applied; the
// preview shown to a user is byte-identical to the executed text.
func BuildPreviewDDL(table schema.TableDefinition, d dialect.Dialect) string {
	return BuildCreateTable(table, d).SQL
}

// BuildAlterPreviewDDL returns the SQL of every statement BuildAlterTable
// would execute, in execution order.
func BuildAlterPreviewDDL(batch schema.AlterTableBatch, d dialect.Dialect) []string {
	stmts := BuildAlterTable(batch, d)
	sqls := make([]string, len(stmts))
	for i, s := range stmts {
		sqls[i] = s.SQL
	}
	return sqls
}
