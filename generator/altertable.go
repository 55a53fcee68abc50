package generator

import (
	"fmt"
	"strings"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

// BuildAlterTable turns a batch into one statement per logical change, in a
// fixed category order: table rename, schema move, column operations,
// constraint operations, index operations, table comment. The order matters
// because the operations do not commute; statements after a rename or
// schema move must target the new name. Within a category the batch's own
// order is preserved.
func BuildAlterTable(batch schema.AlterTableBatch, d dialect.Dialect) []Statement {
	caps := d.Capabilities()
	schemaName := batch.Schema
	tableName := batch.Table

	ref := func() string {
		return dialect.QualifiedTableRef(schemaName, tableName, d)
	}

	var stmts []Statement

	if batch.RenameTable != "" {
		stmts = append(stmts, newStatement(fmt.Sprintf("ALTER TABLE %s RENAME TO %s;",
			ref(), dialect.QuoteIdentifier(batch.RenameTable, d))))
		tableName = batch.RenameTable
	}

	if batch.SetSchema != "" {
		stmts = append(stmts, newStatement(fmt.Sprintf("ALTER TABLE %s SET SCHEMA %s;",
			ref(), dialect.QuoteIdentifier(batch.SetSchema, d))))
		schemaName = batch.SetSchema
	}

	for _, op := range batch.ColumnOperations {
		if s, ok := columnOpStatement(op, ref(), d); ok {
			stmts = append(stmts, s)
		}
	}

	for _, op := range batch.ConstraintOperations {
		if s, ok := constraintOpStatement(op, ref(), tableName, d); ok {
			stmts = append(stmts, s)
		}
	}

	for _, op := range batch.IndexOperations {
		if s, ok := indexOpStatement(op, schemaName, tableName, d); ok {
			stmts = append(stmts, s)
		}
	}

	if caps.SupportsCommentOn {
		switch batch.Comment.State {
		case schema.CommentSet:
			stmts = append(stmts, newStatement(fmt.Sprintf("COMMENT ON TABLE %s IS '%s';",
				ref(), dialect.EscapeStringLiteral(batch.Comment.Value))))
		case schema.CommentClear:
			stmts = append(stmts, newStatement(fmt.Sprintf("COMMENT ON TABLE %s IS NULL;", ref())))
		}
	}

	return stmts
}

func columnOpStatement(op schema.ColumnOperation, ref string, d dialect.Dialect) (Statement, bool) {
	switch op.Type {
	case schema.AddColumn:
		if op.Column == nil {
			return Statement{}, false
		}
		clause := columnClause(*op.Column, op.Column.IsPrimaryKey, d)
		return newStatement(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", ref, clause)), true

	case schema.DropColumn:
		sql := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", ref, dialect.QuoteIdentifier(op.Name, d))
		if op.Cascade && d.Capabilities().SupportsDropCascade {
			sql += " CASCADE"
		}
		return newStatement(sql + ";"), true

	case schema.RenameColumn:
		return newStatement(fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;",
			ref, dialect.QuoteIdentifier(op.Name, d), dialect.QuoteIdentifier(op.NewName, d))), true

	case schema.SetColumnType:
		sql := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s",
			ref, dialect.QuoteIdentifier(op.Name, d), op.NewType)
		if op.Using != "" {
			sql += " USING " + op.Using
		}
		return newStatement(sql + ";"), true

	case schema.SetColumnNullable:
		verb := "SET NOT NULL"
		if op.Nullable {
			verb = "DROP NOT NULL"
		}
		return newStatement(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s;",
			ref, dialect.QuoteIdentifier(op.Name, d), verb)), true

	case schema.SetColumnDefault:
		if op.Default == nil {
			return newStatement(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;",
				ref, dialect.QuoteIdentifier(op.Name, d))), true
		}
		return newStatement(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;",
			ref, dialect.QuoteIdentifier(op.Name, d), *op.Default)), true

	case schema.SetColumnComment:
		if !d.Capabilities().SupportsCommentOn {
			return Statement{}, false
		}
		col := dialect.QuoteIdentifier(op.Name, d)
		if op.Comment == nil {
			return newStatement(fmt.Sprintf("COMMENT ON COLUMN %s.%s IS NULL;", ref, col)), true
		}
		return newStatement(fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s';",
			ref, col, dialect.EscapeStringLiteral(*op.Comment))), true
	}
	return Statement{}, false
}

func constraintOpStatement(op schema.ConstraintOperation, ref, tableName string, d dialect.Dialect) (Statement, bool) {
	switch op.Type {
	case schema.AddConstraint:
		if op.Constraint == nil {
			return Statement{}, false
		}
		body := constraintBody(*op.Constraint, d)
		if body == "" {
			return Statement{}, false
		}
		// ADD CONSTRAINT wants a name so the constraint stays addressable;
		// unnamed definitions get the policy name here.
		name := ConstraintName(tableName, *op.Constraint, d)
		return newStatement(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s;",
			ref, dialect.QuoteIdentifier(name, d), body)), true

	case schema.DropConstraint:
		sql := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", ref, dialect.QuoteIdentifier(op.Name, d))
		if op.Cascade && d.Capabilities().SupportsDropCascade {
			sql += " CASCADE"
		}
		return newStatement(sql + ";"), true

	case schema.RenameConstraint:
		return newStatement(fmt.Sprintf("ALTER TABLE %s RENAME CONSTRAINT %s TO %s;",
			ref, dialect.QuoteIdentifier(op.Name, d), dialect.QuoteIdentifier(op.NewName, d))), true
	}
	return Statement{}, false
}

func indexOpStatement(op schema.IndexOperation, schemaName, tableName string, d dialect.Dialect) (Statement, bool) {
	caps := d.Capabilities()
	switch op.Type {
	case schema.CreateIndex:
		if op.Index == nil {
			return Statement{}, false
		}
		return BuildCreateIndex(schemaName, tableName, *op.Index, d), true

	case schema.DropIndex:
		var b strings.Builder
		b.WriteString("DROP INDEX ")
		if op.Concurrent && caps.SupportsConcurrently {
			b.WriteString("CONCURRENTLY ")
		}
		if op.IfExists {
			b.WriteString("IF EXISTS ")
		}
		b.WriteString(dialect.QuoteIdentifier(op.Name, d))
		b.WriteString(";")
		return newStatement(b.String()), true

	case schema.RenameIndex:
		return newStatement(fmt.Sprintf("ALTER INDEX %s RENAME TO %s;",
			dialect.QuoteIdentifier(op.Name, d), dialect.QuoteIdentifier(op.NewName, d))), true

	case schema.Reindex:
		if !caps.SupportsReindex {
			return Statement{}, false
		}
		name := dialect.QuoteIdentifier(op.Name, d)
		if d == dialect.SQLite {
			return newStatement(fmt.Sprintf("REINDEX %s;", name)), true
		}
		if op.Concurrent && caps.SupportsConcurrently {
			return newStatement(fmt.Sprintf("REINDEX INDEX CONCURRENTLY %s;", name)), true
		}
		return newStatement(fmt.Sprintf("REINDEX INDEX %s;", name)), true
	}
	return Statement{}, false
}
