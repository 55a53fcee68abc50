package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

// BuildCreateTable assembles the CREATE TABLE statement for table, followed
// by one CREATE INDEX statement per index and, where the dialect has them,
// COMMENT ON statements. Everything is returned as a single Statement so a
// preview is exactly what executes.
func BuildCreateTable(table schema.TableDefinition, d dialect.Dialect) Statement {
	caps := d.Capabilities()
	ref := dialect.QualifiedTableRef(table.Schema, table.Name, d)

	var b strings.Builder
	b.WriteString("CREATE ")
	if table.Unlogged && caps.SupportsUnlogged {
		b.WriteString("UNLOGGED ")
	}
	b.WriteString("TABLE ")
	b.WriteString(ref)
	b.WriteString(" (\n  ")

	pkCols := table.PrimaryKeyColumns()
	inlinePK := len(pkCols) == 1

	var defs []string
	for _, col := range table.Columns {
		defs = append(defs, columnClause(col, inlinePK && col.IsPrimaryKey, d))
	}

	if len(pkCols) > 1 {
		defs = append(defs, "PRIMARY KEY ("+quotedList(pkCols, d)+")")
	}

	for _, c := range table.Constraints {
		if clause := tableConstraintClause(c, d); clause != "" {
			defs = append(defs, clause)
		}
	}

	b.WriteString(strings.Join(defs, ",\n  "))
	b.WriteString("\n)")

	if len(table.Inherits) > 0 && caps.SupportsInherits {
		parents := make([]string, len(table.Inherits))
		for i, p := range table.Inherits {
			parents[i] = dialect.QuoteIdentifier(p, d)
		}
		b.WriteString(" INHERITS (" + strings.Join(parents, ", ") + ")")
	}
	if table.Partition != nil && caps.SupportsPartitionBy {
		b.WriteString(fmt.Sprintf(" PARTITION BY %s (%s)",
			strings.ToUpper(table.Partition.Type),
			quotedList(table.Partition.Columns, d)))
	}
	if table.Tablespace != "" && caps.SupportsTablespace {
		b.WriteString(" TABLESPACE " + dialect.QuoteIdentifier(table.Tablespace, d))
	}
	b.WriteString(";")

	stmts := []string{b.String()}

	for _, idx := range table.Indexes {
		stmts = append(stmts, BuildCreateIndex(table.Schema, table.Name, idx, d).SQL)
	}

	if caps.SupportsCommentOn {
		if table.Comment != "" {
			stmts = append(stmts, fmt.Sprintf("COMMENT ON TABLE %s IS '%s';",
				ref, dialect.EscapeStringLiteral(table.Comment)))
		}
		for _, col := range table.Columns {
			if col.Comment != "" {
				stmts = append(stmts, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s';",
					ref, dialect.QuoteIdentifier(col.Name, d),
					dialect.EscapeStringLiteral(col.Comment)))
			}
		}
	}

	return newStatement(strings.Join(stmts, "\n"))
}

// BuildDropTable emits DROP TABLE IF EXISTS, with CASCADE where the dialect
// accepts it. Schema is omitted when it equals the implicit default.
func BuildDropTable(schemaName, tableName string, cascade bool, d dialect.Dialect) Statement {
	sql := "DROP TABLE IF EXISTS " + dialect.QualifiedTableRef(schemaName, tableName, d)
	if cascade && d.Capabilities().SupportsDropCascade {
		sql += " CASCADE"
	}
	return newStatement(sql + ";")
}

// columnClause renders one column definition. inlinePK is true only when
// this column is the table's sole primary-key column; composite keys are
// emitted as a table constraint instead.
func columnClause(col schema.ColumnDefinition, inlinePK bool, d dialect.Dialect) string {
	caps := d.Capabilities()
	parts := []string{dialect.QuoteIdentifier(col.Name, d), typeSpec(col, d)}

	if col.Collation != "" {
		parts = append(parts, "COLLATE "+dialect.QuoteIdentifier(col.Collation, d))
	}
	if !col.IsNullable {
		parts = append(parts, "NOT NULL")
	}
	if def := defaultClause(col, d); def != "" {
		parts = append(parts, "DEFAULT "+def)
	}
	if col.CheckConstraint != "" {
		parts = append(parts, "CHECK ("+col.CheckConstraint+")")
	}
	if inlinePK {
		parts = append(parts, "PRIMARY KEY")
	} else if col.IsUnique {
		parts = append(parts, "UNIQUE")
	}
	if col.Comment != "" && caps.SupportsInlineComment {
		parts = append(parts, "COMMENT '"+dialect.EscapeStringLiteral(col.Comment)+"'")
	}
	return strings.Join(parts, " ")
}

// typeSpec renders the data type with its length or precision/scale suffix
// and an array marker where the dialect supports one.
func typeSpec(col schema.ColumnDefinition, d dialect.Dialect) string {
	spec := col.DataType
	switch {
	case col.Length != nil:
		spec += "(" + strconv.Itoa(*col.Length) + ")"
	case col.Precision != nil && col.Scale != nil:
		spec += "(" + strconv.Itoa(*col.Precision) + "," + strconv.Itoa(*col.Scale) + ")"
	case col.Precision != nil:
		spec += "(" + strconv.Itoa(*col.Precision) + ")"
	}
	if col.IsArray && d.Capabilities().SupportsArrayTypes {
		spec += "[]"
	}
	return spec
}

// defaultClause renders the DEFAULT expression. Values are raw SQL text
// supplied by the caller; the only transformation is wrapping a named
// sequence in nextval().
func defaultClause(col schema.ColumnDefinition, d dialect.Dialect) string {
	if col.DefaultType == schema.DefaultSequence && col.SequenceName != "" {
		if d == dialect.Postgres {
			return fmt.Sprintf("nextval('%s'::regclass)", col.SequenceName)
		}
		return fmt.Sprintf("nextval('%s')", col.SequenceName)
	}
	if col.DefaultValue == nil {
		return ""
	}
	return *col.DefaultValue
}

// tableConstraintClause renders one table-level constraint, prefixed
// CONSTRAINT {name} only when the definition is named. Returns "" when the
// dialect cannot express the constraint (EXCLUDE outside postgresql).
func tableConstraintClause(c schema.ConstraintDefinition, d dialect.Dialect) string {
	body := constraintBody(c, d)
	if body == "" {
		return ""
	}
	if c.Name != "" {
		return "CONSTRAINT " + dialect.QuoteIdentifier(c.Name, d) + " " + body
	}
	return body
}

func constraintBody(c schema.ConstraintDefinition, d dialect.Dialect) string {
	switch c.Type {
	case schema.PrimaryKeyConstraint:
		return "PRIMARY KEY (" + quotedList(c.Columns, d) + ")"

	case schema.ForeignKeyConstraint:
		ref := dialect.QualifiedTableRef(c.ReferencedSchema, c.ReferencedTable, d)
		sql := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			quotedList(c.Columns, d), ref, quotedList(c.ReferencedColumns, d))
		if c.OnDelete != "" {
			sql += " ON DELETE " + string(c.OnDelete)
		}
		if c.OnUpdate != "" {
			sql += " ON UPDATE " + string(c.OnUpdate)
		}
		return sql

	case schema.UniqueConstraint:
		return "UNIQUE (" + quotedList(c.Columns, d) + ")"

	case schema.CheckConstraint:
		return "CHECK (" + c.CheckExpression + ")"

	case schema.ExcludeConstraint:
		if !d.Capabilities().SupportsExclude {
			return ""
		}
		elems := make([]string, len(c.ExcludeElements))
		for i, e := range c.ExcludeElements {
			elems[i] = dialect.QuoteIdentifier(e.Column, d) + " WITH " + e.Operator
		}
		return fmt.Sprintf("EXCLUDE USING %s (%s)", c.ExcludeUsing, strings.Join(elems, ", "))
	}
	return ""
}

func quotedList(names []string, d dialect.Dialect) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = dialect.QuoteIdentifier(n, d)
	}
	return strings.Join(quoted, ", ")
}
