package generator

import (
	"strings"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

// BuildCreateIndex renders one CREATE INDEX statement. Features the dialect
// lacks (CONCURRENTLY, USING, INCLUDE, partial WHERE) are dropped silently
// rather than rejected, so a definition written for postgresql still yields
// a runnable statement elsewhere.
func BuildCreateIndex(schemaName, tableName string, idx schema.IndexDefinition, d dialect.Dialect) Statement {
	caps := d.Capabilities()

	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.IsUnique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if idx.Concurrent && caps.SupportsConcurrently {
		b.WriteString("CONCURRENTLY ")
	}
	b.WriteString(dialect.QuoteIdentifier(IndexName(tableName, idx, d), d))
	b.WriteString(" ON ")
	b.WriteString(dialect.QualifiedTableRef(schemaName, tableName, d))

	if idx.Method != "" && idx.Method != schema.Btree && caps.SupportsIndexMethod {
		b.WriteString(" USING ")
		b.WriteString(string(idx.Method))
	}

	cols := make([]string, len(idx.Columns))
	for i, col := range idx.Columns {
		spec := dialect.QuoteIdentifier(col.Name, d)
		if col.Order != "" {
			spec += " " + string(col.Order)
		}
		if col.NullsPosition != "" {
			spec += " NULLS " + string(col.NullsPosition)
		}
		cols[i] = spec
	}
	b.WriteString(" (" + strings.Join(cols, ", ") + ")")

	if len(idx.Include) > 0 && caps.SupportsInclude {
		b.WriteString(" INCLUDE (" + quotedList(idx.Include, d) + ")")
	}
	if idx.Where != "" && caps.SupportsPartialIndex {
		b.WriteString(" WHERE " + idx.Where)
	}
	b.WriteString(";")

	return newStatement(b.String())
}
