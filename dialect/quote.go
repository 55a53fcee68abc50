package dialect

import "strings"

// QuoteIdentifier wraps name in the dialect's quote pair and doubles any
// embedded closing quote characters. For mssql only `]` is doubled; an
// opening `[` cannot close a bracketed identifier early and is left alone.
// Already-wrapped names are returned unchanged, so the function is
// idempotent. An empty name still quotes to an empty wrapped identifier.
func QuoteIdentifier(name string, d Dialect) string {
	caps := d.Capabilities()

	if len(name) >= len(caps.QuoteOpen)+len(caps.QuoteClose) &&
		strings.HasPrefix(name, caps.QuoteOpen) &&
		strings.HasSuffix(name, caps.QuoteClose) {
		return name
	}

	escaped := strings.ReplaceAll(name, caps.QuoteClose, caps.QuoteClose+caps.QuoteClose)
	return caps.QuoteOpen + escaped + caps.QuoteClose
}

// QualifiedTableRef builds a schema-qualified table reference, omitting the
// schema when it is empty or equals the dialect's implicit default schema.
func QualifiedTableRef(schema, table string, d Dialect) string {
	caps := d.Capabilities()
	if schema == "" || schema == caps.DefaultSchema {
		return QuoteIdentifier(table, d)
	}
	return QuoteIdentifier(schema, d) + "." + QuoteIdentifier(table, d)
}

// FullyQualifiedTableRef always includes the schema qualifier, falling back
// to the dialect's implicit default when schema is empty. Only mysql, which
// has no implicit schema, ever yields an unqualified reference here.
func FullyQualifiedTableRef(schema, table string, d Dialect) string {
	caps := d.Capabilities()
	if schema == "" {
		schema = caps.DefaultSchema
	}
	if schema == "" {
		return QuoteIdentifier(table, d)
	}
	return QuoteIdentifier(schema, d) + "." + QuoteIdentifier(table, d)
}

// EscapeStringLiteral doubles single quotes for embedding text in a SQL
// string literal (comments are the only place the generator inlines text).
func EscapeStringLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
