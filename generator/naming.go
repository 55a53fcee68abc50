package generator

import (
	"regexp"
	"strings"

	"github.com/ddlkit/ddlkit/dialect"
	"github.com/ddlkit/ddlkit/schema"
)

var identSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// sanitizeName lowercases, strips anything outside [a-z0-9_] and truncates
// to the dialect's identifier limit.
func sanitizeName(name string, d dialect.Dialect) string {
	name = identSanitizer.ReplaceAllString(strings.ToLower(name), "")
	if max := d.Capabilities().MaxIdentifierLength; len(name) > max {
		name = name[:max]
	}
	return name
}

// IndexName returns idx.Name when set, otherwise idx_{table}_{col1}_{col2}...
func IndexName(table string, idx schema.IndexDefinition, d dialect.Dialect) string {
	if idx.Name != "" {
		return idx.Name
	}
	parts := []string{"idx", table}
	for _, col := range idx.Columns {
		parts = append(parts, col.Name)
	}
	return sanitizeName(strings.Join(parts, "_"), d)
}

var constraintPrefixes = map[schema.ConstraintType]string{
	schema.PrimaryKeyConstraint: "pk",
	schema.ForeignKeyConstraint: "fk",
	schema.UniqueConstraint:     "uq",
	schema.CheckConstraint:      "ck",
	schema.ExcludeConstraint:    "ex",
}

// ConstraintName returns c.Name when set, otherwise a type-prefixed name
// such as fk_{table}_{col1}_{col2}...
func ConstraintName(table string, c schema.ConstraintDefinition, d dialect.Dialect) string {
	if c.Name != "" {
		return c.Name
	}
	prefix, ok := constraintPrefixes[c.Type]
	if !ok {
		prefix = "ct"
	}
	parts := append([]string{prefix, table}, c.Columns...)
	return sanitizeName(strings.Join(parts, "_"), d)
}
