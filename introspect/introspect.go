// Package introspect reads live catalog metadata and converts it into the
// same table definitions the generator consumes, so introspected schemas can
// be re-emitted as DDL (the round-trip contract). Each database gets its own
// introspector over its native catalog views.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/ddlkit/ddlkit/schema"
)

// Introspector reads every base table in one schema of a live database.
type Introspector interface {
	Tables(ctx context.Context) ([]schema.TableDefinition, error)
}

// columnID builds the stable per-column handle used for error anchoring.
func columnID(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

// constraintID builds the stable per-constraint handle.
func constraintID(table, name string) string {
	return fmt.Sprintf("%s.%s", table, name)
}

// splitCSV splits an aggregated column-name list, trimming whitespace.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
