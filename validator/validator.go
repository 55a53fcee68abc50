package validator

import (
	"fmt"
	"strings"

	"github.com/ddlkit/ddlkit/schema"
)

// ValidationError anchors one failure to an editor field. Field is a dotted
// path such as "table.name" or "constraint.{id}.columns".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects every failure found in one table definition.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Messages returns just the error texts, in order.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// ValidateTableDefinition runs every static check and accumulates all
// failures so a caller can surface them at once; it never short-circuits.
// The checks are advisory: the generator does not repeat them and will emit
// syntactically-shaped but broken SQL for a definition that fails here.
func ValidateTableDefinition(table schema.TableDefinition) ValidationResult {
	var errs []ValidationError

	if strings.TrimSpace(table.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "table.name",
			Message: "Table name is required",
		})
	}

	if len(table.Columns) == 0 {
		errs = append(errs, ValidationError{
			Field:   "table.columns",
			Message: "Table must have at least one column",
		})
	}

	for _, col := range table.Columns {
		if strings.TrimSpace(col.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   "table.columns",
				Message: "All columns must have a name",
			})
			break
		}
	}

	// One error per duplicated name, not per colliding pair.
	seen := map[string]int{}
	for _, col := range table.Columns {
		seen[strings.ToLower(col.Name)]++
	}
	for _, col := range table.Columns {
		lower := strings.ToLower(col.Name)
		if seen[lower] > 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("column.%s.name", col.ID),
				Message: fmt.Sprintf("Duplicate column name: %s", lower),
			})
			seen[lower] = 0
		}
	}

	for _, c := range table.Constraints {
		if c.Type != schema.ForeignKeyConstraint {
			continue
		}
		if c.ReferencedTable == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("constraint.%s.referencedTable", c.ID),
				Message: "Foreign key must reference a table",
			})
		}
		if len(c.ReferencedColumns) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("constraint.%s.referencedColumns", c.ID),
				Message: "Foreign key must reference columns",
			})
		} else if len(c.Columns) != len(c.ReferencedColumns) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("constraint.%s.columns", c.ID),
				Message: "Foreign key column count must match referenced columns",
			})
		}
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// ValidateTables validates every table in a schema file, keyed by table name
// (index-keyed for unnamed tables so results stay addressable).
func ValidateTables(tables []schema.TableDefinition) map[string]ValidationResult {
	results := make(map[string]ValidationResult, len(tables))
	for i, t := range tables {
		key := t.Name
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		results[key] = ValidateTableDefinition(t)
	}
	return results
}
