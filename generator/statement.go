// Package generator turns schema definitions into dialect-correct DDL text.
// Every Build function is total: it never fails and never mutates its
// input, so callers must run the validator first if they care about
// semantic correctness.
package generator

// Statement is one executable SQL string. DDL carries no bind parameters;
// Params is always empty but kept so statements share a shape with the
// query-execution layer.
type Statement struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

func newStatement(sql string) Statement {
	return Statement{SQL: sql, Params: []any{}}
}
