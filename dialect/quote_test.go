package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifierWrapsPerDialect(t *testing.T) {
	assert.Equal(t, `"users"`, QuoteIdentifier("users", Postgres))
	assert.Equal(t, "`users`", QuoteIdentifier("users", MySQL))
	assert.Equal(t, `"users"`, QuoteIdentifier("users", SQLite))
	assert.Equal(t, "[users]", QuoteIdentifier("users", MSSQL))
}

func TestQuoteIdentifierEscapesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, `"we""ird"`, QuoteIdentifier(`we"ird`, Postgres))
	assert.Equal(t, "`we``ird`", QuoteIdentifier("we`ird", MySQL))
	assert.Equal(t, "[we]]ird]", QuoteIdentifier("we]ird", MSSQL))
	// Opening bracket cannot close a bracketed identifier; it stays as-is.
	assert.Equal(t, "[we[ird]", QuoteIdentifier("we[ird", MSSQL))
}

func TestQuoteIdentifierIdempotent(t *testing.T) {
	for _, d := range All {
		for _, name := range []string{"users", "weird name", `we"ird`, "we]ird", ""} {
			once := QuoteIdentifier(name, d)
			assert.Equal(t, once, QuoteIdentifier(once, d), "dialect %s name %q", d, name)
		}
	}
}

func TestQuoteIdentifierEmptyName(t *testing.T) {
	assert.Equal(t, `""`, QuoteIdentifier("", Postgres))
	assert.Equal(t, "``", QuoteIdentifier("", MySQL))
	assert.Equal(t, "[]", QuoteIdentifier("", MSSQL))
}

func TestQuoteIdentifierDoublesEveryQuoteChar(t *testing.T) {
	cases := []struct {
		d    Dialect
		name string
		char string
	}{
		{Postgres, `a"b"c`, `"`},
		{MySQL, "a`b`c", "`"},
		{MSSQL, "a]b]c", "]"},
	}
	for _, tc := range cases {
		in := strings.Count(tc.name, tc.char)
		out := strings.Count(QuoteIdentifier(tc.name, tc.d), tc.char)
		// Doubled embedded chars plus the wrapping pair (for mssql only the
		// closing bracket counts).
		wrap := 2
		if tc.d == MSSQL {
			wrap = 1
		}
		assert.Equal(t, 2*in+wrap, out, "dialect %s", tc.d)
	}
}

func TestQualifiedTableRefOmitsDefaultSchema(t *testing.T) {
	assert.Equal(t, `"users"`, QualifiedTableRef("public", "users", Postgres))
	assert.Equal(t, `"crm"."users"`, QualifiedTableRef("crm", "users", Postgres))
	assert.Equal(t, "[users]", QualifiedTableRef("dbo", "users", MSSQL))
	assert.Equal(t, "[sales].[users]", QualifiedTableRef("sales", "users", MSSQL))
	assert.Equal(t, "`users`", QualifiedTableRef("", "users", MySQL))
	assert.Equal(t, "`appdb`.`users`", QualifiedTableRef("appdb", "users", MySQL))
}

func TestFullyQualifiedTableRefNeverOmitsSchema(t *testing.T) {
	assert.Equal(t, `"public"."users"`, FullyQualifiedTableRef("public", "users", Postgres))
	assert.Equal(t, `"public"."users"`, FullyQualifiedTableRef("", "users", Postgres))
	assert.Equal(t, "[dbo].[users]", FullyQualifiedTableRef("", "users", MSSQL))
	// mysql has no implicit schema to fall back to.
	assert.Equal(t, "`users`", FullyQualifiedTableRef("", "users", MySQL))
}

func TestParse(t *testing.T) {
	d, ok := Parse("postgres")
	assert.True(t, ok)
	assert.Equal(t, Postgres, d)

	_, ok = Parse("oracle")
	assert.False(t, ok)
}
