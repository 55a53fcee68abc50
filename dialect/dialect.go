package dialect

// Dialect identifies one of the supported SQL variants.
type Dialect string

const (
	Postgres Dialect = "postgresql"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	MSSQL    Dialect = "mssql"
)

// All lists every supported dialect, in a stable order.
var All = []Dialect{Postgres, MySQL, SQLite, MSSQL}

// Parse maps a user-supplied dialect name (plus common aliases) to a Dialect.
func Parse(name string) (Dialect, bool) {
	switch name {
	case "postgresql", "postgres", "pg":
		return Postgres, true
	case "mysql", "mariadb":
		return MySQL, true
	case "sqlite", "sqlite3":
		return SQLite, true
	case "mssql", "sqlserver":
		return MSSQL, true
	}
	return "", false
}

// Capabilities describes how a dialect quotes identifiers, which schema it
// treats as implicit, and which DDL features it understands. Generator
// functions consult this table instead of branching on the dialect directly.
type Capabilities struct {
	QuoteOpen  string
	QuoteClose string

	// DefaultSchema is the schema omitted from qualified references
	// ("public" for postgresql/sqlite, "dbo" for mssql, none for mysql).
	DefaultSchema string

	// MaxIdentifierLength bounds auto-generated object names
	// (PostgreSQL 63, MySQL 64, SQL Server 128).
	MaxIdentifierLength int

	SupportsConcurrently  bool
	SupportsInclude       bool
	SupportsExclude       bool
	SupportsPartitionBy   bool
	SupportsTablespace    bool
	SupportsUnlogged      bool
	SupportsInherits      bool
	SupportsArrayTypes    bool
	SupportsCommentOn     bool // COMMENT ON TABLE/COLUMN statements
	SupportsInlineComment bool // COMMENT 'text' inside a column clause
	SupportsIndexMethod   bool // USING btree/hash/gin/...
	SupportsPartialIndex  bool // CREATE INDEX ... WHERE
	SupportsDropCascade   bool
	SupportsReindex       bool
}

var capabilities = map[Dialect]Capabilities{
	Postgres: {
		QuoteOpen:             `"`,
		QuoteClose:            `"`,
		DefaultSchema:         "public",
		MaxIdentifierLength:   63,
		SupportsConcurrently:  true,
		SupportsInclude:       true,
		SupportsExclude:       true,
		SupportsPartitionBy:   true,
		SupportsTablespace:    true,
		SupportsUnlogged:      true,
		SupportsInherits:      true,
		SupportsArrayTypes:    true,
		SupportsCommentOn:     true,
		SupportsIndexMethod:   true,
		SupportsPartialIndex:  true,
		SupportsDropCascade:   true,
		SupportsReindex:       true,
	},
	MySQL: {
		QuoteOpen:             "`",
		QuoteClose:            "`",
		DefaultSchema:         "",
		MaxIdentifierLength:   64,
		SupportsInlineComment: true,
	},
	SQLite: {
		QuoteOpen:            `"`,
		QuoteClose:           `"`,
		DefaultSchema:        "public",
		MaxIdentifierLength:  63,
		SupportsPartialIndex: true,
		SupportsReindex:      true,
	},
	MSSQL: {
		QuoteOpen:           "[",
		QuoteClose:          "]",
		DefaultSchema:       "dbo",
		MaxIdentifierLength: 128,
		SupportsInclude:     true,
	},
}

// Capabilities returns the capability table entry for d. Unknown dialects
// fall back to the postgresql entry so synthesis stays total.
func (d Dialect) Capabilities() Capabilities {
	caps, ok := capabilities[d]
	if !ok {
		return capabilities[Postgres]
	}
	return caps
}
