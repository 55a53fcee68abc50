package schema

// DefaultType classifies how a column's default value should be read.
type DefaultType string

const (
	DefaultLiteral    DefaultType = "literal"
	DefaultExpression DefaultType = "expression"
	DefaultSequence   DefaultType = "sequence"
)

// ColumnDefinition describes one table column. ID is a stable, UI-scoped
// handle used only for diffing and error anchoring; it never reaches SQL.
type ColumnDefinition struct {
	ID              string
	Name            string
	DataType        string // dialect-native type name, e.g. "varchar", "numeric"
	Length          *int
	Precision       *int
	Scale           *int
	IsArray         bool
	IsNullable      bool
	IsPrimaryKey    bool
	IsUnique        bool
	DefaultValue    *string // raw SQL text
	DefaultType     DefaultType
	SequenceName    string
	CheckConstraint string // raw boolean expression
	Collation       string
	Comment         string
}

// ConstraintType enumerates the supported table constraint kinds.
type ConstraintType string

const (
	PrimaryKeyConstraint ConstraintType = "primary_key"
	ForeignKeyConstraint ConstraintType = "foreign_key"
	UniqueConstraint     ConstraintType = "unique"
	CheckConstraint      ConstraintType = "check"
	ExcludeConstraint    ConstraintType = "exclude"
)

// ReferentialAction is the ON DELETE / ON UPDATE behavior of a foreign key.
type ReferentialAction string

const (
	NoAction   ReferentialAction = "NO ACTION"
	Restrict   ReferentialAction = "RESTRICT"
	Cascade    ReferentialAction = "CASCADE"
	SetNull    ReferentialAction = "SET NULL"
	SetDefault ReferentialAction = "SET DEFAULT"
)

// ExcludeElement is one column/operator pair of an EXCLUDE constraint.
type ExcludeElement struct {
	Column   string
	Operator string
}

// ConstraintDefinition describes one table-level constraint. Name may be
// empty; the generator auto-names constraints only where SQL requires it.
type ConstraintDefinition struct {
	ID      string
	Name    string
	Type    ConstraintType
	Columns []string

	// foreign_key
	ReferencedSchema  string
	ReferencedTable   string
	ReferencedColumns []string
	OnUpdate          ReferentialAction
	OnDelete          ReferentialAction

	// check
	CheckExpression string

	// exclude
	ExcludeUsing    string // access method, e.g. "gist"
	ExcludeElements []ExcludeElement
}

// IndexMethod is the index access method. Btree is the default and is
// omitted from generated SQL.
type IndexMethod string

const (
	Btree  IndexMethod = "btree"
	Hash   IndexMethod = "hash"
	Gin    IndexMethod = "gin"
	Gist   IndexMethod = "gist"
	Spgist IndexMethod = "spgist"
	Brin   IndexMethod = "brin"
)

// SortOrder is a per-column index sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// NullsPosition places NULLs first or last within an index column.
type NullsPosition string

const (
	NullsFirst NullsPosition = "FIRST"
	NullsLast  NullsPosition = "LAST"
)

// IndexColumn is one key column of an index. Order and NullsPosition are
// emitted only when set.
type IndexColumn struct {
	Name          string
	Order         SortOrder
	NullsPosition NullsPosition
}

// IndexDefinition describes one secondary index. An empty Name is
// auto-generated as idx_{table}_{col1}_{col2}... by the generator.
type IndexDefinition struct {
	ID         string
	Name       string
	Columns    []IndexColumn
	IsUnique   bool
	Method     IndexMethod
	Where      string   // partial-index predicate
	Include    []string // covering, non-key columns
	Concurrent bool
}

// PartitionSpec is a PARTITION BY clause (postgresql only).
type PartitionSpec struct {
	Type    string // RANGE, LIST, HASH
	Columns []string
}

// TableDefinition is the root schema object the validator and generator
// operate on. Columns are ordered; constraints and indexes are not.
type TableDefinition struct {
	Schema      string
	Name        string
	Columns     []ColumnDefinition
	Constraints []ConstraintDefinition
	Indexes     []IndexDefinition
	Comment     string
	Unlogged    bool
	Inherits    []string
	Partition   *PartitionSpec
	Tablespace  string
}

// PrimaryKeyColumns returns the names of columns flagged IsPrimaryKey, in
// declaration order. More than one flagged column means a composite key,
// emitted as a table constraint rather than inline markers.
func (t TableDefinition) PrimaryKeyColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			cols = append(cols, c.Name)
		}
	}
	return cols
}
