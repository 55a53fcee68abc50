package schema

// CommentState distinguishes "leave the comment alone" from "clear it" from
// "set it". A plain optional string cannot express all three.
type CommentState int

const (
	CommentUnchanged CommentState = iota
	CommentClear
	CommentSet
)

// CommentChange is a tri-state comment update.
type CommentChange struct {
	State CommentState
	Value string // meaningful only when State == CommentSet
}

// SetComment builds a CommentChange that sets the comment to value.
func SetComment(value string) CommentChange {
	return CommentChange{State: CommentSet, Value: value}
}

// ClearComment builds a CommentChange that removes the comment.
func ClearComment() CommentChange {
	return CommentChange{State: CommentClear}
}

// ColumnOperationType tags the variant carried by a ColumnOperation.
type ColumnOperationType string

const (
	AddColumn         ColumnOperationType = "add"
	DropColumn        ColumnOperationType = "drop"
	RenameColumn      ColumnOperationType = "rename"
	SetColumnType     ColumnOperationType = "set_type"
	SetColumnNullable ColumnOperationType = "set_nullable"
	SetColumnDefault  ColumnOperationType = "set_default"
	SetColumnComment  ColumnOperationType = "set_comment"
)

// ColumnOperation is one column-level change in an AlterTableBatch. Only the
// fields relevant to Type are read.
type ColumnOperation struct {
	Type ColumnOperationType

	Column   *ColumnDefinition // add
	Name     string            // all except add
	NewName  string            // rename
	NewType  string            // set_type
	Using    string            // set_type conversion expression
	Nullable bool              // set_nullable
	Default  *string           // set_default; nil drops the default
	Comment  *string           // set_comment; nil clears the comment
	Cascade  bool              // drop
}

// ConstraintOperationType tags the variant carried by a ConstraintOperation.
type ConstraintOperationType string

const (
	AddConstraint    ConstraintOperationType = "add_constraint"
	DropConstraint   ConstraintOperationType = "drop_constraint"
	RenameConstraint ConstraintOperationType = "rename_constraint"
)

// ConstraintOperation is one constraint-level change in an AlterTableBatch.
type ConstraintOperation struct {
	Type ConstraintOperationType

	Constraint *ConstraintDefinition // add_constraint
	Name       string                // drop_constraint, rename_constraint
	NewName    string                // rename_constraint
	Cascade    bool                  // drop_constraint
}

// IndexOperationType tags the variant carried by an IndexOperation.
type IndexOperationType string

const (
	CreateIndex IndexOperationType = "create_index"
	DropIndex   IndexOperationType = "drop_index"
	RenameIndex IndexOperationType = "rename_index"
	Reindex     IndexOperationType = "reindex"
)

// IndexOperation is one index-level change in an AlterTableBatch.
type IndexOperation struct {
	Type IndexOperationType

	Index      *IndexDefinition // create_index
	Name       string           // drop_index, rename_index, reindex
	NewName    string           // rename_index
	IfExists   bool             // drop_index
	Concurrent bool             // drop_index, reindex
}

// AlterTableBatch collects every pending change against one table. The
// generator emits statements in a fixed category order (rename, schema,
// columns, constraints, indexes, comment) regardless of how the batch was
// assembled; within a category the slice order is preserved.
type AlterTableBatch struct {
	Schema      string
	Table       string
	RenameTable string // empty means no rename
	SetSchema   string // empty means no schema move
	Comment     CommentChange

	ColumnOperations     []ColumnOperation
	ConstraintOperations []ConstraintOperation
	IndexOperations      []IndexOperation
}
