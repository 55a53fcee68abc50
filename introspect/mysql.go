package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ddlkit/ddlkit/schema"
)

// MySQLIntrospector reads table metadata from information_schema over a
// database/sql connection.
type MySQLIntrospector struct {
	db         *sql.DB
	schemaName string // the mysql database name
}

func NewMySQLIntrospector(db *sql.DB, schemaName string) *MySQLIntrospector {
	return &MySQLIntrospector{db: db, schemaName: schemaName}
}

func (m *MySQLIntrospector) Tables(ctx context.Context) ([]schema.TableDefinition, error) {
	tablesQuery := `
	SELECT table_name, COALESCE(table_comment, '')
	FROM information_schema.tables
	WHERE table_schema = ? AND table_type = 'BASE TABLE'
	ORDER BY table_name;
	`

	rows, err := m.db.QueryContext(ctx, tablesQuery, m.schemaName)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	type tableHead struct {
		name    string
		comment string
	}
	var heads []tableHead
	for rows.Next() {
		var h tableHead
		if err := rows.Scan(&h.name, &h.comment); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		heads = append(heads, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating table rows: %w", rows.Err())
	}

	var tables []schema.TableDefinition
	for _, h := range heads {
		// mysql has no implicit schema; leave Schema empty so generated
		// references stay unqualified.
		table := schema.TableDefinition{Name: h.name, Comment: h.comment}

		if table.Columns, err = m.columns(ctx, h.name); err != nil {
			return nil, fmt.Errorf("columns of %s: %w", h.name, err)
		}
		if table.Constraints, err = m.foreignKeys(ctx, h.name); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", h.name, err)
		}
		if table.Indexes, err = m.indexes(ctx, h.name); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", h.name, err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func (m *MySQLIntrospector) columns(ctx context.Context, tableName string) ([]schema.ColumnDefinition, error) {
	columnsQuery := `
	SELECT
		column_name,
		data_type,
		(is_nullable = 'YES'),
		column_default,
		character_maximum_length,
		numeric_precision,
		numeric_scale,
		(column_key = 'PRI'),
		(column_key = 'UNI'),
		COALESCE(collation_name, ''),
		COALESCE(column_comment, '')
	FROM information_schema.columns
	WHERE table_schema = ? AND table_name = ?
	ORDER BY ordinal_position;
	`

	rows, err := m.db.QueryContext(ctx, columnsQuery, m.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var (
			col       schema.ColumnDefinition
			def       *string
			maxLen    *int
			precision *int
			scale     *int
		)
		if err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.IsNullable,
			&def,
			&maxLen,
			&precision,
			&scale,
			&col.IsPrimaryKey,
			&col.IsUnique,
			&col.Collation,
			&col.Comment,
		); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}

		col.ID = columnID(tableName, col.Name)
		col.Length = maxLen
		if maxLen == nil {
			col.Precision = precision
			col.Scale = scale
		}
		if def != nil {
			col.DefaultValue = def
			col.DefaultType = classifyDefault(*def)
		}

		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (m *MySQLIntrospector) foreignKeys(ctx context.Context, tableName string) ([]schema.ConstraintDefinition, error) {
	foreignKeysQuery := `
	SELECT
		kcu.constraint_name,
		kcu.column_name,
		kcu.referenced_table_name,
		kcu.referenced_column_name,
		rc.delete_rule,
		rc.update_rule
	FROM information_schema.key_column_usage kcu
	JOIN information_schema.referential_constraints rc
		ON rc.constraint_name = kcu.constraint_name
		AND rc.constraint_schema = kcu.constraint_schema
	WHERE kcu.table_schema = ?
		AND kcu.table_name = ?
		AND kcu.referenced_table_name IS NOT NULL
	ORDER BY kcu.constraint_name, kcu.ordinal_position;
	`

	rows, err := m.db.QueryContext(ctx, foreignKeysQuery, m.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	byName := map[string]*schema.ConstraintDefinition{}
	var order []string
	for rows.Next() {
		var name, column, refTable, refColumn, onDelete, onUpdate string
		if err := rows.Scan(&name, &column, &refTable, &refColumn, &onDelete, &onUpdate); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}

		c, ok := byName[name]
		if !ok {
			c = &schema.ConstraintDefinition{
				ID:              constraintID(tableName, name),
				Name:            name,
				Type:            schema.ForeignKeyConstraint,
				ReferencedTable: refTable,
				OnDelete:        schema.ReferentialAction(onDelete),
				OnUpdate:        schema.ReferentialAction(onUpdate),
			}
			byName[name] = c
			order = append(order, name)
		}
		c.Columns = append(c.Columns, column)
		c.ReferencedColumns = append(c.ReferencedColumns, refColumn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating foreign key rows: %w", rows.Err())
	}

	var constraints []schema.ConstraintDefinition
	for _, name := range order {
		constraints = append(constraints, *byName[name])
	}
	return constraints, nil
}

func (m *MySQLIntrospector) indexes(ctx context.Context, tableName string) ([]schema.IndexDefinition, error) {
	indexesQuery := `
	SELECT
		index_name,
		GROUP_CONCAT(column_name ORDER BY seq_in_index SEPARATOR ','),
		(MAX(non_unique) = 0),
		LOWER(MAX(index_type))
	FROM information_schema.statistics
	WHERE table_schema = ? AND table_name = ?
	GROUP BY index_name
	ORDER BY index_name;
	`

	rows, err := m.db.QueryContext(ctx, indexesQuery, m.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying indexes: %w", err)
	}
	defer rows.Close()

	var indexes []schema.IndexDefinition
	for rows.Next() {
		var (
			idx         schema.IndexDefinition
			columnNames string
			method      string
		)
		if err := rows.Scan(&idx.Name, &columnNames, &idx.IsUnique, &method); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		if idx.Name == "PRIMARY" {
			continue
		}
		idx.ID = constraintID(tableName, idx.Name)
		idx.Method = schema.IndexMethod(method)
		for _, col := range strings.Split(columnNames, ",") {
			idx.Columns = append(idx.Columns, schema.IndexColumn{Name: strings.TrimSpace(col)})
		}
		indexes = append(indexes, idx)
	}
	return indexes, rows.Err()
}
