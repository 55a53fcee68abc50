package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ddlkit/ddlkit/schema"
)

// SQLiteIntrospector reads table metadata from sqlite_master and the PRAGMA
// table-valued functions.
type SQLiteIntrospector struct {
	db *sql.DB
}

func NewSQLiteIntrospector(db *sql.DB) *SQLiteIntrospector {
	return &SQLiteIntrospector{db: db}
}

func (s *SQLiteIntrospector) Tables(ctx context.Context) ([]schema.TableDefinition, error) {
	tablesQuery := `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name;
	`

	rows, err := s.db.QueryContext(ctx, tablesQuery)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating table rows: %w", rows.Err())
	}

	var tables []schema.TableDefinition
	for _, name := range names {
		table := schema.TableDefinition{Name: name}

		if table.Columns, err = s.columns(ctx, name); err != nil {
			return nil, fmt.Errorf("columns of %s: %w", name, err)
		}
		if table.Constraints, err = s.foreignKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", name, err)
		}
		if table.Indexes, err = s.indexes(ctx, name); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", name, err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func (s *SQLiteIntrospector) columns(ctx context.Context, tableName string) ([]schema.ColumnDefinition, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q);", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying table_info: %w", err)
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var (
			cid     int
			col     schema.ColumnDefinition
			notNull int
			def     *string
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.DataType, &notNull, &def, &pk); err != nil {
			return nil, fmt.Errorf("scanning table_info: %w", err)
		}
		col.ID = columnID(tableName, col.Name)
		col.IsNullable = notNull == 0
		col.IsPrimaryKey = pk > 0
		if def != nil {
			col.DefaultValue = def
			col.DefaultType = classifyDefault(*def)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (s *SQLiteIntrospector) foreignKeys(ctx context.Context, tableName string) ([]schema.ConstraintDefinition, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q);", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying foreign_key_list: %w", err)
	}
	defer rows.Close()

	// Rows of a multi-column key share an id; fold them together. SQLite
	// foreign keys are unnamed, so the policy name is left to the generator.
	byID := map[int]*schema.ConstraintDefinition{}
	var order []int
	for rows.Next() {
		var (
			id, seq                   int
			refTable, from, to        string
			onUpdate, onDelete, match string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, fmt.Errorf("scanning foreign_key_list: %w", err)
		}

		c, ok := byID[id]
		if !ok {
			c = &schema.ConstraintDefinition{
				ID:              constraintID(tableName, fmt.Sprintf("fk%d", id)),
				Type:            schema.ForeignKeyConstraint,
				ReferencedTable: refTable,
				OnDelete:        schema.ReferentialAction(onDelete),
				OnUpdate:        schema.ReferentialAction(onUpdate),
			}
			byID[id] = c
			order = append(order, id)
		}
		c.Columns = append(c.Columns, from)
		c.ReferencedColumns = append(c.ReferencedColumns, to)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating foreign_key_list rows: %w", rows.Err())
	}

	var constraints []schema.ConstraintDefinition
	for _, id := range order {
		constraints = append(constraints, *byID[id])
	}
	return constraints, nil
}

func (s *SQLiteIntrospector) indexes(ctx context.Context, tableName string) ([]schema.IndexDefinition, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%q);", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying index_list: %w", err)
	}
	defer rows.Close()

	type indexHead struct {
		name   string
		unique bool
	}
	var heads []indexHead
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, fmt.Errorf("scanning index_list: %w", err)
		}
		// "c" marks indexes from an explicit CREATE INDEX; the rest back
		// UNIQUE or PRIMARY KEY clauses already captured on the columns.
		if origin != "c" || strings.HasPrefix(name, "sqlite_autoindex_") {
			continue
		}
		heads = append(heads, indexHead{name: name, unique: unique == 1})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating index_list rows: %w", rows.Err())
	}

	var indexes []schema.IndexDefinition
	for _, h := range heads {
		idx := schema.IndexDefinition{
			ID:       constraintID(tableName, h.name),
			Name:     h.name,
			IsUnique: h.unique,
		}
		if idx.Columns, err = s.indexColumns(ctx, h.name); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

func (s *SQLiteIntrospector) indexColumns(ctx context.Context, indexName string) ([]schema.IndexColumn, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%q);", indexName))
	if err != nil {
		return nil, fmt.Errorf("querying index_info: %w", err)
	}
	defer rows.Close()

	var cols []schema.IndexColumn
	for rows.Next() {
		var (
			seqno, cid int
			name       *string
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, fmt.Errorf("scanning index_info: %w", err)
		}
		if name != nil {
			cols = append(cols, schema.IndexColumn{Name: *name})
		}
	}
	return cols, rows.Err()
}
