package introspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ddlkit/ddlkit/schema"
)

// MSSQLIntrospector reads table metadata from the sys.* catalog views.
type MSSQLIntrospector struct {
	db         *sql.DB
	schemaName string
}

// NewMSSQLIntrospector introspects schemaName ("dbo" when empty).
func NewMSSQLIntrospector(db *sql.DB, schemaName string) *MSSQLIntrospector {
	if schemaName == "" {
		schemaName = "dbo"
	}
	return &MSSQLIntrospector{db: db, schemaName: schemaName}
}

func (m *MSSQLIntrospector) Tables(ctx context.Context) ([]schema.TableDefinition, error) {
	tablesQuery := `
	SELECT t.name
	FROM sys.tables t
	JOIN sys.schemas s ON s.schema_id = t.schema_id
	WHERE s.name = @p1
	ORDER BY t.name;
	`

	rows, err := m.db.QueryContext(ctx, tablesQuery, m.schemaName)
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
		table := schema.TableDefinition{Schema: m.schemaName, Name: name}

		if table.Columns, err = m.columns(ctx, name); err != nil {
			return nil, fmt.Errorf("columns of %s: %w", name, err)
		}
		if table.Constraints, err = m.foreignKeys(ctx, name); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", name, err)
		}
		if table.Indexes, err = m.indexes(ctx, name); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", name, err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func (m *MSSQLIntrospector) columns(ctx context.Context, tableName string) ([]schema.ColumnDefinition, error) {
	columnsQuery := `
	SELECT
		c.name,
		ty.name AS type_name,
		c.is_nullable,
		OBJECT_DEFINITION(c.default_object_id),
		CASE WHEN ty.name IN ('varchar','nvarchar','char','nchar','varbinary','binary')
			THEN NULLIF(c.max_length, -1) END,
		CASE WHEN ty.name IN ('decimal','numeric') THEN c.precision END,
		CASE WHEN ty.name IN ('decimal','numeric') THEN c.scale END,
		COALESCE(c.collation_name, ''),
		CASE WHEN pkc.column_id IS NULL THEN 0 ELSE 1 END
	FROM sys.columns c
	JOIN sys.types ty ON ty.user_type_id = c.user_type_id
	JOIN sys.tables t ON t.object_id = c.object_id
	JOIN sys.schemas s ON s.schema_id = t.schema_id
	LEFT JOIN (
		SELECT ic.object_id, ic.column_id
		FROM sys.index_columns ic
		JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
		WHERE i.is_primary_key = 1
	) pkc ON pkc.object_id = c.object_id AND pkc.column_id = c.column_id
	WHERE s.name = @p1 AND t.name = @p2
	ORDER BY c.column_id;
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
			isPK      int
		)
		if err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.IsNullable,
			&def,
			&maxLen,
			&precision,
			&scale,
			&col.Collation,
			&isPK,
		); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}

		col.ID = columnID(tableName, col.Name)
		col.IsPrimaryKey = isPK == 1
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

func (m *MSSQLIntrospector) foreignKeys(ctx context.Context, tableName string) ([]schema.ConstraintDefinition, error) {
	foreignKeysQuery := `
	SELECT
		fk.name,
		pc.name AS column_name,
		rs.name AS ref_schema,
		rt.name AS ref_table,
		rc.name AS ref_column,
		REPLACE(fk.delete_referential_action_desc, '_', ' '),
		REPLACE(fk.update_referential_action_desc, '_', ' ')
	FROM sys.foreign_keys fk
	JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
	JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
	JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
	JOIN sys.tables rt ON rt.object_id = fk.referenced_object_id
	JOIN sys.schemas rs ON rs.schema_id = rt.schema_id
	JOIN sys.tables pt ON pt.object_id = fk.parent_object_id
	JOIN sys.schemas ps ON ps.schema_id = pt.schema_id
	WHERE ps.name = @p1 AND pt.name = @p2
	ORDER BY fk.name, fkc.constraint_column_id;
	`

	rows, err := m.db.QueryContext(ctx, foreignKeysQuery, m.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	byName := map[string]*schema.ConstraintDefinition{}
	var order []string
	for rows.Next() {
		var name, column, refSchema, refTable, refColumn, onDelete, onUpdate string
		if err := rows.Scan(&name, &column, &refSchema, &refTable, &refColumn, &onDelete, &onUpdate); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}

		c, ok := byName[name]
		if !ok {
			c = &schema.ConstraintDefinition{
				ID:               constraintID(tableName, name),
				Name:             name,
				Type:             schema.ForeignKeyConstraint,
				ReferencedSchema: refSchema,
				ReferencedTable:  refTable,
				OnDelete:         schema.ReferentialAction(onDelete),
				OnUpdate:         schema.ReferentialAction(onUpdate),
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

func (m *MSSQLIntrospector) indexes(ctx context.Context, tableName string) ([]schema.IndexDefinition, error) {
	indexesQuery := `
	SELECT
		i.name,
		STRING_AGG(c.name, ',') WITHIN GROUP (ORDER BY ic.key_ordinal),
		i.is_unique
	FROM sys.indexes i
	JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
	JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
	JOIN sys.tables t ON t.object_id = i.object_id
	JOIN sys.schemas s ON s.schema_id = t.schema_id
	WHERE s.name = @p1 AND t.name = @p2
		AND i.is_primary_key = 0 AND i.type > 0 AND ic.is_included_column = 0
	GROUP BY i.name, i.is_unique
	ORDER BY i.name;
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
		)
		if err := rows.Scan(&idx.Name, &columnNames, &idx.IsUnique); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		idx.ID = constraintID(tableName, idx.Name)
		for _, col := range splitCSV(columnNames) {
			idx.Columns = append(idx.Columns, schema.IndexColumn{Name: col})
		}
		indexes = append(indexes, idx)
	}
	return indexes, rows.Err()
}
