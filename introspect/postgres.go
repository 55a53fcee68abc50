package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ddlkit/ddlkit/schema"
)

// PostgresIntrospector reads table metadata from information_schema and the
// pg_* catalogs.
type PostgresIntrospector struct {
	pool       *pgxpool.Pool
	schemaName string
}

// NewPostgresIntrospector introspects schemaName ("public" when empty).
func NewPostgresIntrospector(pool *pgxpool.Pool, schemaName string) *PostgresIntrospector {
	if schemaName == "" {
		schemaName = "public"
	}
	return &PostgresIntrospector{pool: pool, schemaName: schemaName}
}

func (p *PostgresIntrospector) Tables(ctx context.Context) ([]schema.TableDefinition, error) {
	tablesQuery := `
	SELECT t.table_name, COALESCE(obj_description(c.oid), '')
	FROM information_schema.tables t
	JOIN pg_class c ON c.relname = t.table_name
	JOIN pg_namespace n ON n.oid = c.relnamespace AND n.nspname = t.table_schema
	WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
	ORDER BY t.table_name;
	`

	rows, err := p.pool.Query(ctx, tablesQuery, p.schemaName)
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
		table := schema.TableDefinition{
			Schema:  p.schemaName,
			Name:    h.name,
			Comment: h.comment,
		}

		if table.Columns, err = p.columns(ctx, h.name); err != nil {
			return nil, fmt.Errorf("columns of %s: %w", h.name, err)
		}
		if table.Constraints, err = p.foreignKeys(ctx, h.name); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", h.name, err)
		}
		if table.Indexes, err = p.indexes(ctx, h.name); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", h.name, err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func (p *PostgresIntrospector) columns(ctx context.Context, tableName string) ([]schema.ColumnDefinition, error) {
	columnsQuery := `
	SELECT
		c.column_name,
		c.data_type,
		(c.is_nullable = 'YES') AS is_nullable,
		c.column_default,
		c.character_maximum_length,
		c.numeric_precision,
		c.numeric_scale,
		(c.data_type = 'ARRAY') AS is_array,
		COALESCE(c.collation_name, ''),
		(EXISTS (
			SELECT 1
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name
				AND kcu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = c.table_schema
				AND tc.table_name = c.table_name
				AND kcu.column_name = c.column_name
		)) AS is_primary
	FROM information_schema.columns c
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position;
	`

	rows, err := p.pool.Query(ctx, columnsQuery, p.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var (
			col           schema.ColumnDefinition
			columnDefault *string
			maxLen        *int
			precision     *int
			scale         *int
			isArray       bool
		)
		if err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.IsNullable,
			&columnDefault,
			&maxLen,
			&precision,
			&scale,
			&isArray,
			&col.Collation,
			&col.IsPrimaryKey,
		); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}

		col.ID = columnID(tableName, col.Name)
		col.IsArray = isArray
		col.Length = maxLen
		if maxLen == nil {
			col.Precision = precision
			col.Scale = scale
		}
		if columnDefault != nil {
			col.DefaultValue = columnDefault
			col.DefaultType = classifyDefault(*columnDefault)
			if col.DefaultType == schema.DefaultSequence {
				col.SequenceName = sequenceFromDefault(*columnDefault)
			}
		}

		columns = append(columns, col)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating column rows: %w", rows.Err())
	}

	return columns, nil
}

func (p *PostgresIntrospector) foreignKeys(ctx context.Context, tableName string) ([]schema.ConstraintDefinition, error) {
	foreignKeysQuery := `
	SELECT
		tc.constraint_name,
		kcu.column_name,
		ccu.table_schema AS foreign_schema,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name,
		rc.delete_rule,
		rc.update_rule
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	LEFT JOIN information_schema.referential_constraints AS rc
		ON tc.constraint_name = rc.constraint_name
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2
	ORDER BY tc.constraint_name, kcu.ordinal_position;
	`

	rows, err := p.pool.Query(ctx, foreignKeysQuery, p.schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	// Multi-column keys arrive one row per column pair; fold them into a
	// single constraint per name.
	byName := map[string]*schema.ConstraintDefinition{}
	var order []string
	for rows.Next() {
		var (
			name, column, refSchema, refTable, refColumn string
			onDelete, onUpdate                           *string
		)
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
			}
			if onDelete != nil {
				c.OnDelete = schema.ReferentialAction(*onDelete)
			}
			if onUpdate != nil {
				c.OnUpdate = schema.ReferentialAction(*onUpdate)
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

func (p *PostgresIntrospector) indexes(ctx context.Context, tableName string) ([]schema.IndexDefinition, error) {
	indexesQuery := `
	SELECT
		i.indexname,
		array_to_string(array_agg(a.attname ORDER BY a.attnum), ',') AS column_names,
		idx.indisunique,
		am.amname AS index_type,
		idx.indisprimary
	FROM pg_indexes i
	JOIN pg_class c ON c.relname = i.indexname
	JOIN pg_index idx ON idx.indexrelid = c.oid
	JOIN pg_attribute a ON a.attrelid = idx.indrelid AND a.attnum = ANY(idx.indkey)
	JOIN pg_am am ON am.oid = c.relam
	WHERE i.tablename = $1 AND i.schemaname = $2
	GROUP BY i.indexname, idx.indisunique, am.amname, idx.indisprimary
	ORDER BY i.indexname;
	`

	rows, err := p.pool.Query(ctx, indexesQuery, tableName, p.schemaName)
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
			isPrimary   bool
		)
		if err := rows.Scan(&idx.Name, &columnNames, &idx.IsUnique, &method, &isPrimary); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		if isPrimary {
			// The primary key's backing index is implied by the column
			// flags; re-emitting it would duplicate the constraint.
			continue
		}
		idx.ID = constraintID(tableName, idx.Name)
		idx.Method = schema.IndexMethod(method)
		for _, col := range strings.Split(columnNames, ",") {
			idx.Columns = append(idx.Columns, schema.IndexColumn{Name: strings.TrimSpace(col)})
		}
		indexes = append(indexes, idx)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating index rows: %w", rows.Err())
	}

	return indexes, nil
}

// classifyDefault decides whether a catalog default is a literal, an
// expression, or a sequence reference.
func classifyDefault(def string) schema.DefaultType {
	if strings.HasPrefix(def, "nextval(") {
		return schema.DefaultSequence
	}
	if strings.Contains(def, "(") {
		return schema.DefaultExpression
	}
	return schema.DefaultLiteral
}

// sequenceFromDefault pulls the sequence name out of nextval('name'::regclass).
func sequenceFromDefault(def string) string {
	start := strings.Index(def, "'")
	if start < 0 {
		return ""
	}
	end := strings.Index(def[start+1:], "'")
	if end < 0 {
		return ""
	}
	return def[start+1 : start+1+end]
}
