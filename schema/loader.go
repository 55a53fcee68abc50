package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Schema      string           `yaml:"schema"`
	Name        string           `yaml:"name"`
	Comment     string           `yaml:"comment"`
	Unlogged    bool             `yaml:"unlogged"`
	Tablespace  string           `yaml:"tablespace"`
	Columns     []yamlColumn     `yaml:"columns"`
	Constraints []yamlConstraint `yaml:"constraints"`
	Indexes     []yamlIndex      `yaml:"indexes"`
}

type yamlColumn struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Length    *int    `yaml:"length"`
	Precision *int    `yaml:"precision"`
	Scale     *int    `yaml:"scale"`
	Array     bool    `yaml:"array"`
	Nullable  *bool   `yaml:"nullable"`
	Primary   bool    `yaml:"primary"`
	Unique    bool    `yaml:"unique"`
	Default   *string `yaml:"default"`
	DefaultAs string  `yaml:"default_as"` // literal, expression, sequence
	Check     string  `yaml:"check"`
	Collation string  `yaml:"collation"`
	Comment   string  `yaml:"comment"`
}

type yamlConstraint struct {
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	Columns      []string          `yaml:"columns"`
	RefSchema    string            `yaml:"ref_schema"`
	RefTable     string            `yaml:"ref_table"`
	RefColumns   []string          `yaml:"ref_columns"`
	OnDelete     string            `yaml:"on_delete"`
	OnUpdate     string            `yaml:"on_update"`
	Check        string            `yaml:"check"`
	ExcludeUsing string            `yaml:"exclude_using"`
	ExcludeElems []yamlExcludeElem `yaml:"exclude_elements"`
}

type yamlExcludeElem struct {
	Column   string `yaml:"column"`
	Operator string `yaml:"operator"`
}

type yamlIndex struct {
	Name       string   `yaml:"name"`
	Columns    []string `yaml:"columns"`
	Unique     bool     `yaml:"unique"`
	Method     string   `yaml:"method"`
	Where      string   `yaml:"where"`
	Include    []string `yaml:"include"`
	Concurrent bool     `yaml:"concurrent"`
}

// LoadTablesFromYAML reads a schema file and converts it into table
// definitions ready for validation and synthesis.
func LoadTablesFromYAML(filename string) ([]TableDefinition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	var tables []TableDefinition
	for ti, t := range yf.Tables {
		table := TableDefinition{
			Schema:     t.Schema,
			Name:       t.Name,
			Comment:    t.Comment,
			Unlogged:   t.Unlogged,
			Tablespace: t.Tablespace,
		}

		for ci, c := range t.Columns {
			nullable := true
			if c.Nullable != nil {
				nullable = *c.Nullable
			}
			table.Columns = append(table.Columns, ColumnDefinition{
				ID:              fmt.Sprintf("col-%d-%d", ti, ci),
				Name:            c.Name,
				DataType:        c.Type,
				Length:          c.Length,
				Precision:       c.Precision,
				Scale:           c.Scale,
				IsArray:         c.Array,
				IsNullable:      nullable,
				IsPrimaryKey:    c.Primary,
				IsUnique:        c.Unique,
				DefaultValue:    c.Default,
				DefaultType:     parseDefaultType(c.DefaultAs),
				CheckConstraint: c.Check,
				Collation:       c.Collation,
				Comment:         c.Comment,
			})
		}

		for si, c := range t.Constraints {
			cd := ConstraintDefinition{
				ID:                fmt.Sprintf("con-%d-%d", ti, si),
				Name:              c.Name,
				Type:              ConstraintType(c.Type),
				Columns:           c.Columns,
				ReferencedSchema:  c.RefSchema,
				ReferencedTable:   c.RefTable,
				ReferencedColumns: c.RefColumns,
				OnDelete:          ReferentialAction(c.OnDelete),
				OnUpdate:          ReferentialAction(c.OnUpdate),
				CheckExpression:   c.Check,
				ExcludeUsing:      c.ExcludeUsing,
			}
			for _, e := range c.ExcludeElems {
				cd.ExcludeElements = append(cd.ExcludeElements, ExcludeElement{
					Column:   e.Column,
					Operator: e.Operator,
				})
			}
			table.Constraints = append(table.Constraints, cd)
		}

		for ii, idx := range t.Indexes {
			id := IndexDefinition{
				ID:         fmt.Sprintf("idx-%d-%d", ti, ii),
				Name:       idx.Name,
				IsUnique:   idx.Unique,
				Method:     IndexMethod(idx.Method),
				Where:      idx.Where,
				Include:    idx.Include,
				Concurrent: idx.Concurrent,
			}
			for _, col := range idx.Columns {
				id.Columns = append(id.Columns, IndexColumn{Name: col})
			}
			table.Indexes = append(table.Indexes, id)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func parseDefaultType(s string) DefaultType {
	switch s {
	case "expression":
		return DefaultExpression
	case "sequence":
		return DefaultSequence
	default:
		return DefaultLiteral
	}
}
