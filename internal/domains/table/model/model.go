package model

import "boda/shared/model"

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID       = "id"
	FieldName     = "name"
	FieldCapacity = "capacity"
	FieldShape    = "shape"
)

// Table is a seating table. Capacity is nullable; a table without its own
// capacity inherits the default_table_capacity setting.
type Table struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Capacity *int   `db:"capacity"`
	Shape    string `db:"shape"`
	model.Metadata
}

// EffectiveCapacity resolves the capacity used for seat accounting.
func (t *Table) EffectiveCapacity(defaultCapacity int) int {
	if t.Capacity != nil {
		return *t.Capacity
	}

	return defaultCapacity
}
