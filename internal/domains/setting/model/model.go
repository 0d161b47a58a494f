package model

import "time"

const (
	TableName  = "settings"
	EntityName = "setting"

	FieldKey        = "key"
	FieldValue      = "value"
	FieldModifiedAt = "modified_at"
)

// Setting rows are pre-seeded; the application updates values but never
// inserts new keys at runtime.
type Setting struct {
	Key        string    `db:"key"`
	Value      string    `db:"value"`
	ModifiedAt time.Time `db:"modified_at"`
}
