package model

import "boda/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID             = "id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldAttending      = "attending"
	FieldMealType       = "meal_type"
	FieldNeedsTransport = "needs_transport"
	FieldAllergies      = "allergies"
	FieldNotes          = "notes"
	FieldTableID        = "table_id"
	FieldTableName      = "table_name"
)

// Guest is a single seat at the wedding. Companions created through a party
// request are ordinary guests pointing at the same table. TableName is the
// legacy free-text assignment kept for rows imported before tables got ids.
type Guest struct {
	ID             int64   `db:"id"`
	Name           string  `db:"name"`
	Email          *string `db:"email"`
	Phone          *string `db:"phone"`
	Attending      bool    `db:"attending"`
	MealType       string  `db:"meal_type"`
	NeedsTransport bool    `db:"needs_transport"`
	Allergies      *string `db:"allergies"`
	Notes          *string `db:"notes"`
	TableID        *int64  `db:"table_id"`
	TableName      *string `db:"table_name"`
	model.Metadata
}

// TableOccupancy is one row of the per-table guest count aggregate.
type TableOccupancy struct {
	TableID int64 `db:"table_id"`
	Guests  int   `db:"guests"`
}

// OverallStats mirrors the stats endpoint aggregates.
type OverallStats struct {
	Total         int `db:"total"`
	Confirmed     int `db:"confirmed"`
	Pending       int `db:"pending"`
	NeedTransport int `db:"need_transport"`
}

// AllergyCount groups guests by exact allergy text; NULL and empty are excluded.
type AllergyCount struct {
	Allergies string `db:"allergies"`
	Count     int    `db:"count"`
}
