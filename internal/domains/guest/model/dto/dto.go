package dto

import (
	"fmt"

	"boda/internal/domains/guest/model"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	gModel "boda/shared/model"
	"boda/shared/timezone"
)

type CreateGuestRequest struct {
	Name           string  `json:"name"            validate:"required,max=100"`
	Email          *string `json:"email"           validate:"omitempty,email,max=100"`
	Phone          *string `json:"phone"           validate:"omitempty,max=30"`
	Attending      *bool   `json:"attending"`
	MealType       *string `json:"meal_type"       validate:"omitempty,oneof=normal vegetarian vegan child"`
	NeedsTransport *bool   `json:"needs_transport"`
	Allergies      *string `json:"allergies"       validate:"omitempty,max=255"`
	Notes          *string `json:"notes"           validate:"omitempty,max=500"`
	TableID        *int64  `json:"table_id"`
	PartySize      *int    `json:"party_size"      validate:"omitempty,gte=1,lte=20"`
}

// Size reports how many guests the request stands for; absent party_size means
// a single guest.
func (c *CreateGuestRequest) Size() int {
	if c.PartySize == nil || *c.PartySize < 1 {
		return 1
	}

	return *c.PartySize
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	attending := false
	if c.Attending != nil {
		attending = *c.Attending
	}

	mealType := constant.DefaultMealType
	if c.MealType != nil {
		mealType = *c.MealType
	}

	needsTransport := false
	if c.NeedsTransport != nil {
		needsTransport = *c.NeedsTransport
	}

	return model.Guest{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Attending:      attending,
		MealType:       mealType,
		NeedsTransport: needsTransport,
		Allergies:      c.Allergies,
		Notes:          c.Notes,
		TableID:        c.TableID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToPartyModels builds the primary guest plus its companions. The primary is
// marked attending; companions carry no contact details and a note pointing
// back at the primary. The shared table id is stamped on every row.
func (c *CreateGuestRequest) ToPartyModels(size int, tableID *int64, user string) []model.Guest {
	primary := c.ToModel(user)
	primary.Attending = true
	primary.TableID = tableID

	guests := make([]model.Guest, 0, size)
	guests = append(guests, primary)

	for i := 1; i < size; i++ {
		note := fmt.Sprintf("Companion of %s", c.Name)

		guests = append(guests, model.Guest{
			Name:           fmt.Sprintf("%s - Companion %d", c.Name, i),
			Attending:      true,
			MealType:       constant.DefaultMealType,
			NeedsTransport: false,
			Notes:          &note,
			TableID:        tableID,
			Metadata:       primary.Metadata,
		})
	}

	return guests
}

// UpdateGuestRequest replaces the whole record. Omitted attending and
// needs_transport keep the stored value; omitted meal_type resets to normal;
// every nullable column is overwritten, including table_id to null.
type UpdateGuestRequest struct {
	Name           string  `json:"name"            validate:"required,max=100"`
	Email          *string `json:"email"           validate:"omitempty,email,max=100"`
	Phone          *string `json:"phone"           validate:"omitempty,max=30"`
	Attending      *bool   `json:"attending"`
	MealType       *string `json:"meal_type"       validate:"omitempty,oneof=normal vegetarian vegan child"`
	NeedsTransport *bool   `json:"needs_transport"`
	Allergies      *string `json:"allergies"       validate:"omitempty,max=255"`
	Notes          *string `json:"notes"           validate:"omitempty,max=500"`
	TableID        *int64  `json:"table_id"`
}

// ToUpdateMap resolves fallbacks against the stored record and returns the
// full column set for the UPDATE.
func (u *UpdateGuestRequest) ToUpdateMap(current model.Guest, user string) map[string]any {
	attending := current.Attending
	if u.Attending != nil {
		attending = *u.Attending
	}

	needsTransport := current.NeedsTransport
	if u.NeedsTransport != nil {
		needsTransport = *u.NeedsTransport
	}

	mealType := constant.DefaultMealType
	if u.MealType != nil {
		mealType = *u.MealType
	}

	return map[string]any{
		model.FieldName:           u.Name,
		model.FieldEmail:          u.Email,
		model.FieldPhone:          u.Phone,
		model.FieldAttending:      attending,
		model.FieldMealType:       mealType,
		model.FieldNeedsTransport: needsTransport,
		model.FieldAllergies:      u.Allergies,
		model.FieldNotes:          u.Notes,
		model.FieldTableID:        u.TableID,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}
}

// PatchGuestRequest carries only the recognized columns; anything else in the
// JSON body is dropped by the decoder.
type PatchGuestRequest struct {
	Name           *string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Email          *string `db:"email"           json:"email"           validate:"omitempty,email,max=100"`
	Phone          *string `db:"phone"           json:"phone"           validate:"omitempty,max=30"`
	Attending      *bool   `db:"attending"       json:"attending"`
	MealType       *string `db:"meal_type"       json:"meal_type"       validate:"omitempty,oneof=normal vegetarian vegan child"`
	NeedsTransport *bool   `db:"needs_transport" json:"needs_transport"`
	Allergies      *string `db:"allergies"       json:"allergies"       validate:"omitempty,max=255"`
	Notes          *string `db:"notes"           json:"notes"           validate:"omitempty,max=500"`
	TableID        *int64  `db:"table_id"        json:"table_id"`
}

type GuestResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Attending      bool    `json:"attending"`
	MealType       string  `json:"meal_type"`
	NeedsTransport bool    `json:"needs_transport"`
	Allergies      *string `json:"allergies"`
	Notes          *string `json:"notes"`
	TableID        *int64  `json:"table_id"`
	TableName      *string `json:"table_name,omitempty"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.Name = model.Name
	g.Email = model.Email
	g.Phone = model.Phone
	g.Attending = model.Attending
	g.MealType = model.MealType
	g.NeedsTransport = model.NeedsTransport
	g.Allergies = model.Allergies
	g.Notes = model.Notes
	g.TableID = model.TableID
	g.TableName = model.TableName
	g.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalData int             `json:"total_data"`
}

func (g *GetGuestsResponse) FromModels(models []model.Guest) {
	g.TotalData = len(models)

	g.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		g.Guests[i].FromModel(mod)
	}
}

type DeleteGuestResponse struct {
	DeletedID    int64 `json:"deleted_id"`
	RowsAffected int64 `json:"rows_affected"`
}

// GuestCreatedEvent is the payload published to the guest-created topic.
type GuestCreatedEvent struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Attending bool   `json:"attending"`
	TableID   *int64 `json:"table_id"`
	CreatedAt string `json:"created_at"`
}
