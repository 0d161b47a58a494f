package dto

import (
	"boda/internal/domains/table/model"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	gModel "boda/shared/model"
	"boda/shared/timezone"
)

type CreateTableRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=100"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Shape    *string `json:"shape"    validate:"omitempty,oneof=round square"`
}

func (c *CreateTableRequest) ToModel(name, user string) model.Table {
	shape := constant.TableShapeRound
	if c.Shape != nil {
		shape = *c.Shape
	}

	return model.Table{
		Name:     name,
		Capacity: c.Capacity,
		Shape:    shape,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Capacity *int   `db:"capacity" json:"capacity" validate:"omitempty,min=1"`
	Shape    string `db:"shape"    json:"shape"    validate:"omitempty,oneof=round square"`
}

type TableResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Capacity          *int   `json:"capacity"`
	Shape             string `json:"shape"`
	Occupancy         int    `json:"occupancy"`
	EffectiveCapacity int    `json:"effective_capacity"`
	gDto.Metadata
}

func (t *TableResponse) FromModel(model model.Table, occupancy, defaultCapacity int) {
	t.ID = model.ID
	t.Name = model.Name
	t.Capacity = model.Capacity
	t.Shape = model.Shape
	t.Occupancy = occupancy
	t.EffectiveCapacity = model.EffectiveCapacity(defaultCapacity)
	t.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalData int             `json:"total_data"`
}

func (t *GetTablesResponse) FromModels(models []model.Table, occupancy map[int64]int, defaultCapacity int) {
	t.TotalData = len(models)

	t.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		t.Tables[i].FromModel(mod, occupancy[mod.ID], defaultCapacity)
	}
}

// DeleteTableResponse reports the cascade outcome. ID is nil when only legacy
// name-assigned guests were touched and no table row existed.
type DeleteTableResponse struct {
	ID               *int64 `json:"id"`
	Name             string `json:"name"`
	UnassignedGuests int64  `json:"unassigned_guests"`
	Removed          int64  `json:"removed"`
}
