package dto

import (
	"boda/internal/domains/setting/model"
	"boda/shared/constant"
	"boda/shared/timezone"
)

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}

type UpdateSettingResponse struct {
	Key          string `json:"key"`
	Value        string `json:"value"`
	RowsAffected int64  `json:"rows_affected"`
}

type SettingResponse struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	ModifiedAt string `json:"modified_at"`
}

func (s *SettingResponse) FromModel(model model.Setting) {
	s.Key = model.Key
	s.Value = model.Value
	s.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
}

type GetSettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
}

func (s *GetSettingsResponse) FromModels(models []model.Setting) {
	s.Settings = make([]SettingResponse, len(models))
	for i, mod := range models {
		s.Settings[i].FromModel(mod)
	}
}
