package dto

import (
	guestModel "boda/internal/domains/guest/model"
)

type OverallStatsResponse struct {
	Total         int `json:"total"`
	Confirmed     int `json:"confirmed"`
	Pending       int `json:"pending"`
	NeedTransport int `json:"need_transport"`
}

func (o *OverallStatsResponse) FromModel(model guestModel.OverallStats) {
	o.Total = model.Total
	o.Confirmed = model.Confirmed
	o.Pending = model.Pending
	o.NeedTransport = model.NeedTransport
}

type AttendanceStatsResponse struct {
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
}

type TransportStatsResponse struct {
	NeedTransport int `json:"need_transport"`
	NoTransport   int `json:"no_transport"`
}

type AllergyStatsResponse struct {
	Allergies string `json:"allergies"`
	Count     int    `json:"count"`
}

type GetAllergyStatsResponse struct {
	Allergies []AllergyStatsResponse `json:"allergies"`
	TotalData int                    `json:"total_data"`
}

func (g *GetAllergyStatsResponse) FromModels(models []guestModel.AllergyCount) {
	g.TotalData = len(models)

	g.Allergies = make([]AllergyStatsResponse, len(models))
	for i, mod := range models {
		g.Allergies[i] = AllergyStatsResponse{
			Allergies: mod.Allergies,
			Count:     mod.Count,
		}
	}
}
