package service

import (
	"context"
	"math/rand"
	"slices"

	"boda/infras/otel"
	guestRepository "boda/internal/domains/guest/repository"
	settingService "boda/internal/domains/setting/service"
	"boda/internal/domains/table/model"
	tableRepository "boda/internal/domains/table/repository"
	"boda/shared/constant"
	gDto "boda/shared/dto"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

// Seating picks a table for incoming guests. It never fails a guest create:
// any internal error degrades to an unassigned guest (nil table id).
type Seating interface {
	Assign(ctx context.Context, needed int, exclude ...int64) *int64
}

type serviceImpl struct {
	settings  settingService.Setting
	tableRepo tableRepository.Table
	guestRepo guestRepository.Guest
	otel      otel.Otel
}

func New(
	settings settingService.Setting,
	tableRepo tableRepository.Table,
	guestRepo guestRepository.Guest,
	otel otel.Otel,
) Seating {
	return &serviceImpl{
		settings:  settings,
		tableRepo: tableRepo,
		guestRepo: guestRepo,
		otel:      otel,
	}
}

func byNameParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldName, SortDir: constant.DefaultValueSortDir}
}

// Assign returns the id of a table with at least needed free seats, chosen
// uniformly at random among the candidates. When every table is full the first
// table in name order is returned anyway so guests always land somewhere; nil
// only when there are no tables at all, or the lookup itself failed.
func (s *serviceImpl) Assign(ctx context.Context, needed int, exclude ...int64) *int64 {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Assign")
	defer scope.End()

	if needed < 1 {
		needed = 1
	}

	tables, err := s.tableRepo.GetAll(ctx, byNameParams(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list tables for assignment")

		return nil
	}

	if len(tables) == 0 {
		return nil
	}

	occupancy, err := s.guestRepo.OccupancyByTable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupancy for assignment")

		return nil
	}

	defaultCapacity := s.settings.DefaultTableCapacity(ctx)

	candidates := make([]int64, 0, len(tables))

	for _, table := range tables {
		if slices.Contains(exclude, table.ID) {
			continue
		}

		free := table.EffectiveCapacity(defaultCapacity) - occupancy[table.ID]
		if free >= needed {
			candidates = append(candidates, table.ID)
		}
	}

	if len(candidates) == 0 {
		// Overbooked event: seat at the first table not already contended
		// rather than leave the guest unassigned.
		fallback := tables[0].ID

		for _, table := range tables {
			if !slices.Contains(exclude, table.ID) {
				fallback = table.ID

				break
			}
		}

		log.Warn().
			Int("needed", needed).
			Int64("tableID", fallback).
			Msg("no table has enough free seats, falling back to first table")

		return &fallback
	}

	picked := candidates[rand.Intn(len(candidates))] // nolint:gosec

	return &picked
}
