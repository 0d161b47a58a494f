package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"boda/config"
	"boda/infras/otel"
	guestRepository "boda/internal/domains/guest/repository"
	settingService "boda/internal/domains/setting/service"
	"boda/internal/domains/table/model"
	"boda/internal/domains/table/model/dto"
	"boda/internal/domains/table/repository"
	"boda/shared"
	"boda/shared/cache"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

const (
	cacheGetTable  = constant.CacheKeyTable
	cacheGetTables = constant.CacheKeyTableList
)

// autoNamePattern matches auto-generated table names; the numeric suffix feeds
// the NextName scan.
var autoNamePattern = regexp.MustCompile(`^Table (\d+)$`)

type Table interface {
	GetAll(ctx context.Context) (dto.GetTablesResponse, error)
	Get(ctx context.Context, id int64) (dto.TableResponse, error)
	NextName(ctx context.Context) (string, error)
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (dto.TableResponse, error)
	Delete(ctx context.Context, idOrName string) (dto.DeleteTableResponse, error)
}

type serviceImpl struct {
	repo      repository.Table
	guestRepo guestRepository.Guest
	settings  settingService.Setting
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Table,
	guestRepo guestRepository.Guest,
	settings settingService.Setting,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Table {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		settings:  settings,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func byNameParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldName, SortDir: constant.DefaultValueSortDir}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Value:    name,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetTables, byNameParams(), gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, byNameParams(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	occupancy, err := s.guestRepo.OccupancyByTable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table occupancy")

		return res, fmt.Errorf("failed to get table occupancy: %w", err)
	}

	res.FromModels(models, occupancy, s.settings.DefaultTableCapacity(ctx))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == 0 {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	occupancy, err := s.guestRepo.OccupancyByTable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table occupancy")

		return res, fmt.Errorf("failed to get table occupancy: %w", err)
	}

	res.FromModel(table, occupancy[table.ID], s.settings.DefaultTableCapacity(ctx))

	return res, nil
}

// NextName yields the next free auto-generated name, "Table N". N is one past
// the highest numeric suffix found across table rows and legacy guest
// assignments, so renames and deletions never cause a collision.
func (s *serviceImpl) NextName(ctx context.Context) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NextName")
	defer scope.End()
	defer scope.TraceIfError(err)

	names, err := s.repo.ListAssignedNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list assigned table names")

		return res, fmt.Errorf("failed to list assigned table names: %w", err)
	}

	highest := 0

	for _, name := range names {
		match := autoNamePattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}

		n, convErr := strconv.Atoi(match[1])
		if convErr != nil {
			continue
		}

		if n > highest {
			highest = n
		}
	}

	return fmt.Sprintf(constant.AutoTableNameFormat, highest+1), nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	name := constant.Empty
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}

	if name == constant.Empty {
		name, err = s.NextName(ctx)
		if err != nil {
			return res, err
		}
	}

	table := req.ToModel(name, user)

	id, err := s.repo.Insert(ctx, table)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("table name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	table.ID = id

	res.FromModel(table, 0, s.settings.DefaultTableCapacity(ctx))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTables)
	}()

	return res, nil
}

// Update applies only the supplied fields. There is no existence pre-check;
// zero affected rows reports NotFound.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	updatedFields := shared.TransformFields(req, user)

	// TransformFields always carries the modified_at/modified_by pair.
	if len(updatedFields) <= 2 {
		return s.Get(ctx, id)
	}

	rowsAffected, err := s.repo.Update(ctx, updatedFields, filter)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("table name already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update table")

		return res, fmt.Errorf("failed to update table: %w", err)
	}

	if rowsAffected == 0 {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated table")

		return res, fmt.Errorf("failed to get updated table: %w", err)
	}

	occupancy, err := s.guestRepo.OccupancyByTable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table occupancy")

		return res, fmt.Errorf("failed to get table occupancy: %w", err)
	}

	res.FromModel(table, occupancy[table.ID], s.settings.DefaultTableCapacity(ctx))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTable, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete table cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetTables)
	}()

	return res, nil
}

// Delete removes a table addressed by id or, for legacy clients, by name.
// Guests are detached first (both id and free-text assignments), then the row
// is dropped; each step proceeds even when the other finds nothing. NotFound
// is reported only when no table row existed and no legacy guest row matched.
func (s *serviceImpl) Delete(ctx context.Context, idOrName string) (res dto.DeleteTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	var table model.Table

	if id, convErr := strconv.ParseInt(idOrName, 10, 64); convErr == nil {
		table, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve table by id")

			return res, fmt.Errorf("failed to resolve table: %w", err)
		}
	}

	if table.ID == 0 {
		table, err = s.repo.Get(ctx, filterByName(idOrName))
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve table by name")

			return res, fmt.Errorf("failed to resolve table: %w", err)
		}
	}

	if table.ID == 0 {
		// No table row: the name may still dangle on legacy guest rows.
		unassigned, unassignErr := s.guestRepo.UnassignByTableName(ctx, idOrName)
		if unassignErr != nil {
			log.Error().Err(unassignErr).Msg("failed to unassign legacy guests")

			return res, fmt.Errorf("failed to unassign legacy guests: %w", unassignErr)
		}

		if unassigned == 0 {
			return res, failure.NotFound("table not found") // nolint:wrapcheck
		}

		res = dto.DeleteTableResponse{
			Name:             idOrName,
			UnassignedGuests: unassigned,
		}

		s.invalidateAfterDelete(ctx, nil)

		return res, nil
	}

	var unassigned int64

	byID, unassignErr := s.guestRepo.Unassign(ctx, table.ID)
	if unassignErr != nil {
		log.Error().Err(unassignErr).Int64("tableID", table.ID).Msg("failed to unassign guests, continuing with delete")
	}

	byName, unassignErr := s.guestRepo.UnassignByTableName(ctx, table.Name)
	if unassignErr != nil {
		log.Error().Err(unassignErr).Str("tableName", table.Name).Msg("failed to unassign legacy guests, continuing with delete")
	}

	unassigned = byID + byName

	removed, err := s.repo.Delete(ctx, shared.FilterByID(table.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete table")

		return res, fmt.Errorf("failed to delete table: %w", err)
	}

	id := table.ID
	res = dto.DeleteTableResponse{
		ID:               &id,
		Name:             table.Name,
		UnassignedGuests: unassigned,
		Removed:          removed,
	}

	s.invalidateAfterDelete(ctx, &id)

	return res, nil
}

func (s *serviceImpl) invalidateAfterDelete(ctx context.Context, id *int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != nil {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTable, *id)); err != nil {
				log.Error().Err(err).Msg("failed to delete table cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetTables)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyGuestList)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyStats)
	}()
}
