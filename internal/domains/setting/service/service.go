package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"

	"boda/config"
	"boda/infras/otel"
	"boda/internal/domains/setting/model"
	"boda/internal/domains/setting/model/dto"
	"boda/internal/domains/setting/repository"
	"boda/shared"
	"boda/shared/cache"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/failure"
	"boda/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSetting  = constant.CacheKeySetting
	cacheGetSettings = constant.CacheKeySettingList
)

type Setting interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, req dto.UpdateSettingRequest) (dto.UpdateSettingResponse, error)
	List(ctx context.Context) (dto.GetSettingsResponse, error)
	DefaultTableCapacity(ctx context.Context) int
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Setting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByKey(key string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldKey,
				Value:    key,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Get returns the stored value for key. An absent key is not an error; the
// empty string is returned instead so callers can apply their own defaults.
func (s *serviceImpl) Get(ctx context.Context, key string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSetting, key)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	setting, err := s.repo.Get(ctx, filterByKey(key))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to get setting")

		return res, fmt.Errorf("failed to get setting: %w", err)
	}

	res = setting.Value

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save setting to cache")
		}
	}()

	return res, nil
}

// Set updates an existing setting. Keys are pre-seeded and never inserted at
// runtime; updating an unknown key reports NotFound.
func (s *serviceImpl) Set(ctx context.Context, key string, req dto.UpdateSettingRequest) (res dto.UpdateSettingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	updatedFields := map[string]any{
		model.FieldValue:      req.Value,
		model.FieldModifiedAt: timezone.Now(),
	}

	rowsAffected, err := s.repo.Update(ctx, updatedFields, filterByKey(key))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to update setting")

		return res, fmt.Errorf("failed to update setting: %w", err)
	}

	if rowsAffected == 0 {
		log.Error().Str("key", key).Msg("setting not found")

		return res, failure.NotFound("setting not found") // nolint:wrapcheck
	}

	res = dto.UpdateSettingResponse{
		Key:          key,
		Value:        req.Value,
		RowsAffected: rowsAffected,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSetting, key)); err != nil {
			log.Error().Err(err).Msg("failed to delete setting cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetSettings)
	}()

	return res, nil
}

// DefaultTableCapacity resolves the default_table_capacity setting. A missing
// or unparsable value falls back to the built-in default instead of erroring,
// so seat accounting always has a capacity to work with.
func (s *serviceImpl) DefaultTableCapacity(ctx context.Context) int {
	value, err := s.Get(ctx, constant.SettingDefaultTableCapacity)
	if err != nil || value == constant.Empty {
		return constant.DefaultTableCapacity
	}

	capacity, err := strconv.Atoi(value)
	if err != nil || capacity <= 0 {
		log.Warn().Str("value", value).Msg("unparsable default table capacity setting, using fallback")

		return constant.DefaultTableCapacity
	}

	return capacity
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.FieldKey, SortDir: constant.DefaultValueSortDir}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetSettings, params, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}
